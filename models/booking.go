package models

import (
	"time"
)

type Booking struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	RenterID         uint       `json:"renterId" gorm:"index"`
	Renter           User       `json:"renter" gorm:"foreignKey:RenterID"`
	DealerID         uint       `json:"dealerId" gorm:"index"`
	Dealer           User       `json:"dealer" gorm:"foreignKey:DealerID"`
	CarID            uint       `json:"carId" gorm:"index"`
	Car              Car        `json:"car" gorm:"foreignKey:CarID"`
	PickUpDate       time.Time  `json:"pickUpDate" gorm:"index"`
	ReturnDate       time.Time  `json:"returnDate" gorm:"index"`
	PickupLocation   string     `json:"pickupLocation"`
	ReturnLocation   string     `json:"returnLocation"`
	TotalPrice       float64    `json:"totalPrice"`
	Status           string     `json:"status" gorm:"default:CONFIRMED;index"`
	CancellationDate *time.Time `json:"cancellationDate"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}
