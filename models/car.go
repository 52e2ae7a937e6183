package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"

	"rentaj/constants"
)

type Car struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	DealerID          uint       `json:"dealerId" gorm:"index"`
	Dealer            User       `json:"dealer" gorm:"foreignKey:DealerID"`
	Title             string     `json:"title"`
	Make              string     `json:"make"`
	Model             string     `json:"model"`
	Year              int        `json:"year"`
	CarType           string     `json:"carType"`
	Transmission      string     `json:"transmission"`
	FuelType          string     `json:"fuelType"`
	Price             float64    `json:"price"`
	PricePerDay       float64    `json:"pricePerDay"`
	Mileage           *int       `json:"mileage"`
	Condition         string     `json:"condition" gorm:"default:USED"`
	Status            string     `json:"status" gorm:"default:AVAILABLE"`
	FirstRegistration *time.Time `json:"firstRegistration"`
	Performance       string     `json:"performance"`
	EngineCapacity    string     `json:"engineCapacity"`
	Cylinders         *int       `json:"cylinders"`
	EmissionClass     string     `json:"emissionClass"`
	DriveType         string     `json:"driveType"`
	Seats             int        `json:"seats" gorm:"default:5"`
	Doors             int        `json:"doors" gorm:"default:4"`
	Weight            *int       `json:"weight"`
	TowingCapacity    *int       `json:"towingCapacity"`
	Color             string     `json:"color"`
	Interior          string     `json:"interior"`
	FuelConsumption   string     `json:"fuelConsumption"`
	ValidHUUntil      *time.Time `json:"validHUUntil"`
	AvailableFrom     time.Time  `json:"availableFrom"`
	AvailableTo       *time.Time `json:"availableTo"`
	PickupLocation    string     `json:"pickupLocation"`
	DealerName        string     `json:"dealerName"`
	CreatedAt         time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`

	ComfortFeatures          pq.StringArray `json:"comfortFeatures" gorm:"type:text[]"`
	SafetyFeatures           pq.StringArray `json:"safetyFeatures" gorm:"type:text[]"`
	TechnologyFeatures       pq.StringArray `json:"technologyFeatures" gorm:"type:text[]"`
	LightingFeatures         pq.StringArray `json:"lightingFeatures" gorm:"type:text[]"`
	DriverAssistanceFeatures pq.StringArray `json:"driverAssistanceFeatures" gorm:"type:text[]"`
	OtherFeatures            pq.StringArray `json:"otherFeatures" gorm:"type:text[]"`

	Images   []CarImage `json:"images" gorm:"foreignKey:CarID;constraint:OnDelete:CASCADE"`
	Bookings []Booking  `json:"bookings,omitempty" gorm:"foreignKey:CarID"`
}

func (car *Car) ValidateStatus() error {
	if car.Status != constants.CarStatusAvailable && car.Status != constants.CarStatusRented {
		return fmt.Errorf("invalid status: %s", car.Status)
	}
	return nil
}
