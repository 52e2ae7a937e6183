package models

import "time"

type CarImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CarID     uint      `json:"carId" gorm:"index"`
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	Order     int       `json:"order"`
	IsPrimary bool      `json:"isPrimary"`
	AltText   string    `json:"altText"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
