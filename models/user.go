package models

import (
	"time"
)

type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	FullName      string    `gorm:"default:New User" json:"fullName"`
	Email         string    `gorm:"unique" json:"email"`
	Password      string    `json:"-"`
	PhoneNumber   string    `gorm:"type:varchar(20)" json:"phoneNumber"`
	Location      string    `json:"location"`
	Avatar        string    `json:"avatar"`
	Role          int       `gorm:"default:0" json:"role"`
	IsVerified    bool      `gorm:"default:false" json:"isVerified"`
	Code          string    `json:"-"`
	CodeCreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	Cars          []Car     `json:"cars,omitempty" gorm:"foreignKey:DealerID"`
}
