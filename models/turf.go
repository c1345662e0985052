package models

import (
	"time"
)

// Turf is a bookable venue owned by a vendor. PricePerHour is stored in paise.
type Turf struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Location     string    `json:"location" gorm:"index"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	PricePerHour int64     `json:"price_per_hour" gorm:"not null"`
	OwnerID      uint      `json:"owner_id" gorm:"index;not null"`
	Owner        User      `json:"-" gorm:"foreignKey:OwnerID"`
	IsApproved   bool      `json:"is_approved" gorm:"default:false"`
	Grounds      []Ground  `json:"grounds,omitempty" gorm:"foreignKey:TurfID"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Ground is a pitch inside a turf.
type Ground struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	Name   string `json:"name" gorm:"not null"`
	TurfID uint   `json:"turf_id" gorm:"index;not null"`
	Turf   Turf   `json:"-" gorm:"foreignKey:TurfID"`
	Slots  []Slot `json:"slots,omitempty" gorm:"foreignKey:GroundID"`
}

// Slot is one interval of bookable capacity on a ground. Times are "HH:MM".
// Version is bumped on every reservation change and guards concurrent writers.
type Slot struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	GroundID  uint   `json:"ground_id" gorm:"index;not null"`
	Ground    Ground `json:"-" gorm:"foreignKey:GroundID"`
	StartTime string `json:"start_time" gorm:"not null"`
	EndTime   string `json:"end_time" gorm:"not null"`
	IsBooked  bool   `json:"is_booked" gorm:"default:false;index"`
	Version   int64  `json:"-" gorm:"not null;default:0"`
}
