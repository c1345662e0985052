package models

import (
	"time"
)

// PasswordHistory keeps earlier password hashes so a reset cannot reuse them.
type PasswordHistory struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Password  string    `json:"-" gorm:"not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}
