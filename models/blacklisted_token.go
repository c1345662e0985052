package models

import (
	"time"

	"gorm.io/gorm"
)

// BlacklistedToken holds JWTs revoked on logout until they would have expired.
type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
