package models

import (
	"time"
)

// OTP purposes
const (
	OTPPurposeSignup = "signup"
	OTPPurposeLogin  = "login"
	OTPPurposeReset  = "reset"
	OTPPurposeAdmin  = "admin"
)

// OTP is a short-lived verification code bound to a mobile number.
type OTP struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Mobile     string    `json:"mobile" gorm:"index;not null"`
	Code       string    `json:"-" gorm:"not null"`
	Purpose    string    `json:"purpose" gorm:"index;not null;default:signup"`
	IsVerified bool      `json:"is_verified" gorm:"default:false"`
	ExpiresAt  time.Time `json:"expires_at" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
}

func (o *OTP) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
