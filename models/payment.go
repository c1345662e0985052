package models

import (
	"time"
)

// Payment status values
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusSuccess = "SUCCESS"
	PaymentStatusFailed  = "FAILED"
)

// Payment links a booking to a Razorpay order. Amount is in paise.
type Payment struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	User              User      `json:"-" gorm:"foreignKey:UserID"`
	BookingID         uint      `json:"booking_id" gorm:"index;not null"`
	Booking           Booking   `json:"-" gorm:"foreignKey:BookingID"`
	RazorpayOrderID   string    `json:"razorpay_order_id" gorm:"index"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	Amount            int64     `json:"amount"`
	Status            string    `json:"status" gorm:"index;not null;default:PENDING"`
	CreatedAt         time.Time `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time `json:"updated_at"`
}
