package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Booking states. State is the single source of truth; Status and VendorStatus
// are projections of it and are never written on their own.
const (
	BookingStatePending         = "PENDING"
	BookingStateApproved        = "APPROVED"
	BookingStateRejected        = "REJECTED"
	BookingStateVendorCancelled = "VENDOR_CANCELLED"
	BookingStateAdminCancelled  = "ADMIN_CANCELLED"
)

// Customer facing status values
const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
)

// Vendor facing status values
const (
	VendorStatusPending   = "PENDING"
	VendorStatusApproved  = "APPROVED"
	VendorStatusRejected  = "REJECTED"
	VendorStatusCancelled = "CANCELLED"
)

// BookingAction is an event that moves a booking between states.
type BookingAction string

const (
	ActionApprove      BookingAction = "approve"
	ActionReject       BookingAction = "reject"
	ActionVendorCancel BookingAction = "vendor_cancel"
	ActionAdminCancel  BookingAction = "admin_cancel"
)

var ErrInvalidTransition = errors.New("invalid booking transition")

type projection struct {
	status       string
	vendorStatus string
}

var projections = map[string]projection{
	BookingStatePending:         {BookingStatusPending, VendorStatusPending},
	BookingStateApproved:        {BookingStatusConfirmed, VendorStatusApproved},
	BookingStateRejected:        {BookingStatusCancelled, VendorStatusRejected},
	BookingStateVendorCancelled: {BookingStatusCancelled, VendorStatusCancelled},
	BookingStateAdminCancelled:  {BookingStatusCancelled, VendorStatusCancelled},
}

// transitions lists the vendor actions allowed from each state. Approving an
// approved booking is a no-op; rejected and cancelled bookings have given up
// their slot and stay final. Admin cancel is accepted from every state and
// handled separately.
var transitions = map[string]map[BookingAction]string{
	BookingStatePending: {
		ActionApprove:      BookingStateApproved,
		ActionReject:       BookingStateRejected,
		ActionVendorCancel: BookingStateVendorCancelled,
	},
	BookingStateApproved: {
		ActionApprove:      BookingStateApproved,
		ActionReject:       BookingStateRejected,
		ActionVendorCancel: BookingStateVendorCancelled,
	},
}

// NextBookingState returns the state reached by applying action to from.
func NextBookingState(from string, action BookingAction) (string, error) {
	if action == ActionAdminCancel {
		return BookingStateAdminCancelled, nil
	}
	if to, ok := transitions[from][action]; ok {
		return to, nil
	}
	return "", ErrInvalidTransition
}

// ParseVendorAction maps the status text sent by the vendor panel
// ("Approved", "REJECTED", "cancelled"...) to an action.
func ParseVendorAction(text string) (BookingAction, bool) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "APPROVED", "APPROVE":
		return ActionApprove, true
	case "REJECTED", "REJECT":
		return ActionReject, true
	case "CANCELLED", "CANCELED", "CANCEL":
		return ActionVendorCancel, true
	}
	return "", false
}

// IsCancelledState reports whether the booking no longer holds its slot.
func IsCancelledState(state string) bool {
	return projections[state].status == BookingStatusCancelled
}

// Cart is a pending selection of turf, ground, slot and date. Confirmed carts
// are kept (CheckedOut) because bookings resolve their details through them.
type Cart struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"index;not null"`
	User       User      `json:"-" gorm:"foreignKey:UserID"`
	TurfID     uint      `json:"turf_id" gorm:"index;not null"`
	Turf       Turf      `json:"-" gorm:"foreignKey:TurfID"`
	GroundID   uint      `json:"ground_id" gorm:"not null"`
	Ground     Ground    `json:"-" gorm:"foreignKey:GroundID"`
	SlotID     uint      `json:"slot_id" gorm:"index;not null"`
	Slot       Slot      `json:"-" gorm:"foreignKey:SlotID"`
	Date       string    `json:"date" gorm:"index;not null"`
	CheckedOut bool      `json:"checked_out" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

type Booking struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	User         User      `json:"-" gorm:"foreignKey:UserID"`
	CartID       uint      `json:"cart_id" gorm:"index;not null"`
	Cart         Cart      `json:"-" gorm:"foreignKey:CartID"`
	State        string    `json:"-" gorm:"index;not null"`
	Status       string    `json:"status" gorm:"index"`
	VendorStatus string    `json:"vendor_status" gorm:"index"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate derives both status columns from State for new rows. Later
// changes go through Apply.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.State == "" {
		b.State = BookingStatePending
	}
	p, ok := projections[b.State]
	if !ok {
		return ErrInvalidTransition
	}
	b.Status = p.status
	b.VendorStatus = p.vendorStatus
	return nil
}

// Apply moves the booking to the state reached by action.
func (b *Booking) Apply(action BookingAction) error {
	to, err := NextBookingState(b.State, action)
	if err != nil {
		return err
	}
	b.State = to
	p := projections[to]
	b.Status = p.status
	b.VendorStatus = p.vendorStatus
	return nil
}
