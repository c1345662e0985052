package services

import (
	"context"
	"time"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
)

// UserRow is one entry of the admin user listing.
type UserRow struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Mobile     string    `json:"mobile"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	DateJoined time.Time `json:"date_joined"`
}

// TurfRow is one entry of the admin turf listing.
type TurfRow struct {
	ID           uint             `json:"id"`
	Name         string           `json:"name"`
	Location     string           `json:"location"`
	Latitude     *float64         `json:"latitude"`
	Longitude    *float64         `json:"longitude"`
	PricePerHour int64            `json:"price_per_hour"`
	Owner        models.UserBrief `json:"owner"`
	IsApproved   bool             `json:"is_approved"`
}

// PaymentRow is one entry of the admin payment listing.
type PaymentRow struct {
	ID                uint             `json:"id"`
	BookingID         uint             `json:"booking_id"`
	User              models.UserBrief `json:"user"`
	RazorpayOrderID   string           `json:"razorpay_order_id"`
	RazorpayPaymentID string           `json:"razorpay_payment_id"`
	Amount            int64            `json:"amount"`
	Status            string           `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
}

type ActiveToggle struct {
	ID       uint `json:"id"`
	IsActive bool `json:"is_active"`
}

type TurfApproval struct {
	ID         uint   `json:"id"`
	IsApproved bool   `json:"is_approved"`
	Message    string `json:"message"`
}

func userRows(users []models.User) []UserRow {
	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, UserRow{
			ID:         u.ID,
			Username:   u.Username,
			FirstName:  u.FirstName,
			LastName:   u.LastName,
			Email:      u.Email,
			Mobile:     u.Mobile,
			Role:       u.Role,
			IsActive:   u.IsActive,
			DateJoined: u.CreatedAt,
		})
	}
	return rows
}

// ListUsers returns every account, newest first.
func (s *Services) ListUsers(ctx context.Context, actor *models.User) ([]UserRow, error) {
	if err := Authorize(actor, ActionAdminister, Resource{}); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.DB.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&users).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch users", err)
	}
	return userRows(users), nil
}

// ListVendors returns accounts holding the vendor role.
func (s *Services) ListVendors(ctx context.Context, actor *models.User) ([]UserRow, error) {
	if err := Authorize(actor, ActionAdminister, Resource{}); err != nil {
		return nil, err
	}
	var users []models.User
	if err := s.DB.WithContext(ctx).Where("role = ?", models.RoleVendor).
		Order("created_at desc").Find(&users).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch vendors", err)
	}
	return userRows(users), nil
}

// ToggleUserActive flips a user's is_active flag. Admins cannot deactivate
// themselves.
func (s *Services) ToggleUserActive(ctx context.Context, actor *models.User, userID uint) (*ActiveToggle, error) {
	if err := Authorize(actor, ActionAdminister, Resource{}); err != nil {
		return nil, err
	}
	if userID == actor.ID {
		return nil, utils.BadRequestError("Cannot change your own account status", nil)
	}

	db := s.DB.WithContext(ctx)
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	user.IsActive = !user.IsActive
	if err := db.Model(&user).Update("is_active", user.IsActive).Error; err != nil {
		return nil, utils.InternalError("Failed to update user", err)
	}
	utils.LogInfo("User %d is_active=%v set by admin %d", user.ID, user.IsActive, actor.ID)
	return &ActiveToggle{ID: user.ID, IsActive: user.IsActive}, nil
}

// AdminTurfs lists every turf with its owner, approved or not.
func (s *Services) AdminTurfs(ctx context.Context, actor *models.User) ([]TurfRow, error) {
	if err := Authorize(actor, ActionAdminister, Resource{}); err != nil {
		return nil, err
	}
	var turfs []models.Turf
	if err := s.DB.WithContext(ctx).Preload("Owner").Order("id desc").Find(&turfs).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch turfs", err)
	}
	rows := make([]TurfRow, 0, len(turfs))
	for _, t := range turfs {
		rows = append(rows, TurfRow{
			ID:           t.ID,
			Name:         t.Name,
			Location:     t.Location,
			Latitude:     t.Latitude,
			Longitude:    t.Longitude,
			PricePerHour: t.PricePerHour,
			Owner:        t.Owner.Brief(),
			IsApproved:   t.IsApproved,
		})
	}
	return rows, nil
}

// SetTurfApproval approves or rejects a turf listing.
func (s *Services) SetTurfApproval(ctx context.Context, actor *models.User, turfID uint, approved bool) (*TurfApproval, error) {
	if err := Authorize(actor, ActionAdminister, Resource{}); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	var turf models.Turf
	if err := db.First(&turf, turfID).Error; err != nil {
		return nil, notFoundOr(err, "Turf not found")
	}
	if err := db.Model(&turf).Update("is_approved", approved).Error; err != nil {
		return nil, utils.InternalError("Failed to update turf", err)
	}

	msg := "Turf rejected"
	if approved {
		msg = "Turf approved"
	}
	utils.LogInfo("Turf %d is_approved=%v set by admin %d", turf.ID, approved, actor.ID)
	return &TurfApproval{ID: turf.ID, IsApproved: approved, Message: msg}, nil
}

// AdminPayments lists every payment with its payer.
func (s *Services) AdminPayments(ctx context.Context, actor *models.User) ([]PaymentRow, error) {
	if err := Authorize(actor, ActionAdminister, Resource{}); err != nil {
		return nil, err
	}
	payments, err := s.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]PaymentRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, PaymentRow{
			ID:                p.ID,
			BookingID:         p.BookingID,
			User:              p.User.Brief(),
			RazorpayOrderID:   p.RazorpayOrderID,
			RazorpayPaymentID: p.RazorpayPaymentID,
			Amount:            p.Amount,
			Status:            p.Status,
			CreatedAt:         p.CreatedAt,
		})
	}
	return rows, nil
}
