package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Govind-619/TurfSphere/events"
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	razorpay "github.com/razorpay/razorpay-go"
	"gorm.io/gorm"
)

// PaymentGateway creates orders at the payment provider.
type PaymentGateway interface {
	CreateOrder(amountPaise int64, receipt string) (orderID string, err error)
}

// RazorpayGateway creates INR orders through the Razorpay API.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(key, secret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(key, secret)}
}

func (g *RazorpayGateway) CreateOrder(amountPaise int64, receipt string) (string, error) {
	order, err := g.client.Order.Create(map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	}, nil)
	if err != nil {
		return "", err
	}
	id, ok := order["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay response carries no order id")
	}
	return id, nil
}

// PaymentOrder is what the checkout widget needs to open.
type PaymentOrder struct {
	PaymentID       uint    `json:"payment_id"`
	BookingID       uint    `json:"booking_id"`
	RazorpayOrderID string  `json:"razorpay_order_id"`
	Amount          int64   `json:"amount"`
	AmountRupees    float64 `json:"amount_rupees"`
	Currency        string  `json:"currency"`
	Key             string  `json:"key"`
}

// VerifyInput is the callback payload from the checkout widget.
type VerifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Signature returns the expected checkout signature for an order and payment.
func Signature(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// CreatePaymentOrder opens (or reuses) a pending payment for a booking. The
// amount is the turf's hourly price.
func (s *Services) CreatePaymentOrder(ctx context.Context, actor *models.User, bookingID uint) (*PaymentOrder, error) {
	if bookingID == 0 {
		return nil, utils.BadRequestError("booking_id is required", nil)
	}
	if s.Gateway == nil {
		return nil, utils.ServiceUnavailableError("Payments are not configured", nil)
	}

	db := s.DB.WithContext(ctx)
	var booking models.Booking
	if err := preloadBooking(db).First(&booking, bookingID).Error; err != nil {
		return nil, notFoundOr(err, "Booking not found")
	}
	if err := Authorize(actor, ActionPayBooking, BookingResource(&booking)); err != nil {
		return nil, utils.NotFoundError("Booking not found", nil)
	}
	if booking.Status == models.BookingStatusCancelled {
		return nil, utils.BadRequestError("Booking is cancelled", nil)
	}

	var paid int64
	if err := db.Model(&models.Payment{}).
		Where("booking_id = ? AND status = ?", booking.ID, models.PaymentStatusSuccess).
		Count(&paid).Error; err != nil {
		return nil, utils.InternalError("Failed to check payments", err)
	}
	if paid > 0 {
		return nil, utils.ConflictError("Booking is already paid", nil)
	}

	var payment models.Payment
	err := db.Where("booking_id = ? AND status = ?", booking.ID, models.PaymentStatusPending).
		Order("id desc").First(&payment).Error
	switch {
	case err == nil:
		utils.LogInfo("Reusing pending payment %d for booking %d", payment.ID, booking.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		amount := booking.Cart.Turf.PricePerHour
		orderID, err := s.Gateway.CreateOrder(amount, fmt.Sprintf("booking_rcpt_%d", booking.ID))
		if err != nil {
			utils.LogError("Failed to create Razorpay order for booking %d: %v", booking.ID, err)
			return nil, utils.NewAppError(502, "Failed to create payment order", err)
		}
		payment = models.Payment{
			UserID:          booking.UserID,
			BookingID:       booking.ID,
			RazorpayOrderID: orderID,
			Amount:          amount,
			Status:          models.PaymentStatusPending,
		}
		if err := db.Create(&payment).Error; err != nil {
			return nil, utils.InternalError("Failed to record payment", err)
		}
		utils.LogInfo("Created payment %d (order %s) for booking %d", payment.ID, orderID, booking.ID)
	default:
		return nil, utils.InternalError("Failed to fetch payment", err)
	}

	return &PaymentOrder{
		PaymentID:       payment.ID,
		BookingID:       booking.ID,
		RazorpayOrderID: payment.RazorpayOrderID,
		Amount:          payment.Amount,
		AmountRupees:    utils.PaiseToRupees(payment.Amount),
		Currency:        "INR",
		Key:             s.RazorpayKey,
	}, nil
}

// VerifyPayment checks the checkout signature and settles the payment as
// SUCCESS or FAILED.
func (s *Services) VerifyPayment(ctx context.Context, actor *models.User, in VerifyInput) (*models.Payment, error) {
	if in.RazorpayOrderID == "" || in.RazorpayPaymentID == "" || in.RazorpaySignature == "" {
		return nil, utils.BadRequestError("razorpay_order_id, razorpay_payment_id and razorpay_signature are required", nil)
	}

	db := s.DB.WithContext(ctx)
	var payment models.Payment
	if err := db.Where("razorpay_order_id = ?", in.RazorpayOrderID).First(&payment).Error; err != nil {
		return nil, notFoundOr(err, "Payment not found")
	}
	if err := Authorize(actor, ActionPayBooking, Resource{UserID: payment.UserID}); err != nil {
		return nil, utils.NotFoundError("Payment not found", nil)
	}
	if payment.Status == models.PaymentStatusSuccess {
		return &payment, nil
	}

	expected := Signature(s.RazorpaySecret, in.RazorpayOrderID, in.RazorpayPaymentID)
	ok := hmac.Equal([]byte(expected), []byte(in.RazorpaySignature))

	status, key := models.PaymentStatusSuccess, events.PaymentSucceeded
	if !ok {
		status, key = models.PaymentStatusFailed, events.PaymentFailed
	}
	if err := db.Model(&payment).Updates(map[string]interface{}{
		"status":              status,
		"razorpay_payment_id": in.RazorpayPaymentID,
	}).Error; err != nil {
		return nil, utils.InternalError("Failed to update payment", err)
	}
	payment.Status = status
	payment.RazorpayPaymentID = in.RazorpayPaymentID

	if err := s.Events.Publish(ctx, key, events.PaymentEvent{
		PaymentID:  payment.ID,
		BookingID:  payment.BookingID,
		UserID:     payment.UserID,
		Amount:     payment.Amount,
		Status:     status,
		OccurredAt: s.Now(),
	}); err != nil {
		utils.LogError("Failed to publish %s for payment %d: %v", key, payment.ID, err)
	}

	if !ok {
		utils.LogError("Signature mismatch for payment %d (order %s)", payment.ID, in.RazorpayOrderID)
		return nil, utils.BadRequestError("Payment verification failed", nil)
	}
	utils.LogInfo("Payment %d for booking %d verified", payment.ID, payment.BookingID)
	return &payment, nil
}

// ListPayments returns every payment for the admin panel, newest first.
func (s *Services) ListPayments(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := s.DB.WithContext(ctx).Preload("User").
		Order("created_at desc").Order("id desc").Find(&payments).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch payments", err)
	}
	return payments, nil
}
