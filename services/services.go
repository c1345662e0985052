// Package services holds the booking marketplace rules: catalog reads, the
// cart and booking lifecycle, payment linkage, access policy and dashboards.
// Handlers in controllers only parse requests and render what these return.
package services

import (
	"errors"
	"time"

	"github.com/Govind-619/TurfSphere/events"
	"github.com/Govind-619/TurfSphere/utils"
	"gorm.io/gorm"
)

// Services bundles the collaborators every operation needs.
type Services struct {
	DB      *gorm.DB
	Events  events.Publisher
	Gateway PaymentGateway
	Mailer  *utils.Mailer
	OTP     OTPSender

	// Loc is the zone calendar dates are computed in.
	Loc *time.Location
	Now func() time.Time

	JWTSecret      string
	JWTTTL         time.Duration
	OTPTTL         time.Duration
	Region         string
	RazorpayKey    string
	RazorpaySecret string
	ExposeOTP      bool
}

// New returns Services with defaults for anything left unset.
func New(db *gorm.DB) *Services {
	return &Services{
		DB:      db,
		Events:  events.Nop{},
		Gateway: nil,
		Mailer:  &utils.Mailer{},
		OTP:     LogOTPSender{},
		Loc:     time.Local,
		Now:     time.Now,
		JWTTTL:  24 * time.Hour,
		OTPTTL:  10 * time.Minute,
		Region:  "IN",
	}
}

// today returns the current calendar date and the instant it starts.
func (s *Services) today() (string, time.Time) {
	now := s.Now().In(s.Loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.Loc)
	return start.Format(utils.DateLayout), start
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFoundError(message, nil)
	}
	return utils.InternalError("Database error", err)
}
