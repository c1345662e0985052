package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"gorm.io/gorm"
)

// OTPSender delivers a verification code to its owner.
type OTPSender interface {
	SendOTP(ctx context.Context, mobile, email, code string) error
}

// LogOTPSender writes codes to the debug log. It stands in for an SMS
// provider in development.
type LogOTPSender struct{}

func (LogOTPSender) SendOTP(_ context.Context, mobile, _ string, code string) error {
	utils.LogDebug("OTP for %s: %s", mobile, code)
	return nil
}

// MailOTPSender mails codes to users with an email address and logs the rest.
type MailOTPSender struct {
	Mailer *utils.Mailer
}

func (m MailOTPSender) SendOTP(ctx context.Context, mobile, email, code string) error {
	if email == "" || !m.Mailer.Enabled() {
		return LogOTPSender{}.SendOTP(ctx, mobile, email, code)
	}
	return m.Mailer.SendOTP(email, code)
}

// OTPIssued confirms an OTP went out. Code is only filled outside production.
type OTPIssued struct {
	Mobile    string    `json:"mobile"`
	Purpose   string    `json:"purpose"`
	ExpiresAt time.Time `json:"expires_at"`
	Code      string    `json:"otp,omitempty"`
}

type SignupInput struct {
	Mobile    string `json:"mobile"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// Session is a logged-in user with their bearer token.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

const passwordHistoryDepth = 3

var validPurposes = map[string]bool{
	models.OTPPurposeSignup: true,
	models.OTPPurposeLogin:  true,
	models.OTPPurposeReset:  true,
	models.OTPPurposeAdmin:  true,
}

func (s *Services) normalizeMobile(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", utils.BadRequestError("mobile is required", nil)
	}
	mobile := utils.NormalizeMobile(raw, s.Region)
	if mobile == "" {
		return "", utils.BadRequestError("Invalid mobile number", nil)
	}
	return mobile, nil
}

func (s *Services) userByMobile(db *gorm.DB, mobile string) (*models.User, error) {
	var user models.User
	if err := db.Where("mobile = ?", mobile).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SendOTP issues a fresh code for mobile, replacing any earlier unverified
// code for the same purpose.
func (s *Services) SendOTP(ctx context.Context, rawMobile, purpose string) (*OTPIssued, error) {
	mobile, err := s.normalizeMobile(rawMobile)
	if err != nil {
		return nil, err
	}
	if purpose == "" {
		purpose = models.OTPPurposeSignup
	}
	if !validPurposes[purpose] {
		return nil, utils.BadRequestError("Unknown OTP purpose", nil)
	}

	db := s.DB.WithContext(ctx)
	user, err := s.userByMobile(db, mobile)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.InternalError("Failed to look up user", err)
	}
	switch purpose {
	case models.OTPPurposeSignup:
		if user != nil {
			return nil, utils.ConflictError("Mobile number already registered", nil)
		}
	case models.OTPPurposeAdmin:
		if user == nil || !user.IsAdmin() {
			return nil, utils.ForbiddenError("Not an admin account", nil)
		}
	default:
		if user == nil {
			return nil, utils.NotFoundError("User not found", nil)
		}
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return nil, utils.InternalError("Failed to generate OTP", err)
	}
	otp := models.OTP{
		Mobile:    mobile,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: s.Now().Add(s.OTPTTL),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mobile = ? AND purpose = ? AND is_verified = ?", mobile, purpose, false).
			Delete(&models.OTP{}).Error; err != nil {
			return err
		}
		return tx.Create(&otp).Error
	})
	if err != nil {
		return nil, utils.InternalError("Failed to store OTP", err)
	}

	email := ""
	if user != nil {
		email = user.Email
	}
	if err := s.OTP.SendOTP(ctx, mobile, email, code); err != nil {
		utils.LogError("Failed to deliver OTP to %s: %v", mobile, err)
		return nil, utils.ServiceUnavailableError("Failed to send OTP", err)
	}

	issued := &OTPIssued{Mobile: mobile, Purpose: purpose, ExpiresAt: otp.ExpiresAt}
	if s.ExposeOTP {
		issued.Code = code
	}
	utils.LogInfo("OTP issued for %s (%s)", mobile, purpose)
	return issued, nil
}

// VerifyOTP checks code against the latest OTP for mobile and purpose and
// marks it verified.
func (s *Services) VerifyOTP(ctx context.Context, rawMobile, code, purpose string) (*models.OTP, error) {
	mobile, err := s.normalizeMobile(rawMobile)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(code) == "" {
		return nil, utils.BadRequestError("otp is required", nil)
	}
	if purpose == "" {
		purpose = models.OTPPurposeSignup
	}

	db := s.DB.WithContext(ctx)
	var otp models.OTP
	if err := db.Where("mobile = ? AND purpose = ?", mobile, purpose).
		Order("id desc").First(&otp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.BadRequestError("No OTP requested for this number", nil)
		}
		return nil, utils.InternalError("Failed to fetch OTP", err)
	}
	if otp.Expired(s.Now()) {
		return nil, utils.BadRequestError("OTP has expired", nil)
	}
	if subtle.ConstantTimeCompare([]byte(otp.Code), []byte(strings.TrimSpace(code))) != 1 {
		return nil, utils.BadRequestError("Invalid OTP", nil)
	}

	if err := db.Model(&otp).Update("is_verified", true).Error; err != nil {
		return nil, utils.InternalError("Failed to verify OTP", err)
	}
	otp.IsVerified = true
	return &otp, nil
}

// LoginWithOTP verifies a login or admin OTP and opens a session. The code is
// consumed, so it opens at most one session.
func (s *Services) LoginWithOTP(ctx context.Context, rawMobile, code, purpose string) (*Session, error) {
	otp, err := s.VerifyOTP(ctx, rawMobile, code, purpose)
	if err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	res := db.Where("id = ?", otp.ID).Delete(&models.OTP{})
	if res.Error != nil {
		return nil, utils.InternalError("Failed to consume OTP", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, utils.BadRequestError("OTP has already been used", nil)
	}

	user, err := s.userByMobile(db, otp.Mobile)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if purpose == models.OTPPurposeAdmin && !user.IsAdmin() {
		return nil, utils.ForbiddenError("Not an admin account", nil)
	}
	return s.openSession(ctx, user)
}

// Signup creates an account for a mobile number that passed signup OTP
// verification. The verified OTP is consumed.
func (s *Services) Signup(ctx context.Context, in SignupInput) (*Session, error) {
	mobile, err := s.normalizeMobile(in.Mobile)
	if err != nil {
		return nil, err
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Role == "" {
		in.Role = models.RoleCustomer
	}
	switch {
	case !utils.ValidateUsername(in.Username):
		return nil, utils.BadRequestError("username must be 3-30 letters, digits or underscores", nil)
	case !utils.ValidatePassword(in.Password):
		return nil, utils.BadRequestError("password must be at least 8 characters with a letter and a digit", nil)
	case in.Role != models.RoleCustomer && in.Role != models.RoleVendor:
		return nil, utils.BadRequestError("role must be customer or vendor", nil)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, utils.InternalError("Failed to hash password", err)
	}

	user := models.User{
		Username:  in.Username,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Mobile:    mobile,
		Password:  hash,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      in.Role,
		IsActive:  true,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var otp models.OTP
		err := tx.Where("mobile = ? AND purpose = ? AND is_verified = ?", mobile, models.OTPPurposeSignup, true).
			Order("id desc").First(&otp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.BadRequestError("Mobile number not verified", nil)
		}
		if err != nil {
			return utils.InternalError("Failed to check verification", err)
		}

		var taken int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR mobile = ?", user.Username, user.Mobile).
			Count(&taken).Error; err != nil {
			return utils.InternalError("Failed to check user", err)
		}
		if taken > 0 {
			return utils.ConflictError("Username or mobile already registered", nil)
		}

		if err := tx.Create(&user).Error; err != nil {
			return utils.InternalError("Failed to create user", err)
		}
		return tx.Where("mobile = ? AND purpose = ?", mobile, models.OTPPurposeSignup).Delete(&models.OTP{}).Error
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("User %d signed up as %s", user.ID, user.Role)
	return s.openSession(ctx, &user)
}

// Login authenticates by username or mobile and password.
func (s *Services) Login(ctx context.Context, identifier, password string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, utils.BadRequestError("username and password are required", nil)
	}

	db := s.DB.WithContext(ctx)
	q := db.Where("username = ?", identifier)
	if mobile := utils.NormalizeMobile(identifier, s.Region); mobile != "" {
		q = db.Where("username = ? OR mobile = ?", identifier, mobile)
	}
	var user models.User
	if err := q.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.UnauthorizedError("Invalid credentials", nil)
		}
		return nil, utils.InternalError("Failed to look up user", err)
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, utils.UnauthorizedError("Invalid credentials", nil)
	}
	return s.openSession(ctx, &user)
}

// AdminLogin is Login restricted to admin accounts.
func (s *Services) AdminLogin(ctx context.Context, identifier, password string) (*Session, error) {
	sess, err := s.Login(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if !sess.User.IsAdmin() {
		return nil, utils.ForbiddenError("Not an admin account", nil)
	}
	return sess, nil
}

// ResetPassword replaces the password after a reset OTP check. The current
// password and the last few are refused.
func (s *Services) ResetPassword(ctx context.Context, rawMobile, code, newPassword string) error {
	if !utils.ValidatePassword(newPassword) {
		return utils.BadRequestError("password must be at least 8 characters with a letter and a digit", nil)
	}
	otp, err := s.VerifyOTP(ctx, rawMobile, code, models.OTPPurposeReset)
	if err != nil {
		return err
	}

	db := s.DB.WithContext(ctx)
	user, err := s.userByMobile(db, otp.Mobile)
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	if utils.CheckPassword(newPassword, user.Password) {
		return utils.BadRequestError("New password cannot be the same as current password", nil)
	}
	var history []models.PasswordHistory
	if err := db.Where("user_id = ?", user.ID).Order("id desc").Limit(passwordHistoryDepth).Find(&history).Error; err != nil {
		return utils.InternalError("Failed to check password history", err)
	}
	for _, h := range history {
		if utils.CheckPassword(newPassword, h.Password) {
			return utils.BadRequestError("This password has been used recently. Please choose a different password", nil)
		}
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return utils.InternalError("Failed to hash password", err)
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.PasswordHistory{UserID: user.ID, Password: user.Password}).Error; err != nil {
			return err
		}
		if err := tx.Model(user).Update("password", hash).Error; err != nil {
			return err
		}
		return tx.Delete(otp).Error
	})
	if err != nil {
		return utils.InternalError("Failed to update password", err)
	}
	utils.LogInfo("Password reset for user %d", user.ID)
	return nil
}

func (s *Services) openSession(ctx context.Context, user *models.User) (*Session, error) {
	if !user.IsActive {
		return nil, utils.ForbiddenError("Account is inactive", nil)
	}
	token, err := utils.GenerateToken(user, s.JWTSecret, s.JWTTTL)
	if err != nil {
		return nil, utils.InternalError("Failed to generate token", err)
	}
	user.LastLoginAt = s.Now()
	if err := s.DB.WithContext(ctx).Model(user).UpdateColumn("last_login_at", user.LastLoginAt).Error; err != nil {
		utils.LogError("Failed to record login for user %d: %v", user.ID, err)
	}
	return &Session{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *Services) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := utils.ParseToken(token, s.JWTSecret)
	if err != nil {
		return nil, utils.UnauthorizedError("Please login for access", err)
	}

	db := s.DB.WithContext(ctx)
	var revoked int64
	if err := db.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&revoked).Error; err != nil {
		return nil, utils.InternalError("Failed to check token", err)
	}
	if revoked > 0 {
		return nil, utils.UnauthorizedError("Token has been revoked", nil)
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.UnauthorizedError("User not found", nil)
		}
		return nil, utils.InternalError("Failed to load user", err)
	}
	if !user.IsActive {
		return nil, utils.ForbiddenError("Account is inactive", nil)
	}
	return &user, nil
}

// RevokeToken blacklists token until it would have expired anyway.
func (s *Services) RevokeToken(ctx context.Context, token string) error {
	claims, err := utils.ParseToken(token, s.JWTSecret)
	if err != nil {
		return utils.UnauthorizedError("Invalid token", err)
	}
	entry := models.BlacklistedToken{Token: token, ExpiresAt: claims.ExpiresAt}
	if err := s.DB.WithContext(ctx).Where(models.BlacklistedToken{Token: token}).
		FirstOrCreate(&entry).Error; err != nil {
		return utils.InternalError("Failed to revoke token", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap admin account when none exists for mobile.
func (s *Services) EnsureAdmin(ctx context.Context, rawMobile, password string) error {
	if rawMobile == "" || password == "" {
		return nil
	}
	mobile, err := s.normalizeMobile(rawMobile)
	if err != nil {
		return err
	}
	db := s.DB.WithContext(ctx)
	if _, err := s.userByMobile(db, mobile); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: "admin",
		Mobile:   mobile,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Bootstrap admin created for %s", mobile)
	return nil
}
