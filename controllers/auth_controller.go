package controllers

import (
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionVerifiedMobile = "verified_mobile"

type SendOTPRequest struct {
	Mobile  string `json:"mobile" binding:"required"`
	Purpose string `json:"purpose"`
}

type VerifyOTPRequest struct {
	Mobile  string `json:"mobile" binding:"required"`
	OTP     string `json:"otp" binding:"required"`
	Purpose string `json:"purpose"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Mobile   string `json:"mobile"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Mobile      string `json:"mobile" binding:"required"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// SendOTP issues a verification code for signup, login or password reset.
func SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Purpose == models.OTPPurposeAdmin {
		utils.BadRequest(c, "Use the admin OTP endpoint", nil)
		return
	}

	issued, err := svc.SendOTP(c.Request.Context(), req.Mobile, req.Purpose)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "OTP sent successfully", issued)
}

// VerifyOTP checks a code. A verified signup code is remembered in the
// session; a login code signs the user in.
func VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Purpose == models.OTPPurposeAdmin {
		utils.BadRequest(c, "Use the admin OTP endpoint", nil)
		return
	}

	if req.Purpose == models.OTPPurposeLogin {
		sess, err := svc.LoginWithOTP(c.Request.Context(), req.Mobile, req.OTP, req.Purpose)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.Success(c, "Login successful", sess)
		return
	}

	otp, err := svc.VerifyOTP(c.Request.Context(), req.Mobile, req.OTP, req.Purpose)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set(sessionVerifiedMobile, otp.Mobile)
	if err := session.Save(); err != nil {
		utils.LogError("Failed to save session for %s: %v", otp.Mobile, err)
	}
	utils.Success(c, "OTP verified", gin.H{"mobile": otp.Mobile, "purpose": otp.Purpose})
}

// Signup registers a customer or vendor whose mobile passed OTP verification.
// The mobile may be omitted when the session already carries a verified one.
func Signup(c *gin.Context) {
	var req services.SignupInput
	if !bindJSON(c, &req) {
		return
	}
	if req.Mobile == "" {
		if mobile, ok := sessions.Default(c).Get(sessionVerifiedMobile).(string); ok {
			req.Mobile = mobile
		}
	}

	sess, err := svc.Signup(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Delete(sessionVerifiedMobile)
	_ = session.Save()

	utils.Created(c, "Account created successfully", sess)
}

// Login authenticates with username or mobile plus password.
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	identifier := req.Username
	if identifier == "" {
		identifier = req.Mobile
	}

	sess, err := svc.Login(c.Request.Context(), identifier, req.Password)
	if err != nil {
		utils.LogError("Login attempt failed for %q: %v", identifier, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("User %d logged in", sess.User.ID)
	utils.Success(c, "Login successful", sess)
}

// ResetPassword sets a new password after a reset OTP.
func ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := svc.ResetPassword(c.Request.Context(), req.Mobile, req.OTP, req.NewPassword); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Password reset successfully", nil)
}

// Logout revokes the bearer token and clears the session.
func Logout(c *gin.Context) {
	token := c.GetString("token")
	if err := svc.RevokeToken(c.Request.Context(), token); err != nil {
		utils.RespondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()

	utils.Success(c, "Logged out successfully", nil)
}

// Home returns the signed-in user's landing summary.
func Home(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := svc.Home(c.Request.Context(), user)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Welcome back", summary)
}
