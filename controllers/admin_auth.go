package controllers

import (
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

type AdminLoginRequest struct {
	Username string `json:"username"`
	Mobile   string `json:"mobile"`
	Password string `json:"password" binding:"required"`
}

// AdminSendOTP issues a login code to an admin mobile.
func AdminSendOTP(c *gin.Context) {
	var req SendOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	issued, err := svc.SendOTP(c.Request.Context(), req.Mobile, models.OTPPurposeAdmin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "OTP sent successfully", issued)
}

// AdminVerifyOTP exchanges an admin code for a token.
func AdminVerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if !bindJSON(c, &req) {
		return
	}
	sess, err := svc.LoginWithOTP(c.Request.Context(), req.Mobile, req.OTP, models.OTPPurposeAdmin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Admin %d logged in with OTP", sess.User.ID)
	utils.Success(c, "Admin login successful", sess)
}

// AdminLogin authenticates an admin by password.
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}
	identifier := req.Username
	if identifier == "" {
		identifier = req.Mobile
	}
	sess, err := svc.AdminLogin(c.Request.Context(), identifier, req.Password)
	if err != nil {
		utils.LogError("Admin login failed for %q: %v", identifier, err)
		utils.RespondError(c, err)
		return
	}
	utils.LogInfo("Admin %d logged in", sess.User.ID)
	utils.Success(c, "Admin login successful", sess)
}
