package controllers

import (
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

type CreatePaymentOrderRequest struct {
	BookingID uint `json:"booking_id" binding:"required"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// CreatePaymentOrder opens a Razorpay order for one of the caller's bookings.
func CreatePaymentOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreatePaymentOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := svc.CreatePaymentOrder(c.Request.Context(), user, req.BookingID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payment order created", order)
}

// VerifyPayment checks the checkout signature and records the outcome.
func VerifyPayment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req VerifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := svc.VerifyPayment(c.Request.Context(), user, services.VerifyInput{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payment verified successfully", gin.H{
		"payment_id":          payment.ID,
		"booking_id":          payment.BookingID,
		"razorpay_payment_id": payment.RazorpayPaymentID,
		"status":              payment.Status,
	})
}
