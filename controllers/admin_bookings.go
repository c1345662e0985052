package controllers

import (
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

// AdminListBookings lists every booking.
func AdminListBookings(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	bookings, err := svc.ListBookings(c.Request.Context(), admin, services.AdminView)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Bookings retrieved successfully", results(bookings))
}

// AdminCancelBooking cancels a booking whatever state it is in.
func AdminCancelBooking(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	result, err := svc.AdminCancelBooking(c.Request.Context(), admin, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Booking cancelled", result)
}

// AdminListPayments lists every payment.
func AdminListPayments(c *gin.Context) {
	admin, ok := currentUser(c)
	if !ok {
		return
	}
	payments, err := svc.AdminPayments(c.Request.Context(), admin)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Payments retrieved successfully", results(payments))
}
