package controllers

import (
	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

type AddToCartRequest struct {
	TurfID   uint   `json:"turf_id"`
	GroundID uint   `json:"ground_id"`
	SlotID   uint   `json:"slot_id"`
	Date     string `json:"date" binding:"omitempty,isodate"`
}

type ConfirmBookingRequest struct {
	CartID uint `json:"cart_id" binding:"required"`
}

// AddToCart stores the customer's slot selection.
func AddToCart(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := svc.AddToCart(c.Request.Context(), user, services.CartInput{
		TurfID:   req.TurfID,
		GroundID: req.GroundID,
		SlotID:   req.SlotID,
		Date:     req.Date,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Added to cart", cart)
}

// ConfirmBooking turns a cart entry into a pending booking.
func ConfirmBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req ConfirmBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	booking, err := svc.ConfirmBooking(c.Request.Context(), user, req.CartID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Booking placed", services.NewBookingView(booking))
}

// MyBookings lists the caller's own bookings.
func MyBookings(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	bookings, err := svc.ListBookings(c.Request.Context(), user, services.CustomerView)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Bookings retrieved successfully", results(bookings))
}

// GetMyBooking returns a single booking of the caller.
func GetMyBooking(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	booking, err := svc.GetBooking(c.Request.Context(), user, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Booking retrieved successfully", services.NewBookingView(booking))
}
