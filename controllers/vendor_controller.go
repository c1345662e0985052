package controllers

import (
	"strconv"

	"github.com/Govind-619/TurfSphere/services"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/gin-gonic/gin"
)

type AddGroundRequest struct {
	TurfID uint   `json:"turf_id" binding:"required"`
	Name   string `json:"name"`
}

type VendorUpdateBookingRequest struct {
	// BookingID arrives as a number or as display text such as "#BK101".
	BookingID interface{} `json:"bookingId"`
	Status    string      `json:"status"`
}

type CreateSlotsRequest struct {
	GroundID uint                 `json:"ground_id"`
	Slots    []services.SlotEntry `json:"slots"`
}

// VendorDashboard returns the vendor's headline stats.
func VendorDashboard(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	dash, err := svc.VendorDashboard(c.Request.Context(), vendor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Dashboard retrieved successfully", dash)
}

// VendorListTurfs lists the vendor's turfs with their grounds.
func VendorListTurfs(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	turfs, err := svc.VendorTurfs(c.Request.Context(), vendor)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Turfs retrieved successfully", results(turfs))
}

// VendorCreateTurf lists a new turf pending admin approval.
func VendorCreateTurf(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	var req services.TurfInput
	if !bindJSON(c, &req) {
		return
	}
	turf, err := svc.CreateTurf(c.Request.Context(), vendor, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Turf submitted for approval", turf)
}

// VendorAddGround adds a ground to an owned turf.
func VendorAddGround(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	var req AddGroundRequest
	if !bindJSON(c, &req) {
		return
	}
	ground, err := svc.AddGround(c.Request.Context(), vendor, req.TurfID, req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Ground created", ground)
}

// VendorListBookings lists bookings on the vendor's turfs.
func VendorListBookings(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	bookings, err := svc.ListBookings(c.Request.Context(), vendor, services.VendorView)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Bookings retrieved successfully", results(bookings))
}

// VendorUpdateBooking approves, rejects or cancels a booking.
func VendorUpdateBooking(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	var req VendorUpdateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	id, ok := utils.ParseLooseID(req.BookingID)
	if !ok {
		utils.BadRequest(c, "bookingId and status required", nil)
		return
	}
	if req.Status == "" {
		utils.BadRequest(c, "bookingId and status required", nil)
		return
	}

	result, err := svc.VendorUpdateBooking(c.Request.Context(), vendor, id, req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Booking updated", result)
}

// VendorListSlots lists the slots of an owned ground given by ?ground_id=.
func VendorListSlots(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	groundID, _ := strconv.ParseUint(c.Query("ground_id"), 10, 64)
	slots, err := svc.VendorSlots(c.Request.Context(), vendor, uint(groundID))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, "Slots retrieved successfully", results(slots))
}

// VendorCreateSlots stores a batch of slots, skipping malformed entries.
func VendorCreateSlots(c *gin.Context) {
	vendor, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateSlotsRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := svc.CreateSlots(c.Request.Context(), vendor, req.GroundID, req.Slots)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, "Slots created", result)
}

// VendorListDiscounts has nothing to list until discounts exist.
func VendorListDiscounts(c *gin.Context) {
	utils.Success(c, "Discounts retrieved successfully", results([]interface{}{}))
}

// VendorCreateDiscount accepts and drops the discount.
func VendorCreateDiscount(c *gin.Context) {
	utils.Success(c, "Discount saved", gin.H{"success": true})
}
