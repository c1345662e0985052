package services

import (
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
)

// Action is something an actor wants to do to a resource.
type Action string

const (
	ActionManageTurf    Action = "turf:manage"
	ActionManageSlots   Action = "slot:manage"
	ActionReviewBooking Action = "booking:review"
	ActionViewBooking   Action = "booking:view"
	ActionPayBooking    Action = "booking:pay"
	ActionUseCart       Action = "cart:use"
	ActionAdminister    Action = "platform:admin"
)

// Resource carries the ownership facts a decision needs. OwnerID is the vendor
// owning the turf involved, UserID the customer who placed the cart or booking.
type Resource struct {
	OwnerID uint
	UserID  uint
}

func TurfResource(t *models.Turf) Resource {
	return Resource{OwnerID: t.OwnerID}
}

// BookingResource expects b.Cart.Turf to be loaded.
func BookingResource(b *models.Booking) Resource {
	return Resource{OwnerID: b.Cart.Turf.OwnerID, UserID: b.UserID}
}

var errForbidden = utils.ForbiddenError("Forbidden", nil)

// Authorize is the single access decision for every role-scoped operation.
// Admins may do anything; vendors act on turfs they own; customers act on
// their own carts and bookings.
func Authorize(actor *models.User, action Action, res Resource) error {
	if actor == nil || actor.ID == 0 {
		return utils.UnauthorizedError("Authentication required", nil)
	}
	if !actor.IsActive {
		return utils.ForbiddenError("Account is inactive", nil)
	}
	if actor.IsAdmin() {
		return nil
	}

	ownsTurf := res.OwnerID != 0 && res.OwnerID == actor.ID
	ownsBooking := res.UserID != 0 && res.UserID == actor.ID

	switch action {
	case ActionManageTurf, ActionManageSlots, ActionReviewBooking:
		if actor.IsVendor() && ownsTurf {
			return nil
		}
	case ActionViewBooking:
		if ownsBooking || (actor.IsVendor() && ownsTurf) {
			return nil
		}
	case ActionPayBooking, ActionUseCart:
		if ownsBooking {
			return nil
		}
	}
	return errForbidden
}
