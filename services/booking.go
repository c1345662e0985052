package services

import (
	"context"
	"fmt"

	"github.com/Govind-619/TurfSphere/events"
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"gorm.io/gorm"
)

// CartInput is a customer's slot selection.
type CartInput struct {
	TurfID   uint   `json:"turf_id"`
	GroundID uint   `json:"ground_id"`
	SlotID   uint   `json:"slot_id"`
	Date     string `json:"date"`
}

// View selects which projection of the booking table a caller sees.
type View int

const (
	CustomerView View = iota
	VendorView
	AdminView
)

// BookingView is the booking shape returned by every listing.
type BookingView struct {
	ID           uint             `json:"id"`
	Status       string           `json:"status"`
	VendorStatus string           `json:"vendor_status"`
	CreatedAt    string           `json:"created_at"`
	User         models.UserBrief `json:"user"`
	Turf         NamedRef         `json:"turf"`
	Ground       NamedRef         `json:"ground"`
	Date         string           `json:"date"`
	Slot         SlotRef          `json:"slot"`
	AmountPaise  int64            `json:"amount_paise"`
}

type NamedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type SlotRef struct {
	ID        uint   `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// TransitionResult echoes the booking after a status change.
type TransitionResult struct {
	ID           uint   `json:"id"`
	Status       string `json:"status"`
	VendorStatus string `json:"vendor_status"`
}

func NewBookingView(b *models.Booking) BookingView {
	return BookingView{
		ID:           b.ID,
		Status:       b.Status,
		VendorStatus: b.VendorStatus,
		CreatedAt:    b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		User:         b.User.Brief(),
		Turf:         NamedRef{ID: b.Cart.TurfID, Name: b.Cart.Turf.Name},
		Ground:       NamedRef{ID: b.Cart.GroundID, Name: b.Cart.Ground.Name},
		Date:         b.Cart.Date,
		Slot:         SlotRef{ID: b.Cart.SlotID, StartTime: b.Cart.Slot.StartTime, EndTime: b.Cart.Slot.EndTime},
		AmountPaise:  b.Cart.Turf.PricePerHour,
	}
}

func preloadBooking(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("Cart.Turf").
		Preload("Cart.Ground").
		Preload("Cart.Slot")
}

// AddToCart validates a selection and stores it as a cart entry.
func (s *Services) AddToCart(ctx context.Context, actor *models.User, in CartInput) (*models.Cart, error) {
	switch {
	case in.TurfID == 0:
		return nil, utils.BadRequestError("turf_id is required", nil)
	case in.GroundID == 0:
		return nil, utils.BadRequestError("ground_id is required", nil)
	case in.SlotID == 0:
		return nil, utils.BadRequestError("slot_id is required", nil)
	case in.Date == "":
		return nil, utils.BadRequestError("date is required", nil)
	}
	day, err := utils.ParseDate(in.Date)
	if err != nil {
		return nil, utils.BadRequestError("date must be YYYY-MM-DD", err)
	}
	if today, _ := s.today(); day.Format(utils.DateLayout) < today {
		return nil, utils.BadRequestError("date is in the past", nil)
	}

	db := s.DB.WithContext(ctx)

	var turf models.Turf
	if err := db.First(&turf, in.TurfID).Error; err != nil {
		return nil, notFoundOr(err, "Turf not found")
	}
	if !turf.IsApproved {
		return nil, utils.BadRequestError("Turf is not open for booking", nil)
	}
	var ground models.Ground
	if err := db.First(&ground, in.GroundID).Error; err != nil {
		return nil, notFoundOr(err, "Ground not found")
	}
	if ground.TurfID != turf.ID {
		return nil, utils.BadRequestError("Ground does not belong to turf", nil)
	}
	var slot models.Slot
	if err := db.First(&slot, in.SlotID).Error; err != nil {
		return nil, notFoundOr(err, "Slot not found")
	}
	if slot.GroundID != ground.ID {
		return nil, utils.BadRequestError("Slot does not belong to ground", nil)
	}
	if slot.IsBooked {
		return nil, utils.ConflictError("Slot is already booked", nil)
	}

	cart := models.Cart{
		UserID:   actor.ID,
		TurfID:   turf.ID,
		GroundID: ground.ID,
		SlotID:   slot.ID,
		Date:     day.Format(utils.DateLayout),
	}
	if err := db.Create(&cart).Error; err != nil {
		return nil, utils.InternalError("Failed to add to cart", err)
	}
	utils.LogInfo("User %d added slot %d on %s to cart %d", actor.ID, slot.ID, cart.Date, cart.ID)
	return &cart, nil
}

// ConfirmBooking turns a cart entry into a pending booking. The slot is
// reserved and the cart consumed in the same transaction as the insert.
func (s *Services) ConfirmBooking(ctx context.Context, actor *models.User, cartID uint) (*models.Booking, error) {
	if cartID == 0 {
		return nil, utils.BadRequestError("cart_id is required", nil)
	}

	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Slot").First(&cart, cartID).Error; err != nil {
			return notFoundOr(err, "Cart entry not found")
		}
		if err := Authorize(actor, ActionUseCart, Resource{UserID: cart.UserID}); err != nil {
			// another user's cart is reported as missing
			return utils.NotFoundError("Cart entry not found", nil)
		}

		res := tx.Model(&models.Cart{}).
			Where("id = ? AND checked_out = ?", cart.ID, false).
			UpdateColumn("checked_out", true)
		if res.Error != nil {
			return utils.InternalError("Failed to update cart", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.ConflictError("Cart entry already booked", nil)
		}

		if err := reserveSlot(tx, &cart.Slot); err != nil {
			return err
		}

		booking = models.Booking{
			UserID: cart.UserID,
			CartID: cart.ID,
			State:  models.BookingStatePending,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return utils.InternalError("Failed to create booking", err)
		}
		booking.Cart = cart
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := preloadBooking(s.DB.WithContext(ctx)).First(&booking, booking.ID).Error; err != nil {
		utils.LogError("Failed to reload booking %d: %v", booking.ID, err)
	}

	utils.LogInfo("Booking %d created for user %d from cart %d", booking.ID, actor.ID, cartID)
	s.publishBooking(ctx, events.BookingCreated, &booking, actor)
	return &booking, nil
}

// ListBookings returns the bookings visible to actor under view, newest first.
func (s *Services) ListBookings(ctx context.Context, actor *models.User, view View) ([]BookingView, error) {
	q := preloadBooking(s.DB.WithContext(ctx)).Model(&models.Booking{})
	switch view {
	case CustomerView:
		q = q.Where("bookings.user_id = ?", actor.ID)
	case VendorView:
		q = q.Where("bookings.cart_id IN (?)",
			s.DB.Model(&models.Cart{}).Select("carts.id").
				Joins("JOIN turfs ON turfs.id = carts.turf_id").
				Where("turfs.owner_id = ?", actor.ID))
	case AdminView:
		if err := Authorize(actor, ActionAdminister, Resource{}); err != nil {
			return nil, err
		}
	}

	var bookings []models.Booking
	if err := q.Order("bookings.created_at desc").Order("bookings.id desc").Find(&bookings).Error; err != nil {
		return nil, utils.InternalError("Failed to fetch bookings", err)
	}

	out := make([]BookingView, 0, len(bookings))
	for i := range bookings {
		out = append(out, NewBookingView(&bookings[i]))
	}
	return out, nil
}

// GetBooking loads one booking the actor may view.
func (s *Services) GetBooking(ctx context.Context, actor *models.User, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := preloadBooking(s.DB.WithContext(ctx)).First(&b, id).Error; err != nil {
		return nil, notFoundOr(err, "Booking not found")
	}
	if err := Authorize(actor, ActionViewBooking, BookingResource(&b)); err != nil {
		return nil, err
	}
	return &b, nil
}

// VendorUpdateBooking applies the vendor's decision ("Approved", "Rejected",
// "Cancelled") to a booking on one of their turfs.
func (s *Services) VendorUpdateBooking(ctx context.Context, actor *models.User, bookingID uint, statusText string) (*TransitionResult, error) {
	action, ok := models.ParseVendorAction(statusText)
	if !ok {
		return nil, utils.BadRequestError(fmt.Sprintf("Unknown status %q", statusText), nil)
	}
	return s.transition(ctx, actor, bookingID, action, ActionReviewBooking)
}

// AdminCancelBooking cancels any booking whatever its vendor status.
func (s *Services) AdminCancelBooking(ctx context.Context, actor *models.User, bookingID uint) (*TransitionResult, error) {
	return s.transition(ctx, actor, bookingID, models.ActionAdminCancel, ActionAdminister)
}

func (s *Services) transition(ctx context.Context, actor *models.User, bookingID uint, action models.BookingAction, perm Action) (*TransitionResult, error) {
	var booking models.Booking
	var from string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := preloadBooking(tx).First(&booking, bookingID).Error; err != nil {
			return notFoundOr(err, "Booking not found")
		}
		if err := Authorize(actor, perm, BookingResource(&booking)); err != nil {
			return err
		}

		from = booking.State
		if err := booking.Apply(action); err != nil {
			return utils.ConflictError(fmt.Sprintf("Booking is %s and cannot be changed", booking.VendorStatus), err)
		}

		res := tx.Model(&models.Booking{}).
			Where("id = ? AND state = ?", booking.ID, from).
			UpdateColumns(map[string]interface{}{
				"state":         booking.State,
				"status":        booking.Status,
				"vendor_status": booking.VendorStatus,
				"updated_at":    s.Now(),
			})
		if res.Error != nil {
			return utils.InternalError("Failed to update booking", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.ConflictError("Booking was changed by another request", nil)
		}

		if models.IsCancelledState(booking.State) && !models.IsCancelledState(from) {
			return releaseSlot(tx, booking.Cart.SlotID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Booking %d moved %s -> %s by user %d", booking.ID, from, booking.State, actor.ID)
	s.publishBooking(ctx, transitionKey(booking.State), &booking, actor)
	s.notifyCustomer(&booking)

	return &TransitionResult{ID: booking.ID, Status: booking.Status, VendorStatus: booking.VendorStatus}, nil
}

func transitionKey(state string) string {
	switch state {
	case models.BookingStateApproved:
		return events.BookingApproved
	case models.BookingStateRejected:
		return events.BookingRejected
	}
	return events.BookingCancelled
}

func (s *Services) publishBooking(ctx context.Context, key string, b *models.Booking, actor *models.User) {
	evt := events.BookingEvent{
		BookingID:    b.ID,
		UserID:       b.UserID,
		TurfID:       b.Cart.TurfID,
		SlotID:       b.Cart.SlotID,
		Date:         b.Cart.Date,
		Status:       b.Status,
		VendorStatus: b.VendorStatus,
		Actor:        actor.Role,
		OccurredAt:   s.Now(),
	}
	if err := s.Events.Publish(ctx, key, evt); err != nil {
		utils.LogError("Failed to publish %s for booking %d: %v", key, b.ID, err)
	}
}

func (s *Services) notifyCustomer(b *models.Booking) {
	if !s.Mailer.Enabled() || b.User.Email == "" {
		return
	}
	slot := b.Cart.Slot.StartTime + "-" + b.Cart.Slot.EndTime
	if err := s.Mailer.SendBookingStatus(b.User.Email, b.ID, b.Cart.Turf.Name, b.Cart.Date, slot, b.Status); err != nil {
		utils.LogError("Failed to mail booking %d status: %v", b.ID, err)
	}
}
