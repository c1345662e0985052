package services

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/Govind-619/TurfSphere/events"
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.venue

	_, err := f.svc.AddToCart(ctx, f.customer, CartInput{GroundID: v.Ground.ID, SlotID: v.Slot.ID, Date: tomorrow})
	assertStatus(t, err, http.StatusBadRequest)
	assert.Contains(t, err.Error(), "turf_id")

	_, err = f.svc.AddToCart(ctx, f.customer, CartInput{TurfID: v.Turf.ID, GroundID: v.Ground.ID, SlotID: v.Slot.ID, Date: "2026-10-16"})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.AddToCart(ctx, f.customer, CartInput{TurfID: v.Turf.ID, GroundID: v.Ground.ID, SlotID: v.Slot.ID, Date: "18-10-2026"})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.AddToCart(ctx, f.customer, CartInput{TurfID: 999, GroundID: v.Ground.ID, SlotID: v.Slot.ID, Date: tomorrow})
	assertStatus(t, err, http.StatusNotFound)

	other := utils.CreateTestTurf(t, f.svc.DB, f.vendor, true)
	_, err = f.svc.AddToCart(ctx, f.customer, CartInput{TurfID: v.Turf.ID, GroundID: other.Ground.ID, SlotID: other.Slot.ID, Date: tomorrow})
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.AddToCart(ctx, f.customer, CartInput{TurfID: v.Turf.ID, GroundID: v.Ground.ID, SlotID: other.Slot.ID, Date: tomorrow})
	assertStatus(t, err, http.StatusBadRequest)

	hidden := utils.CreateTestTurf(t, f.svc.DB, f.vendor, false)
	_, err = f.svc.AddToCart(ctx, f.customer, CartInput{TurfID: hidden.Turf.ID, GroundID: hidden.Ground.ID, SlotID: hidden.Slot.ID, Date: tomorrow})
	assertStatus(t, err, http.StatusBadRequest)

	cart, err := f.svc.AddToCart(ctx, f.customer, CartInput{TurfID: v.Turf.ID, GroundID: v.Ground.ID, SlotID: v.Slot.ID, Date: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, f.customer.ID, cart.UserID)
	assert.False(t, cart.CheckedOut)
}

func TestConfirmBookingReservesSlot(t *testing.T) {
	f := newFixture(t)
	cart := f.cartFor(t, f.customer, f.venue.Slot)

	booking, err := f.svc.ConfirmBooking(context.Background(), f.customer, cart.ID)
	require.NoError(t, err)

	assert.Equal(t, models.BookingStatePending, booking.State)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.VendorStatusPending, booking.VendorStatus)
	assert.Equal(t, f.venue.Turf.Name, booking.Cart.Turf.Name)
	assert.True(t, f.slotBooked(t, f.venue.Slot.ID))

	var stored models.Cart
	require.NoError(t, f.svc.DB.First(&stored, cart.ID).Error)
	assert.True(t, stored.CheckedOut)
	assert.Equal(t, []string{events.BookingCreated}, f.events.Keys())

	_, err = f.svc.ConfirmBooking(context.Background(), f.customer, cart.ID)
	assertStatus(t, err, http.StatusConflict)
}

func TestConfirmBookingOtherUsersCart(t *testing.T) {
	f := newFixture(t)
	cart := f.cartFor(t, f.customer, f.venue.Slot)
	intruder := utils.CreateTestUser(t, f.svc.DB, "intruder", models.RoleCustomer)

	_, err := f.svc.ConfirmBooking(context.Background(), intruder, cart.ID)
	assertStatus(t, err, http.StatusNotFound)
	assert.False(t, f.slotBooked(t, f.venue.Slot.ID))
}

func TestConfirmBookingSlotTakenAfterCart(t *testing.T) {
	f := newFixture(t)
	second := utils.CreateTestUser(t, f.svc.DB, "second", models.RoleCustomer)
	first := f.cartFor(t, f.customer, f.venue.Slot)
	late := f.cartFor(t, second, f.venue.Slot)

	_, err := f.svc.ConfirmBooking(context.Background(), f.customer, first.ID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmBooking(context.Background(), second, late.ID)
	assertStatus(t, err, http.StatusConflict)

	var stored models.Cart
	require.NoError(t, f.svc.DB.First(&stored, late.ID).Error)
	assert.False(t, stored.CheckedOut, "failed confirmation must roll back the cart")
}

func TestConcurrentConfirmationsHaveOneWinner(t *testing.T) {
	f := newFixture(t)
	const racers = 5

	users := make([]*models.User, racers)
	carts := make([]*models.Cart, racers)
	for i := range users {
		users[i] = utils.CreateTestUser(t, f.svc.DB, "racer"+string(rune('a'+i)), models.RoleCustomer)
		carts[i] = f.cartFor(t, users[i], f.venue.Slot)
	}

	var wg sync.WaitGroup
	errs := make([]error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.ConfirmBooking(context.Background(), users[i], carts[i].ID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, http.StatusConflict, utils.StatusOf(err))
	}
	assert.Equal(t, 1, wins)

	var count int64
	require.NoError(t, f.svc.DB.Model(&models.Booking{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestReserveSlotStaleVersion(t *testing.T) {
	f := newFixture(t)
	stale := *f.venue.Slot

	require.NoError(t, reserveSlot(f.svc.DB, f.venue.Slot))
	require.NoError(t, releaseSlot(f.svc.DB, f.venue.Slot.ID))

	// free again, but the copy still carries the old version
	assertStatus(t, reserveSlot(f.svc.DB, &stale), http.StatusConflict)
}

func TestVendorApproveAndReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t)

	res, err := f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Approved")
	require.NoError(t, err)
	assert.Equal(t, models.VendorStatusApproved, res.VendorStatus)
	assert.Equal(t, models.BookingStatusConfirmed, res.Status)
	assert.True(t, f.slotBooked(t, f.venue.Slot.ID))

	slot2 := &models.Slot{GroundID: f.venue.Ground.ID, StartTime: "07:00", EndTime: "08:00"}
	require.NoError(t, f.svc.DB.Create(slot2).Error)
	cart := f.cartFor(t, f.customer, slot2)
	other, err := f.svc.ConfirmBooking(ctx, f.customer, cart.ID)
	require.NoError(t, err)

	res, err = f.svc.VendorUpdateBooking(ctx, f.vendor, other.ID, "REJECTED")
	require.NoError(t, err)
	assert.Equal(t, models.VendorStatusRejected, res.VendorStatus)
	assert.Equal(t, models.BookingStatusCancelled, res.Status)
	assert.False(t, f.slotBooked(t, slot2.ID), "rejection frees the slot")

	assert.Equal(t, []string{
		events.BookingCreated, events.BookingApproved,
		events.BookingCreated, events.BookingRejected,
	}, f.events.Keys())
}

func TestVendorUpdateBookingErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t)

	_, err := f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Completed")
	assertStatus(t, err, http.StatusBadRequest)

	_, err = f.svc.VendorUpdateBooking(ctx, f.vendor, 999, "Approved")
	assertStatus(t, err, http.StatusNotFound)

	rival := utils.CreateTestUser(t, f.svc.DB, "rival", models.RoleVendor)
	_, err = f.svc.VendorUpdateBooking(ctx, rival, booking.ID, "Approved")
	assertStatus(t, err, http.StatusForbidden)

	_, err = f.svc.VendorUpdateBooking(ctx, f.customer, booking.ID, "Approved")
	assertStatus(t, err, http.StatusForbidden)

	_, err = f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Rejected")
	require.NoError(t, err)
	_, err = f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Approved")
	assertStatus(t, err, http.StatusConflict)
}

func TestVendorCanRevisitApprovedBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t)

	for i := 0; i < 2; i++ {
		res, err := f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Approved")
		require.NoError(t, err, "approval %d", i+1)
		assert.Equal(t, models.BookingStatusConfirmed, res.Status)
		assert.Equal(t, models.VendorStatusApproved, res.VendorStatus)
		assert.True(t, f.slotBooked(t, f.venue.Slot.ID))
	}

	res, err := f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Rejected")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, res.Status)
	assert.Equal(t, models.VendorStatusRejected, res.VendorStatus)
	assert.False(t, f.slotBooked(t, f.venue.Slot.ID), "rejecting an approved booking frees the slot")

	var stored models.Booking
	require.NoError(t, f.svc.DB.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingStateRejected, stored.State)

	for _, status := range []string{"Approved", "Rejected", "Cancelled"} {
		_, err = f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, status)
		assertStatus(t, err, http.StatusConflict)
	}

	assert.Equal(t, []string{
		events.BookingCreated, events.BookingApproved, events.BookingApproved, events.BookingRejected,
	}, f.events.Keys())
}

func TestVendorCancelledBookingStaysFinal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t)

	_, err := f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Approved")
	require.NoError(t, err)
	_, err = f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Cancelled")
	require.NoError(t, err)
	assert.False(t, f.slotBooked(t, f.venue.Slot.ID))

	second := utils.CreateTestUser(t, f.svc.DB, "second", models.RoleCustomer)
	cart := f.cartFor(t, second, f.venue.Slot)
	_, err = f.svc.ConfirmBooking(ctx, second, cart.ID)
	require.NoError(t, err)

	_, err = f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "Approved")
	assertStatus(t, err, http.StatusConflict)
	assert.True(t, f.slotBooked(t, f.venue.Slot.ID), "the new booking keeps the slot")
}

func TestAdminCancelOverridesVendorStatus(t *testing.T) {
	for _, prior := range []string{"", "Approved", "Rejected"} {
		t.Run("prior "+prior, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			booking := f.book(t)
			if prior != "" {
				_, err := f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, prior)
				require.NoError(t, err)
			}

			res, err := f.svc.AdminCancelBooking(ctx, f.admin, booking.ID)
			require.NoError(t, err)
			assert.Equal(t, models.BookingStatusCancelled, res.Status)
			assert.Equal(t, models.VendorStatusCancelled, res.VendorStatus)
			assert.False(t, f.slotBooked(t, f.venue.Slot.ID))

			var stored models.Booking
			require.NoError(t, f.svc.DB.First(&stored, booking.ID).Error)
			assert.Equal(t, models.BookingStateAdminCancelled, stored.State)
		})
	}
}

func TestAdminCancelRequiresAdmin(t *testing.T) {
	f := newFixture(t)
	booking := f.book(t)

	_, err := f.svc.AdminCancelBooking(context.Background(), f.vendor, booking.ID)
	assertStatus(t, err, http.StatusForbidden)
}

func TestVendorCancelFreesSlotForRebooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t)

	_, err := f.svc.VendorUpdateBooking(ctx, f.vendor, booking.ID, "cancelled")
	require.NoError(t, err)
	assert.False(t, f.slotBooked(t, f.venue.Slot.ID))

	second := utils.CreateTestUser(t, f.svc.DB, "second", models.RoleCustomer)
	cart := f.cartFor(t, second, f.venue.Slot)
	_, err = f.svc.ConfirmBooking(ctx, second, cart.ID)
	require.NoError(t, err)
}

func TestListBookingsProjections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine := f.book(t)

	rival := utils.CreateTestUser(t, f.svc.DB, "rival", models.RoleVendor)
	rivalVenue := utils.CreateTestTurf(t, f.svc.DB, rival, true)
	other := utils.CreateTestUser(t, f.svc.DB, "other", models.RoleCustomer)
	cart, err := f.svc.AddToCart(ctx, other, CartInput{
		TurfID: rivalVenue.Turf.ID, GroundID: rivalVenue.Ground.ID, SlotID: rivalVenue.Slot.ID, Date: tomorrow,
	})
	require.NoError(t, err)
	theirs, err := f.svc.ConfirmBooking(ctx, other, cart.ID)
	require.NoError(t, err)

	ids := func(views []BookingView) []uint {
		out := make([]uint, 0, len(views))
		for _, v := range views {
			out = append(out, v.ID)
		}
		return out
	}

	customerView, err := f.svc.ListBookings(ctx, f.customer, CustomerView)
	require.NoError(t, err)
	assert.Equal(t, []uint{mine.ID}, ids(customerView))
	assert.Equal(t, f.venue.Turf.PricePerHour, customerView[0].AmountPaise)
	assert.Equal(t, tomorrow, customerView[0].Date)

	vendorView, err := f.svc.ListBookings(ctx, rival, VendorView)
	require.NoError(t, err)
	assert.Equal(t, []uint{theirs.ID}, ids(vendorView))

	adminView, err := f.svc.ListBookings(ctx, f.admin, AdminView)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{mine.ID, theirs.ID}, ids(adminView))

	_, err = f.svc.ListBookings(ctx, f.customer, AdminView)
	assertStatus(t, err, http.StatusForbidden)
}

func TestGetBookingVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t)

	_, err := f.svc.GetBooking(ctx, f.customer, booking.ID)
	require.NoError(t, err)
	_, err = f.svc.GetBooking(ctx, f.vendor, booking.ID)
	require.NoError(t, err)
	_, err = f.svc.GetBooking(ctx, f.admin, booking.ID)
	require.NoError(t, err)

	stranger := utils.CreateTestUser(t, f.svc.DB, "stranger", models.RoleCustomer)
	_, err = f.svc.GetBooking(ctx, stranger, booking.ID)
	assertStatus(t, err, http.StatusForbidden)
}
