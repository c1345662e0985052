package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/TurfSphere/config"
	"github.com/Govind-619/TurfSphere/events"
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRazorpaySecret = "rzp_test_secret"
	tomorrow           = "2026-10-18"
)

// fixedNow is a Saturday morning.
var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

type fixture struct {
	svc      *Services
	events   *events.Recorder
	admin    *models.User
	customer *models.User
	vendor   *models.User
	venue    utils.TestTurf
}

func newTestServices(t *testing.T) (*Services, *events.Recorder) {
	t.Helper()
	db, err := config.OpenTestDB(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	rec := &events.Recorder{}
	svc := New(db)
	svc.Events = rec
	svc.Loc = time.UTC
	svc.Now = func() time.Time { return fixedNow }
	svc.JWTSecret = utils.TestSecret
	svc.RazorpayKey = "rzp_test_key"
	svc.RazorpaySecret = testRazorpaySecret
	svc.ExposeOTP = true
	return svc, rec
}

// newFixture seeds an admin, a customer and a vendor owning one approved turf.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	svc, rec := newTestServices(t)
	f := &fixture{svc: svc, events: rec}
	f.admin = utils.CreateTestUser(t, svc.DB, "admin", models.RoleAdmin)
	f.customer = utils.CreateTestUser(t, svc.DB, "ravi", models.RoleCustomer)
	f.vendor = utils.CreateTestUser(t, svc.DB, "arena", models.RoleVendor)
	f.venue = utils.CreateTestTurf(t, svc.DB, f.vendor, true)
	return f
}

func (f *fixture) cartFor(t *testing.T, user *models.User, slot *models.Slot) *models.Cart {
	t.Helper()
	cart, err := f.svc.AddToCart(context.Background(), user, CartInput{
		TurfID:   f.venue.Turf.ID,
		GroundID: f.venue.Ground.ID,
		SlotID:   slot.ID,
		Date:     tomorrow,
	})
	require.NoError(t, err)
	return cart
}

func (f *fixture) book(t *testing.T) *models.Booking {
	t.Helper()
	cart := f.cartFor(t, f.customer, f.venue.Slot)
	booking, err := f.svc.ConfirmBooking(context.Background(), f.customer, cart.ID)
	require.NoError(t, err)
	return booking
}

func (f *fixture) slotBooked(t *testing.T, id uint) bool {
	t.Helper()
	var slot models.Slot
	require.NoError(t, f.svc.DB.First(&slot, id).Error)
	return slot.IsBooked
}

func assertStatus(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, utils.StatusOf(err), "error: %v", err)
}

type fakeGateway struct {
	orders int
	err    error
}

func (g *fakeGateway) CreateOrder(amountPaise int64, receipt string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.orders++
	return fmt.Sprintf("order_%d_%s", g.orders, receipt), nil
}
