package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Govind-619/TurfSphere/events"
	"github.com/Govind-619/TurfSphere/models"
	"github.com/Govind-619/TurfSphere/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	got := Signature("rzp_test_secret", "order_DBJOWzybf0sJbb", "pay_DGBk1V7tbvKcEw")
	assert.Equal(t, "9ffa09d5c196dd6c373ef656951b070fce0bdbe4e8f975f48180112b02dc48e2", got)
}

func TestCreatePaymentOrderReusesPending(t *testing.T) {
	f := newFixture(t)
	gw := &fakeGateway{}
	f.svc.Gateway = gw
	booking := f.book(t)

	order, err := f.svc.CreatePaymentOrder(context.Background(), f.customer, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, f.venue.Turf.PricePerHour, order.Amount)
	assert.Equal(t, 1000.0, order.AmountRupees)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, "rzp_test_key", order.Key)

	again, err := f.svc.CreatePaymentOrder(context.Background(), f.customer, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, order.RazorpayOrderID, again.RazorpayOrderID)
	assert.Equal(t, 1, gw.orders)
}

func TestCreatePaymentOrderErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	booking := f.book(t)

	_, err := f.svc.CreatePaymentOrder(ctx, f.customer, booking.ID)
	assertStatus(t, err, http.StatusServiceUnavailable)

	f.svc.Gateway = &fakeGateway{err: errors.New("gateway down")}
	_, err = f.svc.CreatePaymentOrder(ctx, f.customer, booking.ID)
	assertStatus(t, err, http.StatusBadGateway)

	f.svc.Gateway = &fakeGateway{}
	stranger := utils.CreateTestUser(t, f.svc.DB, "stranger", models.RoleCustomer)
	_, err = f.svc.CreatePaymentOrder(ctx, stranger, booking.ID)
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.svc.AdminCancelBooking(ctx, f.admin, booking.ID)
	require.NoError(t, err)
	_, err = f.svc.CreatePaymentOrder(ctx, f.customer, booking.ID)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestVerifyPaymentSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Gateway = &fakeGateway{}
	booking := f.book(t)
	order, err := f.svc.CreatePaymentOrder(ctx, f.customer, booking.ID)
	require.NoError(t, err)

	payment, err := f.svc.VerifyPayment(ctx, f.customer, VerifyInput{
		RazorpayOrderID:   order.RazorpayOrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: Signature(testRazorpaySecret, order.RazorpayOrderID, "pay_1"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusSuccess, payment.Status)
	assert.Equal(t, "pay_1", payment.RazorpayPaymentID)
	assert.Contains(t, f.events.Keys(), events.PaymentSucceeded)

	var stored models.Booking
	require.NoError(t, f.svc.DB.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingStatePending, stored.State, "payment does not change the booking state")

	_, err = f.svc.CreatePaymentOrder(ctx, f.customer, booking.ID)
	assertStatus(t, err, http.StatusConflict)
}

func TestVerifyPaymentSignatureMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Gateway = &fakeGateway{}
	booking := f.book(t)
	order, err := f.svc.CreatePaymentOrder(ctx, f.customer, booking.ID)
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(ctx, f.customer, VerifyInput{
		RazorpayOrderID:   order.RazorpayOrderID,
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "forged",
	})
	assertStatus(t, err, http.StatusBadRequest)

	var stored models.Payment
	require.NoError(t, f.svc.DB.First(&stored, order.PaymentID).Error)
	assert.Equal(t, models.PaymentStatusFailed, stored.Status)
	assert.Contains(t, f.events.Keys(), events.PaymentFailed)
}

func TestVerifyPaymentUnknownOrder(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.VerifyPayment(context.Background(), f.customer, VerifyInput{
		RazorpayOrderID:   "order_missing",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
	})
	assertStatus(t, err, http.StatusNotFound)

	_, err = f.svc.VerifyPayment(context.Background(), f.customer, VerifyInput{RazorpayOrderID: "order_missing"})
	assertStatus(t, err, http.StatusBadRequest)
}

func TestAdminPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.svc.Gateway = &fakeGateway{}
	booking := f.book(t)
	_, err := f.svc.CreatePaymentOrder(ctx, f.customer, booking.ID)
	require.NoError(t, err)

	rows, err := f.svc.AdminPayments(ctx, f.admin)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, f.customer.Username, rows[0].User.Username)
	assert.Equal(t, models.PaymentStatusPending, rows[0].Status)

	_, err = f.svc.AdminPayments(ctx, f.vendor)
	assertStatus(t, err, http.StatusForbidden)
}
