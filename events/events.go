// Package events publishes booking lifecycle notifications for downstream
// consumers (mail, analytics). Publishing is best effort and never blocks a
// request from completing.
package events

import (
	"context"
	"sync"
	"time"
)

// Routing keys
const (
	BookingCreated   = "booking.created"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
	BookingCancelled = "booking.cancelled"
	PaymentSucceeded = "payment.succeeded"
	PaymentFailed    = "payment.failed"
)

// BookingEvent is the payload for every booking.* key.
type BookingEvent struct {
	BookingID    uint      `json:"booking_id"`
	UserID       uint      `json:"user_id"`
	TurfID       uint      `json:"turf_id"`
	SlotID       uint      `json:"slot_id"`
	Date         string    `json:"date"`
	Status       string    `json:"status"`
	VendorStatus string    `json:"vendor_status"`
	Actor        string    `json:"actor"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// PaymentEvent is the payload for payment.* keys.
type PaymentEvent struct {
	PaymentID  uint      `json:"payment_id"`
	BookingID  uint      `json:"booking_id"`
	UserID     uint      `json:"user_id"`
	Amount     int64     `json:"amount"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }

// Message is one event captured by Recorder.
type Message struct {
	Key     string
	Payload any
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

func (r *Recorder) Publish(_ context.Context, key string, v any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Key: key, Payload: v})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Keys returns the routing keys seen so far, in order.
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.messages))
	for i, m := range r.messages {
		keys[i] = m.Key
	}
	return keys
}
