package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderKeepsOrder(t *testing.T) {
	rec := &Recorder{}
	var pub Publisher = rec

	require.NoError(t, pub.Publish(context.Background(), BookingCreated, BookingEvent{BookingID: 1}))
	require.NoError(t, pub.Publish(context.Background(), PaymentSucceeded, PaymentEvent{PaymentID: 2}))

	assert.Equal(t, []string{BookingCreated, PaymentSucceeded}, rec.Keys())
	assert.NoError(t, pub.Close())
}

func TestNopDropsEvents(t *testing.T) {
	var pub Publisher = Nop{}
	assert.NoError(t, pub.Publish(context.Background(), BookingCancelled, nil))
	assert.NoError(t, pub.Close())
}
