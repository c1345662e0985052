package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeInfo(t *testing.T) {
	logs := strings.Join([]string{
		"INFO: 2026/10/17 10:00:00 auth_controller.go:130: User 4 logged in",
		"INFO: 2026/10/17 10:00:01 auth.go:160: OTP issued for +919876543210 (signup)",
		"INFO: 2026/10/17 10:00:02 booking.go:196: Booking 7 created for user 4 from cart 3",
		"INFO: 2026/10/17 10:00:03 booking.go:296: Booking 7 moved PENDING -> APPROVED by user 2",
		"INFO: 2026/10/17 10:00:04 booking.go:296: Booking 8 moved PENDING -> REJECTED by user 2",
		"INFO: 2026/10/17 10:00:05 payment.go:195: Payment 3 for booking 7 verified",
		"INFO: 2026/10/17 10:00:06 logger.go:82: Request abc: POST /v1/cart/add from 127.0.0.1 - Status: 409 - Duration: 2ms",
		"INFO: 2026/10/17 10:00:07 logger.go:82: Request abc: GET /v1/turfs from 127.0.0.1 - Status: 200 - Duration: 1ms",
	}, "\n")

	stats := newLogStats()
	stats.analyzeInfo(strings.NewReader(logs))

	assert.Equal(t, 1, stats.LoginSuccess)
	assert.Equal(t, 1, stats.OTPIssued)
	assert.Equal(t, 1, stats.BookingsCreated)
	assert.Equal(t, 1, stats.PaymentsVerified)
	assert.Equal(t, map[string]int{"APPROVED": 1, "REJECTED": 1}, stats.Transitions)
	assert.Equal(t, 1, stats.FailedRequests)
	assert.Equal(t, 1, stats.FailingPaths["POST /vN/cart/add"])
}

func TestAnalyzeErrors(t *testing.T) {
	logs := strings.Join([]string{
		`ERROR: 2026/10/17 10:00:00 auth_controller.go:126: Login attempt failed for "ravi": Invalid credentials`,
		"ERROR: 2026/10/17 10:00:01 payment.go:190: Signature mismatch for payment 3 (order order_1)",
		"ERROR: 2026/10/17 10:00:02 booking.go:330: Failed to mail booking 7 status: dial tcp",
		"ERROR: 2026/10/17 10:00:03 booking.go:330: Failed to mail booking 9 status: dial tcp",
		"goroutine 1 [running]:",
	}, "\n")

	stats := newLogStats()
	stats.analyzeErrors(strings.NewReader(logs))

	assert.Equal(t, 4, stats.TotalErrors)
	assert.Equal(t, 1, stats.LoginFailures)
	assert.Equal(t, 1, stats.PaymentMismatches)
	assert.Equal(t, 2, stats.ErrorPatterns["Failed to mail booking N status: dial tcp"])
}

func TestPrintReport(t *testing.T) {
	stats := newLogStats()
	stats.BookingsCreated = 3
	stats.Transitions["APPROVED"] = 2

	var buf bytes.Buffer
	stats.printReport(&buf, "2026-10-17")

	out := buf.String()
	assert.Contains(t, out, "Date: 2026-10-17")
	assert.Contains(t, out, "Created: 3")
	assert.Contains(t, out, "APPROVED: 2 transitions")
}
