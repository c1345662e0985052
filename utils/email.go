package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail over SMTP. A Mailer without a host is
// disabled and every send is a no-op.
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Enabled reports whether SMTP is configured.
func (m *Mailer) Enabled() bool {
	return m != nil && m.Host != ""
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.Enabled() || to == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// SendOTP mails a verification code.
func (m *Mailer) SendOTP(to, otp string) error {
	body := fmt.Sprintf(`
		<h2>TurfSphere verification</h2>
		<p>Use the following OTP to continue:</p>
		<h1 style="color: #2E7D32; font-size: 32px; letter-spacing: 5px;">%s</h1>
		<p>This OTP will expire in 10 minutes.</p>
		<p>If you didn't request this OTP, please ignore this email.</p>
	`, otp)
	return m.send(to, "Your TurfSphere OTP", body)
}

// SendBookingStatus tells a customer their booking changed status.
func (m *Mailer) SendBookingStatus(to string, bookingID uint, turfName, date, slot, status string) error {
	body := fmt.Sprintf(`
		<h2>Booking #%d is now %s</h2>
		<p>%s on %s, %s</p>
		<p>Thank you for booking with TurfSphere.</p>
	`, bookingID, status, turfName, date, slot)
	return m.send(to, fmt.Sprintf("Booking #%d %s", bookingID, status), body)
}
