package mail

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"

	"github.com/sebiten/padel-app/logger"
	"github.com/sebiten/padel-app/models/booking_models"
)

// SMTPMailer sends booking confirmation emails over SMTP.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailerFromEnv builds a mailer from SMTP_HOST, SMTP_PORT, SMTP_USER,
// SMTP_PASS and SMTP_FROM. Returns nil when SMTP is not configured, which
// callers treat as "email disabled".
func NewSMTPMailerFromEnv() *SMTPMailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.InfoLogger.Info("SMTP not configured, confirmation emails disabled")
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = os.Getenv("SMTP_USER")
	}

	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")),
		from:   from,
	}
}

// SendBookingConfirmed emails the payer that their reservation is confirmed.
func (m *SMTPMailer) SendBookingConfirmed(toEmail string, booking *booking_models.Booking) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Tu reserva fue confirmada")
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>¡Reserva confirmada!</p><p>Fecha: %s<br>Horario: %s - %s<br>Total: $%d</p><p>¡Nos vemos en la cancha!</p>",
		booking.Date, booking.StartTime, booking.EndTime, booking.TotalPrice,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	logger.InfoLogger.Infof("Confirmation email sent to %s for booking %s", toEmail, booking.ID)
	return nil
}
