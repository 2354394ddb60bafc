package email

import (
	"context"

	"github.com/rs/zerolog"

	"travelassist/internal/domain"
)

// LogMailer writes outgoing mail to the log instead of sending it.
// Used when EMAIL_DRIVER=log.
type LogMailer struct {
	log zerolog.Logger
}

func NewLogMailer(log zerolog.Logger) *LogMailer {
	return &LogMailer{log: log.With().Str("component", "mailer").Logger()}
}

func (m *LogMailer) SendBookingConfirmation(_ context.Context, to string, b domain.BookingEmail) error {
	m.log.Info().
		Str("to", to).
		Str("place", b.PlaceName).
		Time("date", b.Date).
		Str("status", string(b.Status)).
		Msg("booking confirmation email")
	return nil
}

func (m *LogMailer) SendOTP(_ context.Context, to, name, code string) error {
	m.log.Info().Str("to", to).Str("name", name).Str("code", code).Msg("otp email")
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, token string) error {
	m.log.Info().Str("to", to).Str("token", token).Msg("password reset email")
	return nil
}
