// Package email delivers transactional mail. SESMailer sends through
// Amazon SES; LogMailer writes to the log for local development.
package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"travelassist/internal/domain"
)

type SESMailer struct {
	client *ses.Client
	from   string
}

func NewSESMailer(ctx context.Context, region, from string) (*SESMailer, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{client: ses.NewFromConfig(cfg), from: from}, nil
}

func (m *SESMailer) send(ctx context.Context, to, subject, body string) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(m.from),
		Destination: &types.Destination{ToAddresses: []string{to}},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}

func (m *SESMailer) SendBookingConfirmation(ctx context.Context, to string, b domain.BookingEmail) error {
	subject := fmt.Sprintf("Booking %s: %s", b.Status, b.PlaceName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking at %s for %s is %s.\n\nSafe travels!",
		b.UserName, b.PlaceName, b.Date.Format("Mon, 02 Jan 2006 15:04"), b.Status,
	)
	return m.send(ctx, to, subject, body)
}

func (m *SESMailer) SendOTP(ctx context.Context, to, name, code string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour verification code is %s. It expires in 5 minutes.",
		name, code,
	)
	return m.send(ctx, to, "Verify your email", body)
}

func (m *SESMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	body := fmt.Sprintf(
		"A password reset was requested for your account.\n\nReset token: %s\n\nThe token expires in 30 minutes. If you did not request this, ignore this email.",
		token,
	)
	return m.send(ctx, to, "Password reset", body)
}
