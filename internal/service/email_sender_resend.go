package service

import (
	"context"
	"errors"
	"strings"

	"github.com/resend/resend-go"
)

type ResendEmailSender struct {
	From string
	send func(*resend.SendEmailRequest) error
}

func NewResendEmailSender(apiKey string, from string) *ResendEmailSender {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(from) == "" {
		return &ResendEmailSender{}
	}
	client := resend.NewClient(apiKey)
	return &ResendEmailSender{
		From: from,
		send: func(request *resend.SendEmailRequest) error {
			_, err := client.Emails.Send(request)
			return err
		},
	}
}

// SendOTP returns as soon as ctx is done. The pinned SDK call takes no context,
// so a send still in flight finishes in the background.
func (s *ResendEmailSender) SendOTP(ctx context.Context, email string, message OTPMessage) error {
	if s.send == nil {
		return errors.New("email sender not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	html, text, err := renderOTPEmail(message)
	if err != nil {
		return err
	}
	request := &resend.SendEmailRequest{
		From:    s.From,
		To:      []string{email},
		Subject: message.Subject,
		Html:    html,
		Text:    text,
	}

	done := make(chan error, 1)
	go func() {
		done <- s.send(request)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
