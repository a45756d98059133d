package service

import (
	"context"
	"errors"
	"strings"

	"gopkg.in/gomail.v2"
)

type SMTPEmailSender struct {
	dialer *gomail.Dialer
	From   string
}

func NewSMTPEmailSender(host string, port int, username string, password string, from string) *SMTPEmailSender {
	if strings.TrimSpace(host) == "" || strings.TrimSpace(from) == "" {
		return &SMTPEmailSender{}
	}
	return &SMTPEmailSender{
		dialer: gomail.NewDialer(host, port, username, password),
		From:   from,
	}
}

func (s *SMTPEmailSender) SendOTP(ctx context.Context, email string, message OTPMessage) error {
	if s.dialer == nil {
		return errors.New("email sender not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	html, text, err := renderOTPEmail(message)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", email)
	m.SetHeader("Subject", message.Subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	return s.dialer.DialAndSend(m)
}
