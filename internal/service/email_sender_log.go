package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogEmailSender writes codes to the log instead of mailing them. Local development only.
type LogEmailSender struct {
	Logger logrus.FieldLogger
}

func (s LogEmailSender) SendOTP(ctx context.Context, email string, message OTPMessage) error {
	if s.Logger == nil {
		return nil
	}
	s.Logger.WithFields(logrus.Fields{
		"to":      email,
		"subject": message.Subject,
		"code":    message.Code,
	}).Info("otp email")
	return nil
}
