package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var otpEmailTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>{{.Title}}</h2>
  <p>{{.Message}}</p>
  <p style="font-size: 28px; letter-spacing: 6px;"><strong>{{.Code}}</strong></p>
</body>
</html>`))

func otpMessageFor(purpose OTPPurpose, code string, ttl time.Duration) OTPMessage {
	minutes := int(ttl.Minutes())
	switch purpose {
	case PurposePasswordReset:
		return OTPMessage{
			Subject: "Reset your TrackJob password",
			Title:   "Password reset request",
			Message: fmt.Sprintf("Use the code below to reset your password. It expires in %d minutes.", minutes),
			Code:    code,
		}
	default:
		return OTPMessage{
			Subject: "Verify your TrackJob email",
			Title:   "Welcome to TrackJob",
			Message: fmt.Sprintf("Use the code below to verify your email address. It expires in %d minutes.", minutes),
			Code:    code,
		}
	}
}

func renderOTPEmail(message OTPMessage) (html string, text string, err error) {
	var buffer bytes.Buffer
	if err := otpEmailTemplate.Execute(&buffer, message); err != nil {
		return "", "", err
	}
	text = fmt.Sprintf("%s\n\n%s\n\nCode: %s", message.Title, message.Message, message.Code)
	return buffer.String(), text, nil
}
