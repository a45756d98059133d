package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendOTP(ctx context.Context, email string, message OTPMessage) error {
	args := m.Called(ctx, email, message)
	return args.Error(0)
}

// sequence returns a generator that hands out codes in order.
func sequence(codes ...string) func() (string, error) {
	i := 0
	return func() (string, error) {
		code := codes[i%len(codes)]
		i++
		return code, nil
	}
}
