package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	OTPLength = 6
	otpMin    = 100000
	otpMax    = 999999
)

var otpSpan = big.NewInt(otpMax - otpMin + 1)

// GenerateOTP draws a code uniformly from [100000, 999999].
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpSpan)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()+otpMin), nil
}

// IsOTP reports whether code has the shape of a one-time code.
func IsOTP(code string) bool {
	if len(code) != OTPLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
