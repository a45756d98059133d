package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := map[int64]string{
		12000: "120.00",
		32000: "320.00",
		50005: "500.05",
		99:    "0.99",
		0:     "0.00",
		-150:  "-1.50",
	}
	for cents, want := range cases {
		assert.Equal(t, want, FormatPrice(cents), cents)
	}
}
