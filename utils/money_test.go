package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatThousands(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		12500:   "12,500",
		100000:  "100,000",
		1234567: "1,234,567",
		-5000:   "-5,000",
		-999:    "-999",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatThousands(in), "amount %d", in)
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "10,000원", FormatPrice(10000, PriceFormatKR))
	assert.Equal(t, "₩10,000", FormatPrice(10000, PriceFormatEN))
	assert.Equal(t, "500원", FormatPrice(500, "unknown"))
}
