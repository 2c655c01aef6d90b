package utils

import (
	"strconv"
	"strings"
)

// PriceFormat selects how prices are rendered
type PriceFormat string

const (
	PriceFormatKR PriceFormat = "kr" // "10,000원"
	PriceFormatEN PriceFormat = "en" // "₩10,000"
)

// FormatThousands formats an integer amount with comma thousands separators, e.g. 12500 -> "12,500"
func FormatThousands(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	s := strconv.FormatInt(amount, 10)
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	// Pre-allocate: digits + separators + sign
	b.Grow(len(s) + len(s)/3 + 1)
	if neg {
		b.WriteByte('-')
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}

	return b.String()
}

// FormatPrice formats an amount in won using the given format.
// Unknown formats fall back to the Korean suffix form.
func FormatPrice(amount int64, format PriceFormat) string {
	if format == PriceFormatEN {
		return "₩" + FormatThousands(amount)
	}
	return FormatThousands(amount) + "원"
}
