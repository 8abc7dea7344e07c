package metrics

import (
	"strings"

	"github.com/shopspring/decimal"
)

// notAvailable is rendered for undefined or non-finite values.
const notAvailable = "N/A"

// FormatCurrency renders v as US dollars with two decimals, e.g. "$1,234.50".
func FormatCurrency(v float64) string {
	if !finite(v) {
		return notAvailable
	}
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := groupThousands(d.Abs().StringFixed(2))

	if neg {
		return "-$" + s
	}
	return "$" + s
}

// FormatPercent renders an already-scaled percentage with one decimal,
// e.g. 60 => "60.0%".
func FormatPercent(v float64) string {
	if !finite(v) {
		return notAvailable
	}
	d := decimal.NewFromFloat(v).Round(1)
	neg := d.IsNegative()
	s := groupThousands(d.Abs().StringFixed(1)) + "%"

	if neg {
		return "-" + s
	}
	return s
}

// FormatRatio renders a ratio with two decimals, or "N/A" when undefined.
func FormatRatio(r *float64) string {
	if r == nil || !finite(*r) {
		return notAvailable
	}
	return decimal.NewFromFloat(*r).StringFixed(2)
}

// groupThousands inserts comma separators into the integer part of an
// unsigned decimal string: "1234.50" => "1,234.50".
func groupThousands(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return s
	}

	var buf []byte
	count := 0
	for i := len(intPart) - 1; i >= 0; i-- {
		buf = append(buf, intPart[i])
		count++
		if count == 3 && i != 0 {
			buf = append(buf, ',')
			count = 0
		}
	}
	// reverse buf
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	return string(buf) + frac
}
