package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses user-entered numeric text into a monetary amount.
// Parsing is deliberately fail-soft: unparsable or negative input clamps to
// zero so callers always have a renderable value. Structural validation
// (tenure, dates, required fields) stays fail-fast elsewhere.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// FormatINR renders an amount as rupees with Indian digit grouping,
// e.g. 1234567.89 -> "₹12,34,568". The amount is rounded to the nearest
// whole rupee before grouping.
func FormatINR(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	neg := rounded.IsNegative()
	digits := rounded.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteRune('₹')
	b.WriteString(groupIndian(digits))
	return b.String()
}

// groupIndian inserts commas per the Indian numbering system: the last three
// digits form one group, every two digits before that form another.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	head := digits[:n-3]
	tail := digits[n-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
