package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount_Valid(t *testing.T) {
	got := ParseAmount("1234.56")
	if !got.Equal(decimal.NewFromFloat(1234.56)) {
		t.Errorf("Expected 1234.56, got %s", got)
	}
}

func TestParseAmount_ClampsToZero(t *testing.T) {
	// Fail-soft: garbage and negatives both clamp to zero
	for _, input := range []string{"", "abc", "-100", "1.2.3", "  "} {
		if got := ParseAmount(input); !got.IsZero() {
			t.Errorf("ParseAmount(%q): expected 0, got %s", input, got)
		}
	}
}

func TestParseAmount_TrimsWhitespace(t *testing.T) {
	if got := ParseAmount(" 500 "); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Expected 500, got %s", got)
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "₹0"},
		{999, "₹999"},
		{1000, "₹1,000"},
		{100000, "₹1,00,000"},
		{1234567.89, "₹12,34,568"},
		{15000000, "₹1,50,00,000"},
		{-50000, "-₹50,000"},
	}

	for _, tt := range tests {
		got := FormatINR(decimal.NewFromFloat(tt.amount))
		if got != tt.expected {
			t.Errorf("FormatINR(%v): expected %s, got %s", tt.amount, tt.expected, got)
		}
	}
}
