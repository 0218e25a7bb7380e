package domain

import (
	"testing"
	"time"
)

func TestParseDate_Valid(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if d.Year != 2026 || d.Month != time.March || d.Day != 15 {
		t.Errorf("Expected 2026-03-15, got %s", d)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, input := range []string{"", "15-03-2026", "2026/03/15", "2026-13-01", "not a date"} {
		if _, err := ParseDate(input); err != ErrInvalidDate {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", input, err)
		}
	}
}

func TestDate_String(t *testing.T) {
	d := Date{Year: 2026, Month: time.January, Day: 5}
	if got := d.String(); got != "2026-01-05" {
		t.Errorf("Expected 2026-01-05, got %s", got)
	}
}

func TestAddMonths_Simple(t *testing.T) {
	d := Date{Year: 2026, Month: time.March, Day: 15}
	got := d.AddMonths(1)
	want := Date{Year: 2026, Month: time.April, Day: 15}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestAddMonths_YearRollover(t *testing.T) {
	d := Date{Year: 2026, Month: time.November, Day: 10}
	got := d.AddMonths(3)
	want := Date{Year: 2027, Month: time.February, Day: 10}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestAddMonths_ClampsToShorterMonth(t *testing.T) {
	// Jan 31 + 1 month must clamp to the end of February, not roll into March
	d := Date{Year: 2026, Month: time.January, Day: 31}
	got := d.AddMonths(1)
	want := Date{Year: 2026, Month: time.February, Day: 28}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestAddMonths_ClampsToLeapFebruary(t *testing.T) {
	d := Date{Year: 2028, Month: time.January, Day: 31}
	got := d.AddMonths(1)
	want := Date{Year: 2028, Month: time.February, Day: 29}
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestDaysUntil(t *testing.T) {
	a := Date{Year: 2026, Month: time.March, Day: 1}
	b := Date{Year: 2026, Month: time.March, Day: 31}

	if got := a.DaysUntil(b); got != 30 {
		t.Errorf("Expected 30 days, got %d", got)
	}
	if got := b.DaysUntil(a); got != -30 {
		t.Errorf("Expected -30 days, got %d", got)
	}
	if got := a.DaysUntil(a); got != 0 {
		t.Errorf("Expected 0 days, got %d", got)
	}
}

func TestDaysUntil_AcrossMonthBoundary(t *testing.T) {
	a := Date{Year: 2026, Month: time.February, Day: 27}
	b := Date{Year: 2026, Month: time.March, Day: 2}
	if got := a.DaysUntil(b); got != 3 {
		t.Errorf("Expected 3 days, got %d", got)
	}
}
