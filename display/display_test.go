package display

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"1234.5":     "S/ 1,234.50",
		"0":          "S/ 0.00",
		"1000000.25": "S/ 1,000,000.25",
	}
	for in, want := range cases {
		if got := Money(decimal.RequireFromString(in)); got != want {
			t.Fatalf("Money(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestMoney_RoundsToCents(t *testing.T) {
	got := Money(decimal.RequireFromString("10.005"))
	if !strings.Contains(got, "10.01") {
		t.Fatalf("expected rounding to cents, got %q", got)
	}
}

func TestOptionalMoney(t *testing.T) {
	if got := OptionalMoney(nil, "No aplica"); got != "No aplica" {
		t.Fatalf("unexpected placeholder %q", got)
	}
	d := decimal.NewFromInt(500)
	if got := OptionalMoney(&d, "No aplica"); !strings.Contains(got, "500.00") {
		t.Fatalf("unexpected value %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(decimal.RequireFromString("6.2")); got != "6.20%" {
		t.Fatalf("unexpected percent %q", got)
	}
	if got := Percent(decimal.Zero); got != "0.00%" {
		t.Fatalf("unexpected zero percent %q", got)
	}
}

func TestDate(t *testing.T) {
	d := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	if got := Date(&d); got != "05/03/2024" {
		t.Fatalf("unexpected date %q", got)
	}
	if got := Date(nil); got != "" {
		t.Fatalf("expected empty string for nil date, got %q", got)
	}
}
