package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"12.50", "12.50", false},
		{"12,50", "12.50", false},
		{"  7 ", "7.00", false},
		{"0.005", "0.01", false},
		{"12.344", "12.34", false},
		{"99999999.99", "99999999.99", false},
		{"100000000", "", true},
		{"0", "", true},
		{"0.004", "", true},
		{"-5", "", true},
		{"abc", "", true},
		{"", "", true},
		{"1.2.3", "", true},
		{"1.5e3", "1500.00", false},
		{"1e8", "", true},
		{"1e999999999", "", true},
		{"1e-999999999", "", true},
		{"0.000000000000000000001", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAmount(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("expected ErrInvalidAmount, got %v", err)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Field != "amount" {
					t.Errorf("expected ValidationError on amount, got %v", err)
				}
				return
			}
			if got.StringFixed(2) != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got.StringFixed(2), tt.want)
			}
		})
	}
}

func TestCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{1, 99, 100, 12345, 9_999_999_999} {
		if got := ToCents(FromCents(cents)); got != cents {
			t.Errorf("ToCents(FromCents(%d)) = %d", cents, got)
		}
	}
	if got := ToCents(decimal.RequireFromString("0.015")); got != 2 {
		t.Errorf("expected half-up rounding to 2 cents, got %d", got)
	}
}
