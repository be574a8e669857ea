package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

func TestRenderPDF(t *testing.T) {
	tests := []struct {
		name   string
		report *models.Report
	}{
		{
			name:   "empty report",
			report: &models.Report{Group: "Empty"},
		},
		{
			name: "report with members",
			report: &models.Report{
				Group:        "Ski Trip",
				Total:        decimal.RequireFromString("100.00"),
				ExpenseCount: 2,
				Paid:         decimal.RequireFromString("40.00"),
				Remaining:    decimal.RequireFromString("60.00"),
				Members: []models.MemberSummary{
					{Participant: "Alice", Owed: decimal.RequireFromString("50"), Paid: decimal.Zero},
					{Participant: "Zoë", Owed: decimal.RequireFromString("50"), Paid: decimal.RequireFromString("40")},
				},
				GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Unix(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := RenderPDF(tt.report)
			if err != nil {
				t.Fatalf("RenderPDF failed: %v", err)
			}
			if !bytes.HasPrefix(out, []byte("%PDF-")) {
				t.Errorf("Expected PDF header, got %q", out[:min(len(out), 8)])
			}
		})
	}
}

func TestRenderPDF_NilReport(t *testing.T) {
	if _, err := RenderPDF(nil); err == nil {
		t.Error("Expected error for nil report")
	}
}

func TestRenderPDF_ManyMembers(t *testing.T) {
	r := &models.Report{Group: "Club"}
	for i := 0; i < 80; i++ {
		r.Members = append(r.Members, models.MemberSummary{
			Participant: strings.Repeat("m", i%70+1),
			Owed:        decimal.NewFromInt(int64(i)),
		})
	}
	out, err := RenderPDF(r)
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	single, err := RenderPDF(&models.Report{Group: "Club"})
	if err != nil {
		t.Fatalf("RenderPDF failed: %v", err)
	}
	if len(out) <= len(single) {
		t.Errorf("Expected member rows to grow the document: %d <= %d bytes", len(out), len(single))
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"12.5", "12.50"},
		{"999.99", "999.99"},
		{"1000", "1,000.00"},
		{"1234567.891", "1,234,567.89"},
		{"-2500.10", "-2,500.10"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := formatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("formatMoney(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	r := &models.Report{
		Group:       "Ski Trip 2026!",
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC).Unix(),
	}
	if got, want := Filename(r), "report-ski-trip-2026--2026-03-01.pdf"; got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}
