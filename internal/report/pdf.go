// Package report renders group reports for export.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

const maxNameWidth = 60

var memberCols = []float64{82, 34, 34, 34}

// RenderPDF renders r as a single A4 document: the group totals followed by
// one row per member.
func RenderPDF(r *models.Report) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("render report: nil report")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle("Expense report: "+r.Group, true)
	pdf.AddPage()

	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Expense report: "+trimTo(r.Group, maxNameWidth)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, fmt.Sprintf("Expenses: %d", r.ExpenseCount))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Total", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Paid", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Remaining", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, formatMoney(r.Total), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, formatMoney(r.Paid), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, formatMoney(r.Remaining), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	memberHeader(pdf)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)

	if len(r.Members) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 8, "No shares recorded", "1", 1, "C", false, 0, "")
	}
	for _, m := range r.Members {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			memberHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
		}
		pdf.CellFormat(memberCols[0], 8, tr(trimTo(m.Participant, maxNameWidth)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(memberCols[1], 8, formatMoney(m.Owed), "1", 0, "R", false, 0, "")
		pdf.CellFormat(memberCols[2], 8, formatMoney(m.Paid), "1", 0, "R", false, 0, "")
		pdf.CellFormat(memberCols[3], 8, formatMoney(m.Outstanding()), "1", 1, "R", false, 0, "")
	}

	generated := time.Unix(r.GeneratedAt, 0).UTC()
	pdf.SetY(-18)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 10, "Generated "+generated.Format(time.RFC3339), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func memberHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(memberCols[0], 8, "MEMBER", "1", 0, "L", true, 0, "")
	pdf.CellFormat(memberCols[1], 8, "OWED", "1", 0, "R", true, 0, "")
	pdf.CellFormat(memberCols[2], 8, "PAID", "1", 0, "R", true, 0, "")
	pdf.CellFormat(memberCols[3], 8, "OUTSTANDING", "1", 1, "R", true, 0, "")
}

// Filename is the suggested download name for r's PDF.
func Filename(r *models.Report) string {
	slug := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return c
		case c >= 'A' && c <= 'Z':
			return c + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(r.Group))
	if slug == "" {
		slug = "group"
	}
	date := time.Unix(r.GeneratedAt, 0).UTC().Format("2006-01-02")
	return "report-" + slug + "-" + date + ".pdf"
}

func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// formatMoney prints d with two decimals and thousands separators.
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
