package models

import "github.com/shopspring/decimal"

// Report summarizes the shares owed by the members of a group.
// All amounts are zero when the members have no shares.
type Report struct {
	Group string

	// Total is the sum of all share amounts of the group's members.
	Total decimal.Decimal

	// ExpenseCount is the number of distinct expenses those shares belong to.
	ExpenseCount int

	Paid      decimal.Decimal
	Remaining decimal.Decimal

	// Members holds the per-member breakdown, ordered by name.
	Members []MemberSummary

	// GeneratedAt is the Unix timestamp when the report was produced.
	GeneratedAt int64
}

// MemberSummary is one member's share totals within a Report.
type MemberSummary struct {
	Participant string
	Owed        decimal.Decimal
	Paid        decimal.Decimal
}

// Outstanding returns what the member still has to pay.
func (m MemberSummary) Outstanding() decimal.Decimal {
	return m.Owed.Sub(m.Paid)
}
