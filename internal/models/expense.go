package models

import "github.com/shopspring/decimal"

// Expense represents a single recorded expense.
// Expenses are immutable once created; they can only be deleted.
type Expense struct {
	// ID is assigned by the store.
	ID int64

	// Name describes the expense (e.g., "Groceries", "Electricity bill").
	Name string

	// Amount is positive with at most two fractional digits.
	Amount decimal.Decimal

	// GroupID optionally ties the expense to a group. Zero means untagged.
	// Only consulted when splits are scoped to the group's own expenses.
	GroupID int64

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseShare is one participant's portion of one expense.
type ExpenseShare struct {
	ExpenseID     int64
	ParticipantID int64

	// Participant is the participant's name, resolved for display.
	Participant string

	Amount decimal.Decimal
	Paid   bool
}

// SplitResult is the outcome of an equal split over a group.
type SplitResult struct {
	Group string

	// Total is the sum of all expenses that were distributed.
	Total decimal.Decimal

	// ExpenseCount is how many expenses contributed to Total.
	ExpenseCount int

	// PerMember maps each member name to the sum of their shares.
	PerMember map[string]decimal.Decimal

	// Shares are the rows written to the store, one per (expense, member).
	Shares []ExpenseShare
}
