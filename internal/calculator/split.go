package calculator

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// Allocation is one member's portion of a single amount.
type Allocation struct {
	Participant string
	Amount      decimal.Decimal
}

// ExpenseAmount is the minimal expense information needed to split it.
type ExpenseAmount struct {
	ID     int64
	Amount decimal.Decimal
}

// Share is one member's portion of one expense.
type Share struct {
	ExpenseID   int64
	Participant string
	Amount      decimal.Decimal
}

// Split is the result of dividing a set of expenses across members.
type Split struct {
	Total     decimal.Decimal
	PerMember map[string]decimal.Decimal
	Shares    []Share
}

// EqualSplit divides amount equally across members in whole cents.
//
// Members are ordered by name. The cents that do not divide evenly are handed
// out one each, starting at position offset (mod len(members)), so the
// allocations always sum to amount exactly.
func EqualSplit(amount decimal.Decimal, members []string, offset int) ([]Allocation, error) {
	if len(members) == 0 {
		return nil, models.ErrNoMembers
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("cannot split %s: %w", amount.StringFixed(2), models.ErrInvalidAmount)
	}

	sorted := slices.Clone(members)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	n := int64(len(sorted))
	cents := models.ToCents(amount)
	base, remainder := cents/n, cents%n

	start := int64(offset) % n
	if start < 0 {
		start += n
	}

	allocations := make([]Allocation, len(sorted))
	for i, name := range sorted {
		share := base
		// Position relative to the first member that receives a remainder cent
		if (int64(i)-start+n)%n < remainder {
			share++
		}
		allocations[i] = Allocation{Participant: name, Amount: models.FromCents(share)}
	}
	return allocations, nil
}

// SplitExpenses divides every expense equally across members.
// Expense i starts its remainder cents at member i, spreading rounding
// differences evenly across members over many expenses.
func SplitExpenses(expenses []ExpenseAmount, members []string) (*Split, error) {
	if len(members) == 0 {
		return nil, models.ErrNoMembers
	}
	if len(expenses) == 0 {
		return nil, models.ErrInsufficientData
	}

	split := &Split{
		Total:     decimal.Zero,
		PerMember: make(map[string]decimal.Decimal, len(members)),
	}
	for _, m := range members {
		split.PerMember[m] = decimal.Zero
	}

	for i, exp := range expenses {
		allocations, err := EqualSplit(exp.Amount, members, i)
		if err != nil {
			return nil, fmt.Errorf("failed to split expense %d: %w", exp.ID, err)
		}
		split.Total = split.Total.Add(exp.Amount)
		for _, a := range allocations {
			split.PerMember[a.Participant] = split.PerMember[a.Participant].Add(a.Amount)
			split.Shares = append(split.Shares, Share{
				ExpenseID:   exp.ID,
				Participant: a.Participant,
				Amount:      a.Amount,
			})
		}
	}

	return split, nil
}
