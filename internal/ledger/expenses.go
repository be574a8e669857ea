package ledger

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// AddExpense records an expense that is not tied to any group.
func (l *Ledger) AddExpense(ctx context.Context, name string, amount decimal.Decimal) (models.Expense, error) {
	return l.addExpense(ctx, "", name, amount)
}

// AddGroupExpense records an expense tagged with a group.
func (l *Ledger) AddGroupExpense(ctx context.Context, groupName, name string, amount decimal.Decimal) (models.Expense, error) {
	return l.addExpense(ctx, groupName, name, amount)
}

func (l *Ledger) addExpense(ctx context.Context, groupName, name string, amount decimal.Decimal) (models.Expense, error) {
	name, err := validateName("name", name)
	if err != nil {
		return models.Expense{}, err
	}
	amount, err = models.NormalizeAmount(amount)
	if err != nil {
		return models.Expense{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e := &models.Expense{Name: name, Amount: amount}
	if groupName != "" {
		_, g, err := l.findGroup(groupName)
		if err != nil {
			return models.Expense{}, err
		}
		e.GroupID = g.ID
	}

	if err := l.store.CreateExpense(ctx, e); err != nil {
		return models.Expense{}, storeError("add expense", err)
	}

	l.expenses = append(l.expenses, e)
	sortExpenses(l.expenses)
	l.updateGauges()

	slog.InfoContext(ctx, "Expense added",
		"expense_id", e.ID,
		"name", e.Name,
		"amount", e.Amount.StringFixed(2),
		"group_id", e.GroupID,
	)
	l.publish(ctx, events.ExpenseAdded, map[string]any{
		"id":       e.ID,
		"name":     e.Name,
		"amount":   e.Amount.StringFixed(2),
		"group_id": e.GroupID,
	})
	return *e, nil
}

// ListExpenses returns all expenses, newest first.
func (l *Ledger) ListExpenses() []models.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Expense, len(l.expenses))
	for i, e := range l.expenses {
		out[i] = *e
	}
	return out
}

// DeleteExpense removes an expense and its shares.
// Deleting an unknown expense succeeds without changes.
func (l *Ledger) DeleteExpense(ctx context.Context, expenseID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.DeleteExpense(ctx, expenseID); err != nil {
		return storeError("delete expense", err)
	}

	before := len(l.expenses)
	l.expenses = slices.DeleteFunc(l.expenses, func(e *models.Expense) bool { return e.ID == expenseID })
	if len(l.expenses) == before {
		return nil
	}
	l.updateGauges()

	slog.InfoContext(ctx, "Expense deleted", "expense_id", expenseID)
	l.publish(ctx, events.ExpenseDeleted, map[string]int64{"id": expenseID})
	return nil
}
