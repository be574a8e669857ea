package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// CreateExpense persists a new expense with a store-assigned ID.
func (s *SQLiteStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	createdAt := s.timestamp()

	var groupID any
	if e.GroupID != 0 {
		groupID = e.GroupID
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (name, amount_cents, group_id, created_at) VALUES (?, ?, ?, ?)",
		e.Name, models.ToCents(e.Amount), groupID, createdAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("group %d: %w", e.GroupID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense id: %w", err)
	}

	e.ID = id
	e.CreatedAt = createdAt
	return nil
}

// ListExpenses retrieves all expenses, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount_cents, group_id, created_at FROM expenses ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var cents int64
		var groupID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Name, &cents, &groupID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = models.FromCents(cents)
		if groupID.Valid {
			e.GroupID = groupID.Int64
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// DeleteExpense removes the expense's shares, then the expense.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_shares WHERE expense_id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense shares: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return nil
	})
}
