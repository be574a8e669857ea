package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// UpsertShares writes all shares in one transaction, keyed by (expense, participant).
// A row whose amount changes loses its paid flag.
func (s *SQLiteStore) UpsertShares(ctx context.Context, shares []models.ExpenseShare) error {
	if len(shares) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO expense_shares (expense_id, participant_id, share_amount_cents, is_paid)
			VALUES (?, ?, ?, 0)
			ON CONFLICT (expense_id, participant_id)
			DO UPDATE SET share_amount_cents = excluded.share_amount_cents,
				is_paid = CASE WHEN expense_shares.share_amount_cents = excluded.share_amount_cents
					THEN expense_shares.is_paid ELSE 0 END`,
		)
		if err != nil {
			return fmt.Errorf("failed to prepare share upsert: %w", err)
		}
		defer stmt.Close()

		for _, share := range shares {
			if _, err := stmt.ExecContext(ctx, share.ExpenseID, share.ParticipantID, models.ToCents(share.Amount)); err != nil {
				if isForeignKeyViolation(err) {
					return fmt.Errorf("expense %d or participant %d: %w", share.ExpenseID, share.ParticipantID, models.ErrNotFound)
				}
				return fmt.Errorf("failed to upsert share: %w", err)
			}
		}
		return nil
	})
}

// ListShares retrieves the shares of the given participants.
func (s *SQLiteStore) ListShares(ctx context.Context, participantIDs []int64) ([]models.ExpenseShare, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}

	args := make([]any, len(participantIDs))
	for i, id := range participantIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT es.expense_id, es.participant_id, p.name, es.share_amount_cents, es.is_paid
		FROM expense_shares es
		JOIN participants p ON p.id = es.participant_id
		WHERE es.participant_id IN (`+placeholders(len(participantIDs))+`)
		ORDER BY es.expense_id, p.name`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	defer rows.Close()

	var shares []models.ExpenseShare
	for rows.Next() {
		var share models.ExpenseShare
		var cents int64
		if err := rows.Scan(&share.ExpenseID, &share.ParticipantID, &share.Participant, &cents, &share.Paid); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		share.Amount = models.FromCents(cents)
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shares: %w", err)
	}

	return shares, nil
}

// MarkSharePaid flags one share as paid.
func (s *SQLiteStore) MarkSharePaid(ctx context.Context, expenseID, participantID int64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE expense_shares SET is_paid = 1 WHERE expense_id = ? AND participant_id = ?",
		expenseID, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark share paid: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated shares: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("share of expense %d for participant %d: %w", expenseID, participantID, models.ErrNotFound)
	}
	return nil
}

// GroupReport aggregates the shares of every member of the group.
func (s *SQLiteStore) GroupReport(ctx context.Context, groupID int64) (*models.Report, error) {
	var totalCents, paidCents int64
	var expenseCount int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(es.share_amount_cents), 0),
		       COUNT(DISTINCT e.id),
		       COALESCE(SUM(CASE WHEN es.is_paid THEN es.share_amount_cents ELSE 0 END), 0)
		FROM expenses e
		JOIN expense_shares es ON e.id = es.expense_id
		JOIN group_members gm ON es.participant_id = gm.participant_id
		WHERE gm.group_id = ?`,
		groupID,
	).Scan(&totalCents, &expenseCount, &paidCents)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate group shares: %w", err)
	}

	report := &models.Report{
		Total:        models.FromCents(totalCents),
		ExpenseCount: expenseCount,
		Paid:         models.FromCents(paidCents),
		Remaining:    models.FromCents(totalCents - paidCents),
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name,
		       COALESCE(SUM(es.share_amount_cents), 0),
		       COALESCE(SUM(CASE WHEN es.is_paid THEN es.share_amount_cents ELSE 0 END), 0)
		FROM group_members gm
		JOIN participants p ON p.id = gm.participant_id
		LEFT JOIN expense_shares es ON es.participant_id = p.id
		WHERE gm.group_id = ?
		GROUP BY p.id, p.name
		ORDER BY p.name`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate member shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.MemberSummary
		var owed, paid int64
		if err := rows.Scan(&m.Participant, &owed, &paid); err != nil {
			return nil, fmt.Errorf("failed to scan member summary: %w", err)
		}
		m.Owed = models.FromCents(owed)
		m.Paid = models.FromCents(paid)
		report.Members = append(report.Members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate member summaries: %w", err)
	}

	return report, nil
}
