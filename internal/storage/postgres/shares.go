package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mmynk/splitledger/internal/models"
)

// UpsertShares writes all shares in one transaction using a single batch.
// A row whose amount changes loses its paid flag.
func (s *PostgresStore) UpsertShares(ctx context.Context, shares []models.ExpenseShare) error {
	if len(shares) == 0 {
		return nil
	}

	return s.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, share := range shares {
			batch.Queue(`
				INSERT INTO expense_shares (expense_id, participant_id, share_amount_cents, is_paid)
				VALUES ($1, $2, $3, FALSE)
				ON CONFLICT (expense_id, participant_id)
				DO UPDATE SET share_amount_cents = EXCLUDED.share_amount_cents,
					is_paid = CASE WHEN expense_shares.share_amount_cents = EXCLUDED.share_amount_cents
						THEN expense_shares.is_paid ELSE FALSE END`,
				share.ExpenseID, share.ParticipantID, models.ToCents(share.Amount),
			)
		}

		results := tx.SendBatch(ctx, batch)
		for _, share := range shares {
			if _, err := results.Exec(); err != nil {
				results.Close()
				if pgErrorCode(err) == codeForeignKeyViolation {
					return fmt.Errorf("expense %d or participant %d: %w", share.ExpenseID, share.ParticipantID, models.ErrNotFound)
				}
				return fmt.Errorf("failed to upsert share: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close share batch: %w", err)
		}
		return nil
	})
}

// ListShares retrieves the shares of the given participants.
func (s *PostgresStore) ListShares(ctx context.Context, participantIDs []int64) ([]models.ExpenseShare, error) {
	if len(participantIDs) == 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, `
		SELECT es.expense_id, es.participant_id, p.name, es.share_amount_cents, es.is_paid
		FROM expense_shares es
		JOIN participants p ON p.id = es.participant_id
		WHERE es.participant_id = ANY($1)
		ORDER BY es.expense_id, p.name`,
		participantIDs,
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
func (s *PostgresStore) MarkSharePaid(ctx context.Context, expenseID, participantID int64) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE expense_shares SET is_paid = TRUE WHERE expense_id = $1 AND participant_id = $2",
		expenseID, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark share paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("share of expense %d for participant %d: %w", expenseID, participantID, models.ErrNotFound)
	}
	return nil
}

// GroupReport aggregates the shares of every member of the group.
func (s *PostgresStore) GroupReport(ctx context.Context, groupID int64) (*models.Report, error) {
	var totalCents, paidCents, expenseCount int64
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(es.share_amount_cents), 0)::BIGINT,
		       COUNT(DISTINCT e.id),
		       COALESCE(SUM(CASE WHEN es.is_paid THEN es.share_amount_cents ELSE 0 END), 0)::BIGINT
		FROM expenses e
		JOIN expense_shares es ON e.id = es.expense_id
		JOIN group_members gm ON es.participant_id = gm.participant_id
		WHERE gm.group_id = $1`,
		groupID,
	).Scan(&totalCents, &expenseCount, &paidCents)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate group shares: %w", err)
	}

	report := &models.Report{
		Total:        models.FromCents(totalCents),
		ExpenseCount: int(expenseCount),
		Paid:         models.FromCents(paidCents),
		Remaining:    models.FromCents(totalCents - paidCents),
	}

	rows, err := s.pool.Query(ctx, `
		SELECT p.name,
		       COALESCE(SUM(es.share_amount_cents), 0)::BIGINT,
		       COALESCE(SUM(CASE WHEN es.is_paid THEN es.share_amount_cents ELSE 0 END), 0)::BIGINT
		FROM group_members gm
		JOIN participants p ON p.id = gm.participant_id
		LEFT JOIN expense_shares es ON es.participant_id = p.id
		WHERE gm.group_id = $1
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
