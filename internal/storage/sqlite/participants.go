package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// CreateParticipant inserts a new participant into the database.
func (s *SQLiteStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	createdAt := s.timestamp()

	var email any
	if p.Email != "" {
		email = p.Email
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (name, email, created_at) VALUES (?, ?, ?)",
		p.Name, email, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("participant %q: %w", p.Name, models.ErrDuplicateEntity)
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get participant id: %w", err)
	}

	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

// ListParticipants retrieves all participants in creation order.
func (s *SQLiteStore) ListParticipants(ctx context.Context) ([]*models.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, created_at FROM participants ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		var email sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if email.Valid {
			p.Email = email.String
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}
