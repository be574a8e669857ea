// Package postgres provides a PostgreSQL-backed implementation of the storage.Store interface.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure PostgresStore implements storage.Store
var _ storage.Store = (*PostgresStore)(nil)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// PostgresStore implements storage.Store using a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// New connects to the database at dsn and runs migrations.
func New(ctx context.Context, dsn string) (*PostgresStore, error) {
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool, now: time.Now}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func (s *PostgresStore) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateParticipant inserts a new participant.
func (s *PostgresStore) CreateParticipant(ctx context.Context, p *models.Participant) error {
	createdAt := s.now().Unix()

	var email *string
	if p.Email != "" {
		email = &p.Email
	}

	err := s.pool.QueryRow(ctx,
		"INSERT INTO participants (name, email, created_at) VALUES ($1, $2, $3) RETURNING id",
		p.Name, email, createdAt,
	).Scan(&p.ID)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return fmt.Errorf("participant %q: %w", p.Name, models.ErrDuplicateEntity)
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}

	p.CreatedAt = createdAt
	return nil
}

// ListParticipants retrieves all participants in creation order.
func (s *PostgresStore) ListParticipants(ctx context.Context) ([]*models.Participant, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, COALESCE(email, ''), created_at FROM participants ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		p := &models.Participant{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// CreateGroup persists a new group without members.
func (s *PostgresStore) CreateGroup(ctx context.Context, g *models.Group) error {
	createdAt := s.now().Unix()

	err := s.pool.QueryRow(ctx,
		"INSERT INTO expense_groups (name, created_at) VALUES ($1, $2) RETURNING id",
		g.Name, createdAt,
	).Scan(&g.ID)
	if err != nil {
		if pgErrorCode(err) == codeUniqueViolation {
			return fmt.Errorf("group %q: %w", g.Name, models.ErrDuplicateEntity)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	g.CreatedAt = createdAt
	g.Members = nil
	return nil
}

// ListGroups retrieves all groups in creation order with their member names.
func (s *PostgresStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT g.id, g.name, g.created_at,
		       array_remove(array_agg(p.name ORDER BY p.name), NULL)
		FROM expense_groups g
		LEFT JOIN group_members gm ON gm.group_id = g.id
		LEFT JOIN participants p ON p.id = gm.participant_id
		GROUP BY g.id, g.name, g.created_at
		ORDER BY g.created_at, g.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		g := &models.Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.Members); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		if len(g.Members) == 0 {
			g.Members = nil
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	return groups, nil
}

// AddGroupMember inserts a membership row for the participant.
func (s *PostgresStore) AddGroupMember(ctx context.Context, groupID, participantID int64) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO group_members (group_id, participant_id, joined_at) VALUES ($1, $2, $3)",
		groupID, participantID, s.now().Unix(),
	)
	switch pgErrorCode(err) {
	case "":
		if err != nil {
			return fmt.Errorf("failed to insert group member: %w", err)
		}
		return nil
	case codeUniqueViolation:
		return models.ErrAlreadyMember
	case codeForeignKeyViolation:
		return fmt.Errorf("group %d or participant %d: %w", groupID, participantID, models.ErrNotFound)
	default:
		return fmt.Errorf("failed to insert group member: %w", err)
	}
}

// DeleteGroup removes membership rows first, then the group.
func (s *PostgresStore) DeleteGroup(ctx context.Context, groupID int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM group_members WHERE group_id = $1", groupID); err != nil {
			return fmt.Errorf("failed to delete group members: %w", err)
		}
		if _, err := tx.Exec(ctx, "UPDATE expenses SET group_id = NULL WHERE group_id = $1", groupID); err != nil {
			return fmt.Errorf("failed to untag group expenses: %w", err)
		}
		tag, err := tx.Exec(ctx, "DELETE FROM expense_groups WHERE id = $1", groupID)
		if err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("group %d: %w", groupID, models.ErrNotFound)
		}
		return nil
	})
}

// CreateExpense persists a new expense with a store-assigned ID.
func (s *PostgresStore) CreateExpense(ctx context.Context, e *models.Expense) error {
	createdAt := s.now().Unix()

	var groupID *int64
	if e.GroupID != 0 {
		groupID = &e.GroupID
	}

	err := s.pool.QueryRow(ctx,
		"INSERT INTO expenses (name, amount_cents, group_id, created_at) VALUES ($1, $2, $3, $4) RETURNING id",
		e.Name, models.ToCents(e.Amount), groupID, createdAt,
	).Scan(&e.ID)
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return fmt.Errorf("group %d: %w", e.GroupID, models.ErrNotFound)
		}
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	e.CreatedAt = createdAt
	return nil
}

// ListExpenses retrieves all expenses, newest first.
func (s *PostgresStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT id, name, amount_cents, COALESCE(group_id, 0), created_at FROM expenses ORDER BY created_at DESC, id DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		var cents int64
		if err := rows.Scan(&e.ID, &e.Name, &cents, &e.GroupID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Amount = models.FromCents(cents)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense removes the expense's shares, then the expense.
func (s *PostgresStore) DeleteExpense(ctx context.Context, expenseID int64) error {
	return s.withTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM expense_shares WHERE expense_id = $1", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense shares: %w", err)
		}
		if _, err := tx.Exec(ctx, "DELETE FROM expenses WHERE id = $1", expenseID); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		return nil
	})
}
