package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

// CreateGroup persists a new group without members.
func (s *SQLiteStore) CreateGroup(ctx context.Context, g *models.Group) error {
	createdAt := s.timestamp()

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO expense_groups (name, created_at) VALUES (?, ?)",
		g.Name, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("group %q: %w", g.Name, models.ErrDuplicateEntity)
		}
		return fmt.Errorf("failed to insert group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get group id: %w", err)
	}

	g.ID = id
	g.CreatedAt = createdAt
	g.Members = nil
	return nil
}

// ListGroups retrieves all groups in creation order with their member names.
func (s *SQLiteStore) ListGroups(ctx context.Context) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM expense_groups ORDER BY created_at, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	byID := make(map[int64]*models.Group)
	for rows.Next() {
		g := &models.Group{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
		byID[g.ID] = g
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	memberRows, err := s.db.QueryContext(ctx, `
		SELECT gm.group_id, p.name
		FROM group_members gm
		JOIN participants p ON p.id = gm.participant_id
		ORDER BY gm.group_id, p.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var groupID int64
		var name string
		if err := memberRows.Scan(&groupID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		if g, ok := byID[groupID]; ok {
			g.Members = append(g.Members, name)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}

	return groups, nil
}

// AddGroupMember inserts a membership row for the participant.
func (s *SQLiteStore) AddGroupMember(ctx context.Context, groupID, participantID int64) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO group_members (group_id, participant_id, joined_at) VALUES (?, ?, ?)",
		groupID, participantID, s.timestamp(),
	)
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err):
		return models.ErrAlreadyMember
	case isForeignKeyViolation(err):
		return fmt.Errorf("group %d or participant %d: %w", groupID, participantID, models.ErrNotFound)
	default:
		return fmt.Errorf("failed to insert group member: %w", err)
	}
}

// DeleteGroup removes membership rows first, then the group.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM expense_groups WHERE id = ?", groupID).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("group %d: %w", groupID, models.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("failed to check group existence: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", groupID); err != nil {
			return fmt.Errorf("failed to delete group members: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE expenses SET group_id = NULL WHERE group_id = ?", groupID); err != nil {
			return fmt.Errorf("failed to untag group expenses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_groups WHERE id = ?", groupID); err != nil {
			return fmt.Errorf("failed to delete group: %w", err)
		}
		return nil
	})
}
