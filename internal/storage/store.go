// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the ledger.
//
// Implementations return models.ErrDuplicateEntity, models.ErrAlreadyMember
// and models.ErrNotFound (possibly wrapped) for the constraint violations they
// detect; every other error is an infrastructure failure.
type Store interface {
	// CreateParticipant persists a new participant.
	// The ID and CreatedAt fields are populated by the store.
	CreateParticipant(ctx context.Context, p *models.Participant) error

	// ListParticipants returns all participants in creation order.
	ListParticipants(ctx context.Context) ([]*models.Participant, error)

	// CreateGroup persists a new group without members.
	// The ID and CreatedAt fields are populated by the store.
	CreateGroup(ctx context.Context, g *models.Group) error

	// ListGroups returns all groups in creation order, with members resolved.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// AddGroupMember inserts a membership row.
	AddGroupMember(ctx context.Context, groupID, participantID int64) error

	// DeleteGroup removes the group's membership rows, then the group itself.
	// Expenses tagged with the group are untagged.
	DeleteGroup(ctx context.Context, groupID int64) error

	// CreateExpense persists a new expense.
	// The ID and CreatedAt fields are populated by the store.
	CreateExpense(ctx context.Context, e *models.Expense) error

	// ListExpenses returns all expenses, newest first.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// DeleteExpense removes the expense's shares, then the expense itself.
	// Deleting an absent expense is not an error.
	DeleteExpense(ctx context.Context, expenseID int64) error

	// UpsertShares writes shares keyed by (expense, participant) in a single
	// transaction. Existing rows get the new amount and keep their paid flag.
	UpsertShares(ctx context.Context, shares []models.ExpenseShare) error

	// ListShares returns the shares of the given participants, ordered by
	// expense then participant name.
	ListShares(ctx context.Context, participantIDs []int64) ([]models.ExpenseShare, error)

	// MarkSharePaid flags a single share as paid.
	MarkSharePaid(ctx context.Context, expenseID, participantID int64) error

	// GroupReport aggregates the shares of the group's members.
	GroupReport(ctx context.Context, groupID int64) (*models.Report, error)

	// Close releases any resources held by the store.
	Close() error
}
