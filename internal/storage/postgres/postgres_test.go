package postgres

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/splitledger/internal/models"
)

// newTestStore connects to TEST_DATABASE_URL and empties every table.
// Tests are skipped when the variable is not set.
func newTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	_, err = store.pool.Exec(ctx,
		"TRUNCATE expense_shares, expenses, group_members, expense_groups, participants RESTART IDENTITY CASCADE",
	)
	if err != nil {
		t.Fatalf("Failed to reset tables: %v", err)
	}
	return store
}

func TestPostgresStore_Lifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := &models.Participant{Name: "Alice", Email: "alice@example.com"}
	bob := &models.Participant{Name: "Bob"}
	for _, p := range []*models.Participant{alice, bob} {
		if err := store.CreateParticipant(ctx, p); err != nil {
			t.Fatalf("CreateParticipant(%s) failed: %v", p.Name, err)
		}
	}
	if err := store.CreateParticipant(ctx, &models.Participant{Name: "Alice"}); !errors.Is(err, models.ErrDuplicateEntity) {
		t.Errorf("Expected ErrDuplicateEntity, got %v", err)
	}

	group := &models.Group{Name: "Roommates"}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	for _, p := range []*models.Participant{alice, bob} {
		if err := store.AddGroupMember(ctx, group.ID, p.ID); err != nil {
			t.Fatalf("AddGroupMember(%s) failed: %v", p.Name, err)
		}
	}
	if err := store.AddGroupMember(ctx, group.ID, alice.ID); !errors.Is(err, models.ErrAlreadyMember) {
		t.Errorf("Expected ErrAlreadyMember, got %v", err)
	}
	if err := store.AddGroupMember(ctx, group.ID, 9999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown participant, got %v", err)
	}

	groups, err := store.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 1 || len(groups[0].Members) != 2 || groups[0].Members[0] != "Alice" {
		t.Fatalf("Unexpected groups: %+v", groups)
	}

	expense := &models.Expense{Name: "Rent", Amount: decimal.RequireFromString("100.01")}
	if err := store.CreateExpense(ctx, expense); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	shares := []models.ExpenseShare{
		{ExpenseID: expense.ID, ParticipantID: alice.ID, Amount: decimal.RequireFromString("50.01")},
		{ExpenseID: expense.ID, ParticipantID: bob.ID, Amount: decimal.RequireFromString("50.00")},
	}
	if err := store.UpsertShares(ctx, shares); err != nil {
		t.Fatalf("UpsertShares failed: %v", err)
	}
	if err := store.MarkSharePaid(ctx, expense.ID, alice.ID); err != nil {
		t.Fatalf("MarkSharePaid failed: %v", err)
	}
	// A second split must not add rows or reset the paid flag.
	if err := store.UpsertShares(ctx, shares); err != nil {
		t.Fatalf("second UpsertShares failed: %v", err)
	}

	listed, err := store.ListShares(ctx, []int64{alice.ID, bob.ID})
	if err != nil {
		t.Fatalf("ListShares failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("Expected 2 shares, got %d", len(listed))
	}
	if !listed[0].Paid || listed[1].Paid {
		t.Errorf("Expected only Alice's share paid, got %+v", listed)
	}

	// A changed amount clears the paid flag.
	bobShare := shares[1]
	bobShare.Amount = decimal.RequireFromString("40.00")
	if err := store.MarkSharePaid(ctx, expense.ID, bob.ID); err != nil {
		t.Fatalf("MarkSharePaid failed: %v", err)
	}
	if err := store.UpsertShares(ctx, []models.ExpenseShare{bobShare}); err != nil {
		t.Fatalf("UpsertShares failed: %v", err)
	}
	if rows, err := store.ListShares(ctx, []int64{bob.ID}); err != nil || len(rows) != 1 || rows[0].Paid {
		t.Errorf("Expected Bob's rewritten share unpaid, got %+v, %v", rows, err)
	}
	bobShare.Amount = decimal.RequireFromString("50.00")
	if err := store.UpsertShares(ctx, []models.ExpenseShare{bobShare}); err != nil {
		t.Fatalf("UpsertShares failed: %v", err)
	}

	report, err := store.GroupReport(ctx, group.ID)
	if err != nil {
		t.Fatalf("GroupReport failed: %v", err)
	}
	if !report.Total.Equal(decimal.RequireFromString("100.01")) {
		t.Errorf("Expected total 100.01, got %s", report.Total)
	}
	if report.ExpenseCount != 1 {
		t.Errorf("Expected 1 expense, got %d", report.ExpenseCount)
	}
	if !report.Remaining.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("Expected remaining 50.00, got %s", report.Remaining)
	}

	if err := store.DeleteGroup(ctx, group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	if err := store.DeleteExpense(ctx, expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	expenses, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("Expected no expenses, got %d", len(expenses))
	}
}
