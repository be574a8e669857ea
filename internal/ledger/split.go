package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// CalculateSplit divides the in-scope expenses equally across the group's
// members and records one share per (expense, member). Repeating a split
// overwrites share amounts; a paid flag survives only if its amount is unchanged.
func (l *Ledger) CalculateSplit(ctx context.Context, groupName string) (*models.SplitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, g, err := l.findGroup(groupName)
	if err != nil {
		return nil, err
	}

	var amounts []calculator.ExpenseAmount
	for _, e := range l.expenses {
		if l.scope == ScopeGroup && e.GroupID != g.ID {
			continue
		}
		amounts = append(amounts, calculator.ExpenseAmount{ID: e.ID, Amount: e.Amount})
	}
	if len(g.Members) == 0 || len(amounts) == 0 {
		return nil, fmt.Errorf("split %q: %w", g.Name, models.ErrInsufficientData)
	}

	split, err := calculator.SplitExpenses(amounts, g.Members)
	if err != nil {
		return nil, err
	}

	shares := make([]models.ExpenseShare, 0, len(split.Shares))
	for _, s := range split.Shares {
		p, err := l.findParticipant(s.Participant)
		if err != nil {
			return nil, err
		}
		shares = append(shares, models.ExpenseShare{
			ExpenseID:     s.ExpenseID,
			ParticipantID: p.ID,
			Participant:   p.Name,
			Amount:        s.Amount,
		})
	}

	if err := l.store.UpsertShares(ctx, shares); err != nil {
		return nil, storeError("record shares", err)
	}

	l.metrics.ObserveSplit(len(shares))
	slog.InfoContext(ctx, "Split calculated",
		"group", g.Name,
		"members", len(g.Members),
		"expenses", len(amounts),
		"total", split.Total.StringFixed(2),
	)
	l.publish(ctx, events.SplitCalculated, map[string]any{
		"group_id": g.ID,
		"total":    split.Total.StringFixed(2),
		"shares":   len(shares),
	})

	return &models.SplitResult{
		Group:        g.Name,
		Total:        split.Total,
		ExpenseCount: len(amounts),
		PerMember:    split.PerMember,
		Shares:       shares,
	}, nil
}

// MarkSharePaid flags a participant's share of an expense as paid.
func (l *Ledger) MarkSharePaid(ctx context.Context, expenseID int64, participantName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.findParticipant(participantName)
	if err != nil {
		return err
	}
	if err := l.store.MarkSharePaid(ctx, expenseID, p.ID); err != nil {
		return storeError("mark share paid", err)
	}

	slog.InfoContext(ctx, "Share marked paid", "expense_id", expenseID, "participant", p.Name)
	l.publish(ctx, events.SharePaid, map[string]int64{
		"expense_id":     expenseID,
		"participant_id": p.ID,
	})
	return nil
}

// GenerateReport summarizes the shares of the group's members.
func (l *Ledger) GenerateReport(ctx context.Context, groupName string) (*models.Report, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, g, err := l.findGroup(groupName)
	if err != nil {
		return nil, err
	}

	report, err := l.store.GroupReport(ctx, g.ID)
	if err != nil {
		return nil, storeError("generate report", err)
	}
	report.Group = g.Name
	report.GeneratedAt = l.now().Unix()
	return report, nil
}

// GroupShares returns the recorded shares of the group's current members,
// ordered by expense then participant.
func (l *Ledger) GroupShares(ctx context.Context, groupName string) ([]models.ExpenseShare, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, g, err := l.findGroup(groupName)
	if err != nil {
		return nil, err
	}
	if len(g.Members) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(g.Members))
	for _, name := range g.Members {
		p, err := l.findParticipant(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, p.ID)
	}

	shares, err := l.store.ListShares(ctx, ids)
	if err != nil {
		return nil, storeError("list shares", err)
	}
	return shares, nil
}
