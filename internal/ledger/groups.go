package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// CreateGroup creates an empty group.
func (l *Ledger) CreateGroup(ctx context.Context, name string) (models.Group, error) {
	name, err := validateName("group name", name)
	if err != nil {
		return models.Group{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, _, err := l.findGroup(name); err == nil {
		return models.Group{}, fmt.Errorf("group %q: %w", name, models.ErrDuplicateEntity)
	}

	g := &models.Group{Name: name}
	if err := l.store.CreateGroup(ctx, g); err != nil {
		return models.Group{}, storeError("create group", err)
	}

	l.groups = append(l.groups, g)
	l.updateGauges()

	slog.InfoContext(ctx, "Group created", "group_id", g.ID, "name", g.Name)
	l.publish(ctx, events.GroupCreated, g)
	return cloneGroup(g), nil
}

// AddMember adds a registered participant to a group.
func (l *Ledger) AddMember(ctx context.Context, groupName, participantName string) (models.Group, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i, g, err := l.findGroup(groupName)
	if err != nil {
		return models.Group{}, err
	}
	p, err := l.findParticipant(participantName)
	if err != nil {
		return models.Group{}, err
	}
	if g.HasMember(p.Name) {
		return models.Group{}, fmt.Errorf("%q in %q: %w", p.Name, g.Name, models.ErrAlreadyMember)
	}

	if err := l.store.AddGroupMember(ctx, g.ID, p.ID); err != nil {
		return models.Group{}, storeError("add member", err)
	}

	updated := g.WithMember(p.Name)
	l.groups[i] = updated

	slog.InfoContext(ctx, "Member added", "group", g.Name, "participant", p.Name)
	l.publish(ctx, events.MemberAdded, map[string]any{
		"group_id":       g.ID,
		"participant_id": p.ID,
	})
	return cloneGroup(updated), nil
}

// ListGroups returns all groups in creation order.
func (l *Ledger) ListGroups() []models.Group {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Group, len(l.groups))
	for i, g := range l.groups {
		out[i] = cloneGroup(g)
	}
	return out
}

// GroupMembers returns the member names of a group, sorted.
func (l *Ledger) GroupMembers(groupName string) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, g, err := l.findGroup(groupName)
	if err != nil {
		return nil, err
	}
	return slices.Clone(g.Members), nil
}

// DeleteGroup removes a group and its memberships. Expenses tagged with the
// group are kept and untagged.
func (l *Ledger) DeleteGroup(ctx context.Context, groupID int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.store.DeleteGroup(ctx, groupID); err != nil {
		return storeError("delete group", err)
	}

	l.groups = slices.DeleteFunc(l.groups, func(g *models.Group) bool { return g.ID == groupID })
	for _, e := range l.expenses {
		if e.GroupID == groupID {
			e.GroupID = 0
		}
	}
	l.updateGauges()

	slog.InfoContext(ctx, "Group deleted", "group_id", groupID)
	l.publish(ctx, events.GroupDeleted, map[string]int64{"group_id": groupID})
	return nil
}
