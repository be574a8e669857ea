// Package ledger owns the application state: it is the only writer to the
// store and keeps an in-memory cache of participants, groups and expenses
// that mirrors confirmed writes.
package ledger

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// maxNameLength matches the VARCHAR(255) limit of the name columns.
const maxNameLength = 255

// Scope selects which expenses a split distributes.
type Scope string

const (
	// ScopeAll splits every recorded expense across the group.
	ScopeAll Scope = "all"
	// ScopeGroup splits only the expenses tagged with the group.
	ScopeGroup Scope = "group"
)

// ParseScope converts a configuration value into a Scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeAll:
		return ScopeAll, nil
	case ScopeGroup:
		return ScopeGroup, nil
	default:
		return "", fmt.Errorf("unknown split scope %q (want %q or %q)", s, ScopeAll, ScopeGroup)
	}
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPublisher publishes every confirmed change to p.
func WithPublisher(p events.Publisher) Option {
	return func(l *Ledger) { l.publisher = p }
}

// WithMetrics records split and cache statistics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Ledger) { l.metrics = m }
}

// WithScope sets which expenses CalculateSplit distributes.
func WithScope(s Scope) Option {
	return func(l *Ledger) { l.scope = s }
}

// WithClock overrides the clock used for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// Ledger serializes all operations: one runs to completion before the next
// starts. Mutations write to the store first and only touch the cache once
// the store confirmed the write.
type Ledger struct {
	mu sync.Mutex

	store     storage.Store
	publisher events.Publisher
	metrics   *metrics.Metrics
	scope     Scope
	now       func() time.Time

	participants []*models.Participant // creation order
	byName       map[string]*models.Participant
	groups       []*models.Group   // creation order
	expenses     []*models.Expense // newest first
}

// New creates a Ledger and bulk-loads the cache from store.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		store:     store,
		publisher: events.NopPublisher{},
		scope:     ScopeAll,
		now:       time.Now,
		byName:    make(map[string]*models.Participant),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.load(ctx); err != nil {
		return nil, err
	}

	slog.Info("Ledger loaded",
		"participants", len(l.participants),
		"groups", len(l.groups),
		"expenses", len(l.expenses),
		"scope", l.scope,
	)
	return l, nil
}

func (l *Ledger) load(ctx context.Context) error {
	participants, err := l.store.ListParticipants(ctx)
	if err != nil {
		return &models.PersistenceError{Op: "load participants", Err: err}
	}
	groups, err := l.store.ListGroups(ctx)
	if err != nil {
		return &models.PersistenceError{Op: "load groups", Err: err}
	}
	expenses, err := l.store.ListExpenses(ctx)
	if err != nil {
		return &models.PersistenceError{Op: "load expenses", Err: err}
	}

	for _, p := range participants {
		l.byName[p.Name] = p
	}
	for _, g := range groups {
		slices.Sort(g.Members)
		g.Members = slices.Compact(g.Members)
	}
	sortExpenses(expenses)

	l.participants = participants
	l.groups = groups
	l.expenses = expenses
	l.updateGauges()
	return nil
}

// storeError passes domain errors through and wraps everything else.
func storeError(op string, err error) error {
	if models.IsDomainError(err) {
		return err
	}
	return &models.PersistenceError{Op: op, Err: err}
}

// publish emits a change event. Delivery failures are logged only; the change
// itself is already committed.
func (l *Ledger) publish(ctx context.Context, typ events.Type, payload any) {
	event, err := events.New(typ, payload)
	if err == nil {
		err = l.publisher.Publish(ctx, event)
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to publish ledger event", "type", typ, "error", err)
	}
}

func (l *Ledger) updateGauges() {
	l.metrics.SetEntities(len(l.participants), len(l.groups), len(l.expenses))
}

// findGroup resolves a group by name. Names are trimmed the way CreateGroup
// stores them; an empty name is a validation error, not a miss.
func (l *Ledger) findGroup(name string) (int, *models.Group, error) {
	name, err := validateName("group", name)
	if err != nil {
		return -1, nil, err
	}
	i := slices.IndexFunc(l.groups, func(g *models.Group) bool { return g.Name == name })
	if i < 0 {
		return -1, nil, fmt.Errorf("group %q: %w", name, models.ErrNotFound)
	}
	return i, l.groups[i], nil
}

func (l *Ledger) findParticipant(name string) (*models.Participant, error) {
	name, err := validateName("participant", name)
	if err != nil {
		return nil, err
	}
	p, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("participant %q: %w", name, models.ErrNotFound)
	}
	return p, nil
}

func validateName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &models.ValidationError{Field: field, Reason: "required"}
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", &models.ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", maxNameLength)}
	}
	return name, nil
}

// sortExpenses orders expenses newest first, breaking ties by descending ID.
func sortExpenses(expenses []*models.Expense) {
	slices.SortStableFunc(expenses, func(a, b *models.Expense) int {
		if c := cmp.Compare(b.CreatedAt, a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

func cloneGroup(g *models.Group) models.Group {
	cp := *g
	cp.Members = slices.Clone(g.Members)
	return cp
}
