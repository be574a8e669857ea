package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// AddParticipant registers a participant. Email is optional.
func (l *Ledger) AddParticipant(ctx context.Context, name, email string) (models.Participant, error) {
	name, err := validateName("name", name)
	if err != nil {
		return models.Participant{}, err
	}
	email = strings.TrimSpace(email)
	if email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return models.Participant{}, &models.ValidationError{Field: "email", Reason: "malformed address"}
		}
		email = addr.Address
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.byName[name]; exists {
		return models.Participant{}, fmt.Errorf("participant %q: %w", name, models.ErrDuplicateEntity)
	}

	p := &models.Participant{Name: name, Email: email}
	if err := l.store.CreateParticipant(ctx, p); err != nil {
		return models.Participant{}, storeError("add participant", err)
	}

	l.participants = append(l.participants, p)
	l.byName[p.Name] = p
	l.updateGauges()

	slog.InfoContext(ctx, "Participant added", "participant_id", p.ID, "name", p.Name)
	l.publish(ctx, events.ParticipantAdded, p)
	return *p, nil
}

// ListParticipants returns all participants in creation order.
func (l *Ledger) ListParticipants() []models.Participant {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.Participant, len(l.participants))
	for i, p := range l.participants {
		out[i] = *p
	}
	return out
}
