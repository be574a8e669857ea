package models

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAmount    = errors.New("amount must be a positive number")
	ErrDuplicateEntity  = errors.New("already exists")
	ErrAlreadyMember    = errors.New("participant is already a member of the group")
	ErrInsufficientData = errors.New("add group members and expenses first")
	ErrNoMembers        = errors.New("no members in the selected group")
	ErrNotFound         = errors.New("not found")
)

// ValidationError reports a rejected input field.
// Err is an optional sentinel (for example ErrInvalidAmount).
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a store failure during the named operation.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsDomainError reports whether err is one of the ledger's own errors rather
// than an infrastructure failure. Stores return domain errors for constraint
// violations they detect themselves.
func IsDomainError(err error) bool {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return true
	case errors.Is(err, ErrDuplicateEntity),
		errors.Is(err, ErrAlreadyMember),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrInsufficientData),
		errors.Is(err, ErrNoMembers),
		errors.Is(err, ErrInvalidAmount):
		return true
	}
	return false
}
