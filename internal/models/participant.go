package models

// Participant represents a person who takes part in expense splits.
type Participant struct {
	// ID is assigned by the store.
	ID int64

	// Name is the natural key; it is unique across all participants.
	Name string

	// Email is optional contact information. Empty when not provided.
	Email string

	// CreatedAt is the Unix timestamp when the participant was registered.
	CreatedAt int64
}
