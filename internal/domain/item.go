package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Item
var (
	ErrItemIDEmpty         = errors.New("item ID cannot be empty")
	ErrItemTermEmpty       = errors.New("item term cannot be empty")
	ErrItemDefinitionEmpty = errors.New("item definition cannot be empty")
	ErrItemTermTooLong     = errors.New("item term exceeds maximum length")
)

// maxTermLength bounds the headword length; definitions are unbounded text.
const maxTermLength = 512

// Item is a single vocabulary entry: the word or phrase being learned and
// its definition. Scheduling state lives in the 1:1 MemoryState, not here.
type Item struct {
	ID         uuid.UUID `json:"id"`
	Term       string    `json:"term"`
	Definition string    `json:"definition"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewItem creates a vocabulary item with a generated ID and timestamps.
func NewItem(term, definition, notes string) (*Item, error) {
	now := time.Now().UTC()
	item := &Item{
		ID:         uuid.New(),
		Term:       term,
		Definition: definition,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrItemIDEmpty
	}

	if i.Term == "" {
		return ErrItemTermEmpty
	}

	if len(i.Term) > maxTermLength {
		return ErrItemTermTooLong
	}

	if i.Definition == "" {
		return ErrItemDefinitionEmpty
	}

	return nil
}
