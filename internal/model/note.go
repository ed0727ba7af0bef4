package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultNoteColor is applied when a create payload carries no color.
const DefaultNoteColor = "#ffffff"

// NoteStore defines persistence operations for notes.
type NoteStore interface {
	Create(ctx context.Context, note Note) (Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (Note, error)
	Update(ctx context.Context, note Note) (Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListActive(ctx context.Context) ([]Note, error)
	ListActiveByEmail(ctx context.Context, email string) ([]Note, error)
	ListTrashedByEmail(ctx context.Context, email string) ([]Note, error)
	PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	CountTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Note represents a stored note entity. Invariant: Deleted is true
// iff DeletedAt is non-nil.
type Note struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Color     string     `json:"color"`
	Pinned    bool       `json:"pinned"`
	Archived  bool       `json:"archived"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NoteState enumerates note lifecycle states. Purged is terminal: the
// record no longer exists, so it is never observed on a loaded note.
type NoteState string

const (
	NoteStateActive  NoteState = "active"
	NoteStateTrashed NoteState = "trashed"
	NoteStatePurged  NoteState = "purged"
)

// State derives the lifecycle state from the deleted flag pair.
func (n Note) State() NoteState {
	if n.Deleted {
		return NoteStateTrashed
	}
	return NoteStateActive
}

var noteTransitions = map[NoteState][]NoteState{
	NoteStateActive:  {NoteStateTrashed, NoteStatePurged},
	NoteStateTrashed: {NoteStateActive, NoteStatePurged},
}

// ValidateNoteTransition reports whether moving a note from one lifecycle
// state to another is legal. Illegal moves return ErrInvalidTransition.
func ValidateNoteTransition(from, to NoteState) error {
	for _, allowed := range noteTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return ErrInvalidTransition
}

// CreateNoteParams contains parameters to create a note.
type CreateNoteParams struct {
	Email   string
	Title   string
	Content string
	Color   string
}

// UpdateNoteParams contains the fields a partial note update may change.
// Nil pointers mean "leave as is".
type UpdateNoteParams struct {
	ID      uuid.UUID
	Title   *string
	Content *string
	Color   *string
}
