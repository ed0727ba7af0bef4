package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/reosaurous172214/xnote-server/internal/logger"
	"github.com/reosaurous172214/xnote-server/internal/model"
)

// Note implements note CRUD, pin/archive toggles and the trash lifecycle.
type Note struct {
	noteStore model.NoteStore
	events    model.EventPublisher
	clock     model.Clock
	logger    *logger.Logger
}

func NewNote(
	noteStore model.NoteStore,
	events model.EventPublisher,
	clock model.Clock,
	logger *logger.Logger,
) *Note {
	return &Note{
		noteStore: noteStore,
		events:    events,
		clock:     clock,
		logger:    logger,
	}
}

// CreateNote creates an active note. Email and title must be present;
// color defaults to model.DefaultNoteColor.
func (s *Note) CreateNote(ctx context.Context, params model.CreateNoteParams) (model.Note, error) {
	if params.Email == "" {
		return model.Note{}, fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	if params.Title == "" {
		return model.Note{}, fmt.Errorf("%w: title is required", model.ErrValidation)
	}

	color := params.Color
	if color == "" {
		color = model.DefaultNoteColor
	}

	note := model.Note{
		ID:      uuid.New(),
		Email:   params.Email,
		Title:   params.Title,
		Content: params.Content,
		Color:   color,
	}

	saved, err := s.noteStore.Create(ctx, note)
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	s.publish(ctx, model.NoteEventCreated, saved)

	return saved, nil
}

// UpdateNote merges the provided fields into the stored note.
func (s *Note) UpdateNote(ctx context.Context, params model.UpdateNoteParams) (model.Note, error) {
	note, err := s.noteStore.GetByID(ctx, params.ID)
	if err != nil {
		return model.Note{}, err
	}

	if params.Title != nil {
		note.Title = *params.Title
	}
	if params.Content != nil {
		note.Content = *params.Content
	}
	if params.Color != nil {
		note.Color = *params.Color
	}

	saved, err := s.noteStore.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.publish(ctx, model.NoteEventUpdated, saved)

	return saved, nil
}

// DeleteNoteForever permanently removes a note. Valid from any lifecycle
// state: the operation does not check the deleted flag.
func (s *Note) DeleteNoteForever(ctx context.Context, id uuid.UUID) error {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.noteStore.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, model.NoteEventDeleted, note)

	return nil
}

// TogglePin flips the pinned flag and returns the updated note.
// Allowed regardless of the deleted state; trashed notes simply keep the
// flag without any listing surfacing it.
func (s *Note) TogglePin(ctx context.Context, id uuid.UUID) (model.Note, error) {
	return s.toggle(ctx, id, func(n *model.Note) { n.Pinned = !n.Pinned })
}

// ToggleArchive flips the archived flag and returns the updated note.
func (s *Note) ToggleArchive(ctx context.Context, id uuid.UUID) (model.Note, error) {
	return s.toggle(ctx, id, func(n *model.Note) { n.Archived = !n.Archived })
}

// TrashNote soft-deletes an active note.
func (s *Note) TrashNote(ctx context.Context, id uuid.UUID) (model.Note, error) {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if err := model.ValidateNoteTransition(note.State(), model.NoteStateTrashed); err != nil {
		return model.Note{}, err
	}

	now := s.clock.Now()
	note.Deleted = true
	note.DeletedAt = &now

	saved, err := s.noteStore.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.publish(ctx, model.NoteEventTrashed, saved)

	return saved, nil
}

// RestoreNote returns a trashed note to the active state.
func (s *Note) RestoreNote(ctx context.Context, id uuid.UUID) (model.Note, error) {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	if err := model.ValidateNoteTransition(note.State(), model.NoteStateActive); err != nil {
		return model.Note{}, err
	}

	note.Deleted = false
	note.DeletedAt = nil

	saved, err := s.noteStore.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.publish(ctx, model.NoteEventRestored, saved)

	return saved, nil
}

// ListNotes returns every active note across all users, newest first.
func (s *Note) ListNotes(ctx context.Context) ([]model.Note, error) {
	notes, err := s.noteStore.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// ListNotesForUser returns the user's active notes, pinned first, then
// newest first within each pin group.
func (s *Note) ListNotesForUser(ctx context.Context, email string) ([]model.Note, error) {
	notes, err := s.noteStore.ListActiveByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes for user: %w", err)
	}
	return notes, nil
}

// ListTrashForUser returns the user's trashed notes, most recently
// trashed first.
func (s *Note) ListTrashForUser(ctx context.Context, email string) ([]model.Note, error) {
	notes, err := s.noteStore.ListTrashedByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list trash for user: %w", err)
	}
	return notes, nil
}

func (s *Note) toggle(ctx context.Context, id uuid.UUID, flip func(*model.Note)) (model.Note, error) {
	note, err := s.noteStore.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	flip(&note)

	saved, err := s.noteStore.Update(ctx, note)
	if err != nil {
		return model.Note{}, err
	}

	s.publish(ctx, model.NoteEventUpdated, saved)

	return saved, nil
}

// publish sends a lifecycle event to the broker. Publishing is best
// effort: failures are logged and never fail the request.
func (s *Note) publish(ctx context.Context, eventType model.NoteEventType, note model.Note) {
	if s.events == nil {
		return
	}

	err := s.events.Publish(ctx, model.NoteEvent{
		Type: eventType,
		Note: &note,
	})
	if err != nil {
		s.logger.Error("Note service: failed to publish event",
			"type", string(eventType),
			"note_id", note.ID,
			"error", err.Error())
	}
}
