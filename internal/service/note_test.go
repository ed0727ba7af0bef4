package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reosaurous172214/xnote-server/internal/mocks"
	"github.com/reosaurous172214/xnote-server/internal/model"
	"github.com/reosaurous172214/xnote-server/internal/testutil"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newNoteService(noteStore model.NoteStore, events model.EventPublisher, now time.Time) *Note {
	return NewNote(noteStore, events, &fakeClock{now: now}, testutil.MakeNoopLogger())
}

func TestNote_CreateNote(t *testing.T) {
	ctx := context.Background()
	noteStore := &mocks.NoteStore{}
	events := &mocks.EventPublisher{}

	noteStore.On("Create", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.Email == "alice@example.com" && n.Title == "groceries" && n.Color == model.DefaultNoteColor && !n.Deleted
	})).Return(func(ctx context.Context, n model.Note) model.Note { return n }, nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.NoteEvent) bool {
		return e.Type == model.NoteEventCreated
	})).Return(nil)

	s := newNoteService(noteStore, events, time.Now())

	note, err := s.CreateNote(ctx, model.CreateNoteParams{Email: "alice@example.com", Title: "groceries"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultNoteColor, note.Color)
	assert.NotEqual(t, uuid.Nil, note.ID)
	events.AssertExpectations(t)
}

func TestNote_CreateNote_Validation(t *testing.T) {
	ctx := context.Background()
	s := newNoteService(&mocks.NoteStore{}, nil, time.Now())

	_, err := s.CreateNote(ctx, model.CreateNoteParams{Title: "no email"})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = s.CreateNote(ctx, model.CreateNoteParams{Email: "a@b.c"})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestNote_UpdateNote_MergesFields(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	stored := model.Note{ID: id, Email: "a@b.c", Title: "old", Content: "body", Color: "#abcabc"}

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).Return(stored, nil)
	noteStore.On("Update", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.Title == "new" && n.Content == "body" && n.Color == "#abcabc"
	})).Return(func(ctx context.Context, n model.Note) model.Note { return n }, nil)

	s := newNoteService(noteStore, nil, time.Now())

	title := "new"
	note, err := s.UpdateNote(ctx, model.UpdateNoteParams{ID: id, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new", note.Title)
	assert.Equal(t, "body", note.Content)
}

func TestNote_UpdateNote_NotFound(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).Return(model.Note{}, model.ErrNotFound)

	s := newNoteService(noteStore, nil, time.Now())

	_, err := s.UpdateNote(ctx, model.UpdateNoteParams{ID: id})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestNote_TogglePin_Twice(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	stored := model.Note{ID: id, Email: "a@b.c", Title: "t"}

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).Return(func(ctx context.Context, _ uuid.UUID) model.Note { return stored }, nil)
	noteStore.On("Update", mock.Anything, mock.Anything).Return(func(ctx context.Context, n model.Note) model.Note {
		stored = n
		return n
	}, nil)

	s := newNoteService(noteStore, nil, time.Now())

	note, err := s.TogglePin(ctx, id)
	require.NoError(t, err)
	assert.True(t, note.Pinned)

	note, err = s.TogglePin(ctx, id)
	require.NoError(t, err)
	assert.False(t, note.Pinned)
}

func TestNote_TogglePin_UnknownID(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).Return(model.Note{}, model.ErrNotFound)

	s := newNoteService(noteStore, nil, time.Now())

	_, err := s.TogglePin(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound)
	noteStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNote_ToggleArchive(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).Return(model.Note{ID: id}, nil)
	noteStore.On("Update", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.Archived
	})).Return(func(ctx context.Context, n model.Note) model.Note { return n }, nil)

	s := newNoteService(noteStore, nil, time.Now())

	note, err := s.ToggleArchive(ctx, id)
	require.NoError(t, err)
	assert.True(t, note.Archived)
}

func TestNote_TogglePin_OnTrashedNote(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	deletedAt := time.Now()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).
		Return(model.Note{ID: id, Deleted: true, DeletedAt: &deletedAt}, nil)
	noteStore.On("Update", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.Pinned && n.Deleted
	})).Return(func(ctx context.Context, n model.Note) model.Note { return n }, nil)

	s := newNoteService(noteStore, nil, time.Now())

	note, err := s.TogglePin(ctx, id)
	require.NoError(t, err)
	assert.True(t, note.Pinned)
}

func TestNote_TrashNote(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	noteStore := &mocks.NoteStore{}
	events := &mocks.EventPublisher{}
	noteStore.On("GetByID", mock.Anything, id).Return(model.Note{ID: id, Title: "t", Pinned: true}, nil)
	noteStore.On("Update", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return n.Deleted && n.DeletedAt != nil && n.DeletedAt.Equal(now) && n.Pinned && n.Title == "t"
	})).Return(func(ctx context.Context, n model.Note) model.Note { return n }, nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.NoteEvent) bool {
		return e.Type == model.NoteEventTrashed
	})).Return(nil)

	s := newNoteService(noteStore, events, now)

	note, err := s.TrashNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.NoteStateTrashed, note.State())
	require.NotNil(t, note.DeletedAt)
	assert.True(t, note.DeletedAt.Equal(now))
	events.AssertExpectations(t)
}

func TestNote_TrashNote_AlreadyTrashed(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	deletedAt := time.Now()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).
		Return(model.Note{ID: id, Deleted: true, DeletedAt: &deletedAt}, nil)

	s := newNoteService(noteStore, nil, time.Now())

	_, err := s.TrashNote(ctx, id)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	noteStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestNote_RestoreNote(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	deletedAt := time.Now()

	noteStore := &mocks.NoteStore{}
	events := &mocks.EventPublisher{}
	noteStore.On("GetByID", mock.Anything, id).
		Return(model.Note{ID: id, Title: "t", Archived: true, Deleted: true, DeletedAt: &deletedAt}, nil)
	noteStore.On("Update", mock.Anything, mock.MatchedBy(func(n model.Note) bool {
		return !n.Deleted && n.DeletedAt == nil && n.Archived && n.Title == "t"
	})).Return(func(ctx context.Context, n model.Note) model.Note { return n }, nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.NoteEvent) bool {
		return e.Type == model.NoteEventRestored
	})).Return(nil)

	s := newNoteService(noteStore, events, time.Now())

	note, err := s.RestoreNote(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.NoteStateActive, note.State())
	assert.Nil(t, note.DeletedAt)
	assert.True(t, note.Archived)
}

func TestNote_RestoreNote_NotTrashed(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).Return(model.Note{ID: id}, nil)

	s := newNoteService(noteStore, nil, time.Now())

	_, err := s.RestoreNote(ctx, id)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestNote_DeleteNoteForever(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	deletedAt := time.Now()

	noteStore := &mocks.NoteStore{}
	events := &mocks.EventPublisher{}
	noteStore.On("GetByID", mock.Anything, id).
		Return(model.Note{ID: id, Deleted: true, DeletedAt: &deletedAt}, nil)
	noteStore.On("Delete", mock.Anything, id).Return(nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.NoteEvent) bool {
		return e.Type == model.NoteEventDeleted
	})).Return(nil)

	s := newNoteService(noteStore, events, time.Now())

	err := s.DeleteNoteForever(ctx, id)
	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestNote_DeleteNoteForever_ActiveNote(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	noteStore := &mocks.NoteStore{}
	noteStore.On("GetByID", mock.Anything, id).Return(model.Note{ID: id}, nil)
	noteStore.On("Delete", mock.Anything, id).Return(nil)

	s := newNoteService(noteStore, nil, time.Now())

	err := s.DeleteNoteForever(ctx, id)
	require.NoError(t, err)
}

func TestNote_ListNotesForUser(t *testing.T) {
	ctx := context.Background()
	want := []model.Note{{ID: uuid.New(), Pinned: true}, {ID: uuid.New()}}

	noteStore := &mocks.NoteStore{}
	noteStore.On("ListActiveByEmail", mock.Anything, "alice@example.com").Return(want, nil)

	s := newNoteService(noteStore, nil, time.Now())

	notes, err := s.ListNotesForUser(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, want, notes)
}

func TestNote_PublishFailureDoesNotFailRequest(t *testing.T) {
	ctx := context.Background()
	noteStore := &mocks.NoteStore{}
	events := &mocks.EventPublisher{}

	noteStore.On("Create", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, n model.Note) model.Note { return n }, nil)
	events.On("Publish", mock.Anything, mock.Anything).Return(assert.AnError)

	s := newNoteService(noteStore, events, time.Now())

	_, err := s.CreateNote(ctx, model.CreateNoteParams{Email: "a@b.c", Title: "t"})
	assert.NoError(t, err)
}
