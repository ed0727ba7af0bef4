package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/reosaurous172214/xnote-server/internal/logger"
	"github.com/reosaurous172214/xnote-server/internal/model"
)

// NoteService defines note CRUD, toggle and trash lifecycle operations.
type NoteService interface {
	CreateNote(ctx context.Context, params model.CreateNoteParams) (model.Note, error)
	UpdateNote(ctx context.Context, params model.UpdateNoteParams) (model.Note, error)
	DeleteNoteForever(ctx context.Context, id uuid.UUID) error
	TogglePin(ctx context.Context, id uuid.UUID) (model.Note, error)
	ToggleArchive(ctx context.Context, id uuid.UUID) (model.Note, error)
	TrashNote(ctx context.Context, id uuid.UUID) (model.Note, error)
	RestoreNote(ctx context.Context, id uuid.UUID) (model.Note, error)
	ListNotes(ctx context.Context) ([]model.Note, error)
	ListNotesForUser(ctx context.Context, email string) ([]model.Note, error)
	ListTrashForUser(ctx context.Context, email string) ([]model.Note, error)
}

// Note handles HTTP endpoints for notes.
type Note struct {
	noteService NoteService
	logger      *logger.Logger
}

// NewNote creates a new Note handler.
func NewNote(noteService NoteService, logger *logger.Logger) *Note {
	return &Note{
		noteService: noteService,
		logger:      logger,
	}
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Email   string `json:"email"`
	Color   string `json:"color"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Color   *string `json:"color"`
}

// List returns every active note across all users, newest first.
func (h *Note) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListNotes(r.Context())
	if err != nil {
		h.logger.Error("Note handler: list failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notesOrEmpty(notes))
}

// ListForUser returns the user's active notes, pinned first then newest.
func (h *Note) ListForUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	notes, err := h.noteService.ListNotesForUser(r.Context(), email)
	if err != nil {
		h.logger.Error("Note handler: list for user failed",
			"email", email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notesOrEmpty(notes))
}

// ListTrashForUser returns the user's trashed notes, newest trash first.
func (h *Note) ListTrashForUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	notes, err := h.noteService.ListTrashForUser(r.Context(), email)
	if err != nil {
		h.logger.Error("Note handler: list trash failed",
			"email", email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notesOrEmpty(notes))
}

// Create creates a new note.
func (h *Note) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), model.CreateNoteParams{
		Email:   req.Email,
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		h.logger.Error("Note handler: create failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Note handler: note created",
		"note_id", note.ID,
		"email", note.Email)

	writeJSON(w, http.StatusCreated, note)
}

// Update merges the provided fields into the note.
func (h *Note) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), model.UpdateNoteParams{
		ID:      id,
		Title:   req.Title,
		Content: req.Content,
		Color:   req.Color,
	})
	if err != nil {
		h.logger.Error("Note handler: update failed",
			"note_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

// Delete permanently removes the note, bypassing trash.
func (h *Note) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	if err := h.noteService.DeleteNoteForever(r.Context(), id); err != nil {
		h.logger.Error("Note handler: permanent delete failed",
			"note_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Note handler: note deleted forever",
		"note_id", id)

	writeJSON(w, http.StatusOK, map[string]string{"message": "note deleted"})
}

// TogglePin flips the pinned flag.
func (h *Note) TogglePin(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.noteService.TogglePin)
}

// ToggleArchive flips the archived flag.
func (h *Note) ToggleArchive(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.noteService.ToggleArchive)
}

// Trash soft-deletes the note.
func (h *Note) Trash(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.TrashNote(r.Context(), id)
	if err != nil {
		h.logger.Error("Note handler: trash failed",
			"note_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Note handler: note trashed",
		"note_id", id)

	writeJSON(w, http.StatusOK, note)
}

// Restore returns the note from trash to the active state.
func (h *Note) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := h.noteService.RestoreNote(r.Context(), id)
	if err != nil {
		h.logger.Error("Note handler: restore failed",
			"note_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Note handler: note restored",
		"note_id", id)

	writeJSON(w, http.StatusOK, note)
}

func (h *Note) toggle(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID) (model.Note, error)) {
	id, ok := h.noteID(w, r)
	if !ok {
		return
	}

	note, err := op(r.Context(), id)
	if err != nil {
		h.logger.Error("Note handler: toggle failed",
			"note_id", id,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, note)
}

func (h *Note) noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid note id")
		return uuid.Nil, false
	}
	return id, true
}

// notesOrEmpty keeps list responses as [] instead of null.
func notesOrEmpty(notes []model.Note) []model.Note {
	if notes == nil {
		return []model.Note{}
	}
	return notes
}
