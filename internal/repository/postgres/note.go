package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/reosaurous172214/xnote-server/internal/model"
)

var _ model.NoteStore = (*NoteRepository)(nil)

const noteColumns = "id, email, title, content, color, pinned, archived, deleted, deleted_at, created_at, updated_at"

type NoteRepository struct {
	db *Connection
}

func NewNoteRepository(db *Connection) *NoteRepository {
	return &NoteRepository{
		db: db,
	}
}

func (r *NoteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	query := `INSERT INTO notes (id, email, title, content, color, pinned, archived, deleted, deleted_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			  RETURNING ` + noteColumns

	saved, err := r.scanNote(r.db.QueryRow(ctx, query,
		note.ID, note.Email, note.Title, note.Content, note.Color,
		note.Pinned, note.Archived, note.Deleted, note.DeletedAt,
	))
	if err != nil {
		return model.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	return saved, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	note, err := r.scanNote(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to get note by id: %w", err)
	}

	return note, nil
}

// Update writes every mutable field of the row. Merge semantics for partial
// updates live in the service layer.
func (r *NoteRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	query := `UPDATE notes
			  SET title = $2, content = $3, color = $4, pinned = $5, archived = $6,
			      deleted = $7, deleted_at = $8, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + noteColumns

	saved, err := r.scanNote(r.db.QueryRow(ctx, query,
		note.ID, note.Title, note.Content, note.Color,
		note.Pinned, note.Archived, note.Deleted, note.DeletedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Note{}, model.ErrNotFound
		}
		return model.Note{}, fmt.Errorf("failed to update note: %w", err)
	}

	return saved, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM notes WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *NoteRepository) ListActive(ctx context.Context) ([]model.Note, error) {
	return r.listNotes(ctx, r.listBuilder().
		Where(squirrel.Eq{"deleted": false}).
		OrderBy("created_at DESC"))
}

func (r *NoteRepository) ListActiveByEmail(ctx context.Context, email string) ([]model.Note, error) {
	return r.listNotes(ctx, r.listBuilder().
		Where(squirrel.Eq{"email": email, "deleted": false}).
		OrderBy("pinned DESC", "created_at DESC"))
}

func (r *NoteRepository) ListTrashedByEmail(ctx context.Context, email string) ([]model.Note, error) {
	return r.listNotes(ctx, r.listBuilder().
		Where(squirrel.Eq{"email": email, "deleted": true}).
		OrderBy("deleted_at DESC"))
}

func (r *NoteRepository) PurgeTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM notes WHERE deleted AND deleted_at <= $1`
	cmd, err := r.db.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge trashed notes: %w", err)
	}
	return cmd.RowsAffected(), nil
}

func (r *NoteRepository) CountTrashedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM notes WHERE deleted AND deleted_at <= $1`
	var count int64
	if err := r.db.QueryRow(ctx, query, cutoff).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trashed notes: %w", err)
	}
	return count, nil
}

func (r *NoteRepository) listBuilder() squirrel.SelectBuilder {
	return squirrel.
		Select("id",
			"email",
			"title",
			"content",
			"color",
			"pinned",
			"archived",
			"deleted",
			"deleted_at",
			"created_at",
			"updated_at").
		From("notes").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *NoteRepository) listNotes(ctx context.Context, builder squirrel.SelectBuilder) ([]model.Note, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		note, err := r.scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *NoteRepository) scanNote(row pgx.Row) (model.Note, error) {
	var note model.Note
	err := row.Scan(
		&note.ID, &note.Email, &note.Title, &note.Content, &note.Color,
		&note.Pinned, &note.Archived, &note.Deleted, &note.DeletedAt,
		&note.CreatedAt, &note.UpdatedAt,
	)
	return note, err
}
