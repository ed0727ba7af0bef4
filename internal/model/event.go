package model

import "context"

// NoteEventType enumerates lifecycle events published to the broker.
type NoteEventType string

const (
	NoteEventCreated  NoteEventType = "created"
	NoteEventUpdated  NoteEventType = "updated"
	NoteEventTrashed  NoteEventType = "trashed"
	NoteEventRestored NoteEventType = "restored"
	NoteEventDeleted  NoteEventType = "deleted"
)

// NoteEvent describes a lifecycle change of a single note.
type NoteEvent struct {
	Type NoteEventType `json:"type"`
	Note *Note         `json:"note,omitempty"`
}

// EventPublisher publishes note lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event NoteEvent) error
	Close() error
}
