package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Update(ctx context.Context, user User) (User, error)
}

// User represents a stored account.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Photo        string    `json:"photo,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterParams contains parameters to create an account.
type RegisterParams struct {
	Username string
	Email    string
	Password string
}

// UpdateUserParams contains the fields a profile update may change.
// Nil pointers mean "leave as is".
type UpdateUserParams struct {
	Email    string
	Username *string
	Photo    *string
}
