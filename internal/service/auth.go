package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reosaurous172214/xnote-server/internal/logger"
	"github.com/reosaurous172214/xnote-server/internal/model"
)

// Auth handles account registration, credential verification and profiles.
type Auth struct {
	userStore model.UserStore
	storage   model.Storage
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	storage model.Storage,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		storage:   storage,
		logger:    logger,
	}
}

// Register creates a new account. The password is stored as a bcrypt hash.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	if params.Username == "" {
		return model.User{}, fmt.Errorf("%w: username is required", model.ErrValidation)
	}
	if params.Email == "" {
		return model.User{}, fmt.Errorf("%w: email is required", model.ErrValidation)
	}
	if params.Password == "" {
		return model.User{}, fmt.Errorf("%w: password is required", model.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
	}

	saved, err := a.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			return model.User{}, model.ErrConflict
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"email", saved.Email)

	return saved, nil
}

// Login verifies credentials and returns the stored profile.
func (a *Auth) Login(ctx context.Context, email, password string) (model.User, error) {
	if email == "" || password == "" {
		return model.User{}, fmt.Errorf("%w: email and password are required", model.ErrValidation)
	}

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, model.ErrInvalidCredentials
	}

	a.logger.Info("Auth service: user logged in",
		"email", user.Email)

	return user, nil
}

// GetProfile returns the profile for the given email.
func (a *Auth) GetProfile(ctx context.Context, email string) (model.User, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// UpdateProfile merges the provided fields into the stored profile.
func (a *Auth) UpdateProfile(ctx context.Context, params model.UpdateUserParams) (model.User, error) {
	user, err := a.userStore.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.Photo != nil {
		user.Photo = *params.Photo
	}

	saved, err := a.userStore.Update(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return saved, nil
}

// UploadPhoto stores a display photo in object storage and records its key
// on the profile.
func (a *Auth) UploadPhoto(ctx context.Context, email string, reader io.Reader) (model.User, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	key := fmt.Sprintf("photos/%s", user.ID)
	if err := a.storage.Upload(ctx, key, reader); err != nil {
		return model.User{}, fmt.Errorf("failed to upload photo: %w", err)
	}

	user.Photo = key
	saved, err := a.userStore.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user photo: %w", err)
	}

	a.logger.Info("Auth service: display photo uploaded",
		"email", email,
		"key", key)

	return saved, nil
}

// DownloadPhoto streams the stored display photo for the given email.
func (a *Auth) DownloadPhoto(ctx context.Context, email string) (io.ReadCloser, error) {
	user, err := a.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.Photo == "" {
		return nil, model.ErrNotFound
	}

	reader, err := a.storage.Download(ctx, user.Photo)
	if err != nil {
		return nil, fmt.Errorf("failed to download photo: %w", err)
	}

	return reader, nil
}
