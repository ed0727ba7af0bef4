package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reosaurous172214/xnote-server/internal/logger"
	"github.com/reosaurous172214/xnote-server/internal/model"
)

// AuthService defines account and profile operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	GetProfile(ctx context.Context, email string) (model.User, error)
	UpdateProfile(ctx context.Context, params model.UpdateUserParams) (model.User, error)
	UploadPhoto(ctx context.Context, email string, reader io.Reader) (model.User, error)
	DownloadPhoto(ctx context.Context, email string) (io.ReadCloser, error)
}

// Auth handles HTTP endpoints for accounts and profiles.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Username *string `json:"username"`
	Photo    *string `json:"photo"`
}

// Register creates a new account.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.authService.Register(r.Context(), model.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: registration completed",
		"email", user.Email)

	writeJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and returns the profile.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed",
		"email", user.Email)

	writeJSON(w, http.StatusOK, user)
}

// GetProfile returns the profile for the email in the path.
func (h *Auth) GetProfile(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.authService.GetProfile(r.Context(), email)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile merges the provided fields into the profile.
func (h *Auth) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), model.UpdateUserParams{
		Email:    email,
		Username: req.Username,
		Photo:    req.Photo,
	})
	if err != nil {
		h.logger.Error("Auth handler: profile update failed",
			"email", email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UploadPhoto stores the request body as the display photo.
func (h *Auth) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	defer r.Body.Close()

	user, err := h.authService.UploadPhoto(r.Context(), email, r.Body)
	if err != nil {
		h.logger.Error("Auth handler: photo upload failed",
			"email", email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// DownloadPhoto streams the stored display photo.
func (h *Auth) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	reader, err := h.authService.DownloadPhoto(r.Context(), email)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Error("Auth handler: photo stream failed",
			"email", email,
			"error", err.Error())
	}
}
