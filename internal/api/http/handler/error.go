package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reosaurous172214/xnote-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps service errors onto HTTP statuses with a
// human-readable message.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, model.ErrConflict):
		writeError(w, http.StatusConflict, "record already exists")
	case errors.Is(err, model.ErrInvalidTransition):
		writeError(w, http.StatusConflict, "invalid lifecycle transition")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
