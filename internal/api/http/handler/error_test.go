package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reosaurous172214/xnote-server/internal/model"
)

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: fmt.Errorf("%w: title is required", model.ErrValidation), wantStatus: http.StatusBadRequest},
		{name: "not found", err: model.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "conflict", err: model.ErrConflict, wantStatus: http.StatusConflict},
		{name: "invalid transition", err: model.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "invalid credentials", err: model.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "wrapped not found", err: fmt.Errorf("outer: %w", model.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "unknown", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handleError(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Contains(t, rr.Body.String(), "error")
		})
	}
}
