package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/reosaurous172214/xnote-server/internal/mocks"
	"github.com/reosaurous172214/xnote-server/internal/model"
	"github.com/reosaurous172214/xnote-server/internal/testutil"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	r := New(&mocks.AuthService{}, &mocks.NoteService{}, testutil.MakeNoopLogger())
	mux := r.Register()
	if mux == nil {
		t.Fatalf("expected non-nil mux")
	}
}

func TestRouter_Routes(t *testing.T) {
	authSvc := &mocks.AuthService{}
	noteSvc := &mocks.NoteService{}

	authSvc.On("GetProfile", mock.Anything, "alice@example.com").Return(model.User{}, nil)
	noteSvc.On("ListNotes", mock.Anything).Return([]model.Note{}, nil)
	noteSvc.On("ListNotesForUser", mock.Anything, "alice@example.com").Return([]model.Note{}, nil)
	noteSvc.On("ListTrashForUser", mock.Anything, "alice@example.com").Return([]model.Note{}, nil)
	noteSvc.On("TogglePin", mock.Anything, mock.Anything).Return(model.Note{}, nil)

	mux := New(authSvc, noteSvc, testutil.MakeNoopLogger()).Register()

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{name: "profile", method: http.MethodGet, path: "/api/users/alice@example.com", wantStatus: http.StatusOK},
		{name: "all notes", method: http.MethodGet, path: "/api/notes/", wantStatus: http.StatusOK},
		{name: "user notes", method: http.MethodGet, path: "/api/notes/alice@example.com", wantStatus: http.StatusOK},
		{name: "user trash wins over email wildcard", method: http.MethodGet, path: "/api/notes/trash/alice@example.com", wantStatus: http.StatusOK},
		{name: "pin toggle", method: http.MethodPatch, path: "/api/notes/" + uuid.NewString() + "/pin", wantStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/unknown", wantStatus: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/api/users/register", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()

			mux.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
