package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/reosaurous172214/xnote-server/internal/api/http/handler"
	"github.com/reosaurous172214/xnote-server/internal/api/http/middleware"
	"github.com/reosaurous172214/xnote-server/internal/logger"
)

// Router wires handlers and middleware into the HTTP mux.
type Router struct {
	authService handler.AuthService
	noteService handler.NoteService
	logger      *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	noteService handler.NoteService,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService: authService,
		noteService: noteService,
		logger:      logger,
	}
}

// Register builds the mux with all routes and middleware.
func (r *Router) Register() *chi.Mux {
	logging := middleware.NewLogging(r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	noteHandler := handler.NewNote(r.noteService, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Route("/api", func(api chi.Router) {
		api.Route("/users", func(users chi.Router) {
			users.Post("/register", authHandler.Register)
			users.Post("/login", authHandler.Login)
			users.Get("/{email}", authHandler.GetProfile)
			users.Put("/{email}", authHandler.UpdateProfile)
			users.Post("/{email}/photo", authHandler.UploadPhoto)
			users.Get("/{email}/photo", authHandler.DownloadPhoto)
		})

		api.Route("/notes", func(notes chi.Router) {
			notes.Get("/", noteHandler.List)
			notes.Post("/", noteHandler.Create)
			notes.Get("/trash/{email}", noteHandler.ListTrashForUser)
			notes.Get("/{email}", noteHandler.ListForUser)
			notes.Put("/{id}", noteHandler.Update)
			notes.Delete("/{id}", noteHandler.Delete)
			notes.Patch("/{id}/pin", noteHandler.TogglePin)
			notes.Patch("/{id}/archive", noteHandler.ToggleArchive)
			notes.Put("/{id}/trash", noteHandler.Trash)
			notes.Put("/{id}/restore", noteHandler.Restore)
		})
	})

	return mux
}
