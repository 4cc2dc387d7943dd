package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ianmeigh/property-direct-backend/internal/core/port"
	"github.com/ianmeigh/property-direct-backend/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers groups every resource handler mounted by the server.
type Handlers struct {
	Auth         *AuthHandler
	Listings     *ListingHandler
	Profiles     *ProfileHandler
	Bookmarks    *BookmarkHandler
	Follows      *FollowHandler
	Notes        *NoteHandler
	Dictionaries *DictionaryHandler
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(listenPort string, handlers Handlers, validateTokenUC usecases_port.ValidateTokenUseCasePort, baseLogger port.LoggerPort, clientOrigin string) *Server {
	r := NewRouter(handlers, validateTokenUC, baseLogger, clientOrigin)

	srv := &http.Server{
		Addr:              ":" + listenPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger,
	}
}

// NewRouter builds the full route tree. It is separate from NewServer so
// tests can drive it through httptest.
func NewRouter(handlers Handlers, validateTokenUC usecases_port.ValidateTokenUseCasePort, baseLogger port.LoggerPort, clientOrigin string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(RecovererMiddleware)
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	allowedOrigins := []string{"*"}
	if clientOrigin != "" {
		allowedOrigins = []string{clientOrigin}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: clientOrigin != "",
		MaxAge:           300,
	}))

	r.Use(AuthMiddleware(validateTokenUC))

	r.Get("/", Root)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dictionaries", handlers.Dictionaries.GetDictionaries)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", handlers.Auth.Register)
			r.Post("/login", handlers.Auth.Login)
			r.Get("/user", handlers.Auth.CurrentUser)
		})

		r.Route("/property", func(r chi.Router) {
			r.Get("/", handlers.Listings.SearchListings)
			r.Post("/", handlers.Listings.CreateListing)
			r.Get("/{listingID}", handlers.Listings.GetListing)
			r.Put("/{listingID}", handlers.Listings.ReplaceListing)
			r.Patch("/{listingID}", handlers.Listings.PatchListing)
			r.Delete("/{listingID}", handlers.Listings.DeleteListing)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", handlers.Profiles.ListProfiles)
			r.Get("/{profileID}", handlers.Profiles.GetProfile)
			r.Put("/{profileID}", handlers.Profiles.UpdateProfile)
			r.Delete("/{profileID}", handlers.Profiles.DeleteProfile)
		})

		r.Route("/bookmarks", func(r chi.Router) {
			r.Get("/", handlers.Bookmarks.ListBookmarks)
			r.Post("/", handlers.Bookmarks.CreateBookmark)
			r.Get("/{bookmarkID}", handlers.Bookmarks.GetBookmark)
			r.Delete("/{bookmarkID}", handlers.Bookmarks.DeleteBookmark)
		})

		r.Route("/followers", func(r chi.Router) {
			r.Get("/", handlers.Follows.ListFollows)
			r.Post("/", handlers.Follows.CreateFollow)
			r.Get("/{followID}", handlers.Follows.GetFollow)
			r.Delete("/{followID}", handlers.Follows.DeleteFollow)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", handlers.Notes.ListNotes)
			r.Post("/", handlers.Notes.CreateNote)
			r.Get("/{noteID}", handlers.Notes.GetNote)
			r.Put("/{noteID}", handlers.Notes.UpdateNote)
			r.Delete("/{noteID}", handlers.Notes.DeleteNote)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, "not_found", "Not found.", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", fmt.Sprintf("Method \"%s\" not allowed.", r.Method), nil)
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
