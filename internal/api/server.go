package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/ycho/wrike-mcp-server/docs" // swagger docs
	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

const shutdownTimeout = 10 * time.Second

// Config holds API server configuration
type Config struct {
	Port     int
	ReadOnly bool
}

// Server is the REST API server
type Server struct {
	config Config
	client *wrike.Client
	router *chi.Mux
	logger *slog.Logger
}

// NewServer creates a new API server
func NewServer(config Config, client *wrike.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config: config,
		client: client,
		router: chi.NewRouter(),
		logger: logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	r := s.router

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Swagger UI - uses swaggo generated docs
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		// Spaces and folders
		r.Get("/spaces", s.handleListSpaces)
		r.Get("/folders", s.handleListFolders)

		// Tasks
		r.Get("/tasks", s.handleSearchTasks)
		r.Get("/tasks/{id}", s.handleGetTask)

		// Comments
		r.Get("/comments", s.handleListComments)

		// Contacts
		r.Get("/contacts", s.handleListContacts)

		// Timelogs
		r.Get("/timelogs", s.handleListTimelogs)
		r.Get("/timelog_categories", s.handleListTimelogCategories)

		// Writes
		r.Group(func(r chi.Router) {
			r.Use(s.readOnlyMiddleware)

			r.Post("/folders/{id}/tasks", s.handleCreateTask)
			r.Patch("/tasks/{id}", s.handleUpdateTask)
			r.Post("/tasks/{id}/comments", s.handleCreateComment)
			r.Post("/tasks/{id}/timelogs", s.handleCreateTimelog)
			r.Patch("/timelogs/{id}", s.handleUpdateTimelog)
			r.Delete("/timelogs/{id}", s.handleDeleteTimelog)
		})
	})
}

// authMiddleware picks the client for the request: the configured token,
// or the token of an "Authorization: Bearer" header when one is sent.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := s.client
		if token, ok := bearerToken(r); ok {
			client = client.WithToken(token)
		}
		next.ServeHTTP(w, r.WithContext(withClient(r.Context(), client)))
	})
}

func (s *Server) readOnlyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.config.ReadOnly {
			writeError(w, http.StatusForbidden, "server is in read-only mode - write operations are disabled")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ServeHTTP makes the server usable as an http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run starts the API server and stops it when ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.logger.Info("Starting REST API server",
		"address", addr,
		"read_only", s.config.ReadOnly,
		"docs", fmt.Sprintf("http://localhost:%d/docs/index.html", s.config.Port),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
