package mcp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
)

const (
	ServerName    = "wrike-mcp-server"
	ServerVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

// Config holds MCP server configuration
type Config struct {
	Port    int
	SSEMode bool
}

// Server wraps the MCP server
type Server struct {
	config  Config
	mcp     *server.MCPServer
	handler *ToolHandlers
	logger  *slog.Logger
}

// NewServer creates a new MCP server with every tool registered
func NewServer(config Config, handler *ToolHandlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:  config,
		handler: handler,
		logger:  logger,
		mcp: server.NewMCPServer(
			ServerName,
			ServerVersion,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
	}
	handler.RegisterTools(s.mcp)
	return s
}

// Run serves until ctx is cancelled or the transport fails
func (s *Server) Run(ctx context.Context) error {
	if s.config.SSEMode {
		return s.runSSE(ctx)
	}

	s.logger.Info("Starting MCP server in stdio mode", "tools", len(s.handler.Tools()))

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "", log.LstdFlags))
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Handler returns the HTTP handler used in SSE mode
func (s *Server) Handler() http.Handler {
	sse := server.NewSSEServer(s.mcp,
		server.WithSSEContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if token, ok := bearerToken(r); ok {
				return contextWithToken(ctx, token)
			}
			return ctx
		}),
	)

	mux := http.NewServeMux()
	mux.Handle("/sse", sse.SSEHandler())
	mux.Handle("/message", sse.MessageHandler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return securityHeadersMiddleware(mux)
}

// runSSE starts the server in SSE mode
func (s *Server) runSSE(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.logger.Info("Starting MCP server in SSE mode", "address", addr)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down SSE server: %w", err)
		}
		return nil
	}
}

type tokenKey struct{}

// contextWithToken carries a per-request access token to the tool handlers.
func contextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// bearerToken extracts the token of an "Authorization: Bearer" header.
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// securityHeaders middleware adds security headers
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
