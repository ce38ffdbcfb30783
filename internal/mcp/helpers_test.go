package mcp

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestHandlers starts a mock Wrike API serving mux and returns handlers
// bound to it together with a counter of received requests.
func newTestHandlers(t *testing.T, mux *http.ServeMux, opts HandlerOptions) (*ToolHandlers, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	client := wrike.NewClient(ts.URL, "test-token", wrike.WithLogger(discardLogger()))
	if opts.Timeout == 0 {
		opts.Timeout = 5 * time.Second
	}
	return NewToolHandlers(client, opts, discardLogger()), &calls
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func findTool(t *testing.T, h *ToolHandlers, name string) server.ServerTool {
	t.Helper()
	for _, tool := range h.Tools() {
		if tool.Tool.Name == name {
			return tool
		}
	}
	t.Fatalf("tool %s not registered", name)
	return server.ServerTool{}
}

// callTool invokes a registered tool the way the MCP server would.
func callTool(t *testing.T, h *ToolHandlers, name string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()
	return callToolCtx(context.Background(), t, h, name, args)
}

func callToolCtx(ctx context.Context, t *testing.T, h *ToolHandlers, name string, args map[string]any) *gomcp.CallToolResult {
	t.Helper()
	tool := findTool(t, h, name)

	req := gomcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := tool.Handler(ctx, req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result == nil {
		t.Fatal("handler returned nil result")
	}
	return result
}

func resultText(t *testing.T, result *gomcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(gomcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatal("result has no text content")
	return ""
}
