package mcp

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTimeout_PassesResult(t *testing.T) {
	handler := withTimeout("echo", time.Second, discardLogger(),
		func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return gomcp.NewToolResultText("ok"), nil
		})

	result, err := handler(context.Background(), gomcp.CallToolRequest{})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "ok", resultText(t, result))
}

func TestWithTimeout_Expires(t *testing.T) {
	cancelled := make(chan struct{})
	handler := withTimeout("slow", 20*time.Millisecond, discardLogger(),
		func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
			<-ctx.Done()
			close(cancelled)
			return gomcp.NewToolResultText("late"), nil
		})

	result, err := handler(context.Background(), gomcp.CallToolRequest{})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, ErrToolTimeout.Error()), text)
	assert.Contains(t, text, "slow did not finish within 20ms")

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("handler context was not cancelled")
	}
}

func TestWithTimeout_RecoversPanic(t *testing.T) {
	handler := withTimeout("boom", time.Second, discardLogger(),
		func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
			panic("kaboom")
		})

	result, err := handler(context.Background(), gomcp.CallToolRequest{})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Equal(t, "Internal error in boom: kaboom", resultText(t, result))
}

func TestWithTimeout_CallerCancels(t *testing.T) {
	block := make(chan struct{})
	t.Cleanup(func() { close(block) })

	handler := withTimeout("wait", time.Minute, discardLogger(),
		func(ctx context.Context, req gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
			<-block
			return nil, ctx.Err()
		})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := handler(ctx, gomcp.CallToolRequest{})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "cancelled")
}

func TestWithTimeout_AbortsOutboundRequest(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	mux := http.NewServeMux()
	mux.HandleFunc("GET /customfields", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{Timeout: 50 * time.Millisecond})

	start := time.Now()
	result := callTool(t, h, "wrike_get_custom_fields", nil)

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "wrike_get_custom_fields did not finish within 50ms")
	assert.Less(t, time.Since(start), 5*time.Second)
}
