package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	gomcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Tool table
// ---------------------------------------------------------------------------

func TestTools_Table(t *testing.T) {
	h, _ := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	tools := h.Tools()
	require.Len(t, tools, 25)

	seen := make(map[string]bool)
	for _, tool := range tools {
		name := tool.Tool.Name
		assert.False(t, seen[name], "duplicate tool %s", name)
		seen[name] = true
		assert.True(t, strings.HasPrefix(name, "wrike_"), "tool %s lacks prefix", name)
		assert.NotEmpty(t, tool.Tool.Description, "tool %s has no description", name)
		assert.NotNil(t, tool.Handler, "tool %s has no handler", name)
	}

	for _, name := range []string{"wrike_get_tasks", "wrike_get_folders", "wrike_timelog_report", "wrike_resolve_id"} {
		assert.True(t, seen[name], "missing %s", name)
	}
}

func TestTools_RequiredArguments(t *testing.T) {
	h, _ := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	create := findTool(t, h, "wrike_create_task").Tool
	assert.ElementsMatch(t, []string{"folder_id", "title"}, create.InputSchema.Required)

	timelog := findTool(t, h, "wrike_create_timelog").Tool
	assert.ElementsMatch(t, []string{"task_id", "hours", "tracked_date"}, timelog.InputSchema.Required)
}

// ---------------------------------------------------------------------------
// Spaces
// ---------------------------------------------------------------------------

func TestHandleGetSpaces(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /spaces", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("withArchived"))
		writeJSON(w, `{"kind":"spaces","data":[{"id":"IEAAAAAAS1","title":"Engineering"},{"id":"IEAAAAAAS2","title":"Sales"}]}`)
	})
	mux.HandleFunc("GET /spaces/IEAAAAAAS2", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"kind":"spaces","data":[{"id":"IEAAAAAAS2","title":"Sales"}]}`)
	})
	h, calls := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_get_spaces", map[string]any{"with_archived": true})
	require.False(t, result.IsError, resultText(t, result))
	var spaces []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &spaces))
	assert.Len(t, spaces, 2)

	result = callTool(t, h, "wrike_get_spaces", map[string]any{"space_id": "IEAAAAAAS2"})
	require.False(t, result.IsError, resultText(t, result))
	var space map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &space))
	assert.Equal(t, "Sales", space["title"])
	assert.Equal(t, int32(2), calls.Load())
}

// ---------------------------------------------------------------------------
// Tasks
// ---------------------------------------------------------------------------

func TestHandleGetTasks_FolderSearch(t *testing.T) {
	var rawQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /folders/IEAAAAAAF1/tasks", func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		writeJSON(w, `{"kind":"tasks","data":[{"id":"IEAAAAAAT1","title":"Write report","status":"Active"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_get_tasks", map[string]any{
		"folder_id": "IEAAAAAAF1",
		"status":    "Active",
		"completed": false,
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "completed=false&status=Active", rawQuery)

	var tasks []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, "Write report", tasks[0]["title"])
}

func TestHandleGetTasks_DateFilterAsObject(t *testing.T) {
	var createdDate string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /folders/IEAAAAAAF1/tasks", func(w http.ResponseWriter, r *http.Request) {
		createdDate = r.URL.Query().Get("createdDate")
		writeJSON(w, `{"kind":"tasks","data":[]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_get_tasks", map[string]any{
		"folder_id":    "IEAAAAAAF1",
		"created_date": map[string]any{"start": "2024-01-01"},
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, `{"start":"2024-01-01T00:00:00Z"}`, createdDate)
}

func TestHandleGetTasks_NoSelector(t *testing.T) {
	h, calls := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	result := callTool(t, h, "wrike_get_tasks", map[string]any{})

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "either task_id or folder_id is required")
	assert.Zero(t, calls.Load())
}

func TestHandleGetTasks_AuthFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/IEAAAAAAT1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		writeJSON(w, `{"error":"not_authorized","errorDescription":"Access token is invalid"}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_get_tasks", map[string]any{"task_id": "IEAAAAAAT1"})

	assert.True(t, result.IsError)
	text := resultText(t, result)
	assert.Contains(t, text, "Failed to get tasks")
	assert.Contains(t, text, "WRIKE_ACCESS_TOKEN")
}

func TestHandleCreateTask(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /folders/IEAAAAAAF1/tasks", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, `{"kind":"tasks","data":[{"id":"IEAAAAAAT9","title":"Ship it"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_create_task", map[string]any{
		"folder_id":    "IEAAAAAAF1",
		"title":        "Ship it",
		"due_date":     "2024-05-01",
		"responsibles": "KUAAAAAA1, KUAAAAAA2",
		"importance":   "High",
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "Ship it", body["title"])
	assert.Equal(t, "High", body["importance"])
	assert.Equal(t, map[string]any{"due": "2024-05-01"}, body["dates"])
	assert.Equal(t, []any{"KUAAAAAA1", "KUAAAAAA2"}, body["responsibles"])
	assert.NotContains(t, body, "description")
	assert.Contains(t, resultText(t, result), "IEAAAAAAT9")
}

func TestHandleUpdateTask_OnlyProvidedFields(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /tasks/IEAAAAAAT1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, `{"kind":"tasks","data":[{"id":"IEAAAAAAT1","title":"Renamed"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_update_task", map[string]any{
		"task_id":          "IEAAAAAAT1",
		"title":            "Renamed",
		"add_responsibles": []any{"KUAAAAAA1"},
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, map[string]any{
		"title":           "Renamed",
		"addResponsibles": []any{"KUAAAAAA1"},
	}, body)
}

func TestHandleDeleteTask(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /tasks/IEAAAAAAT1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"kind":"tasks","data":[{"id":"IEAAAAAAT1","title":"Old","scope":"RbTask"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_delete_task", map[string]any{"task_id": "IEAAAAAAT1"})

	require.False(t, result.IsError, resultText(t, result))
	assert.Contains(t, resultText(t, result), "RbTask")
}

// ---------------------------------------------------------------------------
// Folders
// ---------------------------------------------------------------------------

func TestHandleGetFolders_InvalidPattern(t *testing.T) {
	h, calls := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	result := callTool(t, h, "wrike_get_folders", map[string]any{"name_pattern": "(unclosed"})

	assert.True(t, result.IsError)
	assert.Zero(t, calls.Load())
}

func TestHandleGetFolders_BatchIDsAsString(t *testing.T) {
	var path string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /folders/{ids}", func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		writeJSON(w, `{"kind":"folders","data":[{"id":"IEAAAAAAF1","title":"A"},{"id":"IEAAAAAAF2","title":"B"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_get_folders", map[string]any{
		"folder_ids": `["IEAAAAAAF1","IEAAAAAAF2"]`,
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "/folders/IEAAAAAAF1,IEAAAAAAF2", path)
}

func TestHandleCreateFolder_Project(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /folders/IEAAAAAAF1/folders", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, `{"kind":"folders","data":[{"id":"IEAAAAAAP1","title":"Launch","project":{"status":"Green"}}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_create_folder", map[string]any{
		"parent_id":  "IEAAAAAAF1",
		"title":      "Launch",
		"is_project": true,
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, map[string]any{}, body["project"])
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

func TestHandleCreateComment_FolderTarget(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /folders/IEAAAAAAF1/comments", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, `{"kind":"comments","data":[{"id":"IEAAAAAAC1","text":"Hello"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_create_comment", map[string]any{
		"folder_id": "IEAAAAAAF1",
		"text":      "Hello",
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "Hello", body["text"])
	assert.Equal(t, false, body["plainText"])
}

func TestHandleCreateComment_NoTarget(t *testing.T) {
	h, calls := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	result := callTool(t, h, "wrike_create_comment", map[string]any{"text": "Hello"})

	assert.True(t, result.IsError)
	assert.Equal(t, "either task_id or folder_id is required", resultText(t, result))
	assert.Zero(t, calls.Load())
}

// ---------------------------------------------------------------------------
// Timelogs
// ---------------------------------------------------------------------------

func TestHandleCreateTimelog(t *testing.T) {
	var body json.RawMessage
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tasks/IEAAAAAAT2/timelogs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, `{"kind":"timelogs","data":[{"id":"IEAAAAAAL2","hours":2.5,"trackedDate":"2024-03-01"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_create_timelog", map[string]any{
		"task_id":      "IEAAAAAAT2",
		"hours":        2.5,
		"tracked_date": "2024-03-01",
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.JSONEq(t, `{"hours":2.5,"trackedDate":"2024-03-01"}`, string(body))
}

func TestHandleUpdateTimelog_NothingToUpdate(t *testing.T) {
	h, calls := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	result := callTool(t, h, "wrike_update_timelog", map[string]any{"timelog_id": "IEAAAAAAL1"})

	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "nothing to update")
	assert.Zero(t, calls.Load())
}

func TestHandleDeleteTimelog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /timelogs/IEAAAAAAL1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"kind":"timelogs","data":[]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_delete_timelog", map[string]any{"timelog_id": "IEAAAAAAL1"})

	require.False(t, result.IsError, resultText(t, result))
	assert.JSONEq(t, `{"deleted":true,"timelog_id":"IEAAAAAAL1"}`, resultText(t, result))
}

func TestHandleGetTimelogs_ContactWithTrackedDate(t *testing.T) {
	var trackedDate string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /contacts/KUAAAAAA1/timelogs", func(w http.ResponseWriter, r *http.Request) {
		trackedDate = r.URL.Query().Get("trackedDate")
		writeJSON(w, `{"kind":"timelogs","data":[]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_get_timelogs", map[string]any{
		"contact_id":   "KUAAAAAA1",
		"tracked_date": "{start:2024-03-01,end:2024-03-31}",
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, `{"start":"2024-03-01","end":"2024-03-31"}`, trackedDate)
}

// ---------------------------------------------------------------------------
// Blueprints and reference data
// ---------------------------------------------------------------------------

func TestHandleLaunchTaskBlueprint_NeedsTarget(t *testing.T) {
	h, calls := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	result := callTool(t, h, "wrike_launch_task_blueprint", map[string]any{
		"blueprint_id": "IEAAAAAAB1",
		"title":        "Sprint",
	})

	assert.True(t, result.IsError)
	assert.Zero(t, calls.Load())
}

func TestHandleLaunchFolderBlueprint(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /folder_blueprints/IEAAAAAAB1/launch_async", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		writeJSON(w, `{"kind":"async_job","data":[{"id":"IEAAAAAAJ1"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_launch_folder_blueprint", map[string]any{
		"blueprint_id":      "IEAAAAAAB1",
		"parent_id":         "IEAAAAAAF1",
		"title":             "Q3 plan",
		"copy_descriptions": true,
	})

	require.False(t, result.IsError, resultText(t, result))
	assert.Equal(t, "IEAAAAAAF1", body["parent"])
	assert.Equal(t, true, body["copyDescriptions"])
	assert.Contains(t, resultText(t, result), "IEAAAAAAJ1")
}

func TestHandleResolveID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ids", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ApiV2Task", r.URL.Query().Get("type"))
		assert.Equal(t, "[42]", r.URL.Query().Get("ids"))
		writeJSON(w, `{"kind":"ids","data":[{"id":"IEAAAAAAT42","apiV2Id":"42"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	result := callTool(t, h, "wrike_resolve_id", map[string]any{
		"id":   "https://www.wrike.com/open.htm?id=42",
		"kind": "task",
	})

	require.False(t, result.IsError, resultText(t, result))
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &out))
	assert.Equal(t, "IEAAAAAAT42", out["id"])
	assert.Equal(t, true, out["canonical"])
}

func TestHandleResolveID_UnknownKind(t *testing.T) {
	h, calls := newTestHandlers(t, http.NewServeMux(), HandlerOptions{})

	result := callTool(t, h, "wrike_resolve_id", map[string]any{"id": "42", "kind": "space"})

	assert.True(t, result.IsError)
	assert.Zero(t, calls.Load())
}

// ---------------------------------------------------------------------------
// Per-request token
// ---------------------------------------------------------------------------

func TestClientFor_ContextToken(t *testing.T) {
	var auth string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /customfields", func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, `{"kind":"customfields","data":[]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{})

	callTool(t, h, "wrike_get_custom_fields", nil)
	assert.Equal(t, "Bearer test-token", auth)

	ctx := contextWithToken(context.Background(), "override")
	callToolCtx(ctx, t, h, "wrike_get_custom_fields", nil)
	assert.Equal(t, "Bearer override", auth)
}

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

func TestStringListArg(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []string
	}{
		{"array", []any{"A", " B ", ""}, []string{"A", "B"}},
		{"JSON string", `["A","B"]`, []string{"A", "B"}},
		{"comma separated", "A, B,,C", []string{"A", "B", "C"}},
		{"absent", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := gomcp.CallToolRequest{}
			req.Params.Arguments = map[string]any{"ids": tt.value}
			assert.Equal(t, tt.want, stringListArg(req, "ids"))
		})
	}
}

func TestOptionalArgs(t *testing.T) {
	req := gomcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"flag":  "true",
		"hours": "1.25",
		"n":     float64(3),
		"title": "x",
	}

	require.NotNil(t, optBool(req, "flag"))
	assert.True(t, *optBool(req, "flag"))
	assert.Nil(t, optBool(req, "missing"))

	require.NotNil(t, optFloat(req, "hours"))
	assert.Equal(t, 1.25, *optFloat(req, "hours"))
	assert.Equal(t, 3.0, *optFloat(req, "n"))

	assert.Equal(t, "x", *optString(req, "title"))
	assert.Nil(t, optString(req, "missing"))
	assert.False(t, boolValue(nil))
}
