package mcp

import (
	"net/http"
	"testing"
)

const readOnlyMessage = "server is in read-only mode - write operations are disabled"

func TestReadOnlyMode(t *testing.T) {
	h, calls := newTestHandlers(t, http.NewServeMux(), HandlerOptions{ReadOnly: true})

	err := h.checkReadOnly()
	if err == nil {
		t.Fatal("expected error in read-only mode, got nil")
	}
	if err.Error() != readOnlyMessage {
		t.Errorf("unexpected error message: %v", err)
	}

	writeTools := map[string]map[string]any{
		"wrike_create_folder":                     {"parent_id": "IEAAAAAAF1", "title": "x"},
		"wrike_update_folder":                     {"folder_id": "IEAAAAAAF1", "title": "x"},
		"wrike_create_task":                       {"folder_id": "IEAAAAAAF1", "title": "x"},
		"wrike_update_task":                       {"task_id": "IEAAAAAAT1", "title": "x"},
		"wrike_delete_task":                       {"task_id": "IEAAAAAAT1"},
		"wrike_create_comment":                    {"task_id": "IEAAAAAAT1", "text": "x"},
		"wrike_create_timelog":                    {"task_id": "IEAAAAAAT1", "hours": 1.0, "tracked_date": "2024-01-01"},
		"wrike_update_timelog":                    {"timelog_id": "IEAAAAAAL1", "hours": 1.0},
		"wrike_delete_timelog":                    {"timelog_id": "IEAAAAAAL1"},
		"wrike_launch_folder_blueprint":           {"blueprint_id": "IEAAAAAAB1", "parent_id": "IEAAAAAAF1", "title": "x"},
		"wrike_launch_task_blueprint":             {"blueprint_id": "IEAAAAAAB1", "parent_id": "IEAAAAAAF1", "title": "x"},
		"wrike_create_work_from_custom_item_type": {"custom_item_type_id": "IEAAAAAAI1", "title": "x"},
	}

	for name, args := range writeTools {
		t.Run(name, func(t *testing.T) {
			result := callTool(t, h, name, args)
			if !result.IsError {
				t.Fatal("expected error result in read-only mode")
			}
			if text := resultText(t, result); text != readOnlyMessage {
				t.Errorf("unexpected error text: %s", text)
			}
		})
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("expected no API calls in read-only mode, got %d", n)
	}
}

func TestReadOnlyMode_ReadsAllowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /timelog_categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"kind":"timelogCategories","data":[{"id":"IEAAAAAAK1","name":"Dev"}]}`)
	})
	h, _ := newTestHandlers(t, mux, HandlerOptions{ReadOnly: true})

	result := callTool(t, h, "wrike_get_timelog_categories", nil)
	if result.IsError {
		t.Fatalf("read tool blocked in read-only mode: %s", resultText(t, result))
	}

	h, _ = newTestHandlers(t, mux, HandlerOptions{})
	if err := h.checkReadOnly(); err != nil {
		t.Fatalf("expected no error when read-only mode is disabled, got: %v", err)
	}
}
