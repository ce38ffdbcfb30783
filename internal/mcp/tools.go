package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

// ToolHandlers contains all MCP tool handlers
type ToolHandlers struct {
	client   *wrike.Client
	readOnly bool
	timeout  time.Duration
	logger   *slog.Logger
}

// HandlerOptions configures ToolHandlers.
type HandlerOptions struct {
	ReadOnly bool
	Timeout  time.Duration
}

// NewToolHandlers creates new tool handlers
func NewToolHandlers(client *wrike.Client, opts HandlerOptions, logger *slog.Logger) *ToolHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.ReadOnly {
		logger.Info("read-only mode enabled - all write operations will be blocked")
	}
	return &ToolHandlers{
		client:   client,
		readOnly: opts.ReadOnly,
		timeout:  opts.Timeout,
		logger:   logger,
	}
}

// checkReadOnly returns an error if the server is in read-only mode.
func (h *ToolHandlers) checkReadOnly() error {
	if h.readOnly {
		return fmt.Errorf("server is in read-only mode - write operations are disabled")
	}
	return nil
}

// clientFor returns the client to use for one call, honouring a token
// carried by the request context.
func (h *ToolHandlers) clientFor(ctx context.Context) *wrike.Client {
	if token, ok := tokenFromContext(ctx); ok {
		return h.client.WithToken(token)
	}
	return h.client
}

// McpServer interface for registering tools
type McpServer interface {
	AddTools(tools ...server.ServerTool)
}

// RegisterTools registers all MCP tools on the server
func (h *ToolHandlers) RegisterTools(s McpServer) {
	s.AddTools(h.Tools()...)
}

func (h *ToolHandlers) entry(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{
		Tool:    tool,
		Handler: withTimeout(tool.Name, h.timeout, h.logger, handler),
	}
}

const (
	fieldsDescription    = "Comma-separated optional fields to include in the response (e.g. 'description,customFields')"
	dateRangeDescription = "Date range as {\"start\":...,\"end\":...} or {\"equal\":...}; unquoted keys and a plain date are accepted"
)

func idListOption(description string) []mcp.PropertyOption {
	return []mcp.PropertyOption{
		mcp.Description(description),
		mcp.WithStringItems(),
	}
}

// Tools returns the tool table.
func (h *ToolHandlers) Tools() []server.ServerTool {
	return []server.ServerTool{
		// Spaces and folders
		h.entry(mcp.NewTool("wrike_get_spaces",
			mcp.WithDescription("List Wrike spaces, or get one space by space_id"),
			mcp.WithString("space_id", mcp.Description("Return only this space")),
			mcp.WithBoolean("with_archived", mcp.Description("Include archived spaces")),
			mcp.WithString("opt_fields", mcp.Description(fieldsDescription)),
		), h.handleGetSpaces),

		h.entry(mcp.NewTool("wrike_get_folders",
			mcp.WithDescription("Get folders and projects. Lookup priority: single_folder_id > folder_ids > folder_id > space_id > all folders"),
			mcp.WithString("single_folder_id", mcp.Description("Space, folder or project ID (numeric IDs and permalinks accepted)")),
			mcp.WithArray("folder_ids", idListOption("Folder IDs to fetch in one call (max 100)")...),
			mcp.WithBoolean("with_history", mcp.Description("Include history when fetching folder_ids")),
			mcp.WithString("folder_id", mcp.Description("List the child folders of this folder")),
			mcp.WithString("space_id", mcp.Description("List the folders of this space")),
			mcp.WithBoolean("descendants", mcp.Description("Include all descendants, not only direct children")),
			mcp.WithBoolean("project_only", mcp.Description("Only return projects")),
			mcp.WithString("name_pattern", mcp.Description("Case-insensitive regular expression matched against titles")),
			mcp.WithBoolean("include_archived", mcp.Description("Include archived and deleted folders (default: false)")),
			mcp.WithString("opt_fields", mcp.Description(fieldsDescription)),
		), h.handleGetFolders),

		h.entry(mcp.NewTool("wrike_create_folder",
			mcp.WithDescription("Create a folder, or a project when is_project is true"),
			mcp.WithString("parent_id", mcp.Required(), mcp.Description("Parent folder or space ID")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Folder title")),
			mcp.WithString("description", mcp.Description("Folder description")),
			mcp.WithArray("shareds", idListOption("Contact IDs to share the folder with")...),
			mcp.WithBoolean("is_project", mcp.Description("Create a project instead of a plain folder")),
			mcp.WithArray("project_owner_ids", idListOption("Project owner contact IDs")...),
			mcp.WithString("project_status", mcp.Description("Project status"),
				mcp.Enum("Green", "Yellow", "Red", "Completed", "OnHold", "Cancelled")),
			mcp.WithString("project_start_date", mcp.Description("Project start date (YYYY-MM-DD)")),
			mcp.WithString("project_end_date", mcp.Description("Project end date (YYYY-MM-DD)")),
			mcp.WithArray("custom_fields", mcp.Description("Custom field values as [{\"id\":...,\"value\":...}]"),
				mcp.Items(map[string]any{"type": "object"})),
		), h.handleCreateFolder),

		h.entry(mcp.NewTool("wrike_update_folder",
			mcp.WithDescription("Update a folder or project"),
			mcp.WithString("folder_id", mcp.Required(), mcp.Description("Folder or project ID")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithArray("add_parents", idListOption("Parent folder IDs to add")...),
			mcp.WithArray("remove_parents", idListOption("Parent folder IDs to remove")...),
			mcp.WithBoolean("restore", mcp.Description("Restore the folder from the recycle bin")),
			mcp.WithArray("project_owner_ids", idListOption("Project owner contact IDs")...),
			mcp.WithString("project_status", mcp.Description("Project status"),
				mcp.Enum("Green", "Yellow", "Red", "Completed", "OnHold", "Cancelled")),
			mcp.WithString("project_start_date", mcp.Description("Project start date (YYYY-MM-DD)")),
			mcp.WithString("project_end_date", mcp.Description("Project end date (YYYY-MM-DD)")),
			mcp.WithArray("custom_fields", mcp.Description("Custom field values as [{\"id\":...,\"value\":...}]"),
				mcp.Items(map[string]any{"type": "object"})),
		), h.handleUpdateFolder),

		// Tasks
		h.entry(mcp.NewTool("wrike_get_tasks",
			mcp.WithDescription("Get a task by ID, or search the tasks of a folder. task_id wins over folder_id; one is required"),
			mcp.WithString("task_id", mcp.Description("Task ID, numeric ID or permalink")),
			mcp.WithString("folder_id", mcp.Description("Folder or project whose tasks are searched")),
			mcp.WithString("title", mcp.Description("Title substring filter")),
			mcp.WithString("status", mcp.Description("Status filter"),
				mcp.Enum("Active", "Completed", "Deferred", "Cancelled")),
			mcp.WithString("importance", mcp.Description("Importance filter"),
				mcp.Enum("High", "Normal", "Low")),
			mcp.WithBoolean("completed", mcp.Description("Filter on completion")),
			mcp.WithBoolean("subtasks", mcp.Description("Include subtasks")),
			mcp.WithBoolean("descendants", mcp.Description("Search descendant folders too")),
			mcp.WithString("custom_fields", mcp.Description("Custom field filter as a JSON array")),
			mcp.WithString("created_date", mcp.Description(dateRangeDescription)),
			mcp.WithString("updated_date", mcp.Description(dateRangeDescription)),
			mcp.WithNumber("limit", mcp.Description("Maximum number of tasks to return")),
			mcp.WithString("sort_field", mcp.Description("Sort field (e.g. CreatedDate, UpdatedDate, DueDate, Status, Importance, Title)")),
			mcp.WithString("sort_order", mcp.Description("Sort order"), mcp.Enum("Asc", "Desc")),
			mcp.WithString("opt_fields", mcp.Description(fieldsDescription)),
		), h.handleGetTasks),

		h.entry(mcp.NewTool("wrike_create_task",
			mcp.WithDescription("Create a task in a folder or project"),
			mcp.WithString("folder_id", mcp.Required(), mcp.Description("Folder or project ID")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
			mcp.WithString("description", mcp.Description("Task description")),
			mcp.WithString("status", mcp.Description("Task status"),
				mcp.Enum("Active", "Completed", "Deferred", "Cancelled")),
			mcp.WithString("importance", mcp.Description("Task importance"), mcp.Enum("High", "Normal", "Low")),
			mcp.WithString("custom_status_id", mcp.Description("Custom workflow status ID")),
			mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD)")),
			mcp.WithString("due_date", mcp.Description("Due date (YYYY-MM-DD)")),
			mcp.WithArray("responsibles", idListOption("Assignee contact IDs")...),
			mcp.WithArray("followers", idListOption("Follower contact IDs")...),
			mcp.WithArray("parents", idListOption("Additional parent folder IDs")...),
			mcp.WithArray("super_tasks", idListOption("Parent task IDs")...),
			mcp.WithArray("custom_fields", mcp.Description("Custom field values as [{\"id\":...,\"value\":...}]"),
				mcp.Items(map[string]any{"type": "object"})),
		), h.handleCreateTask),

		h.entry(mcp.NewTool("wrike_update_task",
			mcp.WithDescription("Update a task; only the provided fields are changed"),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("Task ID, numeric ID or permalink")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("status", mcp.Description("New status"),
				mcp.Enum("Active", "Completed", "Deferred", "Cancelled")),
			mcp.WithString("importance", mcp.Description("New importance"), mcp.Enum("High", "Normal", "Low")),
			mcp.WithString("custom_status_id", mcp.Description("Custom workflow status ID")),
			mcp.WithString("start_date", mcp.Description("Start date (YYYY-MM-DD)")),
			mcp.WithString("due_date", mcp.Description("Due date (YYYY-MM-DD)")),
			mcp.WithArray("add_responsibles", idListOption("Assignees to add")...),
			mcp.WithArray("remove_responsibles", idListOption("Assignees to remove")...),
			mcp.WithArray("add_parents", idListOption("Parent folders to add")...),
			mcp.WithArray("remove_parents", idListOption("Parent folders to remove")...),
			mcp.WithArray("add_super_tasks", idListOption("Parent tasks to add")...),
			mcp.WithArray("remove_super_tasks", idListOption("Parent tasks to remove")...),
			mcp.WithArray("custom_fields", mcp.Description("Custom field values as [{\"id\":...,\"value\":...}]"),
				mcp.Items(map[string]any{"type": "object"})),
		), h.handleUpdateTask),

		h.entry(mcp.NewTool("wrike_delete_task",
			mcp.WithDescription("Move a task to the recycle bin"),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("Task ID, numeric ID or permalink")),
		), h.handleDeleteTask),

		// Comments
		h.entry(mcp.NewTool("wrike_get_comments",
			mcp.WithDescription("Get comments. Lookup priority: comment_ids > task_id > folder_id > all comments"),
			mcp.WithArray("comment_ids", idListOption("Comment IDs (max 100)")...),
			mcp.WithString("task_id", mcp.Description("Task whose comments are listed")),
			mcp.WithString("folder_id", mcp.Description("Folder whose comments are listed")),
			mcp.WithBoolean("plain_text", mcp.Description("Return comment text without HTML")),
			mcp.WithNumber("limit", mcp.Description("Maximum number of comments when listing all")),
			mcp.WithString("updated_date", mcp.Description(dateRangeDescription)),
		), h.handleGetComments),

		h.entry(mcp.NewTool("wrike_create_comment",
			mcp.WithDescription("Add a comment to a task, or to a folder when no task_id is given"),
			mcp.WithString("task_id", mcp.Description("Task ID")),
			mcp.WithString("folder_id", mcp.Description("Folder or project ID")),
			mcp.WithString("text", mcp.Required(), mcp.Description("Comment text")),
			mcp.WithBoolean("plain_text", mcp.Description("Treat text as plain text instead of HTML")),
		), h.handleCreateComment),

		// Contacts
		h.entry(mcp.NewTool("wrike_get_contacts",
			mcp.WithDescription("Get contacts by ID, or list all contacts"),
			mcp.WithArray("contact_ids", idListOption("Contact IDs (max 100)")...),
			mcp.WithBoolean("me", mcp.Description("Only return the current user")),
			mcp.WithString("opt_fields", mcp.Description(fieldsDescription)),
		), h.handleGetContacts),

		// Timelogs
		h.entry(mcp.NewTool("wrike_get_timelogs",
			append([]mcp.ToolOption{
				mcp.WithDescription("Get timelogs. Lookup priority: timelog_ids > task_id > contact_id > folder_id > category_id > all"),
			}, timelogSelectorOptions()...)...,
		), h.handleGetTimelogs),

		h.entry(mcp.NewTool("wrike_create_timelog",
			mcp.WithDescription("Log time on a task"),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("Task ID, numeric ID or permalink")),
			mcp.WithNumber("hours", mcp.Required(), mcp.Description("Hours spent")),
			mcp.WithString("tracked_date", mcp.Required(), mcp.Description("Date the time was spent (YYYY-MM-DD)")),
			mcp.WithString("comment", mcp.Description("Timelog comment")),
			mcp.WithString("category_id", mcp.Description("Timelog category ID")),
		), h.handleCreateTimelog),

		h.entry(mcp.NewTool("wrike_update_timelog",
			mcp.WithDescription("Update a timelog; only the provided fields are changed"),
			mcp.WithString("timelog_id", mcp.Required(), mcp.Description("Timelog ID")),
			mcp.WithNumber("hours", mcp.Description("Hours spent")),
			mcp.WithString("tracked_date", mcp.Description("Date the time was spent (YYYY-MM-DD)")),
			mcp.WithString("comment", mcp.Description("Timelog comment")),
			mcp.WithString("category_id", mcp.Description("Timelog category ID")),
		), h.handleUpdateTimelog),

		h.entry(mcp.NewTool("wrike_delete_timelog",
			mcp.WithDescription("Delete a timelog"),
			mcp.WithString("timelog_id", mcp.Required(), mcp.Description("Timelog ID")),
		), h.handleDeleteTimelog),

		h.entry(mcp.NewTool("wrike_get_timelog_categories",
			mcp.WithDescription("List timelog categories"),
		), h.handleGetTimelogCategories),

		h.entry(mcp.NewTool("wrike_timelog_report",
			append([]mcp.ToolOption{
				mcp.WithDescription("Summarize timelogs by category, user, task, day and month. Selects timelogs like wrike_get_timelogs"),
				mcp.WithString("format", mcp.Description("Output format (default: json); csv and xlsx are returned as file content"),
					mcp.Enum(FormatJSON, FormatCSV, FormatXLSX)),
			}, timelogSelectorOptions()...)...,
		), h.handleTimelogReport),

		// Blueprints
		h.entry(mcp.NewTool("wrike_get_folder_blueprints",
			mcp.WithDescription("List folder and project blueprints"),
		), h.handleGetFolderBlueprints),

		h.entry(mcp.NewTool("wrike_get_task_blueprints",
			mcp.WithDescription("List task blueprints"),
		), h.handleGetTaskBlueprints),

		h.entry(mcp.NewTool("wrike_launch_folder_blueprint",
			append([]mcp.ToolOption{
				mcp.WithDescription("Launch a folder blueprint asynchronously; poll the returned job with wrike_get_async_job"),
				mcp.WithString("blueprint_id", mcp.Required(), mcp.Description("Folder blueprint ID")),
				mcp.WithString("parent_id", mcp.Required(), mcp.Description("Folder that receives the new items")),
			}, launchOptions()...)...,
		), h.handleLaunchFolderBlueprint),

		h.entry(mcp.NewTool("wrike_launch_task_blueprint",
			append([]mcp.ToolOption{
				mcp.WithDescription("Launch a task blueprint asynchronously; poll the returned job with wrike_get_async_job"),
				mcp.WithString("blueprint_id", mcp.Required(), mcp.Description("Task blueprint ID")),
				mcp.WithString("parent_id", mcp.Description("Folder that receives the new task")),
				mcp.WithString("super_task_id", mcp.Description("Task that receives the new subtask")),
			}, launchOptions()...)...,
		), h.handleLaunchTaskBlueprint),

		h.entry(mcp.NewTool("wrike_create_work_from_custom_item_type",
			mcp.WithDescription("Create a task or folder from a custom item type"),
			mcp.WithString("custom_item_type_id", mcp.Required(), mcp.Description("Custom item type ID")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Title of the new item")),
			mcp.WithString("parent_id", mcp.Description("Parent folder ID")),
			mcp.WithString("super_task_id", mcp.Description("Parent task ID")),
			mcp.WithString("description", mcp.Description("Description of the new item")),
			mcp.WithArray("responsibles", idListOption("Assignee contact IDs")...),
			mcp.WithArray("custom_fields", mcp.Description("Custom field values as [{\"id\":...,\"value\":...}]"),
				mcp.Items(map[string]any{"type": "object"})),
		), h.handleCreateWorkFromCustomItemType),

		h.entry(mcp.NewTool("wrike_get_async_job",
			mcp.WithDescription("Get the state of an asynchronous job such as a blueprint launch"),
			mcp.WithString("job_id", mcp.Required(), mcp.Description("Async job ID")),
		), h.handleGetAsyncJob),

		// Reference
		h.entry(mcp.NewTool("wrike_get_custom_fields",
			mcp.WithDescription("List custom field definitions"),
		), h.handleGetCustomFields),

		h.entry(mcp.NewTool("wrike_resolve_id",
			mcp.WithDescription("Convert a numeric ID or permalink to the API ID"),
			mcp.WithString("id", mcp.Required(), mcp.Description("Numeric ID, permalink or API ID")),
			mcp.WithString("kind", mcp.Required(), mcp.Description("Kind of object"),
				mcp.Enum(string(wrike.KindTask), string(wrike.KindFolder), string(wrike.KindContact), string(wrike.KindTimelog))),
		), h.handleResolveID),
	}
}

func timelogSelectorOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithArray("timelog_ids", idListOption("Timelog IDs (max 100)")...),
		mcp.WithString("task_id", mcp.Description("Task whose timelogs are listed")),
		mcp.WithString("contact_id", mcp.Description("Contact whose timelogs are listed")),
		mcp.WithString("folder_id", mcp.Description("Folder whose timelogs are listed")),
		mcp.WithString("category_id", mcp.Description("Timelog category whose timelogs are listed")),
		mcp.WithString("tracked_date", mcp.Description(dateRangeDescription+"; date-only values allowed")),
		mcp.WithString("created_date", mcp.Description(dateRangeDescription)),
		mcp.WithString("updated_date", mcp.Description(dateRangeDescription)),
		mcp.WithBoolean("me", mcp.Description("Only timelogs of the current user")),
		mcp.WithBoolean("descendants", mcp.Description("Include timelogs of descendant folders")),
		mcp.WithBoolean("subtasks", mcp.Description("Include timelogs of subtasks")),
		mcp.WithBoolean("plain_text", mcp.Description("Return comments without HTML")),
	}
}

func launchOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the launched item")),
		mcp.WithString("title_prefix", mcp.Description("Prefix added to the titles of all copied items")),
		mcp.WithBoolean("copy_descriptions", mcp.Description("Copy descriptions")),
		mcp.WithBoolean("copy_responsibles", mcp.Description("Copy assignees")),
		mcp.WithBoolean("copy_custom_fields", mcp.Description("Copy custom field values")),
		mcp.WithBoolean("copy_custom_statuses", mcp.Description("Copy custom statuses")),
		mcp.WithBoolean("copy_statuses", mcp.Description("Copy statuses")),
		mcp.WithBoolean("copy_parents", mcp.Description("Copy parent folders")),
		mcp.WithString("reschedule_date", mcp.Description("Date used to reschedule the copied items (YYYY-MM-DD)")),
		mcp.WithString("reschedule_mode", mcp.Description("Whether reschedule_date is the start or the end"),
			mcp.Enum("Start", "End")),
		mcp.WithNumber("entry_limit", mcp.Description("Maximum number of items to copy")),
	}
}

// Argument helpers

func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// toolError renders a failed operation as an error result.
func (h *ToolHandlers) toolError(action string, err error) (*mcp.CallToolResult, error) {
	h.logger.Debug("tool call failed", "action", action, "error", err)
	return mcp.NewToolResultError(fmt.Sprintf("Failed to %s: %v", action, err)), nil
}

// rawArg returns an argument as sent, or nil when absent or null.
func rawArg(req mcp.CallToolRequest, key string) any {
	return req.GetArguments()[key]
}

func getMapArg(req mcp.CallToolRequest, key string) map[string]any {
	if v, ok := req.GetArguments()[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
		// MCP clients sometimes stringify objects.
		if s, ok := v.(string); ok && strings.HasPrefix(s, "{") {
			var m map[string]any
			if err := json.Unmarshal([]byte(s), &m); err == nil {
				return m
			}
		}
	}
	return nil
}

func getArrayArg(req mcp.CallToolRequest, key string) []any {
	if v, ok := req.GetArguments()[key]; ok {
		if arr, ok := v.([]any); ok {
			return arr
		}
		// MCP clients sometimes stringify arrays.
		if s, ok := v.(string); ok && strings.HasPrefix(strings.TrimSpace(s), "[") {
			var arr []any
			if err := json.Unmarshal([]byte(s), &arr); err == nil {
				return arr
			}
		}
	}
	return nil
}

// stringListArg reads an ID list given as an array, a JSON array string or
// a comma-separated string.
func stringListArg(req mcp.CallToolRequest, key string) []string {
	if arr := getArrayArg(req, key); arr != nil {
		out := make([]string, 0, len(arr))
		for _, v := range arr {
			if s := strings.TrimSpace(fmt.Sprint(v)); s != "" && v != nil {
				out = append(out, s)
			}
		}
		return out
	}
	if s, ok := req.GetArguments()[key].(string); ok {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}

func optString(req mcp.CallToolRequest, key string) *string {
	switch v := req.GetArguments()[key].(type) {
	case nil:
		return nil
	case string:
		return &v
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

func optBool(req mcp.CallToolRequest, key string) *bool {
	switch v := req.GetArguments()[key].(type) {
	case bool:
		return &v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return &b
		}
	}
	return nil
}

func optFloat(req mcp.CallToolRequest, key string) *float64 {
	switch v := req.GetArguments()[key].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return &f
		}
	}
	return nil
}

func customFieldsArg(req mcp.CallToolRequest, key string) ([]wrike.CustomFieldValue, error) {
	if arr := getArrayArg(req, key); arr != nil {
		return wrike.ParseCustomFieldValues(arr)
	}
	if m := getMapArg(req, key); m != nil {
		return wrike.ParseCustomFieldValues(m)
	}
	return wrike.ParseCustomFieldValues(rawArg(req, key))
}

// dateArg passes structured date filters through and keeps text as is.
func dateArg(req mcp.CallToolRequest, key string) any {
	if m := getMapArg(req, key); m != nil {
		return m
	}
	return rawArg(req, key)
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
