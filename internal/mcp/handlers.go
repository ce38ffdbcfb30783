package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

// Spaces and folders

func (h *ToolHandlers) handleGetSpaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client := h.clientFor(ctx)
	fields := req.GetString("opt_fields", "")
	if spaceID := req.GetString("space_id", ""); spaceID != "" {
		space, err := client.GetSpace(ctx, spaceID, fields)
		if err != nil {
			return h.toolError("get space", err)
		}
		return jsonResult(space)
	}

	spaces, err := client.ListSpaces(ctx, fields, req.GetBool("with_archived", false))
	if err != nil {
		return h.toolError("get spaces", err)
	}
	return jsonResult(spaces)
}

func (h *ToolHandlers) handleGetFolders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := wrike.FolderQuery{
		SingleFolderID:  req.GetString("single_folder_id", ""),
		FolderIDs:       stringListArg(req, "folder_ids"),
		WithHistory:     req.GetBool("with_history", false),
		FolderID:        req.GetString("folder_id", ""),
		SpaceID:         req.GetString("space_id", ""),
		Descendants:     optBool(req, "descendants"),
		Fields:          req.GetString("opt_fields", ""),
		ProjectOnly:     req.GetBool("project_only", false),
		NamePattern:     req.GetString("name_pattern", ""),
		IncludeArchived: req.GetBool("include_archived", false),
	}

	folders, err := h.clientFor(ctx).FindFolders(ctx, q)
	if err != nil {
		return h.toolError("get folders", err)
	}
	return jsonResult(folders)
}

func projectArgs(req mcp.CallToolRequest) *wrike.ProjectInput {
	project := &wrike.ProjectInput{
		OwnerIDs:  stringListArg(req, "project_owner_ids"),
		Status:    optString(req, "project_status"),
		StartDate: optString(req, "project_start_date"),
		EndDate:   optString(req, "project_end_date"),
	}
	if project.OwnerIDs == nil && project.Status == nil && project.StartDate == nil && project.EndDate == nil {
		return nil
	}
	return project
}

func (h *ToolHandlers) handleCreateFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	parentID, err := req.RequireString("parent_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customFields, err := customFieldsArg(req, "custom_fields")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := wrike.FolderInput{
		Title:        &title,
		Description:  optString(req, "description"),
		Shareds:      stringListArg(req, "shareds"),
		Project:      projectArgs(req),
		CustomFields: customFields,
	}
	if input.Project == nil && req.GetBool("is_project", false) {
		input.Project = &wrike.ProjectInput{}
	}

	folder, err := h.clientFor(ctx).CreateFolder(ctx, parentID, input)
	if err != nil {
		return h.toolError("create folder", err)
	}
	return jsonResult(folder)
}

func (h *ToolHandlers) handleUpdateFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folderID, err := req.RequireString("folder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customFields, err := customFieldsArg(req, "custom_fields")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folder, err := h.clientFor(ctx).UpdateFolder(ctx, folderID, wrike.FolderInput{
		Title:         optString(req, "title"),
		Description:   optString(req, "description"),
		AddParents:    stringListArg(req, "add_parents"),
		RemoveParents: stringListArg(req, "remove_parents"),
		Restore:       optBool(req, "restore"),
		Project:       projectArgs(req),
		CustomFields:  customFields,
	})
	if err != nil {
		return h.toolError("update folder", err)
	}
	return jsonResult(folder)
}

// Tasks

func (h *ToolHandlers) handleGetTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := wrike.TaskQuery{
		TaskID:   req.GetString("task_id", ""),
		FolderID: req.GetString("folder_id", ""),
		Fields:   req.GetString("opt_fields", ""),
		Search: wrike.TaskSearchOptions{
			Title:        req.GetString("title", ""),
			Status:       req.GetString("status", ""),
			Importance:   req.GetString("importance", ""),
			Completed:    optBool(req, "completed"),
			SubTasks:     optBool(req, "subtasks"),
			Descendants:  optBool(req, "descendants"),
			Limit:        req.GetInt("limit", 0),
			SortField:    req.GetString("sort_field", ""),
			SortOrder:    req.GetString("sort_order", ""),
			CustomFields: rawArg(req, "custom_fields"),
			CreatedDate:  dateArg(req, "created_date"),
			UpdatedDate:  dateArg(req, "updated_date"),
		},
	}

	tasks, err := h.clientFor(ctx).FindTasks(ctx, q)
	if err != nil {
		return h.toolError("get tasks", err)
	}
	return jsonResult(tasks)
}

func taskDatesArg(req mcp.CallToolRequest) *wrike.TaskDates {
	start := req.GetString("start_date", "")
	due := req.GetString("due_date", "")
	if start == "" && due == "" {
		return nil
	}
	return &wrike.TaskDates{Start: start, Due: due}
}

func (h *ToolHandlers) handleCreateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	folderID, err := req.RequireString("folder_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customFields, err := customFieldsArg(req, "custom_fields")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := h.clientFor(ctx).CreateTask(ctx, folderID, wrike.TaskInput{
		Title:          &title,
		Description:    optString(req, "description"),
		Status:         optString(req, "status"),
		Importance:     optString(req, "importance"),
		CustomStatusID: optString(req, "custom_status_id"),
		Dates:          taskDatesArg(req),
		Responsibles:   stringListArg(req, "responsibles"),
		Followers:      stringListArg(req, "followers"),
		Parents:        stringListArg(req, "parents"),
		SuperTasks:     stringListArg(req, "super_tasks"),
		CustomFields:   customFields,
	})
	if err != nil {
		return h.toolError("create task", err)
	}
	return jsonResult(task)
}

func (h *ToolHandlers) handleUpdateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customFields, err := customFieldsArg(req, "custom_fields")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := h.clientFor(ctx).UpdateTask(ctx, taskID, wrike.TaskInput{
		Title:              optString(req, "title"),
		Description:        optString(req, "description"),
		Status:             optString(req, "status"),
		Importance:         optString(req, "importance"),
		CustomStatusID:     optString(req, "custom_status_id"),
		Dates:              taskDatesArg(req),
		AddResponsibles:    stringListArg(req, "add_responsibles"),
		RemoveResponsibles: stringListArg(req, "remove_responsibles"),
		AddParents:         stringListArg(req, "add_parents"),
		RemoveParents:      stringListArg(req, "remove_parents"),
		AddSuperTasks:      stringListArg(req, "add_super_tasks"),
		RemoveSuperTasks:   stringListArg(req, "remove_super_tasks"),
		CustomFields:       customFields,
	})
	if err != nil {
		return h.toolError("update task", err)
	}
	return jsonResult(task)
}

func (h *ToolHandlers) handleDeleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, err := h.clientFor(ctx).DeleteTask(ctx, taskID)
	if err != nil {
		return h.toolError("delete task", err)
	}
	return jsonResult(task)
}

// Comments

func (h *ToolHandlers) handleGetComments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	comments, err := h.clientFor(ctx).FindComments(ctx, wrike.CommentQuery{
		CommentIDs: stringListArg(req, "comment_ids"),
		TaskID:     req.GetString("task_id", ""),
		FolderID:   req.GetString("folder_id", ""),
		Options: wrike.CommentListOptions{
			PlainText:   optBool(req, "plain_text"),
			Limit:       req.GetInt("limit", 0),
			UpdatedDate: dateArg(req, "updated_date"),
		},
	})
	if err != nil {
		return h.toolError("get comments", err)
	}
	return jsonResult(comments)
}

func (h *ToolHandlers) handleCreateComment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	text, err := req.RequireString("text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	plainText := req.GetBool("plain_text", false)
	client := h.clientFor(ctx)

	var comment *wrike.Comment
	switch taskID, folderID := req.GetString("task_id", ""), req.GetString("folder_id", ""); {
	case strings.TrimSpace(taskID) != "":
		comment, err = client.CreateTaskComment(ctx, taskID, text, plainText)
	case strings.TrimSpace(folderID) != "":
		comment, err = client.CreateFolderComment(ctx, folderID, text, plainText)
	default:
		return mcp.NewToolResultError("either task_id or folder_id is required"), nil
	}
	if err != nil {
		return h.toolError("create comment", err)
	}
	return jsonResult(comment)
}

// Contacts

func (h *ToolHandlers) handleGetContacts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	contacts, err := h.clientFor(ctx).FindContacts(ctx, wrike.ContactQuery{
		ContactIDs: stringListArg(req, "contact_ids"),
		Me:         req.GetBool("me", false),
		Fields:     req.GetString("opt_fields", ""),
	})
	if err != nil {
		return h.toolError("get contacts", err)
	}
	return jsonResult(contacts)
}

// Timelogs

func timelogQueryArgs(req mcp.CallToolRequest) wrike.TimelogQuery {
	return wrike.TimelogQuery{
		TimelogIDs: stringListArg(req, "timelog_ids"),
		TaskID:     req.GetString("task_id", ""),
		ContactID:  req.GetString("contact_id", ""),
		FolderID:   req.GetString("folder_id", ""),
		CategoryID: req.GetString("category_id", ""),
		Filter: wrike.TimelogFilter{
			Me:          optBool(req, "me"),
			Descendants: optBool(req, "descendants"),
			SubTasks:    optBool(req, "subtasks"),
			PlainText:   optBool(req, "plain_text"),
			TrackedDate: dateArg(req, "tracked_date"),
			CreatedDate: dateArg(req, "created_date"),
			UpdatedDate: dateArg(req, "updated_date"),
		},
	}
}

func (h *ToolHandlers) handleGetTimelogs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	timelogs, err := h.clientFor(ctx).FindTimelogs(ctx, timelogQueryArgs(req))
	if err != nil {
		return h.toolError("get timelogs", err)
	}
	return jsonResult(timelogs)
}

func (h *ToolHandlers) handleCreateTimelog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	taskID, err := req.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := wrike.NewTimelogPayload(
		optFloat(req, "hours"),
		optString(req, "tracked_date"),
		optString(req, "comment"),
		optString(req, "category_id"),
	)

	timelog, err := h.clientFor(ctx).CreateTimelog(ctx, taskID, payload)
	if err != nil {
		return h.toolError("create timelog", err)
	}
	return jsonResult(timelog)
}

func (h *ToolHandlers) handleUpdateTimelog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	timelogID, err := req.RequireString("timelog_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	payload := wrike.NewTimelogPayload(
		optFloat(req, "hours"),
		optString(req, "tracked_date"),
		optString(req, "comment"),
		optString(req, "category_id"),
	)

	timelog, err := h.clientFor(ctx).UpdateTimelog(ctx, timelogID, payload)
	if err != nil {
		return h.toolError("update timelog", err)
	}
	return jsonResult(timelog)
}

func (h *ToolHandlers) handleDeleteTimelog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	timelogID, err := req.RequireString("timelog_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := h.clientFor(ctx).DeleteTimelog(ctx, timelogID); err != nil {
		return h.toolError("delete timelog", err)
	}
	return jsonResult(map[string]any{
		"deleted":    true,
		"timelog_id": timelogID,
	})
}

func (h *ToolHandlers) handleGetTimelogCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := h.clientFor(ctx).ListTimelogCategories(ctx)
	if err != nil {
		return h.toolError("get timelog categories", err)
	}
	return jsonResult(categories)
}

// Blueprints

func (h *ToolHandlers) handleGetFolderBlueprints(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blueprints, err := h.clientFor(ctx).ListFolderBlueprints(ctx)
	if err != nil {
		return h.toolError("get folder blueprints", err)
	}
	return jsonResult(blueprints)
}

func (h *ToolHandlers) handleGetTaskBlueprints(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	blueprints, err := h.clientFor(ctx).ListTaskBlueprints(ctx)
	if err != nil {
		return h.toolError("get task blueprints", err)
	}
	return jsonResult(blueprints)
}

func launchArgs(req mcp.CallToolRequest) wrike.LaunchInput {
	return wrike.LaunchInput{
		Parent:             req.GetString("parent_id", ""),
		SuperTask:          req.GetString("super_task_id", ""),
		Title:              req.GetString("title", ""),
		TitlePrefix:        req.GetString("title_prefix", ""),
		CopyDescriptions:   optBool(req, "copy_descriptions"),
		CopyResponsibles:   optBool(req, "copy_responsibles"),
		CopyCustomFields:   optBool(req, "copy_custom_fields"),
		CopyCustomStatuses: optBool(req, "copy_custom_statuses"),
		CopyStatuses:       optBool(req, "copy_statuses"),
		CopyParents:        optBool(req, "copy_parents"),
		RescheduleDate:     req.GetString("reschedule_date", ""),
		RescheduleMode:     req.GetString("reschedule_mode", ""),
		EntryLimit:         req.GetInt("entry_limit", 0),
	}
}

func (h *ToolHandlers) handleLaunchFolderBlueprint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	blueprintID, err := req.RequireString("blueprint_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	job, err := h.clientFor(ctx).LaunchFolderBlueprint(ctx, blueprintID, launchArgs(req))
	if err != nil {
		return h.toolError("launch folder blueprint", err)
	}
	return jsonResult(job)
}

func (h *ToolHandlers) handleLaunchTaskBlueprint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	blueprintID, err := req.RequireString("blueprint_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	job, err := h.clientFor(ctx).LaunchTaskBlueprint(ctx, blueprintID, launchArgs(req))
	if err != nil {
		return h.toolError("launch task blueprint", err)
	}
	return jsonResult(job)
}

func (h *ToolHandlers) handleCreateWorkFromCustomItemType(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.checkReadOnly(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	typeID, err := req.RequireString("custom_item_type_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	customFields, err := customFieldsArg(req, "custom_fields")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	items, err := h.clientFor(ctx).InstantiateCustomItemType(ctx, typeID, wrike.CustomItemInput{
		ParentID:       req.GetString("parent_id", ""),
		SuperTaskID:    req.GetString("super_task_id", ""),
		Title:          title,
		Description:    req.GetString("description", ""),
		CustomFields:   customFields,
		ResponsibleIDs: stringListArg(req, "responsibles"),
	})
	if err != nil {
		return h.toolError("create work from custom item type", err)
	}
	return jsonResult(items)
}

func (h *ToolHandlers) handleGetAsyncJob(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := req.RequireString("job_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	job, err := h.clientFor(ctx).GetAsyncJob(ctx, jobID)
	if err != nil {
		return h.toolError("get async job", err)
	}
	return jsonResult(job)
}

// Reference

func (h *ToolHandlers) handleGetCustomFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fields, err := h.clientFor(ctx).ListCustomFields(ctx)
	if err != nil {
		return h.toolError("get custom fields", err)
	}
	return jsonResult(fields)
}

func (h *ToolHandlers) handleResolveID(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kindArg, err := req.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := wrike.ParseIDKind(kindArg)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved, err := h.clientFor(ctx).ResolveID(ctx, id, kind)
	if err != nil {
		return h.toolError("resolve ID", err)
	}
	return jsonResult(map[string]any{
		"input":     id,
		"kind":      string(kind),
		"id":        resolved,
		"canonical": wrike.IsCanonicalID(resolved),
	})
}
