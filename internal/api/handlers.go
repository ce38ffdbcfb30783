package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ycho/wrike-mcp-server/internal/wrike"
)

// @title Wrike MCP Server API
// @version 1.0
// @description REST mirror of the Wrike MCP tools
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

type contextKey string

const clientContextKey contextKey = "wrikeClient"

func withClient(ctx context.Context, client *wrike.Client) context.Context {
	return context.WithValue(ctx, clientContextKey, client)
}

func getClient(ctx context.Context) *wrike.Client {
	return ctx.Value(clientContextKey).(*wrike.Client)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeWrikeError maps a client error to an HTTP status.
func writeWrikeError(w http.ResponseWriter, err error) {
	var (
		authErr      *wrike.AuthError
		apiErr       *wrike.APIError
		transportErr *wrike.TransportError
	)
	switch {
	case errors.Is(err, wrike.ErrInvalidArgument), errors.Is(err, wrike.ErrInvalidIdentifier):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		writeError(w, apiErr.StatusCode, err.Error())
	case errors.As(err, &apiErr), errors.As(err, &transportErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeList[T any](w http.ResponseWriter, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		key:     items,
		"count": len(items),
	})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

func queryBool(r *http.Request, key string) *bool {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

func queryList(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryInt(r *http.Request, key string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(key))
	return n
}

// queryDate returns a date filter as text, or nil when absent.
func queryDate(r *http.Request, key string) any {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return nil
}

// @Summary List spaces
// @Tags Spaces
// @Produce json
// @Security BearerAuth
// @Param with_archived query bool false "Include archived spaces"
// @Param fields query string false "Optional fields"
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]string
// @Router /spaces [get]
func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	withArchived := queryBool(r, "with_archived")
	spaces, err := getClient(r.Context()).ListSpaces(r.Context(), r.URL.Query().Get("fields"), withArchived != nil && *withArchived)
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeList(w, "spaces", spaces)
}

// @Summary List folders
// @Description Lookup priority: single_folder_id > folder_ids > folder_id > space_id > all folders
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param single_folder_id query string false "Space, folder or project ID"
// @Param folder_ids query string false "Comma-separated folder IDs (max 100)"
// @Param folder_id query string false "Parent folder ID"
// @Param space_id query string false "Space ID"
// @Param descendants query bool false "Include all descendants"
// @Param project_only query bool false "Only return projects"
// @Param name_pattern query string false "Case-insensitive title regex"
// @Param include_archived query bool false "Include archived folders"
// @Param fields query string false "Optional fields"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /folders [get]
func (s *Server) handleListFolders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	projectOnly := queryBool(r, "project_only")
	includeArchived := queryBool(r, "include_archived")
	withHistory := queryBool(r, "with_history")

	folders, err := getClient(r.Context()).FindFolders(r.Context(), wrike.FolderQuery{
		SingleFolderID:  q.Get("single_folder_id"),
		FolderIDs:       queryList(r, "folder_ids"),
		WithHistory:     withHistory != nil && *withHistory,
		FolderID:        q.Get("folder_id"),
		SpaceID:         q.Get("space_id"),
		Descendants:     queryBool(r, "descendants"),
		Fields:          q.Get("fields"),
		ProjectOnly:     projectOnly != nil && *projectOnly,
		NamePattern:     q.Get("name_pattern"),
		IncludeArchived: includeArchived != nil && *includeArchived,
	})
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeList(w, "folders", folders)
}

// @Summary Search tasks in a folder
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param folder_id query string true "Folder or project ID"
// @Param title query string false "Title filter"
// @Param status query string false "Status filter"
// @Param importance query string false "Importance filter"
// @Param completed query bool false "Completion filter"
// @Param subtasks query bool false "Include subtasks"
// @Param descendants query bool false "Search descendant folders"
// @Param created_date query string false "Date range"
// @Param updated_date query string false "Date range"
// @Param limit query int false "Maximum number of tasks"
// @Param sort_field query string false "Sort field"
// @Param sort_order query string false "Asc or Desc"
// @Param fields query string false "Optional fields"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /tasks [get]
func (s *Server) handleSearchTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var customFields any
	if v := q.Get("custom_fields"); v != "" {
		customFields = v
	}

	tasks, err := getClient(r.Context()).FindTasks(r.Context(), wrike.TaskQuery{
		FolderID: q.Get("folder_id"),
		Fields:   q.Get("fields"),
		Search: wrike.TaskSearchOptions{
			Title:        q.Get("title"),
			Status:       q.Get("status"),
			Importance:   q.Get("importance"),
			Completed:    queryBool(r, "completed"),
			SubTasks:     queryBool(r, "subtasks"),
			Descendants:  queryBool(r, "descendants"),
			Limit:        queryInt(r, "limit"),
			SortField:    q.Get("sort_field"),
			SortOrder:    q.Get("sort_order"),
			CustomFields: customFields,
			CreatedDate:  queryDate(r, "created_date"),
			UpdatedDate:  queryDate(r, "updated_date"),
		},
	})
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeList(w, "tasks", tasks)
}

// @Summary Get task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID, numeric ID or permalink"
// @Param fields query string false "Optional fields"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /tasks/{id} [get]
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task, err := getClient(r.Context()).GetTask(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("fields"))
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// taskRequest is the body of task create and update requests
type taskRequest struct {
	Title              *string                  `json:"title"`
	Description        *string                  `json:"description"`
	Status             *string                  `json:"status"`
	Importance         *string                  `json:"importance"`
	CustomStatusID     *string                  `json:"customStatusId"`
	Dates              *wrike.TaskDates         `json:"dates"`
	Responsibles       []string                 `json:"responsibles"`
	Followers          []string                 `json:"followers"`
	Parents            []string                 `json:"parents"`
	SuperTasks         []string                 `json:"superTasks"`
	AddResponsibles    []string                 `json:"addResponsibles"`
	RemoveResponsibles []string                 `json:"removeResponsibles"`
	AddParents         []string                 `json:"addParents"`
	RemoveParents      []string                 `json:"removeParents"`
	CustomFields       []wrike.CustomFieldValue `json:"customFields"`
}

func (req taskRequest) input() wrike.TaskInput {
	return wrike.TaskInput{
		Title:              req.Title,
		Description:        req.Description,
		Status:             req.Status,
		Importance:         req.Importance,
		CustomStatusID:     req.CustomStatusID,
		Dates:              req.Dates,
		Responsibles:       req.Responsibles,
		Followers:          req.Followers,
		Parents:            req.Parents,
		SuperTasks:         req.SuperTasks,
		AddResponsibles:    req.AddResponsibles,
		RemoveResponsibles: req.RemoveResponsibles,
		AddParents:         req.AddParents,
		RemoveParents:      req.RemoveParents,
		CustomFields:       req.CustomFields,
	}
}

// @Summary Create task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Folder or project ID"
// @Param request body object true "Task data"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /folders/{id}/tasks [post]
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := getClient(r.Context()).CreateTask(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// @Summary Update task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /tasks/{id} [patch]
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	task, err := getClient(r.Context()).UpdateTask(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// @Summary List comments
// @Description Lookup priority: comment_ids > task_id > folder_id > all comments
// @Tags Comments
// @Produce json
// @Security BearerAuth
// @Param comment_ids query string false "Comma-separated comment IDs"
// @Param task_id query string false "Task ID"
// @Param folder_id query string false "Folder ID"
// @Param plain_text query bool false "Strip HTML"
// @Param limit query int false "Maximum number of comments"
// @Param updated_date query string false "Date range"
// @Success 200 {object} map[string]any
// @Router /comments [get]
func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	comments, err := getClient(r.Context()).FindComments(r.Context(), wrike.CommentQuery{
		CommentIDs: queryList(r, "comment_ids"),
		TaskID:     q.Get("task_id"),
		FolderID:   q.Get("folder_id"),
		Options: wrike.CommentListOptions{
			PlainText:   queryBool(r, "plain_text"),
			Limit:       queryInt(r, "limit"),
			UpdatedDate: queryDate(r, "updated_date"),
		},
	})
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeList(w, "comments", comments)
}

// @Summary Add task comment
// @Tags Comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body object true "Comment with text and plainText"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /tasks/{id}/comments [post]
func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string `json:"text"`
		PlainText bool   `json:"plainText"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := getClient(r.Context()).CreateTaskComment(r.Context(), chi.URLParam(r, "id"), req.Text, req.PlainText)
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// @Summary List contacts
// @Tags Contacts
// @Produce json
// @Security BearerAuth
// @Param contact_ids query string false "Comma-separated contact IDs"
// @Param me query bool false "Only the current user"
// @Param fields query string false "Optional fields"
// @Success 200 {object} map[string]any
// @Router /contacts [get]
func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	me := queryBool(r, "me")
	contacts, err := getClient(r.Context()).FindContacts(r.Context(), wrike.ContactQuery{
		ContactIDs: queryList(r, "contact_ids"),
		Me:         me != nil && *me,
		Fields:     r.URL.Query().Get("fields"),
	})
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeList(w, "contacts", contacts)
}

// @Summary List timelogs
// @Description Lookup priority: timelog_ids > task_id > contact_id > folder_id > category_id > all
// @Tags Timelogs
// @Produce json
// @Security BearerAuth
// @Param timelog_ids query string false "Comma-separated timelog IDs"
// @Param task_id query string false "Task ID"
// @Param contact_id query string false "Contact ID"
// @Param folder_id query string false "Folder ID"
// @Param category_id query string false "Timelog category ID"
// @Param tracked_date query string false "Date range"
// @Param created_date query string false "Date range"
// @Param updated_date query string false "Date range"
// @Param me query bool false "Only the current user"
// @Param descendants query bool false "Include descendant folders"
// @Param subtasks query bool false "Include subtasks"
// @Param plain_text query bool false "Strip HTML from comments"
// @Success 200 {object} map[string]any
// @Router /timelogs [get]
func (s *Server) handleListTimelogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	timelogs, err := getClient(r.Context()).FindTimelogs(r.Context(), wrike.TimelogQuery{
		TimelogIDs: queryList(r, "timelog_ids"),
		TaskID:     q.Get("task_id"),
		ContactID:  q.Get("contact_id"),
		FolderID:   q.Get("folder_id"),
		CategoryID: q.Get("category_id"),
		Filter: wrike.TimelogFilter{
			Me:          queryBool(r, "me"),
			Descendants: queryBool(r, "descendants"),
			SubTasks:    queryBool(r, "subtasks"),
			PlainText:   queryBool(r, "plain_text"),
			TrackedDate: queryDate(r, "tracked_date"),
			CreatedDate: queryDate(r, "created_date"),
			UpdatedDate: queryDate(r, "updated_date"),
		},
	})
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeList(w, "timelogs", timelogs)
}

// timelogRequest is the body of timelog create and update requests
type timelogRequest struct {
	Hours       *float64 `json:"hours"`
	TrackedDate *string  `json:"trackedDate"`
	Comment     *string  `json:"comment"`
	CategoryID  *string  `json:"categoryId"`
}

func (req timelogRequest) payload() map[string]any {
	return wrike.NewTimelogPayload(req.Hours, req.TrackedDate, req.Comment, req.CategoryID)
}

// @Summary Log time on a task
// @Tags Timelogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body object true "hours, trackedDate, comment, categoryId"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /tasks/{id}/timelogs [post]
func (s *Server) handleCreateTimelog(w http.ResponseWriter, r *http.Request) {
	var req timelogRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	timelog, err := getClient(r.Context()).CreateTimelog(r.Context(), chi.URLParam(r, "id"), req.payload())
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, timelog)
}

// @Summary Update timelog
// @Tags Timelogs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Timelog ID"
// @Param request body object true "Fields to change"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /timelogs/{id} [patch]
func (s *Server) handleUpdateTimelog(w http.ResponseWriter, r *http.Request) {
	var req timelogRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	timelog, err := getClient(r.Context()).UpdateTimelog(r.Context(), chi.URLParam(r, "id"), req.payload())
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, timelog)
}

// @Summary Delete timelog
// @Tags Timelogs
// @Security BearerAuth
// @Param id path string true "Timelog ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /timelogs/{id} [delete]
func (s *Server) handleDeleteTimelog(w http.ResponseWriter, r *http.Request) {
	if err := getClient(r.Context()).DeleteTimelog(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeWrikeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// @Summary List timelog categories
// @Tags Timelogs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /timelog_categories [get]
func (s *Server) handleListTimelogCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := getClient(r.Context()).ListTimelogCategories(r.Context())
	if err != nil {
		writeWrikeError(w, err)
		return
	}
	writeList(w, "timelog_categories", categories)
}
