package wrike

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// TaskSearchOptions are the filters of a folder task search.
type TaskSearchOptions struct {
	Title       string `url:"title,omitempty"`
	Status      string `url:"status,omitempty"`
	Importance  string `url:"importance,omitempty"`
	Completed   *bool  `url:"completed,omitempty"`
	SubTasks    *bool  `url:"subTasks,omitempty"`
	Descendants *bool  `url:"descendants,omitempty"`
	Limit       int    `url:"limit,omitempty"`
	SortField   string `url:"sortField,omitempty"`
	SortOrder   string `url:"sortOrder,omitempty"`

	// CustomFields is sent as a JSON string. A string is forwarded as is.
	CustomFields any    `url:"-"`
	CreatedDate  any    `url:"-"`
	UpdatedDate  any    `url:"-"`
	Fields       string `url:"-"`
}

func (o TaskSearchOptions) query() (*Query, error) {
	query, err := optionalFieldsQuery(o.Fields).MergeStruct(o)
	if err != nil {
		return nil, err
	}
	if cf, err := customFieldsFilter(o.CustomFields); err != nil {
		return nil, err
	} else if cf != "" {
		query.Set("customFields", cf)
	}
	query.SetRaw("createdDate", BuildDateRangeParam(o.CreatedDate, true))
	query.SetRaw("updatedDate", BuildDateRangeParam(o.UpdatedDate, true))
	return query, nil
}

func customFieldsFilter(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", invalidArgument("custom fields filter is not serializable: %v", err)
		}
		return string(data), nil
	}
}

// GetTask returns a task by ID, resolving legacy IDs.
func (c *Client) GetTask(ctx context.Context, taskID, fields string) (*Task, error) {
	if !present(taskID) {
		return nil, invalidArgument("task ID is required")
	}
	taskID, err := c.resolveIfLegacy(ctx, taskID, KindTask)
	if err != nil {
		return nil, err
	}
	tasks, err := fetch[[]Task](ctx, c, http.MethodGet, "/tasks/"+taskID, optionalFieldsQuery(fields), nil)
	if err != nil {
		return nil, err
	}
	return first(tasks, "task", taskID)
}

// GetTasks returns up to MaxBatchIDs tasks by canonical ID.
func (c *Client) GetTasks(ctx context.Context, taskIDs []string, fields string) ([]Task, error) {
	ids, err := joinBatchIDs("task", taskIDs)
	if err != nil {
		return nil, err
	}
	return fetch[[]Task](ctx, c, http.MethodGet, "/tasks/"+ids, optionalFieldsQuery(fields), nil)
}

// SearchFolderTasks returns the tasks of a folder matching opts.
func (c *Client) SearchFolderTasks(ctx context.Context, folderID string, opts TaskSearchOptions) ([]Task, error) {
	if !present(folderID) {
		return nil, invalidArgument("folder ID is required")
	}
	query, err := opts.query()
	if err != nil {
		return nil, err
	}
	folderID, err = c.resolveIfLegacy(ctx, folderID, KindFolder)
	if err != nil {
		return nil, err
	}
	return fetch[[]Task](ctx, c, http.MethodGet, "/folders/"+folderID+"/tasks", query, nil)
}

// TaskInput are the fields of a task create or update. Nil fields are not
// sent, so an update only touches what the caller provided.
type TaskInput struct {
	Title          *string
	Description    *string
	Status         *string
	CustomStatusID *string
	Importance     *string
	Dates          *TaskDates
	Shareds        []string
	Parents        []string
	Responsibles   []string
	Followers      []string
	SuperTasks     []string
	Follow         *bool
	CustomFields   []CustomFieldValue

	// Update only.
	AddParents         []string
	RemoveParents      []string
	AddResponsibles    []string
	RemoveResponsibles []string
	AddShareds         []string
	RemoveShareds      []string
	AddSuperTasks      []string
	RemoveSuperTasks   []string
}

func (in TaskInput) payload() map[string]any {
	return RemoveUndefined(map[string]any{
		"title":              in.Title,
		"description":        in.Description,
		"status":             in.Status,
		"customStatus":       in.CustomStatusID,
		"importance":         in.Importance,
		"dates":              in.Dates,
		"shareds":            in.Shareds,
		"parents":            in.Parents,
		"responsibles":       in.Responsibles,
		"followers":          in.Followers,
		"superTasks":         in.SuperTasks,
		"follow":             in.Follow,
		"customFields":       in.CustomFields,
		"addParents":         in.AddParents,
		"removeParents":      in.RemoveParents,
		"addResponsibles":    in.AddResponsibles,
		"removeResponsibles": in.RemoveResponsibles,
		"addShareds":         in.AddShareds,
		"removeShareds":      in.RemoveShareds,
		"addSuperTasks":      in.AddSuperTasks,
		"removeSuperTasks":   in.RemoveSuperTasks,
	})
}

// CreateTask creates a task in a folder.
func (c *Client) CreateTask(ctx context.Context, folderID string, in TaskInput) (*Task, error) {
	if !present(folderID) {
		return nil, invalidArgument("folder ID is required")
	}
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, invalidArgument("title is required")
	}
	folderID, err := c.resolveIfLegacy(ctx, folderID, KindFolder)
	if err != nil {
		return nil, err
	}
	tasks, err := fetch[[]Task](ctx, c, http.MethodPost, "/folders/"+folderID+"/tasks", nil, in.payload())
	if err != nil {
		return nil, err
	}
	return first(tasks, "task", folderID)
}

// UpdateTask modifies an existing task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, in TaskInput) (*Task, error) {
	if !present(taskID) {
		return nil, invalidArgument("task ID is required")
	}
	taskID, err := c.resolveIfLegacy(ctx, taskID, KindTask)
	if err != nil {
		return nil, err
	}
	tasks, err := fetch[[]Task](ctx, c, http.MethodPut, "/tasks/"+taskID, nil, in.payload())
	if err != nil {
		return nil, err
	}
	return first(tasks, "task", taskID)
}

// DeleteTask moves a task to the recycle bin and returns it.
func (c *Client) DeleteTask(ctx context.Context, taskID string) (*Task, error) {
	if !present(taskID) {
		return nil, invalidArgument("task ID is required")
	}
	taskID, err := c.resolveIfLegacy(ctx, taskID, KindTask)
	if err != nil {
		return nil, err
	}
	tasks, err := fetch[[]Task](ctx, c, http.MethodDelete, "/tasks/"+taskID, nil, nil)
	if err != nil {
		return nil, err
	}
	return first(tasks, "task", taskID)
}

// TaskQuery selects tasks: TaskID wins over FolderID; one is required.
type TaskQuery struct {
	TaskID   string
	FolderID string
	Fields   string
	Search   TaskSearchOptions
}

// Mode returns the lookup the query dispatches to.
func (q TaskQuery) Mode() LookupMode {
	switch {
	case present(q.TaskID):
		return ModeSingle
	case present(q.FolderID):
		return ModeFolder
	default:
		return ModeNone
	}
}

// FindTasks runs the lookup selected by q.
func (c *Client) FindTasks(ctx context.Context, q TaskQuery) ([]Task, error) {
	switch q.Mode() {
	case ModeSingle:
		task, err := c.GetTask(ctx, q.TaskID, q.Fields)
		if err != nil {
			return nil, err
		}
		return []Task{*task}, nil
	case ModeFolder:
		opts := q.Search
		if opts.Fields == "" {
			opts.Fields = q.Fields
		}
		return c.SearchFolderTasks(ctx, q.FolderID, opts)
	default:
		return nil, invalidArgument("either task_id or folder_id is required")
	}
}
