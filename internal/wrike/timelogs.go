package wrike

import (
	"context"
	"net/http"
)

// TimelogFilter holds the filters shared by every timelog listing.
type TimelogFilter struct {
	Me          *bool `url:"me,omitempty"`
	Descendants *bool `url:"descendants,omitempty"`
	SubTasks    *bool `url:"subTasks,omitempty"`
	PlainText   *bool `url:"plainText,omitempty"`

	// TrackedDate accepts date-only bounds; created and updated need a time.
	TrackedDate any `url:"-"`
	CreatedDate any `url:"-"`
	UpdatedDate any `url:"-"`
}

func (f TimelogFilter) query() (*Query, error) {
	query, err := NewQuery().MergeStruct(f)
	if err != nil {
		return nil, err
	}
	query.SetRaw("trackedDate", BuildDateRangeParam(f.TrackedDate, false))
	query.SetRaw("createdDate", BuildDateRangeParam(f.CreatedDate, true))
	query.SetRaw("updatedDate", BuildDateRangeParam(f.UpdatedDate, true))
	return query, nil
}

// GetTimelogs returns up to MaxBatchIDs timelogs by ID.
func (c *Client) GetTimelogs(ctx context.Context, timelogIDs []string, plainText *bool) ([]Timelog, error) {
	ids, err := joinBatchIDs("timelog", timelogIDs)
	if err != nil {
		return nil, err
	}
	return fetch[[]Timelog](ctx, c, http.MethodGet, "/timelogs/"+ids, NewQuery().SetBool("plainText", plainText), nil)
}

// listTimelogs lists timelogs below an optional parent path such as /tasks/{id}.
func (c *Client) listTimelogs(ctx context.Context, parent string, filter TimelogFilter) ([]Timelog, error) {
	query, err := filter.query()
	if err != nil {
		return nil, err
	}
	return fetch[[]Timelog](ctx, c, http.MethodGet, parent+"/timelogs", query, nil)
}

// TimelogQuery selects timelogs. Priority: TimelogIDs > TaskID > ContactID >
// FolderID > CategoryID > all. Empty IDs count as absent.
type TimelogQuery struct {
	TimelogIDs []string
	TaskID     string
	ContactID  string
	FolderID   string
	CategoryID string
	Filter     TimelogFilter
}

// Mode returns the lookup the query dispatches to.
func (q TimelogQuery) Mode() LookupMode {
	switch {
	case len(normalizeIDs(q.TimelogIDs)) > 0:
		return ModeBatch
	case present(q.TaskID):
		return ModeTask
	case present(q.ContactID):
		return ModeContact
	case present(q.FolderID):
		return ModeFolder
	case present(q.CategoryID):
		return ModeCategory
	default:
		return ModeAll
	}
}

// FindTimelogs runs the lookup selected by q.
func (c *Client) FindTimelogs(ctx context.Context, q TimelogQuery) ([]Timelog, error) {
	switch q.Mode() {
	case ModeBatch:
		return c.GetTimelogs(ctx, q.TimelogIDs, q.Filter.PlainText)
	case ModeTask:
		taskID, err := c.resolveIfLegacy(ctx, q.TaskID, KindTask)
		if err != nil {
			return nil, err
		}
		return c.listTimelogs(ctx, "/tasks/"+taskID, q.Filter)
	case ModeContact:
		contactID, err := c.resolveIfLegacy(ctx, q.ContactID, KindContact)
		if err != nil {
			return nil, err
		}
		return c.listTimelogs(ctx, "/contacts/"+contactID, q.Filter)
	case ModeFolder:
		folderID, err := c.resolveIfLegacy(ctx, q.FolderID, KindFolder)
		if err != nil {
			return nil, err
		}
		return c.listTimelogs(ctx, "/folders/"+folderID, q.Filter)
	case ModeCategory:
		return c.listTimelogs(ctx, "/timelog_categories/"+q.CategoryID, q.Filter)
	default:
		return c.listTimelogs(ctx, "", q.Filter)
	}
}

// CreateTimelog records time on a task. payload is usually built with
// NewTimelogPayload and must carry hours and trackedDate.
func (c *Client) CreateTimelog(ctx context.Context, taskID string, payload map[string]any) (*Timelog, error) {
	if !present(taskID) {
		return nil, invalidArgument("task ID is required")
	}
	payload = RemoveUndefined(payload)
	if _, ok := payload["hours"]; !ok {
		return nil, invalidArgument("hours is required")
	}
	if _, ok := payload["trackedDate"]; !ok {
		return nil, invalidArgument("tracked date is required")
	}
	taskID, err := c.resolveIfLegacy(ctx, taskID, KindTask)
	if err != nil {
		return nil, err
	}
	timelogs, err := fetch[[]Timelog](ctx, c, http.MethodPost, "/tasks/"+taskID+"/timelogs", nil, payload)
	if err != nil {
		return nil, err
	}
	return first(timelogs, "timelog", taskID)
}

// UpdateTimelog changes the provided fields of a timelog.
func (c *Client) UpdateTimelog(ctx context.Context, timelogID string, payload map[string]any) (*Timelog, error) {
	if !present(timelogID) {
		return nil, invalidArgument("timelog ID is required")
	}
	payload = RemoveUndefined(payload)
	if len(payload) == 0 {
		return nil, invalidArgument("nothing to update")
	}
	timelogID, err := c.resolveIfLegacy(ctx, timelogID, KindTimelog)
	if err != nil {
		return nil, err
	}
	timelogs, err := fetch[[]Timelog](ctx, c, http.MethodPut, "/timelogs/"+timelogID, nil, payload)
	if err != nil {
		return nil, err
	}
	return first(timelogs, "timelog", timelogID)
}

// DeleteTimelog removes a timelog.
func (c *Client) DeleteTimelog(ctx context.Context, timelogID string) error {
	if !present(timelogID) {
		return invalidArgument("timelog ID is required")
	}
	timelogID, err := c.resolveIfLegacy(ctx, timelogID, KindTimelog)
	if err != nil {
		return err
	}
	_, err = c.doRequest(ctx, http.MethodDelete, "/timelogs/"+timelogID, nil, nil)
	return err
}

// ListTimelogCategories returns the timelog categories of the account.
func (c *Client) ListTimelogCategories(ctx context.Context) ([]TimelogCategory, error) {
	return fetch[[]TimelogCategory](ctx, c, http.MethodGet, "/timelog_categories", nil, nil)
}
