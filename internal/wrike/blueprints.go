package wrike

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// ListFolderBlueprints returns the folder and project blueprints.
func (c *Client) ListFolderBlueprints(ctx context.Context) ([]FolderBlueprint, error) {
	return fetch[[]FolderBlueprint](ctx, c, http.MethodGet, "/folder_blueprints", nil, nil)
}

// ListTaskBlueprints returns the task blueprints.
func (c *Client) ListTaskBlueprints(ctx context.Context) ([]TaskBlueprint, error) {
	return fetch[[]TaskBlueprint](ctx, c, http.MethodGet, "/task_blueprints", nil, nil)
}

// LaunchInput configures a blueprint launch. Parent is a folder ID for
// folder blueprints; task blueprints take Parent or SuperTask.
type LaunchInput struct {
	Parent             string `json:"parent,omitempty"`
	SuperTask          string `json:"superTask,omitempty"`
	Title              string `json:"title"`
	TitlePrefix        string `json:"titlePrefix,omitempty"`
	CopyDescriptions   *bool  `json:"copyDescriptions,omitempty"`
	CopyResponsibles   *bool  `json:"copyResponsibles,omitempty"`
	CopyCustomFields   *bool  `json:"copyCustomFields,omitempty"`
	CopyCustomStatuses *bool  `json:"copyCustomStatuses,omitempty"`
	CopyStatuses       *bool  `json:"copyStatuses,omitempty"`
	CopyParents        *bool  `json:"copyParents,omitempty"`
	RescheduleDate     string `json:"rescheduleDate,omitempty"`
	RescheduleMode     string `json:"rescheduleMode,omitempty"`
	EntryLimit         int    `json:"entryLimit,omitempty"`
}

func (in LaunchInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalidArgument("title is required")
	}
	return nil
}

// LaunchFolderBlueprint starts an asynchronous folder blueprint launch.
func (c *Client) LaunchFolderBlueprint(ctx context.Context, blueprintID string, in LaunchInput) (*AsyncJob, error) {
	if !present(blueprintID) {
		return nil, invalidArgument("folder blueprint ID is required")
	}
	if !present(in.Parent) {
		return nil, invalidArgument("parent folder ID is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	parent, err := c.resolveIfLegacy(ctx, in.Parent, KindFolder)
	if err != nil {
		return nil, err
	}
	in.Parent = parent
	return c.launch(ctx, "/folder_blueprints/"+blueprintID+"/launch_async", blueprintID, in)
}

// LaunchTaskBlueprint starts an asynchronous task blueprint launch.
func (c *Client) LaunchTaskBlueprint(ctx context.Context, blueprintID string, in LaunchInput) (*AsyncJob, error) {
	if !present(blueprintID) {
		return nil, invalidArgument("task blueprint ID is required")
	}
	if !present(in.Parent) && !present(in.SuperTask) {
		return nil, invalidArgument("either a parent folder ID or a super task ID is required")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	var err error
	if present(in.Parent) {
		if in.Parent, err = c.resolveIfLegacy(ctx, in.Parent, KindFolder); err != nil {
			return nil, err
		}
	}
	if present(in.SuperTask) {
		if in.SuperTask, err = c.resolveIfLegacy(ctx, in.SuperTask, KindTask); err != nil {
			return nil, err
		}
	}
	return c.launch(ctx, "/task_blueprints/"+blueprintID+"/launch_async", blueprintID, in)
}

func (c *Client) launch(ctx context.Context, path, blueprintID string, in LaunchInput) (*AsyncJob, error) {
	jobs, err := fetch[[]AsyncJob](ctx, c, http.MethodPost, path, nil, in)
	if err != nil {
		return nil, err
	}
	return first(jobs, "async job for blueprint", blueprintID)
}

// GetAsyncJob returns the state of an asynchronous job.
func (c *Client) GetAsyncJob(ctx context.Context, jobID string) (*AsyncJob, error) {
	if !present(jobID) {
		return nil, invalidArgument("job ID is required")
	}
	jobs, err := fetch[[]AsyncJob](ctx, c, http.MethodGet, "/async_job/"+jobID, nil, nil)
	if err != nil {
		return nil, err
	}
	return first(jobs, "async job", jobID)
}

// CustomItemInput creates work from a custom item type.
type CustomItemInput struct {
	ParentID       string             `json:"parentId,omitempty"`
	SuperTaskID    string             `json:"superTaskId,omitempty"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	CustomFields   []CustomFieldValue `json:"customFields,omitempty"`
	ResponsibleIDs []string           `json:"responsibles,omitempty"`
}

// InstantiateCustomItemType creates a task or folder from a custom item
// type. The created items are returned as the API sent them.
func (c *Client) InstantiateCustomItemType(ctx context.Context, typeID string, in CustomItemInput) ([]json.RawMessage, error) {
	if !present(typeID) {
		return nil, invalidArgument("custom item type ID is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalidArgument("title is required")
	}
	if !present(in.ParentID) && !present(in.SuperTaskID) {
		return nil, invalidArgument("either a parent ID or a super task ID is required")
	}
	var err error
	if present(in.ParentID) {
		if in.ParentID, err = c.resolveIfLegacy(ctx, in.ParentID, KindFolder); err != nil {
			return nil, err
		}
	}
	if present(in.SuperTaskID) {
		if in.SuperTaskID, err = c.resolveIfLegacy(ctx, in.SuperTaskID, KindTask); err != nil {
			return nil, err
		}
	}
	return fetch[[]json.RawMessage](ctx, c, http.MethodPost, "/custom_item_types/"+typeID+"/instantiate", nil, in)
}

// ListCustomFields returns the custom field definitions of the account.
func (c *Client) ListCustomFields(ctx context.Context) ([]CustomField, error) {
	return fetch[[]CustomField](ctx, c, http.MethodGet, "/customfields", nil, nil)
}
