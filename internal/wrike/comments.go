package wrike

import (
	"context"
	"net/http"
	"strings"
)

// CommentListOptions are the filters of comment listings.
type CommentListOptions struct {
	PlainText *bool `url:"plainText,omitempty"`
	Limit     int   `url:"limit,omitempty"`

	// UpdatedDate only applies to the account-wide listing.
	UpdatedDate any `url:"-"`
}

func (o CommentListOptions) query() (*Query, error) {
	query, err := NewQuery().MergeStruct(o)
	if err != nil {
		return nil, err
	}
	return query.SetRaw("updatedDate", BuildDateRangeParam(o.UpdatedDate, true)), nil
}

// GetComments returns up to MaxBatchIDs comments by ID.
func (c *Client) GetComments(ctx context.Context, commentIDs []string, plainText *bool) ([]Comment, error) {
	ids, err := joinBatchIDs("comment", commentIDs)
	if err != nil {
		return nil, err
	}
	return fetch[[]Comment](ctx, c, http.MethodGet, "/comments/"+ids, NewQuery().SetBool("plainText", plainText), nil)
}

// ListTaskComments returns the comments of a task.
func (c *Client) ListTaskComments(ctx context.Context, taskID string, opts CommentListOptions) ([]Comment, error) {
	taskID, err := c.resolveIfLegacy(ctx, taskID, KindTask)
	if err != nil {
		return nil, err
	}
	query := NewQuery().SetBool("plainText", opts.PlainText)
	return fetch[[]Comment](ctx, c, http.MethodGet, "/tasks/"+taskID+"/comments", query, nil)
}

// ListFolderComments returns the comments of a folder.
func (c *Client) ListFolderComments(ctx context.Context, folderID string, opts CommentListOptions) ([]Comment, error) {
	folderID, err := c.resolveIfLegacy(ctx, folderID, KindFolder)
	if err != nil {
		return nil, err
	}
	query := NewQuery().SetBool("plainText", opts.PlainText)
	return fetch[[]Comment](ctx, c, http.MethodGet, "/folders/"+folderID+"/comments", query, nil)
}

// ListComments returns comments across the account.
func (c *Client) ListComments(ctx context.Context, opts CommentListOptions) ([]Comment, error) {
	query, err := opts.query()
	if err != nil {
		return nil, err
	}
	return fetch[[]Comment](ctx, c, http.MethodGet, "/comments", query, nil)
}

type commentInput struct {
	Text      string `json:"text"`
	PlainText bool   `json:"plainText"`
}

// CreateTaskComment adds a comment to a task.
func (c *Client) CreateTaskComment(ctx context.Context, taskID, text string, plainText bool) (*Comment, error) {
	if !present(taskID) {
		return nil, invalidArgument("task ID is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, invalidArgument("comment text is required")
	}
	taskID, err := c.resolveIfLegacy(ctx, taskID, KindTask)
	if err != nil {
		return nil, err
	}
	comments, err := fetch[[]Comment](ctx, c, http.MethodPost, "/tasks/"+taskID+"/comments", nil,
		commentInput{Text: text, PlainText: plainText})
	if err != nil {
		return nil, err
	}
	return first(comments, "comment", taskID)
}

// CreateFolderComment adds a comment to a folder or project.
func (c *Client) CreateFolderComment(ctx context.Context, folderID, text string, plainText bool) (*Comment, error) {
	if !present(folderID) {
		return nil, invalidArgument("folder ID is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, invalidArgument("comment text is required")
	}
	folderID, err := c.resolveIfLegacy(ctx, folderID, KindFolder)
	if err != nil {
		return nil, err
	}
	comments, err := fetch[[]Comment](ctx, c, http.MethodPost, "/folders/"+folderID+"/comments", nil,
		commentInput{Text: text, PlainText: plainText})
	if err != nil {
		return nil, err
	}
	return first(comments, "comment", folderID)
}

// CommentQuery selects comments: CommentIDs > TaskID > FolderID > all.
type CommentQuery struct {
	CommentIDs []string
	TaskID     string
	FolderID   string
	Options    CommentListOptions
}

// Mode returns the lookup the query dispatches to.
func (q CommentQuery) Mode() LookupMode {
	switch {
	case len(normalizeIDs(q.CommentIDs)) > 0:
		return ModeBatch
	case present(q.TaskID):
		return ModeTask
	case present(q.FolderID):
		return ModeFolder
	default:
		return ModeAll
	}
}

// FindComments runs the lookup selected by q.
func (c *Client) FindComments(ctx context.Context, q CommentQuery) ([]Comment, error) {
	switch q.Mode() {
	case ModeBatch:
		return c.GetComments(ctx, q.CommentIDs, q.Options.PlainText)
	case ModeTask:
		return c.ListTaskComments(ctx, q.TaskID, q.Options)
	case ModeFolder:
		return c.ListFolderComments(ctx, q.FolderID, q.Options)
	default:
		return c.ListComments(ctx, q.Options)
	}
}
