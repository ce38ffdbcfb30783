package wrike

import (
	"context"
	"net/http"
	"regexp"
)

// ListSpaces returns all spaces visible to the token.
func (c *Client) ListSpaces(ctx context.Context, fields string, withArchived bool) ([]Space, error) {
	query := optionalFieldsQuery(fields)
	if withArchived {
		query.Set("withArchived", "true")
	}
	return fetch[[]Space](ctx, c, http.MethodGet, "/spaces", query, nil)
}

// GetSpace returns a space by ID.
func (c *Client) GetSpace(ctx context.Context, spaceID, fields string) (*Space, error) {
	spaces, err := fetch[[]Space](ctx, c, http.MethodGet, "/spaces/"+spaceID, optionalFieldsQuery(fields), nil)
	if err != nil {
		return nil, err
	}
	return first(spaces, "space", spaceID)
}

// ListFoldersOptions are the filters shared by folder listings.
type ListFoldersOptions struct {
	Fields      string `url:"-"`
	Descendants *bool  `url:"descendants,omitempty"`
	Project     *bool  `url:"project,omitempty"`
}

func (o ListFoldersOptions) query() (*Query, error) {
	return optionalFieldsQuery(o.Fields).MergeStruct(o)
}

// ListFolders returns the folder tree of the whole account.
func (c *Client) ListFolders(ctx context.Context, opts ListFoldersOptions) ([]Folder, error) {
	query, err := opts.query()
	if err != nil {
		return nil, err
	}
	return fetch[[]Folder](ctx, c, http.MethodGet, "/folders", query, nil)
}

// ListChildFolders returns the folders below a parent folder.
func (c *Client) ListChildFolders(ctx context.Context, folderID string, opts ListFoldersOptions) ([]Folder, error) {
	folderID, err := c.resolveIfLegacy(ctx, folderID, KindFolder)
	if err != nil {
		return nil, err
	}
	query, err := opts.query()
	if err != nil {
		return nil, err
	}
	return fetch[[]Folder](ctx, c, http.MethodGet, "/folders/"+folderID+"/folders", query, nil)
}

// ListSpaceFolders returns the folders of a space.
func (c *Client) ListSpaceFolders(ctx context.Context, spaceID string, opts ListFoldersOptions) ([]Folder, error) {
	query, err := opts.query()
	if err != nil {
		return nil, err
	}
	return fetch[[]Folder](ctx, c, http.MethodGet, "/spaces/"+spaceID+"/folders", query, nil)
}

// GetFolders returns up to MaxBatchIDs folders by ID.
func (c *Client) GetFolders(ctx context.Context, folderIDs []string, withHistory bool, fields string) ([]Folder, error) {
	ids, err := joinBatchIDs("folder", folderIDs)
	if err != nil {
		return nil, err
	}
	query := optionalFieldsQuery(fields)
	if withHistory {
		query.Set("withHistory", "true")
	}
	return fetch[[]Folder](ctx, c, http.MethodGet, "/folders/"+ids, query, nil)
}

// GetFolder returns a single folder or project, resolving legacy IDs.
func (c *Client) GetFolder(ctx context.Context, folderID, fields string) (*Folder, error) {
	folderID, err := c.resolveIfLegacy(ctx, folderID, KindFolder)
	if err != nil {
		return nil, err
	}
	folders, err := fetch[[]Folder](ctx, c, http.MethodGet, "/folders/"+folderID, optionalFieldsQuery(fields), nil)
	if err != nil {
		return nil, err
	}
	return first(folders, "folder", folderID)
}

// ProjectInput holds the project part of a folder create or update.
type ProjectInput struct {
	OwnerIDs       []string
	Status         *string
	CustomStatusID *string
	StartDate      *string
	EndDate        *string
}

// FolderInput are the fields of a folder create or update. Nil fields are not sent.
type FolderInput struct {
	Title         *string
	Description   *string
	Shareds       []string
	AddParents    []string
	RemoveParents []string
	Restore       *bool
	Project       *ProjectInput
	CustomFields  []CustomFieldValue
}

func (in FolderInput) payload() map[string]any {
	var project map[string]any
	if in.Project != nil {
		project = RemoveUndefined(map[string]any{
			"ownerIds":       in.Project.OwnerIDs,
			"status":         in.Project.Status,
			"customStatusId": in.Project.CustomStatusID,
			"startDate":      in.Project.StartDate,
			"endDate":        in.Project.EndDate,
		})
	}
	return RemoveUndefined(map[string]any{
		"title":         in.Title,
		"description":   in.Description,
		"shareds":       in.Shareds,
		"addParents":    in.AddParents,
		"removeParents": in.RemoveParents,
		"restore":       in.Restore,
		"project":       project,
		"customFields":  in.CustomFields,
	})
}

// CreateFolder creates a folder, or a project when in.Project is set.
func (c *Client) CreateFolder(ctx context.Context, parentID string, in FolderInput) (*Folder, error) {
	if !present(parentID) {
		return nil, invalidArgument("parent folder ID is required")
	}
	if in.Title == nil || *in.Title == "" {
		return nil, invalidArgument("title is required")
	}
	parentID, err := c.resolveIfLegacy(ctx, parentID, KindFolder)
	if err != nil {
		return nil, err
	}
	folders, err := fetch[[]Folder](ctx, c, http.MethodPost, "/folders/"+parentID+"/folders", nil, in.payload())
	if err != nil {
		return nil, err
	}
	return first(folders, "folder", parentID)
}

// UpdateFolder updates a folder or project.
func (c *Client) UpdateFolder(ctx context.Context, folderID string, in FolderInput) (*Folder, error) {
	if !present(folderID) {
		return nil, invalidArgument("folder ID is required")
	}
	folderID, err := c.resolveIfLegacy(ctx, folderID, KindFolder)
	if err != nil {
		return nil, err
	}
	folders, err := fetch[[]Folder](ctx, c, http.MethodPut, "/folders/"+folderID, nil, in.payload())
	if err != nil {
		return nil, err
	}
	return first(folders, "folder", folderID)
}

// FolderQuery selects folders. Inputs are consulted in a fixed priority
// order: SingleFolderID, FolderIDs, FolderID, SpaceID, then everything.
// Lower-priority inputs are ignored once a higher one is set.
type FolderQuery struct {
	SingleFolderID  string
	FolderIDs       []string
	WithHistory     bool
	FolderID        string
	SpaceID         string
	Descendants     *bool
	Fields          string
	ProjectOnly     bool
	NamePattern     string
	IncludeArchived bool
}

// Mode returns the lookup the query dispatches to.
func (q FolderQuery) Mode() LookupMode {
	switch {
	case present(q.SingleFolderID):
		return ModeSingle
	case len(normalizeIDs(q.FolderIDs)) > 0:
		return ModeBatch
	case present(q.FolderID):
		return ModeChildren
	case present(q.SpaceID):
		return ModeSpace
	default:
		return ModeAll
	}
}

// FindFolders runs the lookup selected by q and applies the in-memory
// filters (project only, title pattern, archived).
func (c *Client) FindFolders(ctx context.Context, q FolderQuery) ([]Folder, error) {
	var titlePattern *regexp.Regexp
	if q.NamePattern != "" {
		re, err := regexp.Compile("(?i)" + q.NamePattern)
		if err != nil {
			return nil, invalidArgument("invalid name pattern %q: %v", q.NamePattern, err)
		}
		titlePattern = re
	}

	opts := ListFoldersOptions{Fields: q.Fields, Descendants: q.Descendants}

	var (
		folders []Folder
		err     error
	)
	mode := q.Mode()
	switch mode {
	case ModeSingle:
		folders, err = c.getSpaceOrFolder(ctx, q.SingleFolderID, q.Fields)
	case ModeBatch:
		folders, err = c.GetFolders(ctx, q.FolderIDs, q.WithHistory, q.Fields)
	case ModeChildren:
		folders, err = c.ListChildFolders(ctx, q.FolderID, opts)
	case ModeSpace:
		folders, err = c.ListSpaceFolders(ctx, q.SpaceID, opts)
	default:
		folders, err = c.ListFolders(ctx, opts)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug("folder lookup", "mode", string(mode), "count", len(folders))
	return filterFolders(folders, q.ProjectOnly, titlePattern, q.IncludeArchived), nil
}

// getSpaceOrFolder tries id as a space first and falls back to a folder.
// Legacy IDs only exist for folders, so they skip the space attempt.
func (c *Client) getSpaceOrFolder(ctx context.Context, id, fields string) ([]Folder, error) {
	if !IsLegacyID(id) {
		spaces, err := fetch[[]Folder](ctx, c, http.MethodGet, "/spaces/"+id, optionalFieldsQuery(fields), nil)
		if err == nil && len(spaces) > 0 {
			return spaces, nil
		}
		if err != nil {
			c.logger.Debug("not a space, trying folder", "id", id, "error", err)
		}
	}

	folder, err := c.GetFolder(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	return []Folder{*folder}, nil
}

func filterFolders(folders []Folder, projectOnly bool, titlePattern *regexp.Regexp, includeArchived bool) []Folder {
	out := make([]Folder, 0, len(folders))
	for _, f := range folders {
		if projectOnly && !f.IsProject() {
			continue
		}
		if titlePattern != nil && !titlePattern.MatchString(f.Title) {
			continue
		}
		if !includeArchived && f.IsArchived() {
			continue
		}
		out = append(out, f)
	}
	return out
}
