package wrike

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FieldValueKind tags the variant held by a FieldValue.
type FieldValueKind int

const (
	FieldNull FieldValueKind = iota
	FieldString
	FieldNumber
	FieldBool
)

// FieldValue is a custom field value: string, number, boolean or null.
// The zero value is null.
type FieldValue struct {
	kind FieldValueKind
	str  string
	num  float64
	b    bool
}

func StringValue(s string) FieldValue  { return FieldValue{kind: FieldString, str: s} }
func NumberValue(n float64) FieldValue { return FieldValue{kind: FieldNumber, num: n} }
func BoolValue(b bool) FieldValue      { return FieldValue{kind: FieldBool, b: b} }
func NullValue() FieldValue            { return FieldValue{} }

// NewFieldValue converts a decoded JSON scalar.
func NewFieldValue(v any) (FieldValue, error) {
	switch x := v.(type) {
	case nil:
		return NullValue(), nil
	case string:
		return StringValue(x), nil
	case float64:
		return NumberValue(x), nil
	case float32:
		return NumberValue(float64(x)), nil
	case int:
		return NumberValue(float64(x)), nil
	case int64:
		return NumberValue(float64(x)), nil
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return FieldValue{}, fmt.Errorf("invalid number %q: %w", x, err)
		}
		return NumberValue(n), nil
	case bool:
		return BoolValue(x), nil
	default:
		return FieldValue{}, fmt.Errorf("unsupported custom field value type %T", v)
	}
}

func (v FieldValue) Kind() FieldValueKind { return v.kind }

// Any returns the value as a plain Go scalar (nil for null).
func (v FieldValue) Any() any {
	switch v.kind {
	case FieldString:
		return v.str
	case FieldNumber:
		return v.num
	case FieldBool:
		return v.b
	default:
		return nil
	}
}

func (v FieldValue) String() string {
	switch v.kind {
	case FieldString:
		return v.str
	case FieldNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case FieldBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := NewFieldValue(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// CustomFieldValue is one custom field assignment.
type CustomFieldValue struct {
	ID    string     `json:"id"`
	Value FieldValue `json:"value"`
}

// ParseCustomFieldValues validates the shape of a list of {id, value}
// objects. raw may be a decoded JSON array or its string form.
func ParseCustomFieldValues(raw any) ([]CustomFieldValue, error) {
	if raw == nil {
		return nil, nil
	}
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, invalidArgument("custom fields must be a JSON array of {id, value} objects: %v", err)
		}
		raw = decoded
	}

	items, ok := raw.([]any)
	if !ok {
		if single, isMap := raw.(map[string]any); isMap {
			items = []any{single}
		} else {
			return nil, invalidArgument("custom fields must be an array of {id, value} objects, got %T", raw)
		}
	}

	values := make([]CustomFieldValue, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, invalidArgument("custom field %d must be an object with id and value", i)
		}
		id, ok := m["id"].(string)
		if !ok || strings.TrimSpace(id) == "" {
			return nil, invalidArgument("custom field %d is missing a string id", i)
		}
		value, err := NewFieldValue(m["value"])
		if err != nil {
			return nil, invalidArgument("custom field %s: %v", id, err)
		}
		values = append(values, CustomFieldValue{ID: strings.TrimSpace(id), Value: value})
	}
	return values, nil
}

// IDMapping is one record of the /ids conversion endpoint.
type IDMapping struct {
	ID      string `json:"id"`
	APIV2ID string `json:"apiV2Id"`
}

// Space represents a Wrike space
type Space struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	AccessType  string `json:"accessType,omitempty"`
	Archived    bool   `json:"archived"`
	Description string `json:"description,omitempty"`
}

// FolderProject holds the project details of a folder that is a project.
type FolderProject struct {
	AuthorID       string   `json:"authorId,omitempty"`
	OwnerIDs       []string `json:"ownerIds,omitempty"`
	Status         string   `json:"status,omitempty"`
	CustomStatusID string   `json:"customStatusId,omitempty"`
	StartDate      string   `json:"startDate,omitempty"`
	EndDate        string   `json:"endDate,omitempty"`
	CreatedDate    string   `json:"createdDate,omitempty"`
	CompletedDate  string   `json:"completedDate,omitempty"`
}

// Folder represents a Wrike folder or project
type Folder struct {
	ID             string             `json:"id"`
	AccountID      string             `json:"accountId,omitempty"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Color          string             `json:"color,omitempty"`
	Scope          string             `json:"scope,omitempty"`
	Archived       bool               `json:"archived,omitempty"`
	ChildIDs       []string           `json:"childIds,omitempty"`
	ParentIDs      []string           `json:"parentIds,omitempty"`
	SuperParentIDs []string           `json:"superParentIds,omitempty"`
	SharedIDs      []string           `json:"sharedIds,omitempty"`
	CreatedDate    string             `json:"createdDate,omitempty"`
	UpdatedDate    string             `json:"updatedDate,omitempty"`
	Permalink      string             `json:"permalink,omitempty"`
	WorkflowID     string             `json:"workflowId,omitempty"`
	Project        *FolderProject     `json:"project,omitempty"`
	CustomFields   []CustomFieldValue `json:"customFields,omitempty"`
	Extra          Extra              `json:"-"`
}

// IsProject reports whether the folder carries project details.
func (f Folder) IsProject() bool {
	return f.Project != nil
}

// IsArchived reports whether the folder is archived or in the recycle bin.
func (f Folder) IsArchived() bool {
	return f.Archived || strings.HasPrefix(f.Scope, "Rb")
}

func (f *Folder) UnmarshalJSON(data []byte) error {
	type plain Folder
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*f = Folder(p)
	return nil
}

func (f Folder) MarshalJSON() ([]byte, error) {
	type plain Folder
	return encodeWithExtra(plain(f), f.Extra)
}

// TaskDates holds the scheduling of a task.
type TaskDates struct {
	Type           string `json:"type,omitempty"`
	Duration       int    `json:"duration,omitempty"`
	Start          string `json:"start,omitempty"`
	Due            string `json:"due,omitempty"`
	WorkOnWeekends *bool  `json:"workOnWeekends,omitempty"`
}

// Task represents a Wrike task
type Task struct {
	ID               string             `json:"id"`
	AccountID        string             `json:"accountId,omitempty"`
	Title            string             `json:"title"`
	Description      string             `json:"description,omitempty"`
	BriefDescription string             `json:"briefDescription,omitempty"`
	Status           string             `json:"status,omitempty"`
	CustomStatusID   string             `json:"customStatusId,omitempty"`
	Importance       string             `json:"importance,omitempty"`
	Scope            string             `json:"scope,omitempty"`
	ParentIDs        []string           `json:"parentIds,omitempty"`
	SuperParentIDs   []string           `json:"superParentIds,omitempty"`
	ResponsibleIDs   []string           `json:"responsibleIds,omitempty"`
	AuthorIDs        []string           `json:"authorIds,omitempty"`
	SubTaskIDs       []string           `json:"subTaskIds,omitempty"`
	SuperTaskIDs     []string           `json:"superTaskIds,omitempty"`
	Dates            *TaskDates         `json:"dates,omitempty"`
	CreatedDate      string             `json:"createdDate,omitempty"`
	UpdatedDate      string             `json:"updatedDate,omitempty"`
	CompletedDate    string             `json:"completedDate,omitempty"`
	Permalink        string             `json:"permalink,omitempty"`
	CustomFields     []CustomFieldValue `json:"customFields,omitempty"`
	Extra            Extra              `json:"-"`
}

func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var p plain
	extra, err := decodeWithExtra(data, &p)
	if err != nil {
		return err
	}
	p.Extra = extra
	*t = Task(p)
	return nil
}

func (t Task) MarshalJSON() ([]byte, error) {
	type plain Task
	return encodeWithExtra(plain(t), t.Extra)
}

// Comment represents a comment on a task or folder
type Comment struct {
	ID          string `json:"id"`
	AuthorID    string `json:"authorId"`
	Text        string `json:"text"`
	CreatedDate string `json:"createdDate"`
	UpdatedDate string `json:"updatedDate,omitempty"`
	TaskID      string `json:"taskId,omitempty"`
	FolderID    string `json:"folderId,omitempty"`
}

// ContactProfile is the per-account profile of a contact.
type ContactProfile struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	External  bool   `json:"external"`
	Admin     bool   `json:"admin"`
	Owner     bool   `json:"owner"`
}

// Contact represents a Wrike user, group or invitation
type Contact struct {
	ID           string           `json:"id"`
	FirstName    string           `json:"firstName"`
	LastName     string           `json:"lastName"`
	Type         string           `json:"type"`
	Profiles     []ContactProfile `json:"profiles,omitempty"`
	AvatarURL    string           `json:"avatarUrl,omitempty"`
	Timezone     string           `json:"timezone,omitempty"`
	Locale       string           `json:"locale,omitempty"`
	Deleted      bool             `json:"deleted"`
	Me           bool             `json:"me,omitempty"`
	Title        string           `json:"title,omitempty"`
	CompanyName  string           `json:"companyName,omitempty"`
	PrimaryEmail string           `json:"primaryEmail,omitempty"`
}

// Name returns the display name of the contact.
func (c Contact) Name() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Timelog represents a time tracking entry
type Timelog struct {
	ID          string  `json:"id"`
	TaskID      string  `json:"taskId"`
	UserID      string  `json:"userId"`
	CategoryID  string  `json:"categoryId,omitempty"`
	BillingType string  `json:"billingType,omitempty"`
	Hours       float64 `json:"hours"`
	CreatedDate string  `json:"createdDate"`
	UpdatedDate string  `json:"updatedDate,omitempty"`
	TrackedDate string  `json:"trackedDate"`
	Comment     string  `json:"comment,omitempty"`
}

// TimelogCategory represents a timelog category
type TimelogCategory struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Order       int    `json:"order"`
	Hidden      bool   `json:"hidden"`
	BillingType string `json:"billingType,omitempty"`
}

// FolderBlueprint represents a folder or project template
type FolderBlueprint struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	ChildIDs []string `json:"childIds,omitempty"`
	Scope    string   `json:"scope,omitempty"`
}

// TaskBlueprint represents a task template
type TaskBlueprint struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status,omitempty"`
	Importance     string     `json:"importance,omitempty"`
	Dates          *TaskDates `json:"dates,omitempty"`
	Scope          string     `json:"scope,omitempty"`
	SubTaskIDs     []string   `json:"subTaskIds,omitempty"`
	ResponsibleIDs []string   `json:"responsibleIds,omitempty"`
}

// AsyncJob is returned by asynchronous blueprint launches.
type AsyncJob struct {
	ID       string          `json:"id"`
	Status   string          `json:"status,omitempty"`
	Type     string          `json:"type,omitempty"`
	Progress json.RawMessage `json:"progress,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
}

// CustomField is a custom field definition.
type CustomField struct {
	ID        string          `json:"id"`
	AccountID string          `json:"accountId,omitempty"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	SpaceID   string          `json:"spaceId,omitempty"`
	SharedIDs []string        `json:"sharedIds,omitempty"`
	Settings  json.RawMessage `json:"settings,omitempty"`
}
