package wrike

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
)

// IDKind selects the legacy ID namespace used for resolution.
type IDKind string

const (
	KindTask    IDKind = "task"
	KindFolder  IDKind = "folder"
	KindContact IDKind = "contact"
	KindTimelog IDKind = "timelog"
)

// apiV2Type is the type tag the /ids endpoint expects.
func (k IDKind) apiV2Type() (string, error) {
	switch k {
	case KindTask:
		return "ApiV2Task", nil
	case KindFolder:
		return "ApiV2Folder", nil
	case KindContact:
		return "ApiV2User", nil
	case KindTimelog:
		return "ApiV2Timelog", nil
	default:
		return "", invalidArgument("unknown ID kind %q", string(k))
	}
}

// ParseIDKind parses task, folder, contact or timelog.
func ParseIDKind(s string) (IDKind, error) {
	k := IDKind(strings.ToLower(strings.TrimSpace(s)))
	if _, err := k.apiV2Type(); err != nil {
		return "", err
	}
	return k, nil
}

const permalinkMarker = "open.htm"

var (
	canonicalIDPattern = regexp.MustCompile(`^[A-Z0-9]{8,}$`)
	numericIDPattern   = regexp.MustCompile(`^\d+$`)
	permalinkIDPattern = regexp.MustCompile(`[?&]id=(\d+)`)

	canonicalPrefixes = []string{"IEA", "KUA", "KX"}
)

// IsCanonicalID reports whether id already has the API v4 format.
func IsCanonicalID(id string) bool {
	if id == "" || numericIDPattern.MatchString(id) {
		return false
	}
	if canonicalIDPattern.MatchString(id) {
		return true
	}
	for _, prefix := range canonicalPrefixes {
		if strings.HasPrefix(id, prefix) && strings.ToUpper(id) == id {
			return true
		}
	}
	return false
}

// IsLegacyID reports whether id is a numeric ID or a permalink.
func IsLegacyID(id string) bool {
	return numericIDPattern.MatchString(id) || strings.Contains(id, permalinkMarker)
}

// LegacyID extracts the numeric ID from a numeric string or a permalink.
func LegacyID(id string) (string, error) {
	id = strings.TrimSpace(id)
	switch {
	case strings.Contains(id, permalinkMarker):
		m := permalinkIDPattern.FindStringSubmatch(id)
		if m == nil {
			return "", fmt.Errorf("%w: permalink %q carries no numeric id", ErrInvalidIdentifier, id)
		}
		return m[1], nil
	case numericIDPattern.MatchString(id):
		return id, nil
	default:
		return "", fmt.Errorf("%w: %q is not a Wrike ID, numeric ID or permalink", ErrInvalidIdentifier, id)
	}
}

// IDResolver converts legacy numeric IDs and permalinks to canonical IDs.
type IDResolver struct {
	client *Client
	logger *slog.Logger
}

// NewIDResolver creates a new resolver
func NewIDResolver(client *Client, logger *slog.Logger) *IDResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &IDResolver{client: client, logger: logger}
}

// Resolve returns the canonical ID for id. Canonical IDs are returned without
// a network call. When the lookup fails or finds nothing, the legacy numeric
// ID is returned instead of an error, since some endpoints accept it.
func (r *IDResolver) Resolve(ctx context.Context, id string, kind IDKind) (string, error) {
	id = strings.TrimSpace(id)
	if IsCanonicalID(id) {
		return id, nil
	}

	legacy, err := LegacyID(id)
	if err != nil {
		return "", err
	}

	apiType, err := kind.apiV2Type()
	if err != nil {
		return "", err
	}

	query := NewQuery().Set("ids", "["+legacy+"]").Set("type", apiType)
	mappings, err := fetch[[]IDMapping](ctx, r.client, http.MethodGet, "/ids", query, nil)
	if err != nil {
		r.logger.Warn("ID resolution failed, using legacy ID",
			"id", legacy,
			"kind", string(kind),
			"error", err,
		)
		return legacy, nil
	}
	if len(mappings) == 0 || mappings[0].ID == "" {
		r.logger.Warn("ID resolution returned no match, using legacy ID",
			"id", legacy,
			"kind", string(kind),
		)
		return legacy, nil
	}

	r.logger.Debug("resolved legacy ID", "legacy", legacy, "id", mappings[0].ID, "kind", string(kind))
	return mappings[0].ID, nil
}
