package wrike

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// Query holds the parameters of one upstream call. Raw parameters are
// already serialized (date ranges) and are appended without re-encoding.
type Query struct {
	values url.Values
	raw    []rawParam
}

// rawEscaper escapes what would break the request line or be misread as a separator.
var rawEscaper = strings.NewReplacer(" ", "%20", "#", "%23", "+", "%2B", "&", "%26")

type rawParam struct {
	key   string
	value string
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{values: url.Values{}}
}

// Set sets key to value, replacing any existing value.
func (q *Query) Set(key, value string) *Query {
	q.values.Set(key, value)
	return q
}

// SetBool sets key only when v is non-nil.
func (q *Query) SetBool(key string, v *bool) *Query {
	if v != nil {
		q.values.Set(key, fmt.Sprintf("%t", *v))
	}
	return q
}

// Merge copies every value from values.
func (q *Query) Merge(values url.Values) *Query {
	for key, vs := range values {
		for _, v := range vs {
			q.values.Add(key, v)
		}
	}
	return q
}

// MergeStruct encodes a struct with `url` tags and merges the result.
func (q *Query) MergeStruct(opts any) (*Query, error) {
	values, err := query.Values(opts)
	if err != nil {
		return q, fmt.Errorf("failed to encode query: %w", err)
	}
	return q.Merge(values), nil
}

// SetRaw appends key=value to the query string verbatim. Empty values are skipped.
func (q *Query) SetRaw(key, value string) *Query {
	if value != "" {
		q.raw = append(q.raw, rawParam{key: key, value: value})
	}
	return q
}

// Values returns the encoded (non-raw) parameters.
func (q *Query) Values() url.Values {
	if q == nil {
		return url.Values{}
	}
	return q.values
}

// Encode renders the query string. A nil query encodes to "".
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	parts := make([]string, 0, 1+len(q.raw))
	if encoded := q.values.Encode(); encoded != "" {
		parts = append(parts, encoded)
	}
	for _, p := range q.raw {
		parts = append(parts, url.QueryEscape(p.key)+"="+rawEscaper.Replace(p.value))
	}
	return strings.Join(parts, "&")
}
