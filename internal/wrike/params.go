package wrike

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
)

// ParseOptionalFields turns "a, b ,c" into fields=a,b,c. An empty list yields no parameter.
func ParseOptionalFields(list string) url.Values {
	params := url.Values{}

	var fields []string
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) > 0 {
		params.Set("fields", strings.Join(fields, ","))
	}
	return params
}

// DateRange is the structured form of a date filter.
type DateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Equal string `json:"equal,omitempty"`
}

func (r DateRange) empty() bool {
	return r.Start == "" && r.End == "" && r.Equal == ""
}

var (
	dateOnlyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}(:\d{2}(\.\d+)?)?(Z|[+-]\d{2}:?\d{2})?)?$`)
)

// BuildDateRangeParam normalizes a date filter to the JSON object string the
// API expects, e.g. {"start":"2024-01-01T00:00:00Z"}. raw may be a string in
// one of the tolerated textual shapes, a DateRange or a map with start, end
// and equal keys. With requireTime set, date-only values are widened to
// midnight UTC. Input that cannot be parsed is returned unchanged.
func BuildDateRangeParam(raw any, requireTime bool) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case DateRange:
		return encodeDateRange(v, requireTime)
	case *DateRange:
		if v == nil {
			return ""
		}
		return encodeDateRange(*v, requireTime)
	case map[string]any:
		if r := dateRangeFromMap(v); !r.empty() {
			return encodeDateRange(r, requireTime)
		}
		if len(v) == 0 {
			return ""
		}
		b, _ := json.Marshal(v)
		return string(b)
	case string:
		return buildDateRangeFromText(v, requireTime)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func buildDateRangeFromText(text string, requireTime bool) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// Quoted JSON.
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		if r := dateRangeFromMap(obj); !r.empty() {
			return encodeDateRange(r, requireTime)
		}
		return text
	}

	// Unquoted pseudo-JSON or bare key:value pairs.
	inner := text
	if strings.HasPrefix(inner, "{") && strings.HasSuffix(inner, "}") {
		inner = inner[1 : len(inner)-1]
	}
	if r, ok := parseBareDateRange(inner); ok {
		return encodeDateRange(r, requireTime)
	}

	// A lone date becomes an equality filter.
	if dateTimePattern.MatchString(text) {
		return encodeDateRange(DateRange{Equal: text}, requireTime)
	}

	return text
}

// parseBareDateRange parses start:2024-01-01,end:"2024-02-01". Only the first
// colon of each pair separates key and value, so time components survive.
func parseBareDateRange(s string) (DateRange, bool) {
	var r DateRange
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, found := strings.Cut(pair, ":")
		if !found {
			return DateRange{}, false
		}
		key = unquote(key)
		value = unquote(value)
		switch key {
		case "start":
			r.Start = value
		case "end":
			r.End = value
		case "equal":
			r.Equal = value
		default:
			return DateRange{}, false
		}
	}
	return r, !r.empty()
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, `"'`)
}

func dateRangeFromMap(m map[string]any) DateRange {
	str := func(key string) string {
		v, ok := m[key]
		if !ok || v == nil {
			return ""
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
		return fmt.Sprintf("%v", v)
	}
	return DateRange{Start: str("start"), End: str("end"), Equal: str("equal")}
}

func encodeDateRange(r DateRange, requireTime bool) string {
	if r.empty() {
		return ""
	}
	if requireTime {
		r.Start = widenDate(r.Start)
		r.End = widenDate(r.End)
		r.Equal = widenDate(r.Equal)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

func widenDate(v string) string {
	if dateOnlyPattern.MatchString(v) {
		return v + "T00:00:00Z"
	}
	return v
}

// RemoveUndefined drops nil values from m, recursing into nested maps.
// Non-nil pointers are replaced by the values they point to, so the result
// only carries fields that were actually provided.
func RemoveUndefined(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		value, ok := defined(value)
		if !ok {
			continue
		}
		if nested, isMap := value.(map[string]any); isMap {
			value = RemoveUndefined(nested)
		}
		out[key] = value
	}
	return out
}

func defined(v any) (any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
		return rv.Elem().Interface(), true
	case reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil, false
		}
	}
	return v, true
}

// NewTimelogPayload builds a timelog create or update body. Nil arguments are omitted.
func NewTimelogPayload(hours *float64, trackedDate, comment, categoryID *string) map[string]any {
	return RemoveUndefined(map[string]any{
		"hours":       hours,
		"trackedDate": trackedDate,
		"comment":     comment,
		"categoryId":  categoryID,
	})
}
