package wrike

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the upstream response wrapper.
type Envelope[T any] struct {
	Kind string `json:"kind"`
	Data T      `json:"data"`
}

// Unwrap decodes the data member of an envelope into T. A body that is not
// an object carrying data is treated as already unwrapped.
func Unwrap[T any](body []byte) (T, error) {
	var out T

	payload := bytes.TrimSpace(body)
	if len(payload) > 0 && payload[0] == '{' {
		var env Envelope[json.RawMessage]
		if err := json.Unmarshal(payload, &env); err != nil {
			return out, fmt.Errorf("failed to parse response: %w", err)
		}
		if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
			payload = env.Data
		}
	}

	if len(payload) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, fmt.Errorf("failed to parse response: %w", err)
	}
	return out, nil
}
