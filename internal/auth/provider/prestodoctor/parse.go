package prestodoctor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
)

// parsePayload decodes a provider response body. Prestodoctor answers
// with JSON on newer endpoints and query-string encoding on older
// ones, so JSON is attempted first with a query-string fallback.
func parsePayload(body []byte) (map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	var m map[string]any
	if err := json.Unmarshal(body, &m); err == nil {
		return m, nil
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, fmt.Errorf("payload is neither json nor query string: %w", err)
	}

	m = make(map[string]any, len(values))
	for k, v := range values {
		if len(v) > 0 {
			m[k] = v[0]
		}
	}
	return m, nil
}
