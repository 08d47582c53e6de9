package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFences removes Markdown code fence markers the model tends
// to wrap JSON answers in. Stripping an unfenced reply is a no-op.
func StripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// ParseQueries extracts an array of search-query strings from the raw
// model reply. Fence stripping is the only tolerated deviation from
// the requested format: anything that is not a JSON string array after
// stripping is ErrBadResponse, with no fallback query set. A valid
// array is authoritative as-is, including an empty one; the search
// stage reports the no-results case.
func ParseQueries(raw string) ([]string, error) {
	cleaned := StripCodeFences(raw)

	var queries []string
	if err := json.Unmarshal([]byte(cleaned), &queries); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadResponse, truncate(raw, 120))
	}

	return queries, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
