package llm

import "strings"

// StripFences removes markdown code fencing that models like to wrap JSON
// responses in, e.g. ```json ... ```.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
