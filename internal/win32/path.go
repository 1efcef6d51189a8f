package win32

import "strings"

// samePath compares a Run value with an executable path, ignoring quotes,
// surrounding space and case.
func samePath(a, b string) bool {
	norm := func(s string) string { return strings.Trim(strings.TrimSpace(s), `"`) }
	return strings.EqualFold(norm(a), norm(b))
}
