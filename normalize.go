package directive

import "strings"

// NormalizeDirective collapses redundant whitespace in a directive text so
// the prompt sent to inference does not pay tokens for formatting. Newlines,
// tabs, and runs of spaces all collapse to single spaces; leading and
// trailing whitespace is dropped.
func NormalizeDirective(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
