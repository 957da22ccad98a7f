package symbols

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Exclude returns the records whose full path does not match any of the given
// glob patterns. The full path is the slash-joined path segments plus the
// object name, e.g. "drivers/uart/uart.o". Patterns support "**".
// Record order is preserved.
func Exclude(records []Record, patterns []string) []Record {
	if len(patterns) == 0 {
		return records
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if MatchesAny(strings.Join(r.FullPath(), "/"), patterns) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// MatchesAny checks if fullPath matches any of the given glob patterns, either
// as a whole or by its last element (the object name).
func MatchesAny(fullPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, fullPath); err == nil && matched {
			return true
		}

		// Also try matching against just the object name.
		if matched, err := doublestar.Match(pattern, path.Base(fullPath)); err == nil && matched {
			return true
		}
	}
	return false
}
