package dispatch

import (
	"fmt"
	"time"
)

// timestampLayout formats dispatch timestamps with millisecond precision,
// e.g. "2026-08-28 14:03:07.251".
const timestampLayout = "2006-01-02 15:04:05.000"

// Label derives a human-readable name for an action key, for logs and
// metric labels. Keys implementing fmt.Stringer use their String form;
// everything else falls back to the default formatting of the value.
func Label[K comparable](key K) string {
	if s, ok := any(key).(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", key)
}

// Timestamp returns the current wall-clock time formatted with
// timestampLayout. Purely informational; tracker ordering never depends
// on it.
func Timestamp() string {
	return time.Now().Format(timestampLayout)
}
