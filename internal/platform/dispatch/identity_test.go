package dispatch_test

import (
	"testing"
	"time"

	"github.com/nholloway4/followd/internal/platform/dispatch"
)

type numericKey int

func TestLabel_Stringer(t *testing.T) {
	t.Parallel()

	if got := dispatch.Label(actFetchFollowers); got != "fetch_followers" {
		t.Errorf("Label = %q, want %q", got, "fetch_followers")
	}
}

func TestLabel_Fallback(t *testing.T) {
	t.Parallel()

	if got := dispatch.Label(numericKey(7)); got != "7" {
		t.Errorf("Label = %q, want %q", got, "7")
	}
}

func TestTimestamp_Layout(t *testing.T) {
	t.Parallel()

	before := time.Now().Add(-time.Second)
	got := dispatch.Timestamp()

	parsed, err := time.ParseInLocation("2006-01-02 15:04:05.000", got, time.Local)
	if err != nil {
		t.Fatalf("Timestamp %q does not match layout: %v", got, err)
	}
	if parsed.Before(before.Truncate(time.Second)) {
		t.Errorf("Timestamp %q is implausibly old", got)
	}
}
