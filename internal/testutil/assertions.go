package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertInvoked checks that the spy saw exactly the given tags, in order.
func AssertInvoked(t *testing.T, spy *Spy, tags ...string) {
	t.Helper()
	got := spy.Tags()
	if len(tags) == 0 {
		require.Empty(t, got, "expected no handler invocations")
		return
	}
	require.Equal(t, tags, got, "handler invocation order mismatch")
}
