package debug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackStopsAtTestRunner(t *testing.T) {
	s := Stack()
	require.NotEmpty(t, s)
	require.Contains(t, s, "testing.tRunner")
}

func TestWriteStackForceCleanFiltersFrames(t *testing.T) {
	var sbb strings.Builder
	WriteStack(&sbb, true)
	s := sbb.String()
	require.NotEmpty(t, s)
	require.NotContains(t, s, "runtime.gopanic")
	require.NotContains(t, s, "debug_test.go")
}
