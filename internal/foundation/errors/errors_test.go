package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAndUnwrap(t *testing.T) {
	cause := stderrors.New("duplicate reference")
	err := WrapError(cause, CategoryNavigation, "sidebar rejected").
		WithContext("sidebar", "docs").
		Fatal().
		Build()

	assert.Equal(t, CategoryNavigation, err.Category())
	assert.True(t, err.IsFatal())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "docs", err.Context()["sidebar"])
	assert.Equal(t, "[navigation:fatal] sidebar rejected: duplicate reference", err.Error())
}

func TestAsClassifiedFollowsChain(t *testing.T) {
	inner := ConfigError("bad yaml").Build()
	wrapped := fmt.Errorf("load: %w", inner)

	got, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, got)
	assert.True(t, HasCategory(wrapped, CategoryConfig))
	assert.Equal(t, CategoryConfig, GetCategory(wrapped))
	assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
}

func TestWithCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NetworkError("failed to connect to NATS").WithCause(cause).Build()
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CategoryNetwork, GetCategory(fmt.Errorf("publish: %w", err)))
	assert.False(t, err.IsFatal())
}

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad input").Build(), expected: 2},
		{name: "navigation", err: NavigationError("empty category").Build(), expected: 3},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "network", err: NetworkError("nats down").Build(), expected: 8},
		{name: "filesystem", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "wrapped navigation", err: fmt.Errorf("build: %w", NavigationError("x").Build()), expected: 3},
		{name: "unclassified", err: stderrors.New("boom"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	adapter := NewCLIErrorAdapter(false, logger)
	adapter.out = &out
	code := -1
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(NavigationError("unresolved references").WithContext("count", 2).Build())

	assert.Equal(t, 3, code)
	assert.Equal(t, "Error: unresolved references\n", out.String())
	assert.Contains(t, logs.String(), "category=navigation")
	assert.Contains(t, logs.String(), "count=2")
	assert.Contains(t, logs.String(), "fatal=true")
}

func TestCLIErrorAdapter_FormatVerbose(t *testing.T) {
	adapter := NewCLIErrorAdapter(true, nil)
	err := ConfigError("bad config").Build()
	assert.Equal(t, err.Error(), adapter.FormatError(err))
	assert.Equal(t, "Error: boom", adapter.FormatError(stderrors.New("boom")))
}
