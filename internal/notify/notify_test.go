package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/retry"
)

func TestBuildEvent_Encode(t *testing.T) {
	started := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ev := BuildEvent{
		BuildID:    "b-1",
		Site:       "Flintlock",
		Outcome:    OutcomeFailed,
		StartedAt:  started,
		DurationMS: 42,
		Unresolved: []string{"troubleshooting/missing-page"},
		Error:      "unresolved reference",
	}

	data, err := ev.Encode()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "b-1", decoded["build_id"])
	assert.Equal(t, "failed", decoded["outcome"])
	assert.Equal(t, []any{"troubleshooting/missing-page"}, decoded["unresolved"])
	assert.NotContains(t, decoded, "warnings")
	assert.NotContains(t, decoded, "sidebars")
}

func TestNew_DisabledWithoutURL(t *testing.T) {
	p, err := New(config.NotifyConfig{})
	require.NoError(t, err)
	assert.IsType(t, Noop{}, p)
	assert.NoError(t, p.Publish(context.Background(), BuildEvent{}))
	p.Close()
}

func TestNewNATSPublisher_RequiresSettings(t *testing.T) {
	_, err := NewNATSPublisher(config.NotifyConfig{})
	assert.ErrorContains(t, err, "notify.natsUrl is required")
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = NewNATSPublisher(config.NotifyConfig{NATSURL: "nats://127.0.0.1:4222"})
	assert.ErrorContains(t, err, "notify.subject is required")
}

func TestNewNATSPublisher_ConnectFailureIsNetworkError(t *testing.T) {
	// Port 1 is never a NATS server; the dial is refused.
	_, err := NewNATSPublisher(config.NotifyConfig{NATSURL: "nats://127.0.0.1:1", Subject: "docsite.builds"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
	assert.Equal(t, ferrors.CategoryNetwork, ferrors.GetCategory(err))
	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.SeverityWarning, classified.Severity())
}

func TestNATSPublisher_CloseNil(t *testing.T) {
	var p *NATSPublisher
	assert.NotPanics(t, p.Close)
}

func TestRetryPolicy(t *testing.T) {
	def := RetryPolicy(config.RetryConfig{})
	assert.Equal(t, retry.DefaultPolicy(), def)

	zero := 0
	p := RetryPolicy(config.RetryConfig{Backoff: "exponential", InitialDelay: "200ms", MaxDelay: "2s", MaxRetries: &zero})
	assert.Equal(t, retry.BackoffExponential, p.Mode)
	assert.Equal(t, 200*time.Millisecond, p.Initial)
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, 0, p.MaxRetries)
}
