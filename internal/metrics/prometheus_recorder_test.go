package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("sidebars", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("sidebars", ResultSuccess)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.SetSidebarNodes("docs", 4)
	pr.AddUnresolvedReferences(2)
	pr.AddUnresolvedReferences(0)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	assert.InDelta(t, 4, testutil.ToFloat64(pr.sidebarNodes.WithLabelValues("docs")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(pr.unresolved), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)
	assert.Same(t, reg, pr.Registry())
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("x", time.Second)
		pr.IncBuildOutcome(BuildOutcomeFailed)
		pr.SetSidebarNodes("docs", 1)
	})
	assert.Nil(t, pr.Registry())

	var rec Recorder = NoopRecorder{}
	assert.NotPanics(t, func() { rec.AddUnresolvedReferences(3) })
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(BuildOutcomeWarning)

	path := filepath.Join(t.TempDir(), "textfile", "docsite.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `docsite_build_outcomes_total{outcome="warning"} 1`)

	assert.Error(t, WriteTextfile(nil, path))
}
