// Package metrics provides the observability hooks for site assembly.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never check for nil:
//
//	rec := metrics.Recorder(metrics.NoopRecorder{})
//	if cfg.Metrics.Textfile != "" {
//	    rec = metrics.NewPrometheusRecorder(reg)
//	}
//
// Assembly runs as a one-shot process, so the Prometheus implementation is
// exported through the node_exporter textfile collector (WriteTextfile)
// instead of an HTTP scrape endpoint.
package metrics
