// Package notify publishes site assembly outcomes to NATS so downstream
// systems (deploy hooks, chat bots) can react to them.
package notify

import (
	"context"
	"encoding/json"
	"time"
)

// Outcome is the final status of an assembly.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// BuildEvent describes one assembly run.
type BuildEvent struct {
	BuildID    string         `json:"build_id"`
	Site       string         `json:"site"`
	Outcome    Outcome        `json:"outcome"`
	StartedAt  time.Time      `json:"started_at"`
	DurationMS int64          `json:"duration_ms"`
	Sidebars   map[string]int `json:"sidebars,omitempty"`
	Warnings   []string       `json:"warnings,omitempty"`
	Unresolved []string       `json:"unresolved,omitempty"`
	Error      string         `json:"error,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Encode serializes e as JSON.
func (e BuildEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers build events.
type Publisher interface {
	Publish(ctx context.Context, event BuildEvent) error
	Close()
}

// Noop discards events. It is used when no NATS URL is configured.
type Noop struct{}

func (Noop) Publish(context.Context, BuildEvent) error { return nil }
func (Noop) Close()                                   {}
