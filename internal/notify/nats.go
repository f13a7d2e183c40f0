package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/docsite/internal/config"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/retry"
)

const publishTimeout = 5 * time.Second

// NATSPublisher publishes build events on a NATS subject, optionally through
// JetStream.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	policy  retry.Policy
	now     func() time.Time
}

// New returns a NATS publisher for cfg, or Noop when no URL is configured.
func New(cfg config.NotifyConfig) (Publisher, error) {
	if cfg.NATSURL == "" {
		return Noop{}, nil
	}
	return NewNATSPublisher(cfg)
}

// NewNATSPublisher connects to cfg.NATSURL.
func NewNATSPublisher(cfg config.NotifyConfig) (*NATSPublisher, error) {
	if cfg.NATSURL == "" {
		return nil, ferrors.ConfigError("notify.natsUrl is required").Build()
	}
	if cfg.Subject == "" {
		return nil, ferrors.ConfigError("notify.subject is required").Build()
	}

	conn, err := nats.Connect(cfg.NATSURL,
		nats.Name("docsite"),
		nats.Timeout(publishTimeout),
	)
	if err != nil {
		return nil, ferrors.NetworkError("failed to connect to NATS").WithCause(err).Warning().
			WithContext("url", cfg.NATSURL).Build()
	}

	p := &NATSPublisher{conn: conn, subject: cfg.Subject, policy: RetryPolicy(cfg.Retry), now: time.Now}
	if cfg.JetStream {
		js, err := jetstream.New(conn)
		if err != nil {
			conn.Close()
			return nil, ferrors.NetworkError("failed to create JetStream context").WithCause(err).Warning().Build()
		}
		p.js = js
	}

	slog.Info("NATS publisher initialized",
		logfields.URL(cfg.NATSURL),
		slog.String("subject", cfg.Subject),
		slog.Bool("jetstream", cfg.JetStream))
	return p, nil
}

// RetryPolicy converts the configured retry settings. Unparseable durations
// fall back to the policy defaults; config validation rejects them earlier.
func RetryPolicy(cfg config.RetryConfig) retry.Policy {
	initial, _ := time.ParseDuration(cfg.InitialDelay)
	maxDelay, _ := time.ParseDuration(cfg.MaxDelay)
	maxRetries := -1
	if cfg.MaxRetries != nil {
		maxRetries = *cfg.MaxRetries
	}
	return retry.NewPolicy(retry.BackoffMode(cfg.Backoff), initial, maxDelay, maxRetries)
}

// Publish implements Publisher. Failed attempts are retried per the
// configured policy.
func (p *NATSPublisher) Publish(ctx context.Context, event BuildEvent) error {
	event.Timestamp = p.now()
	data, err := event.Encode()
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal event").Build()
	}

	err = p.policy.Do(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, publishTimeout)
		defer cancel()
		return p.publish(ctx, data)
	})
	if err != nil {
		return err
	}

	slog.Debug("Published build event",
		logfields.BuildID(event.BuildID),
		slog.String("outcome", string(event.Outcome)))
	return nil
}

func (p *NATSPublisher) publish(ctx context.Context, data []byte) error {
	if p.js != nil {
		if _, err := p.js.Publish(ctx, p.subject, data); err != nil {
			return ferrors.NetworkError("failed to publish event").WithCause(err).WithContext("subject", p.subject).Warning().Build()
		}
		return nil
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return ferrors.NetworkError("failed to publish event").WithCause(err).WithContext("subject", p.subject).Warning().Build()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return ferrors.NetworkError("failed to flush event").WithCause(err).WithContext("subject", p.subject).Warning().Build()
	}
	return nil
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
