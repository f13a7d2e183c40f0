package site

import (
	"log/slog"
	"sort"
	"time"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// StageTiming records how long one assembly stage took.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// Report summarizes one assembly run. It is returned on failure too.
type Report struct {
	BuildID     string                   `json:"build_id"`
	Site        string                   `json:"site"`
	StartedAt   time.Time                `json:"started_at"`
	Duration    time.Duration            `json:"duration"`
	Stages      []StageTiming            `json:"stages"`
	Sidebars    map[string]sidebar.Stats `json:"sidebars"`
	NavbarItems int                      `json:"navbar_items"`
	FooterLinks int                      `json:"footer_links"`
	Features    int                      `json:"features"`
	Warnings    []string                 `json:"warnings,omitempty"`
	Unresolved  []sidebar.Unresolved     `json:"unresolved,omitempty"`
	Outcome     notify.Outcome           `json:"outcome"`
	Err         error                    `json:"-"`
}

func (r *Report) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Report) finish(err error, d time.Duration) {
	r.Duration = d
	r.Err = err
	switch {
	case err != nil:
		r.Outcome = notify.OutcomeFailed
	case len(r.Warnings) > 0:
		r.Outcome = notify.OutcomeWarning
	default:
		r.Outcome = notify.OutcomeSuccess
	}
}

// Event converts the report into a notification payload.
func (r *Report) Event() notify.BuildEvent {
	ev := notify.BuildEvent{
		BuildID:    r.BuildID,
		Site:       r.Site,
		Outcome:    r.Outcome,
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
		Warnings:   r.Warnings,
	}
	if len(r.Sidebars) > 0 {
		ev.Sidebars = make(map[string]int, len(r.Sidebars))
		for name, st := range r.Sidebars {
			ev.Sidebars[name] = st.Total()
		}
	}
	for _, u := range r.Unresolved {
		ev.Unresolved = append(ev.Unresolved, u.ContentID)
	}
	if r.Err != nil {
		ev.Error = r.Err.Error()
	}
	return ev
}

// Log writes the report through logger.
func (r *Report) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	names := make([]string, 0, len(r.Sidebars))
	for name := range r.Sidebars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		st := r.Sidebars[name]
		logger.Debug("Sidebar assembled",
			logfields.Sidebar(name),
			slog.Int("docs", st.Docs),
			slog.Int("categories", st.Categories),
			slog.Int("links", st.Links))
	}
	for _, w := range r.Warnings {
		logger.Warn("Assembly warning", logfields.BuildID(r.BuildID), slog.String("warning", w))
	}

	attrs := []any{
		logfields.BuildID(r.BuildID),
		slog.String("outcome", string(r.Outcome)),
		logfields.DurationMS(float64(r.Duration.Milliseconds())),
		logfields.Count(len(r.Sidebars)),
	}
	if r.Err != nil {
		logger.Error("Site assembly failed", append(attrs,
			slog.String("category", string(ferrors.GetCategory(r.Err))),
			logfields.Error(r.Err))...)
		return
	}
	logger.Info("Site assembled", attrs...)
}
