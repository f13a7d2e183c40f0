package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySidebar    = "sidebar"
	KeyContentID  = "content_id"
	KeyLabel      = "label"
	KeyPolicy     = "policy"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyCount      = "count"
	KeyURL        = "url"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Sidebar(name string) slog.Attr    { return slog.String(KeySidebar, name) }
func ContentID(id string) slog.Attr    { return slog.String(KeyContentID, id) }
func Label(l string) slog.Attr         { return slog.String(KeyLabel, l) }
func Policy(p string) slog.Attr        { return slog.String(KeyPolicy, p) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
