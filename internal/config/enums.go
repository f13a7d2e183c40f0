package config

import (
	"git.home.luguber.info/inful/docsite/internal/foundation/normalization"
)

// BrokenLinkPolicy decides what happens when a link target cannot be resolved.
type BrokenLinkPolicy string

const (
	BrokenLinksIgnore BrokenLinkPolicy = "ignore"
	BrokenLinksWarn   BrokenLinkPolicy = "warn"
	BrokenLinksThrow  BrokenLinkPolicy = "throw"
)

var brokenLinkNormalizer = normalization.NewEnumNormalizer("broken link policy", map[string]BrokenLinkPolicy{
	"ignore": BrokenLinksIgnore,
	"warn":   BrokenLinksWarn,
	"throw":  BrokenLinksThrow,
}, BrokenLinksThrow)

// NormalizeBrokenLinkPolicy maps raw to a policy, defaulting to throw.
func NormalizeBrokenLinkPolicy(raw string) BrokenLinkPolicy {
	return brokenLinkNormalizer.Normalize(raw)
}

// FooterStyle selects the footer color scheme.
type FooterStyle string

const (
	FooterDark  FooterStyle = "dark"
	FooterLight FooterStyle = "light"
)

var footerStyleNormalizer = normalization.NewEnumNormalizer("footer style", map[string]FooterStyle{
	"dark":  FooterDark,
	"light": FooterLight,
}, FooterLight)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}
