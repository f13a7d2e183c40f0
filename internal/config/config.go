package config

import (
	"git.home.luguber.info/inful/docsite/internal/features"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// Config is the declarative site configuration. It is loaded once per build
// and treated as read-only afterwards.
type Config struct {
	Title            string `yaml:"title" toml:"title"`
	Tagline          string `yaml:"tagline,omitempty" toml:"tagline"`
	URL              string `yaml:"url,omitempty" toml:"url"`
	BaseURL          string `yaml:"baseUrl,omitempty" toml:"baseUrl"`
	Favicon          string `yaml:"favicon,omitempty" toml:"favicon"`
	OrganizationName string `yaml:"organizationName,omitempty" toml:"organizationName"`
	ProjectName      string `yaml:"projectName,omitempty" toml:"projectName"`

	// TrailingSlash is nil when the rendering layer's default applies.
	TrailingSlash *bool `yaml:"trailingSlash,omitempty" toml:"trailingSlash"`

	OnBrokenLinks         BrokenLinkPolicy `yaml:"onBrokenLinks,omitempty" toml:"onBrokenLinks"`
	OnBrokenMarkdownLinks BrokenLinkPolicy `yaml:"onBrokenMarkdownLinks,omitempty" toml:"onBrokenMarkdownLinks"`

	Docs     DocsConfig                 `yaml:"docs,omitempty" toml:"docs"`
	Sidebars map[string][]sidebar.Entry `yaml:"sidebars,omitempty" toml:"sidebars"`
	Navbar   NavbarConfig               `yaml:"navbar,omitempty" toml:"navbar"`
	Footer   FooterConfig               `yaml:"footer,omitempty" toml:"footer"`
	Features []features.Descriptor      `yaml:"features,omitempty" toml:"features"`
	API      *APIConfig                 `yaml:"api,omitempty" toml:"api"`

	Output  OutputConfig  `yaml:"output,omitempty" toml:"output"`
	Metrics MetricsConfig `yaml:"metrics,omitempty" toml:"metrics"`
	Notify  NotifyConfig  `yaml:"notify,omitempty" toml:"notify"`
}

// DocsConfig locates the documentation pages that form the content catalog.
type DocsConfig struct {
	Path          string `yaml:"path,omitempty" toml:"path"`
	EditURL       string `yaml:"editUrl,omitempty" toml:"editUrl"`
	IncludeDrafts bool   `yaml:"includeDrafts,omitempty" toml:"includeDrafts"`
}

// Logo is the navbar logo.
type Logo struct {
	Alt string `yaml:"alt,omitempty" toml:"alt"`
	Src string `yaml:"src" toml:"src"`
}

// NavbarConfig declares the page header.
type NavbarConfig struct {
	Title string     `yaml:"title,omitempty" toml:"title"`
	Logo  *Logo      `yaml:"logo,omitempty" toml:"logo"`
	Items []nav.Item `yaml:"items,omitempty" toml:"items"`
}

// FooterConfig declares the page footer.
type FooterConfig struct {
	Style FooterStyle `yaml:"style,omitempty" toml:"style"`
	Links []nav.Group `yaml:"links,omitempty" toml:"links"`
	// Copyright may contain a {year} placeholder.
	Copyright string `yaml:"copyright,omitempty" toml:"copyright"`
}

// APIConfig mounts an external API reference viewer on a route.
type APIConfig struct {
	SpecURL string `yaml:"specUrl" toml:"specUrl"`
	Route   string `yaml:"route,omitempty" toml:"route"`
	Viewer  string `yaml:"viewer,omitempty" toml:"viewer"`
	Title   string `yaml:"title,omitempty" toml:"title"`
}

// OutputConfig controls where assembled artifacts are written.
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty" toml:"directory"`
	Clean     bool   `yaml:"clean,omitempty" toml:"clean"`
}

// MetricsConfig enables Prometheus textfile export of build metrics.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty" toml:"textfile"`
}

// NotifyConfig enables publication of build outcome events over NATS.
type NotifyConfig struct {
	NATSURL string `yaml:"natsUrl,omitempty" toml:"natsUrl"`
	Subject string `yaml:"subject,omitempty" toml:"subject"`
	// JetStream publishes with acknowledgement through a stream that must
	// already capture Subject.
	JetStream bool        `yaml:"jetstream,omitempty" toml:"jetstream"`
	Retry     RetryConfig `yaml:"retry,omitempty" toml:"retry"`
}

// RetryConfig bounds publish retries. Delays use time.ParseDuration syntax.
type RetryConfig struct {
	Backoff      string `yaml:"backoff,omitempty" toml:"backoff"` // fixed|linear|exponential
	InitialDelay string `yaml:"initialDelay,omitempty" toml:"initialDelay"`
	MaxDelay     string `yaml:"maxDelay,omitempty" toml:"maxDelay"`
	MaxRetries   *int   `yaml:"maxRetries,omitempty" toml:"maxRetries"`
}
