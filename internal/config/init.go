package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/features"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// Example returns a complete sample configuration for a project site.
func Example() *Config {
	noSlash := false
	return &Config{
		Title:                 "Flintlock",
		Tagline:               "Create and manage the lifecycle of MicroVMs backed by containerd",
		URL:                   "https://docs.flintlock.dev",
		BaseURL:               "/",
		Favicon:               "img/favicon.ico",
		OrganizationName:      "weaveworks",
		ProjectName:           "flintlock",
		TrailingSlash:         &noSlash,
		OnBrokenLinks:         BrokenLinksThrow,
		OnBrokenMarkdownLinks: BrokenLinksWarn,
		Docs: DocsConfig{
			Path:    DefaultDocsPath,
			EditURL: "https://github.com/weaveworks/flintlock/edit/main/userdocs/",
		},
		Sidebars: map[string][]sidebar.Entry{
			"docs": {
				sidebar.DocEntry("intro"),
				sidebar.CategoryEntry("Getting Started",
					sidebar.DocEntry("getting-started/containerd"),
					sidebar.DocEntry("getting-started/flintlock"),
				),
				sidebar.CategoryEntry("Guides",
					sidebar.DocEntry("guides/images"),
					sidebar.DocEntry("guides/metrics"),
				),
			},
		},
		Navbar: NavbarConfig{
			Title: "Flintlock",
			Logo:  &Logo{Alt: "Flintlock Logo", Src: "img/logo.svg"},
			Items: []nav.Item{
				{Label: "Documentation", DocID: "intro", Position: nav.PositionLeft},
				{Label: "gRPC Proto", Href: "https://buf.build/weaveworks/flintlock", Position: nav.PositionLeft},
				{Label: "HTTP API", To: "/flintlock-api", Target: "_blank", Position: nav.PositionLeft},
				{Label: "GitHub", Href: "https://github.com/weaveworks/flintlock", Position: nav.PositionRight},
			},
		},
		Footer: FooterConfig{
			Style: FooterDark,
			Links: []nav.Group{
				{Title: "Docs", Items: []nav.Item{{Label: "Introduction", To: "/docs/intro"}}},
				{Title: "Community", Items: []nav.Item{{Label: "Slack", Href: "https://weave-community.slack.com/messages/flintlock/"}}},
				{Title: "More", Items: []nav.Item{{Label: "GitHub", Href: "https://github.com/weaveworks/flintlock"}}},
			},
			Copyright: "Copyright © {year} Weaveworks",
		},
		Features: []features.Descriptor{
			{Title: "MicroVM lifecycle", Description: "Create, update and delete **microvms** backed by containerd."},
			{Title: "Multiple hypervisors", Description: "Run microvms with Firecracker or Cloud Hypervisor."},
		},
		API: &APIConfig{
			SpecURL: "https://raw.githubusercontent.com/weaveworks/flintlock/main/api/services/microvm/v1alpha1/microvms.swagger.json",
			Route:   "/flintlock-api",
			Viewer:  "redoc",
			Title:   "Flintlock HTTP API",
		},
		Output: OutputConfig{Directory: DefaultOutputDirectory},
	}
}

// Init writes the example configuration to configPath. The format follows
// the file extension. An existing file is kept unless force is set.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	data, err := Marshal(configPath, Example())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to create config directory").
				WithContext("path", dir).Build()
		}
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}

// Marshal encodes cfg as TOML for .toml names and YAML otherwise.
func Marshal(name string, cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	if strings.EqualFold(filepath.Ext(name), ".toml") {
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode toml config").Build()
		}
		return buf.Bytes(), nil
	}
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode yaml config").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
