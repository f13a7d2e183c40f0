package config

import (
	"git.home.luguber.info/inful/docsite/internal/apiviewer"
)

const (
	DefaultTitle           = "Documentation Site"
	DefaultBaseURL         = "/"
	DefaultDocsPath        = "docs"
	DefaultOutputDirectory = "./build"
	DefaultAPIRoute        = "/api"
	DefaultNotifySubject   = "docsite.builds"
)

// ApplyDefaults fills zero values. It runs after NormalizeConfig so enum
// fields already hold canonical values or are empty.
func ApplyDefaults(c *Config) {
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.OnBrokenLinks == "" {
		c.OnBrokenLinks = BrokenLinksThrow
	}
	if c.OnBrokenMarkdownLinks == "" {
		c.OnBrokenMarkdownLinks = BrokenLinksWarn
	}
	if c.Docs.Path == "" {
		c.Docs.Path = DefaultDocsPath
	}
	if c.Navbar.Title == "" {
		c.Navbar.Title = c.Title
	}
	if c.Footer.Style == "" {
		c.Footer.Style = FooterLight
	}
	if c.API != nil {
		if c.API.Route == "" {
			c.API.Route = DefaultAPIRoute
		}
		if c.API.Viewer == "" {
			c.API.Viewer = apiviewer.DefaultViewer
		}
		if c.API.Title == "" {
			c.API.Title = c.Title + " API"
		}
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDirectory
	}
	if c.Notify.NATSURL != "" && c.Notify.Subject == "" {
		c.Notify.Subject = DefaultNotifySubject
	}
}
