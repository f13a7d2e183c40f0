// Package site assembles the immutable site description from configuration.
//
// Assembly runs in two passes. The structural pass builds every sidebar tree,
// the navbar and the footer, stopping at the first malformed declaration. The
// resolution pass then checks all content references against the catalog and
// reports every missing id at once.
package site

import (
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/features"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// Site is the validated configuration handed to the rendering layer. It is
// never modified after Assemble returns.
type Site struct {
	Title            string `yaml:"title"`
	Tagline          string `yaml:"tagline,omitempty"`
	URL              string `yaml:"url,omitempty"`
	BaseURL          string `yaml:"baseUrl"`
	Favicon          string `yaml:"favicon,omitempty"`
	OrganizationName string `yaml:"organizationName,omitempty"`
	ProjectName      string `yaml:"projectName,omitempty"`
	TrailingSlash    *bool  `yaml:"trailingSlash,omitempty"`

	OnBrokenLinks         config.BrokenLinkPolicy `yaml:"onBrokenLinks"`
	OnBrokenMarkdownLinks config.BrokenLinkPolicy `yaml:"onBrokenMarkdownLinks"`

	Docs     Docs                       `yaml:"docs"`
	Sidebars map[string][]sidebar.Entry `yaml:"sidebars,omitempty"`
	Navbar   Navbar                     `yaml:"navbar"`
	Footer   Footer                     `yaml:"footer"`
	Features []features.Panel           `yaml:"-"`
	API      *APIPage                   `yaml:"api,omitempty"`

	trees map[string][]sidebar.Node
}

// Docs describes the documentation content root.
type Docs struct {
	Path    string `yaml:"path"`
	EditURL string `yaml:"editUrl,omitempty"`
}

// Navbar is the validated page header.
type Navbar struct {
	Title string       `yaml:"title"`
	Logo  *config.Logo `yaml:"logo,omitempty"`
	Left  []nav.Item   `yaml:"left,omitempty"`
	Right []nav.Item   `yaml:"right,omitempty"`
}

// Footer is the validated page footer with the copyright year filled in.
type Footer struct {
	Style     config.FooterStyle `yaml:"style"`
	Groups    []nav.Group        `yaml:"links,omitempty"`
	Copyright string             `yaml:"copyright,omitempty"`
}

// APIPage is the mounted API reference viewer.
type APIPage struct {
	Route   string `yaml:"route"`
	SpecURL string `yaml:"specUrl"`
	Viewer  string `yaml:"viewer"`
	Title   string `yaml:"title"`
	HTML    []byte `yaml:"-"`
}

// Tree returns the validated node tree of the named sidebar.
func (s *Site) Tree(name string) ([]sidebar.Node, bool) {
	nodes, ok := s.trees[name]
	return nodes, ok
}

// Trees returns all validated sidebar trees keyed by name.
func (s *Site) Trees() map[string][]sidebar.Node {
	out := make(map[string][]sidebar.Node, len(s.trees))
	for k, v := range s.trees {
		out[k] = v
	}
	return out
}
