// Package apiviewer mounts a third-party API reference viewer against an
// OpenAPI document URL. Fetching and rendering the document is entirely the
// viewer's job.
package apiviewer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

// DefaultViewer names the viewer used when none is configured.
const DefaultViewer = "redoc"

// DefaultRedocScript is the Redoc standalone bundle loaded by the mounted page.
const DefaultRedocScript = "https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"

var (
	// ErrMissingSpecURL indicates no API description URL was configured.
	ErrMissingSpecURL = errors.New("api viewer: spec url is required")

	// ErrInvalidSpecURL indicates the API description URL is not an absolute
	// http(s) URL.
	ErrInvalidSpecURL = errors.New("api viewer: spec url must be an absolute http(s) url")
)

// Viewer mounts an embeddable viewer for the API description at specURL.
type Viewer interface {
	Mount(specURL string) ([]byte, error)
}

// Redoc mounts the Redoc standalone viewer.
type Redoc struct {
	Title     string
	ScriptURL string
}

var redocPage = template.Must(template.New("redoc").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{ .Title }}</title>
    <style>body { margin: 0; padding: 0; }</style>
  </head>
  <body>
    <redoc spec-url="{{ .SpecURL }}"></redoc>
    <script src="{{ .ScriptURL }}"></script>
  </body>
</html>
`))

// Mount implements Viewer.
func (r Redoc) Mount(specURL string) ([]byte, error) {
	specURL = strings.TrimSpace(specURL)
	if specURL == "" {
		return nil, ErrMissingSpecURL
	}
	u, err := url.Parse(specURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpecURL, err)
	}
	if !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSpecURL, specURL)
	}
	data := struct{ Title, SpecURL, ScriptURL string }{
		Title:     r.Title,
		SpecURL:   specURL,
		ScriptURL: r.ScriptURL,
	}
	if data.Title == "" {
		data.Title = "API Reference"
	}
	if data.ScriptURL == "" {
		data.ScriptURL = DefaultRedocScript
	}
	var buf bytes.Buffer
	if err := redocPage.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// New returns the viewer registered under name.
func New(name, title string) (Viewer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", DefaultViewer:
		return Redoc{Title: title}, nil
	default:
		return nil, errors.New("api viewer: unknown viewer " + name)
	}
}
