// Package features renders the homepage feature panels.
package features

import (
	"bytes"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Descriptor declares one feature panel. Description is Markdown.
type Descriptor struct {
	Title       string `yaml:"title" toml:"title"`
	Icon        string `yaml:"icon,omitempty" toml:"icon"`
	Description string `yaml:"description" toml:"description"`
}

// Panel is a descriptor ready for the page template.
type Panel struct {
	Title       string
	Icon        string
	Description template.HTML
}

// Renderer converts descriptors to panels. The zero value is not usable; use New.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub flavoured Markdown enabled.
func New() *Renderer {
	return &Renderer{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

// Render maps every descriptor to a panel in input order. Nothing is
// deduplicated, sorted or dropped.
func (r *Renderer) Render(descriptors []Descriptor) []Panel {
	panels := make([]Panel, 0, len(descriptors))
	for _, d := range descriptors {
		panels = append(panels, Panel{
			Title:       d.Title,
			Icon:        d.Icon,
			Description: r.description(d.Description),
		})
	}
	return panels
}

func (r *Renderer) description(src string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(strings.TrimSpace(src)), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(src) + "</p>")
	}
	// goldmark omits raw HTML unless WithUnsafe is set.
	return template.HTML(strings.TrimSpace(buf.String()))
}

var sectionTemplate = template.Must(template.New("features").Parse(`<section class="features">
  <div class="container">
    <div class="row">
{{- range .Panels }}
      <div class="col col--{{ $.Columns }}">
        {{- if .Icon }}
        <div class="text--center">
          <img class="featureSvg" src="{{ .Icon }}" alt="{{ .Title }}">
        </div>
        {{- end }}
        <div class="text--center padding-horiz--md">
          <h3>{{ .Title }}</h3>
          {{ .Description }}
        </div>
      </div>
{{- end }}
    </div>
  </div>
</section>
`))

// Columns returns the grid width of each panel on a twelve column grid.
func Columns(n int) int {
	switch {
	case n <= 1:
		return 12
	case n >= 4:
		return 3
	default:
		return 12 / n
	}
}

// WriteHTML writes the feature section markup for panels.
func WriteHTML(w io.Writer, panels []Panel) error {
	return sectionTemplate.Execute(w, struct {
		Panels  []Panel
		Columns int
	}{Panels: panels, Columns: Columns(len(panels))})
}
