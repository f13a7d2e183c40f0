package sidebar

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setCatalog map[string]bool

func (s setCatalog) Exists(id string) bool { return s[id] }

func TestResolveAccumulatesAllMissing(t *testing.T) {
	main, err := Build("main", []Entry{
		DocEntry("intro"),
		{
			Type:  TypeCategory,
			Label: "Troubleshooting",
			Link:  &EntryLink{Type: LinkTypeDoc, ID: "troubleshooting/index"},
			Items: []Entry{DocEntry("troubleshooting/missing-page")},
		},
	})
	require.NoError(t, err)
	api, err := Build("api", []Entry{DocEntry("api/overview"), DocEntry("api/gone")})
	require.NoError(t, err)

	catalog := setCatalog{"intro": true, "troubleshooting/index": true, "api/overview": true}
	err = Resolve(map[string][]Node{"main": main, "api": api}, catalog)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedReference))

	var ue *UnresolvedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []string{"api/gone", "troubleshooting/missing-page"}, ue.ContentIDs())
	assert.Equal(t, Unresolved{Sidebar: "main", Path: "[1].items[0]", ContentID: "troubleshooting/missing-page"}, ue.Refs[1])
	assert.Contains(t, err.Error(), "2 content id(s) not found")
}

func TestResolveSingleMissingPage(t *testing.T) {
	nodes, err := Build("docs", []Entry{DocEntry("intro"), DocEntry("troubleshooting/missing-page")})
	require.NoError(t, err)

	err = Resolve(map[string][]Node{"docs": nodes}, setCatalog{"intro": true})
	var ue *UnresolvedError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []string{"troubleshooting/missing-page"}, ue.ContentIDs())
}

func TestResolveIgnoresLinksAndGeneratedIndexes(t *testing.T) {
	nodes, err := Build("docs", []Entry{
		{Type: TypeLink, Label: "GitHub", Href: "https://github.com"},
		{Type: TypeCategory, Label: "Index", Link: &EntryLink{Type: LinkTypeGeneratedIndex}},
	})
	require.NoError(t, err)
	assert.NoError(t, Resolve(map[string][]Node{"docs": nodes}, setCatalog{}))
}

func TestWriteMarkdown(t *testing.T) {
	nodes, err := Build("docs", []Entry{
		DocEntry("intro"),
		{
			Type:  TypeCategory,
			Label: "Getting Started",
			Link:  &EntryLink{Type: LinkTypeGeneratedIndex},
			Items: []Entry{DocEntry("getting-started/setup")},
		},
		{Type: TypeLink, Label: "GitHub", Href: "https://github.com"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, map[string][]Node{"docs": nodes}))
	out := buf.String()
	assert.Contains(t, out, "# Sidebars")
	assert.Contains(t, out, "## docs")
	assert.Contains(t, out, "- `intro`")
	assert.Contains(t, out, "- **Getting Started** → index `/category/getting-started`")
	assert.Contains(t, out, "  - `getting-started/setup`")
	assert.Contains(t, out, "- [GitHub](https://github.com)")
	assert.Contains(t, out, "Summary")
}

func TestWriteMarkdownEscapesLabels(t *testing.T) {
	nodes, err := Build("docs", []Entry{
		{Type: TypeDoc, ID: "intro", Label: "Read *me* first"},
		{
			Type:  TypeCategory,
			Label: "Guides [beta] `v2`",
			Items: []Entry{DocEntry("guides/images")},
		},
		{Type: TypeLink, Label: "Spec (draft)]", Href: "https://example.com/a b(c)"},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, map[string][]Node{"docs": nodes}))
	out := buf.String()
	assert.Contains(t, out, "- Read \\*me\\* first (`intro`)")
	assert.Contains(t, out, "- **Guides \\[beta\\] \\`v2\\`**")
	assert.Contains(t, out, "- [Spec (draft)\\]](<https://example.com/a%20b(c)>)")
}

func TestCodeSpanWithBackticks(t *testing.T) {
	assert.Equal(t, "`intro`", codeSpan("intro"))
	assert.Equal(t, "`` a`b ``", codeSpan("a`b"))
}

func TestCount(t *testing.T) {
	nodes, err := Build("docs", []Entry{
		DocEntry("intro"),
		CategoryEntry("Guides",
			DocEntry("guides/images"),
			CategoryEntry("Advanced", DocEntry("guides/advanced/tuning")),
		),
		{Type: TypeLink, Label: "GitHub", Href: "https://github.com/weaveworks/flintlock"},
	})
	require.NoError(t, err)

	st := Count(nodes)
	assert.Equal(t, Stats{Docs: 3, Categories: 2, Links: 1}, st)
	assert.Equal(t, 6, st.Total())
	assert.Zero(t, Count(nil).Total())
}
