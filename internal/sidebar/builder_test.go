package sidebar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGuidesScenario(t *testing.T) {
	entries := []Entry{
		DocEntry("intro"),
		CategoryEntry("Guides", DocEntry("guides/images"), DocEntry("guides/metrics")),
	}

	nodes, err := Build("docs", entries)
	require.NoError(t, err)

	want := []Node{
		Doc("intro"),
		Category("Guides", Doc("guides/images"), Doc("guides/metrics")),
	}
	assert.Equal(t, want, nodes)
}

func TestBuildPreservesOrderAtEveryLevel(t *testing.T) {
	entries := []Entry{
		DocEntry("z"),
		CategoryEntry("B",
			DocEntry("b/3"),
			CategoryEntry("Inner", DocEntry("b/inner/2"), DocEntry("b/inner/1")),
			DocEntry("b/1"),
		),
		DocEntry("a"),
	}
	nodes, err := Build("docs", entries)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "b/3", "b/inner/2", "b/inner/1", "b/1", "a"}, ContentIDs(nodes))
	assert.Equal(t, "Inner", nodes[1].Items[1].Label)
}

func TestBuildDuplicateReference(t *testing.T) {
	nodes, err := Build("docs", []Entry{DocEntry("a"), DocEntry("a")})
	require.Error(t, err)
	assert.Nil(t, nodes, "no partial tree on failure")
	assert.True(t, errors.Is(err, ErrDuplicateReference))

	var be *BuildError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "a", be.ContentID)
	assert.Equal(t, "docs", be.Sidebar)
	assert.Equal(t, "[1]", be.Path)
	assert.Contains(t, err.Error(), `"a"`)
}

func TestBuildDuplicateAcrossNestingAndCategoryLinks(t *testing.T) {
	_, err := Build("docs", []Entry{
		DocEntry("intro"),
		{Type: TypeCategory, Label: "G", Items: []Entry{DocEntry("intro")}},
	})
	require.ErrorIs(t, err, ErrDuplicateReference)

	_, err = Build("docs", []Entry{
		{Type: TypeCategory, Label: "G", Link: &EntryLink{Type: LinkTypeDoc, ID: "guides/index"}},
		DocEntry("guides/index"),
	})
	require.ErrorIs(t, err, ErrDuplicateReference)
}

func TestBuildSameIDInDifferentSidebars(t *testing.T) {
	_, err := Build("one", []Entry{DocEntry("intro")})
	require.NoError(t, err)
	_, err = Build("two", []Entry{DocEntry("intro")})
	require.NoError(t, err)
}

func TestBuildEmptyCategory(t *testing.T) {
	nodes, err := Build("docs", []Entry{DocEntry("intro"), {Type: TypeCategory, Label: "Empty", Items: []Entry{}}})
	require.ErrorIs(t, err, ErrEmptyCategory)
	assert.Nil(t, nodes)

	// A link alone makes the category navigable.
	nodes, err = Build("docs", []Entry{{
		Type:  TypeCategory,
		Label: "Index only",
		Link:  &EntryLink{Type: LinkTypeGeneratedIndex, Description: "All the things."},
	}})
	require.NoError(t, err)
	require.NotNil(t, nodes[0].Link)
	assert.Equal(t, "/category/index-only", nodes[0].Link.Slug)
	assert.Nil(t, nodes[0].Items)
}

func TestBuildInvalidReferences(t *testing.T) {
	cases := map[string]Entry{
		"empty":           DocEntry(""),
		"whitespace":      DocEntry("getting started"),
		"leading slash":   DocEntry("/intro"),
		"trailing slash":  DocEntry("guides/"),
		"double slash":    DocEntry("guides//images"),
		"dot dot":         DocEntry("guides/../intro"),
		"fragment":        DocEntry("intro#top"),
		"unknown type":    {Type: "html", ID: "x"},
		"link no href":    {Type: TypeLink, Label: "GitHub"},
		"doc with items":  {Type: TypeDoc, ID: "x", Items: []Entry{DocEntry("y")}},
		"bad link type":   {Type: TypeCategory, Label: "C", Link: &EntryLink{Type: "page"}},
		"empty link doc":  {Type: TypeCategory, Label: "C", Link: &EntryLink{Type: LinkTypeDoc}},
		"nested empty id": CategoryEntry("C", DocEntry("ok"), DocEntry("")),
	}
	for name, e := range cases {
		t.Run(name, func(t *testing.T) {
			nodes, err := Build("docs", []Entry{e})
			require.ErrorIs(t, err, ErrInvalidReference)
			assert.Nil(t, nodes)
		})
	}
}

func TestBuildInvalidLabels(t *testing.T) {
	_, err := Build("docs", []Entry{CategoryEntry("  ", DocEntry("a"))})
	require.ErrorIs(t, err, ErrInvalidLabel)

	_, err = Build("docs", []Entry{{Type: TypeLink, Href: "https://example.com"}})
	require.ErrorIs(t, err, ErrInvalidLabel)
}

func TestBuildGeneratedIndexSlugs(t *testing.T) {
	index := func(label, slug string) Entry {
		return Entry{
			Type:  TypeCategory,
			Label: label,
			Link:  &EntryLink{Type: LinkTypeGeneratedIndex, Slug: slug},
			Items: []Entry{DocEntry(Slugify(label) + "/page")},
		}
	}

	nodes, err := Build("docs", []Entry{index("Getting Started", ""), index("Troubleshooting", "help")})
	require.NoError(t, err)
	assert.Equal(t, "/category/getting-started", nodes[0].Link.Slug)
	assert.Equal(t, "/help", nodes[1].Link.Slug)

	_, err = Build("docs", []Entry{index("Guides", ""), index("guides!", "")})
	require.ErrorIs(t, err, ErrDuplicateReference)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "getting-started", Slugify("Getting Started"))
	assert.Equal(t, "cafe-creme", Slugify("Café  Crème"))
	assert.Equal(t, "advanced-guides", Slugify("  Advanced -- Guides! "))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestValidContentID(t *testing.T) {
	assert.True(t, ValidContentID("troubleshooting/failed-to-reconcile-vmid"))
	assert.True(t, ValidContentID("getting-started/setup"))
	assert.False(t, ValidContentID(""))
	assert.False(t, ValidContentID("a\tb"))
}

func TestWalkStopsOnError(t *testing.T) {
	nodes := []Node{Doc("a"), Category("C", Doc("b"), Doc("c")), Doc("d")}
	var seen []string
	stop := errors.New("stop")
	err := Walk(nodes, func(path string, n *Node) error {
		seen = append(seen, path)
		if n.ContentID == "b" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"[0]", "[1]", "[1].items[0]"}, seen)
}
