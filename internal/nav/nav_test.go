package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(label string, pos Position) Item {
	return Item{Label: label, To: "/" + label, Position: pos}
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}

func TestBuildNavbarStablePartition(t *testing.T) {
	nb, err := BuildNavbar([]Item{
		item("A", PositionLeft),
		item("B", PositionRight),
		item("C", PositionLeft),
		item("D", PositionRight),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, labels(nb.Left))
	assert.Equal(t, []string{"B", "D"}, labels(nb.Right))
	assert.Equal(t, []string{"A", "C", "B", "D"}, labels(nb.Items()))
}

func TestBuildNavbarDefaultsAndNormalization(t *testing.T) {
	nb, err := BuildNavbar([]Item{
		{Label: "Docs", DocID: "intro"},
		{Label: "GitHub", Href: "https://github.com", Position: " RIGHT "},
		{Label: "API", To: "/api", Target: "_blank"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Docs", "API"}, labels(nb.Left))
	assert.Equal(t, PositionLeft, nb.Left[0].Position)
	assert.Equal(t, PositionRight, nb.Right[0].Position)
}

func TestBuildNavbarRejectsInvalidItems(t *testing.T) {
	cases := map[string]Item{
		"missing label":   {To: "/x"},
		"no target":       {Label: "X"},
		"two targets":     {Label: "X", To: "/x", Href: "https://x"},
		"bad position":    {Label: "X", To: "/x", Position: "center"},
		"blank to target": {Label: "X", To: "  "},
	}
	for name, it := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildNavbar([]Item{it})
			require.ErrorIs(t, err, ErrInvalidItem)
		})
	}
}

func TestValidateMessages(t *testing.T) {
	err := Item{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "label is required")
	assert.Contains(t, err.Error(), "exactly one of to, href or docId")
}

func TestItemKind(t *testing.T) {
	assert.Equal(t, TargetDoc, Item{DocID: "intro"}.Kind())
	assert.Equal(t, TargetExternal, Item{Href: "https://x"}.Kind())
	assert.Equal(t, TargetInternal, Item{To: "/api"}.Kind())
	assert.Equal(t, "intro", Item{DocID: "intro"}.Destination())
}

func TestItemKindIgnoresBlankTargets(t *testing.T) {
	item := Item{Label: "GitHub", DocID: "  ", Href: "https://github.com/weaveworks/flintlock"}
	require.NoError(t, item.Validate())
	assert.Equal(t, TargetExternal, item.Kind())
	assert.Equal(t, "https://github.com/weaveworks/flintlock", item.Destination())
	assert.Equal(t, "intro", Item{DocID: " intro "}.Destination())
}

func TestGroupLinks(t *testing.T) {
	groups, err := GroupLinks([]Link{
		{Group: "Docs", Item: Item{Label: "Docs", To: "/docs/intro"}},
		{Group: "Community", Item: Item{Label: "Slack", Href: "https://slack"}},
		{Group: "Docs", Item: Item{Label: "HTTP API", To: "/api"}},
		{Group: "More", Item: Item{Label: "GitHub", Href: "https://github.com"}},
		{Group: "Community", Item: Item{Label: "Twitter", Href: "https://twitter"}},
	})
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "Docs", groups[0].Title)
	assert.Equal(t, []string{"Docs", "HTTP API"}, labels(groups[0].Items))
	assert.Equal(t, []string{"Slack", "Twitter"}, labels(groups[1].Items))
	assert.Equal(t, "More", groups[2].Title)

	_, err = GroupLinks([]Link{{Item: Item{Label: "x", To: "/x"}}})
	require.ErrorIs(t, err, ErrInvalidGroup)
}

func TestBuildFooter(t *testing.T) {
	in := []Group{
		{Title: "Docs", Items: []Item{{Label: "Docs", To: "/docs/intro"}}},
		{Title: "More", Items: []Item{{Label: "GitHub", Href: "https://github.com"}}},
	}
	out, err := BuildFooter(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = BuildFooter([]Group{{Title: "Docs"}})
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = BuildFooter([]Group{in[0], in[0]})
	require.ErrorIs(t, err, ErrInvalidGroup)
	_, err = BuildFooter([]Group{{Title: "Docs", Items: []Item{{Label: "x"}}}})
	require.ErrorIs(t, err, ErrInvalidItem)
}
