package nav

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGroup indicates a footer group without a title or without links,
// or two groups sharing a title.
var ErrInvalidGroup = errors.New("invalid footer group")

// Group is a titled column of footer links.
type Group struct {
	Title string `yaml:"title" toml:"title"`
	Items []Item `yaml:"items" toml:"items"`
}

// Link is a footer link tagged with the group it belongs to.
type Link struct {
	Group string
	Item
}

// GroupLinks collects flat links into groups. Groups appear in order of
// their first link and links keep their input order within a group.
func GroupLinks(links []Link) ([]Group, error) {
	var groups []Group
	index := make(map[string]int)
	for idx, l := range links {
		title := strings.TrimSpace(l.Group)
		if title == "" {
			return nil, fmt.Errorf("footer link %d: %w: group title is empty", idx, ErrInvalidGroup)
		}
		if err := l.Item.Validate(); err != nil {
			return nil, fmt.Errorf("footer link %d: %w", idx, err)
		}
		gi, ok := index[title]
		if !ok {
			gi = len(groups)
			index[title] = gi
			groups = append(groups, Group{Title: title})
		}
		groups[gi].Items = append(groups[gi].Items, l.Item)
	}
	return groups, nil
}

// BuildFooter validates groups given in nested form.
func BuildFooter(groups []Group) ([]Group, error) {
	var links []Link
	seen := make(map[string]bool, len(groups))
	for idx, g := range groups {
		title := strings.TrimSpace(g.Title)
		if title == "" {
			return nil, fmt.Errorf("footer group %d: %w: title is empty", idx, ErrInvalidGroup)
		}
		if seen[title] {
			return nil, fmt.Errorf("footer group %q: %w: duplicate title", title, ErrInvalidGroup)
		}
		seen[title] = true
		if len(g.Items) == 0 {
			return nil, fmt.Errorf("footer group %q: %w: no links", title, ErrInvalidGroup)
		}
		for _, item := range g.Items {
			links = append(links, Link{Group: title, Item: item})
		}
	}
	return GroupLinks(links)
}
