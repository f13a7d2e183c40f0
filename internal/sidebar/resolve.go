package sidebar

import "sort"

// Catalog answers whether a content id names an existing page.
type Catalog interface {
	Exists(contentID string) bool
}

// Resolve checks every referenced content id in sidebars against catalog.
//
// All sidebars are scanned before returning. Missing ids are reported together
// in an *UnresolvedError, ordered by sidebar name and then traversal order.
func Resolve(sidebars map[string][]Node, catalog Catalog) error {
	names := make([]string, 0, len(sidebars))
	for name := range sidebars {
		names = append(names, name)
	}
	sort.Strings(names)

	var missing []Unresolved
	for _, name := range names {
		_ = Walk(sidebars[name], func(path string, n *Node) error {
			id, ok := n.References()
			if ok && !catalog.Exists(id) {
				missing = append(missing, Unresolved{Sidebar: name, Path: path, ContentID: id})
			}
			return nil
		})
	}
	if len(missing) > 0 {
		return &UnresolvedError{Refs: missing}
	}
	return nil
}
