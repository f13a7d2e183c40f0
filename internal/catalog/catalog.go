// Package catalog provides the set of known content ids that sidebar and
// navbar entries may reference.
package catalog

import (
	"errors"
	"sort"
)

// Catalog answers whether a content id names an existing documentation page.
type Catalog interface {
	Exists(contentID string) bool
}

// ErrDuplicateContentID indicates two pages resolve to the same content id.
var ErrDuplicateContentID = errors.New("duplicate content id")

// Static is a fixed in-memory catalog.
type Static map[string]struct{}

// NewStatic returns a catalog containing exactly ids.
func NewStatic(ids ...string) Static {
	s := make(Static, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Exists implements Catalog.
func (s Static) Exists(contentID string) bool {
	_, ok := s[contentID]
	return ok
}

// IDs returns the catalog's ids in sorted order.
func (s Static) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
