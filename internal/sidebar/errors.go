package sidebar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidReference indicates a malformed content id or link entry.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrDuplicateReference indicates two entries in one sidebar share a content id
	// or a generated index slug.
	ErrDuplicateReference = errors.New("duplicate reference")

	// ErrEmptyCategory indicates a category with neither a link nor items.
	ErrEmptyCategory = errors.New("empty category")

	// ErrInvalidLabel indicates a category or link entry without a label.
	ErrInvalidLabel = errors.New("invalid label")

	// ErrUnresolvedReference indicates a content id absent from the catalog.
	ErrUnresolvedReference = errors.New("unresolved reference")
)

// BuildError describes the structural failure that rejected a sidebar.
type BuildError struct {
	Err       error  // one of the sentinel errors above
	Sidebar   string // sidebar name
	Path      string // position in the declarative input, e.g. "[2].items[0]"
	ContentID string // offending id, when the failure concerns one
	Reason    string
}

func (e *BuildError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sidebar %q at %s: %v", e.Sidebar, e.Path, e.Err)
	if e.ContentID != "" {
		fmt.Fprintf(&b, " %q", e.ContentID)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	return b.String()
}

func (e *BuildError) Unwrap() error { return e.Err }

// Unresolved is one content id missing from the catalog. Sidebar is empty for
// references made outside a sidebar, such as navbar doc items.
type Unresolved struct {
	Sidebar   string
	Path      string
	ContentID string
}

// UnresolvedError reports every unresolved reference found in a single pass.
type UnresolvedError struct {
	Refs []Unresolved
}

func (e *UnresolvedError) Error() string {
	ids := make([]string, len(e.Refs))
	for i, r := range e.Refs {
		if r.Sidebar == "" {
			ids[i] = fmt.Sprintf("%q (at %s)", r.ContentID, r.Path)
			continue
		}
		ids[i] = fmt.Sprintf("%q (sidebar %q at %s)", r.ContentID, r.Sidebar, r.Path)
	}
	return fmt.Sprintf("%v: %d content id(s) not found: %s", ErrUnresolvedReference, len(e.Refs), strings.Join(ids, ", "))
}

func (e *UnresolvedError) Unwrap() error { return ErrUnresolvedReference }

// ContentIDs lists the unresolved ids in report order.
func (e *UnresolvedError) ContentIDs() []string {
	ids := make([]string, len(e.Refs))
	for i, r := range e.Refs {
		ids[i] = r.ContentID
	}
	return ids
}
