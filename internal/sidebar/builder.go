package sidebar

import (
	"strconv"
	"strings"
	"unicode"
)

// Build validates one named sidebar and returns its tree.
//
// Entry order is preserved at every level. On failure the returned error is a
// *BuildError wrapping ErrInvalidReference, ErrInvalidLabel,
// ErrDuplicateReference or ErrEmptyCategory, and the tree is nil.
func Build(name string, entries []Entry) ([]Node, error) {
	b := &builder{
		sidebar: name,
		ids:     make(map[string]string),
		slugs:   make(map[string]string),
	}
	nodes, err := b.build(entries, "")
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

type builder struct {
	sidebar string
	ids     map[string]string // content id -> first path
	slugs   map[string]string // generated index slug -> first path
}

func (b *builder) fail(err error, path, id, reason string) *BuildError {
	return &BuildError{Err: err, Sidebar: b.sidebar, Path: path, ContentID: id, Reason: reason}
}

func (b *builder) build(entries []Entry, prefix string) ([]Node, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	nodes := make([]Node, 0, len(entries))
	for i, e := range entries {
		n, err := b.entry(e, indexPath(prefix, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (b *builder) entry(e Entry, path string) (Node, error) {
	switch e.Type {
	case "", TypeDoc:
		if len(e.Items) > 0 || e.Link != nil {
			return Node{}, b.fail(ErrInvalidReference, path, e.ID, "doc entries cannot have items or a link")
		}
		if err := b.claim(e.ID, path); err != nil {
			return Node{}, err
		}
		return Node{Kind: KindDoc, ContentID: e.ID, Label: strings.TrimSpace(e.Label)}, nil

	case TypeLink:
		label := strings.TrimSpace(e.Label)
		if label == "" {
			return Node{}, b.fail(ErrInvalidLabel, path, "", "link label is empty")
		}
		if strings.TrimSpace(e.Href) == "" {
			return Node{}, b.fail(ErrInvalidReference, path, "", "link href is empty")
		}
		return Node{Kind: KindLink, Label: label, Href: e.Href}, nil

	case TypeCategory:
		return b.category(e, path)

	default:
		return Node{}, b.fail(ErrInvalidReference, path, "", "unknown entry type "+strconv.Quote(e.Type))
	}
}

func (b *builder) category(e Entry, path string) (Node, error) {
	label := strings.TrimSpace(e.Label)
	if label == "" {
		return Node{}, b.fail(ErrInvalidLabel, path, "", "category label is empty")
	}
	if e.Link == nil && len(e.Items) == 0 {
		return Node{}, b.fail(ErrEmptyCategory, path, "", "category "+strconv.Quote(label)+" has no link and no items")
	}

	n := Node{Kind: KindCategory, Label: label, Collapsed: e.Collapsed, Collapsible: e.Collapsible}

	if e.Link != nil {
		link, err := b.link(*e.Link, label, path+".link")
		if err != nil {
			return Node{}, err
		}
		n.Link = link
	}

	items, err := b.build(e.Items, path+".items")
	if err != nil {
		return Node{}, err
	}
	n.Items = items
	return n, nil
}

func (b *builder) link(l EntryLink, label, path string) (*CategoryLink, error) {
	switch l.Type {
	case LinkTypeDoc:
		if err := b.claim(l.ID, path); err != nil {
			return nil, err
		}
		return &CategoryLink{Kind: LinkDoc, ContentID: l.ID}, nil

	case LinkTypeGeneratedIndex:
		slug := strings.TrimSpace(l.Slug)
		if slug == "" {
			slug = "/category/" + Slugify(label)
		} else if !strings.HasPrefix(slug, "/") {
			slug = "/" + slug
		}
		if first, dup := b.slugs[slug]; dup {
			return nil, b.fail(ErrDuplicateReference, path, "", "generated index slug "+strconv.Quote(slug)+" already used at "+first)
		}
		b.slugs[slug] = path
		return &CategoryLink{
			Kind:        LinkGeneratedIndex,
			Title:       l.Title,
			Description: l.Description,
			Slug:        slug,
		}, nil

	default:
		return nil, b.fail(ErrInvalidReference, path, "", "unknown link type "+strconv.Quote(l.Type))
	}
}

// claim validates id and records it, rejecting a second use within the sidebar.
func (b *builder) claim(id, path string) error {
	if reason := checkContentID(id); reason != "" {
		return b.fail(ErrInvalidReference, path, id, reason)
	}
	if first, dup := b.ids[id]; dup {
		return b.fail(ErrDuplicateReference, path, id, "already referenced at "+first)
	}
	b.ids[id] = path
	return nil
}

// ValidContentID reports whether id is syntactically acceptable.
func ValidContentID(id string) bool {
	return checkContentID(id) == ""
}

// checkContentID returns why id is malformed, or "" when it is acceptable.
// Ids are slash separated paths without empty, "." or ".." segments.
func checkContentID(id string) string {
	if id == "" {
		return "content id is empty"
	}
	for _, r := range id {
		switch {
		case unicode.IsSpace(r) || unicode.IsControl(r):
			return "content id contains whitespace or control characters"
		case strings.ContainsRune(`#?\[]{}`, r):
			return "content id contains reserved character " + strconv.QuoteRune(r)
		}
	}
	for _, seg := range strings.Split(id, "/") {
		switch seg {
		case "":
			return "content id has an empty path segment"
		case ".", "..":
			return "content id has a relative path segment"
		}
	}
	return ""
}

func indexPath(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}
