package sidebar

// Kind tags the variant held by a Node.
type Kind int

const (
	// KindDoc references a single documentation page by content id.
	KindDoc Kind = iota
	// KindCategory groups child nodes under a label.
	KindCategory
	// KindLink points outside the content catalog.
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindDoc:
		return "doc"
	case KindCategory:
		return "category"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// LinkKind tags the variant held by a CategoryLink.
type LinkKind int

const (
	// LinkGeneratedIndex renders an auto-built listing of the category's children.
	LinkGeneratedIndex LinkKind = iota
	// LinkDoc makes the category itself navigate to a content id.
	LinkDoc
)

// CategoryLink is what a category label navigates to, if anything.
type CategoryLink struct {
	Kind        LinkKind
	ContentID   string // LinkDoc only
	Title       string // LinkGeneratedIndex only
	Description string // LinkGeneratedIndex only
	Slug        string // LinkGeneratedIndex only, always populated after Build
}

// Node is one element of a validated sidebar tree.
//
// Fields are populated according to Kind: ContentID for docs, Label/Link/Items
// for categories and Label/Href for links. Label on a doc is an optional
// display override.
type Node struct {
	Kind        Kind
	ContentID   string
	Label       string
	Href        string
	Link        *CategoryLink
	Items       []Node
	Collapsed   *bool
	Collapsible *bool
}

// Doc returns a doc node for id.
func Doc(id string) Node {
	return Node{Kind: KindDoc, ContentID: id}
}

// Category returns a category node without a link.
func Category(label string, items ...Node) Node {
	return Node{Kind: KindCategory, Label: label, Items: items}
}

// References returns the content id this node points at directly, if any.
// A category linked to a doc references that doc.
func (n Node) References() (string, bool) {
	switch n.Kind {
	case KindDoc:
		return n.ContentID, true
	case KindCategory:
		if n.Link != nil && n.Link.Kind == LinkDoc {
			return n.Link.ContentID, true
		}
	}
	return "", false
}

// VisitFunc is called for every node during Walk. path locates the node in
// the declarative input, e.g. "[1].items[0]".
type VisitFunc func(path string, n *Node) error

// Walk visits nodes depth-first in declaration order. Walking stops at the
// first error returned by visit.
func Walk(nodes []Node, visit VisitFunc) error {
	return walk(nodes, "", visit)
}

func walk(nodes []Node, prefix string, visit VisitFunc) error {
	for i := range nodes {
		path := indexPath(prefix, i)
		if err := visit(path, &nodes[i]); err != nil {
			return err
		}
		if nodes[i].Kind == KindCategory && len(nodes[i].Items) > 0 {
			if err := walk(nodes[i].Items, path+".items", visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// ContentIDs lists every referenced content id in traversal order.
func ContentIDs(nodes []Node) []string {
	var ids []string
	_ = Walk(nodes, func(_ string, n *Node) error {
		if id, ok := n.References(); ok {
			ids = append(ids, id)
		}
		return nil
	})
	return ids
}

// Stats counts nodes by kind.
type Stats struct {
	Docs       int `json:"docs" yaml:"docs"`
	Categories int `json:"categories" yaml:"categories"`
	Links      int `json:"links" yaml:"links"`
}

// Total is the number of nodes counted.
func (s Stats) Total() int { return s.Docs + s.Categories + s.Links }

// Count walks nodes and tallies them by kind.
func Count(nodes []Node) Stats {
	var st Stats
	_ = Walk(nodes, func(_ string, n *Node) error {
		switch n.Kind {
		case KindDoc:
			st.Docs++
		case KindCategory:
			st.Categories++
		case KindLink:
			st.Links++
		}
		return nil
	})
	return st
}
