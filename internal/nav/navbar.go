package nav

import (
	"fmt"
	"strings"
)

// Navbar is the header navigation split by position.
type Navbar struct {
	Left  []Item
	Right []Item
}

// Items returns left items followed by right items.
func (n Navbar) Items() []Item {
	out := make([]Item, 0, len(n.Left)+len(n.Right))
	out = append(out, n.Left...)
	return append(out, n.Right...)
}

// BuildNavbar validates items and partitions them by position.
//
// Items without a position go left. Relative order inside each partition is
// the input order.
func BuildNavbar(items []Item) (Navbar, error) {
	var nb Navbar
	for idx, item := range items {
		item.Position = Position(strings.ToLower(strings.TrimSpace(string(item.Position))))
		if err := item.Validate(); err != nil {
			return Navbar{}, fmt.Errorf("navbar item %d: %w", idx, err)
		}
		if item.Position == PositionRight {
			nb.Right = append(nb.Right, item)
			continue
		}
		item.Position = PositionLeft
		nb.Left = append(nb.Left, item)
	}
	return nb, nil
}
