package commands

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// TreeCmd implements the 'tree' command.
type TreeCmd struct {
	Format  string `short:"f" help:"Output format" enum:"text,markdown" default:"text"`
	Sidebar string `arg:"" optional:"" help:"Only print this sidebar"`
}

func (t *TreeCmd) Run(g *Global, root *CLI) error {
	_, s, _, err := assembleFromConfig(context.Background(), root.Config, metrics.NoopRecorder{})
	if err != nil {
		return err
	}

	trees := s.Trees()
	if t.Sidebar != "" {
		nodes, ok := s.Tree(t.Sidebar)
		if !ok {
			return ferrors.NewError(ferrors.CategoryNotFound, fmt.Sprintf("sidebar %q is not defined", t.Sidebar)).Build()
		}
		trees = map[string][]sidebar.Node{t.Sidebar: nodes}
	}

	if t.Format == "markdown" {
		return sidebar.WriteMarkdown(g.Out, trees)
	}
	return writeTextTrees(g.Out, trees)
}

func writeTextTrees(w io.Writer, trees map[string][]sidebar.Node) error {
	names := make([]string, 0, len(trees))
	for name := range trees {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
		err := sidebar.Walk(trees[name], func(path string, n *sidebar.Node) error {
			depth := strings.Count(path, ".items")
			_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth+1), describe(n))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func describe(n *sidebar.Node) string {
	switch n.Kind {
	case sidebar.KindDoc:
		if n.Label != "" {
			return fmt.Sprintf("%s (%s)", n.ContentID, n.Label)
		}
		return n.ContentID
	case sidebar.KindLink:
		return fmt.Sprintf("%s -> %s", n.Label, n.Href)
	default:
		if n.Link != nil && n.Link.Kind == sidebar.LinkDoc {
			return fmt.Sprintf("[%s] -> %s", n.Label, n.Link.ContentID)
		}
		return "[" + n.Label + "]"
	}
}
