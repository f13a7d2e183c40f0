package commands

import (
	"context"
	"fmt"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/metrics"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	_, _, report, err := assembleFromConfig(context.Background(), root.Config, metrics.NoopRecorder{})
	if err != nil {
		// List every broken reference so the whole file can be fixed at once.
		if report != nil && ferrors.HasCategory(err, ferrors.CategoryNavigation) {
			for _, ref := range report.Unresolved {
				where := ref.Path
				if ref.Sidebar != "" {
					where = ref.Sidebar + ref.Path
				}
				_, _ = fmt.Fprintf(g.Out, "unresolved: %s (at %s)\n", ref.ContentID, where)
			}
		}
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "%s is valid: %d sidebar(s), %d navbar item(s), %d footer link(s)\n",
		root.Config, len(report.Sidebars), report.NavbarItems, report.FooterLinks)
	for _, w := range report.Warnings {
		_, _ = fmt.Fprintf(g.Out, "warning: %s\n", w)
	}
	return nil
}
