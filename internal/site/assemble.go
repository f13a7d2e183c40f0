package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docsite/internal/apiviewer"
	"git.home.luguber.info/inful/docsite/internal/catalog"
	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/features"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/metrics"
	"git.home.luguber.info/inful/docsite/internal/nav"
	"git.home.luguber.info/inful/docsite/internal/notify"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

// Stage names used in reports, logs and metrics.
const (
	StageSidebars   = "sidebars"
	StageNavigation = "navigation"
	StageResolve    = "resolve"
	StageFeatures   = "features"
	StageAPI        = "api"
)

// Options tunes Assemble. The zero value is usable.
type Options struct {
	Recorder metrics.Recorder
	Renderer *features.Renderer
	// Warnings from earlier phases, such as config normalization, are
	// copied into the report.
	Warnings []string
	Now      func() time.Time
	NewID    func() string
}

func (o *Options) defaults() {
	if o.Recorder == nil {
		o.Recorder = metrics.NoopRecorder{}
	}
	if o.Renderer == nil {
		o.Renderer = features.New()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.NewString() }
	}
}

type assembler struct {
	cfg    *config.Config
	cat    catalog.Catalog
	opts   Options
	report *Report
	site   *Site
}

// Assemble validates cfg against cat and produces the immutable Site.
//
// A Report is returned even when assembly fails. Structural problems are
// reported as the first *sidebar.BuildError or nav error encountered; missing
// content ids are reported together in one *sidebar.UnresolvedError.
func Assemble(ctx context.Context, cfg *config.Config, cat catalog.Catalog, opts Options) (*Site, *Report, error) {
	opts.defaults()
	start := opts.Now()
	report := &Report{
		BuildID:   opts.NewID(),
		StartedAt: start,
		Sidebars:  make(map[string]sidebar.Stats),
	}
	report.Warnings = append(report.Warnings, opts.Warnings...)

	if cfg == nil || cat == nil {
		err := ferrors.NewError(ferrors.CategoryInternal, "assemble requires a config and a catalog").Build()
		report.finish(err, 0)
		return nil, report, err
	}
	report.Site = cfg.Title

	a := &assembler{
		cfg:    cfg,
		cat:    cat,
		opts:   opts,
		report: report,
		site:   newSite(cfg),
	}

	err := a.run(ctx)
	elapsed := opts.Now().Sub(start)
	report.finish(err, elapsed)
	opts.Recorder.ObserveBuildDuration(elapsed)
	opts.Recorder.IncBuildOutcome(outcomeLabel(report.Outcome))
	if err != nil {
		return nil, report, err
	}
	return a.site, report, nil
}

func newSite(cfg *config.Config) *Site {
	return &Site{
		Title:                 cfg.Title,
		Tagline:               cfg.Tagline,
		URL:                   cfg.URL,
		BaseURL:               cfg.BaseURL,
		Favicon:               cfg.Favicon,
		OrganizationName:      cfg.OrganizationName,
		ProjectName:           cfg.ProjectName,
		TrailingSlash:         cfg.TrailingSlash,
		OnBrokenLinks:         cfg.OnBrokenLinks,
		OnBrokenMarkdownLinks: cfg.OnBrokenMarkdownLinks,
		Docs:                  Docs{Path: cfg.Docs.Path, EditURL: cfg.Docs.EditURL},
		trees:                 make(map[string][]sidebar.Node, len(cfg.Sidebars)),
	}
}

func (a *assembler) run(ctx context.Context) error {
	stages := []struct {
		name string
		fn   func() error
	}{
		{StageSidebars, a.buildSidebars},
		{StageNavigation, a.buildNavigation},
		{StageResolve, a.resolve},
		{StageFeatures, a.renderFeatures},
		{StageAPI, a.mountAPI},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "assembly canceled").
				WithContext("stage", st.name).Build()
		}
		if err := a.stage(st.name, st.fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *assembler) stage(name string, fn func() error) error {
	rec := a.opts.Recorder
	start := a.opts.Now()
	warnings := len(a.report.Warnings)
	err := fn()
	d := a.opts.Now().Sub(start)

	a.report.Stages = append(a.report.Stages, StageTiming{Stage: name, Duration: d})
	rec.ObserveStageDuration(name, d)
	switch {
	case err != nil:
		rec.IncStageResult(name, metrics.ResultFatal)
	case len(a.report.Warnings) > warnings:
		rec.IncStageResult(name, metrics.ResultWarning)
	default:
		rec.IncStageResult(name, metrics.ResultSuccess)
	}
	slog.Debug("Stage complete", logfields.Stage(name), logfields.DurationMS(float64(d.Microseconds())/1000))
	return err
}

func (a *assembler) buildSidebars() error {
	names := make([]string, 0, len(a.cfg.Sidebars))
	for name := range a.cfg.Sidebars {
		names = append(names, name)
	}
	sort.Strings(names)

	a.site.Sidebars = make(map[string][]sidebar.Entry, len(names))
	for _, name := range names {
		nodes, err := sidebar.Build(name, a.cfg.Sidebars[name])
		if err != nil {
			return ferrors.NavigationError("sidebar rejected").WithCause(err).
				WithContext("sidebar", name).Build()
		}
		a.site.trees[name] = nodes
		a.site.Sidebars[name] = sidebar.ToEntries(nodes)

		st := sidebar.Count(nodes)
		a.report.Sidebars[name] = st
		a.opts.Recorder.SetSidebarNodes(name, st.Total())
	}
	return nil
}

func (a *assembler) buildNavigation() error {
	navbar, err := nav.BuildNavbar(a.cfg.Navbar.Items)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "navbar rejected").Fatal().Build()
	}
	groups, err := nav.BuildFooter(a.cfg.Footer.Links)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "footer rejected").Fatal().Build()
	}

	a.site.Navbar = Navbar{
		Title: a.cfg.Navbar.Title,
		Logo:  a.cfg.Navbar.Logo,
		Left:  navbar.Left,
		Right: navbar.Right,
	}
	a.site.Footer = Footer{
		Style:     a.cfg.Footer.Style,
		Groups:    groups,
		Copyright: strings.ReplaceAll(a.cfg.Footer.Copyright, "{year}", strconv.Itoa(a.opts.Now().Year())),
	}
	a.report.NavbarItems = len(navbar.Left) + len(navbar.Right)
	for _, g := range groups {
		a.report.FooterLinks += len(g.Items)
	}
	return nil
}

// resolve checks sidebar references and doc-typed nav items. Sidebar
// references must always resolve; nav items follow onBrokenLinks.
func (a *assembler) resolve() error {
	var refs []sidebar.Unresolved
	if err := sidebar.Resolve(a.site.trees, a.cat); err != nil {
		var uerr *sidebar.UnresolvedError
		if !errors.As(err, &uerr) {
			return ferrors.WrapError(err, ferrors.CategoryInternal, "resolution failed").Build()
		}
		refs = append(refs, uerr.Refs...)
	}

	for i, item := range a.cfg.Navbar.Items {
		refs = a.checkNavItem(refs, item, fmt.Sprintf("navbar.items[%d]", i))
	}
	for g, group := range a.cfg.Footer.Links {
		for j, item := range group.Items {
			refs = a.checkNavItem(refs, item, fmt.Sprintf("footer.links[%d].items[%d]", g, j))
		}
	}

	if len(refs) == 0 {
		return nil
	}
	a.report.Unresolved = refs
	a.opts.Recorder.AddUnresolvedReferences(len(refs))
	return ferrors.NavigationError("unresolved references").WithCause(&sidebar.UnresolvedError{Refs: refs}).
		WithContext("count", len(refs)).Build()
}

func (a *assembler) checkNavItem(refs []sidebar.Unresolved, item nav.Item, path string) []sidebar.Unresolved {
	if item.Kind() != nav.TargetDoc {
		return refs
	}
	docID := item.Destination()
	if a.cat.Exists(docID) {
		return refs
	}
	switch a.cfg.OnBrokenLinks {
	case config.BrokenLinksIgnore:
	case config.BrokenLinksWarn:
		a.report.warn(fmt.Sprintf("%s: doc %q not found", path, docID))
		slog.Warn("Broken navigation link",
			logfields.ContentID(docID),
			logfields.Label(item.Label),
			logfields.Path(path),
			logfields.Policy(string(config.BrokenLinksWarn)))
	default:
		refs = append(refs, sidebar.Unresolved{Path: path, ContentID: docID})
	}
	return refs
}

func (a *assembler) renderFeatures() error {
	a.site.Features = a.opts.Renderer.Render(a.cfg.Features)
	a.report.Features = len(a.site.Features)
	return nil
}

func (a *assembler) mountAPI() error {
	api := a.cfg.API
	if api == nil {
		return nil
	}
	viewer, err := apiviewer.New(api.Viewer, api.Title)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "api viewer unavailable").Fatal().Build()
	}
	page, err := viewer.Mount(api.SpecURL)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "api viewer mount failed").
			WithContext("url", api.SpecURL).Fatal().Build()
	}
	a.site.API = &APIPage{
		Route:   api.Route,
		SpecURL: api.SpecURL,
		Viewer:  api.Viewer,
		Title:   api.Title,
		HTML:    page,
	}
	return nil
}

func outcomeLabel(o notify.Outcome) metrics.BuildOutcomeLabel {
	switch o {
	case notify.OutcomeSuccess:
		return metrics.BuildOutcomeSuccess
	case notify.OutcomeWarning:
		return metrics.BuildOutcomeWarning
	default:
		return metrics.BuildOutcomeFailed
	}
}
