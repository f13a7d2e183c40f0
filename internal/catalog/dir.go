package catalog

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/docsite/internal/frontmatter"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Page is a documentation page discovered on disk.
type Page struct {
	ID           string
	Path         string // relative to the docs root, slash separated
	Title        string
	SidebarLabel string
	Draft        bool
}

// DirOptions controls directory discovery.
type DirOptions struct {
	// IncludeDrafts keeps pages marked `draft: true`.
	IncludeDrafts bool
}

// Dir is a catalog built from a docs directory.
//
// A page's id is its directory path joined with the frontmatter `id`, or with
// the file name without extension when no id is declared. Leading number
// prefixes such as "01-" are dropped from every segment. Files and directories
// whose names start with "_" or "." are skipped.
type Dir struct {
	root  string
	pages map[string]Page
}

var numberPrefix = regexp.MustCompile(`^\d+\s*[-_.]+\s*`)

// LoadDir walks root and indexes every Markdown page below it.
func LoadDir(root string, opts DirOptions) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("docs directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs directory: %s is not a directory", root)
	}

	d := &Dir{root: root, pages: make(map[string]Page)}
	err = filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if p != root && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !isMarkdownFile(name) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		return d.add(p, filepath.ToSlash(rel), opts)
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Content catalog loaded", logfields.Path(root), logfields.Count(len(d.pages)))
	return d, nil
}

func (d *Dir) add(absPath, rel string, opts DirOptions) error {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", rel, err)
	}
	header, _, err := frontmatter.Parse(content)
	if err != nil {
		return fmt.Errorf("%s: %w", rel, err)
	}
	if header.Draft && !opts.IncludeDrafts {
		slog.Debug("Skipping draft page", logfields.File(rel))
		return nil
	}

	id := contentID(rel, header.ID)
	if existing, dup := d.pages[id]; dup {
		return fmt.Errorf("%w %q: %s and %s", ErrDuplicateContentID, id, existing.Path, rel)
	}
	d.pages[id] = Page{
		ID:           id,
		Path:         rel,
		Title:        header.Title,
		SidebarLabel: header.SidebarLabel,
		Draft:        header.Draft,
	}
	return nil
}

func contentID(rel, declared string) string {
	dir := path.Dir(rel)
	base := declared
	if base == "" {
		base = strings.TrimSuffix(path.Base(rel), path.Ext(rel))
		base = numberPrefix.ReplaceAllString(base, "")
	}
	if dir == "." {
		return base
	}
	segs := strings.Split(dir, "/")
	for i, s := range segs {
		segs[i] = numberPrefix.ReplaceAllString(s, "")
	}
	return strings.Join(append(segs, base), "/")
}

func isMarkdownFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx", ".markdown":
		return true
	}
	return false
}

// Exists implements Catalog.
func (d *Dir) Exists(contentID string) bool {
	_, ok := d.pages[contentID]
	return ok
}

// Page returns the page indexed under contentID.
func (d *Dir) Page(contentID string) (Page, bool) {
	p, ok := d.pages[contentID]
	return p, ok
}

// IDs returns every indexed content id in sorted order.
func (d *Dir) IDs() []string {
	ids := make([]string, 0, len(d.pages))
	for id := range d.pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Root returns the directory the catalog was loaded from.
func (d *Dir) Root() string { return d.root }
