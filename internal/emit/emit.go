// Package emit writes an assembled site to disk for the rendering layer.
package emit

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docsite/internal/features"
	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
	"git.home.luguber.info/inful/docsite/internal/site"
)

// File names written below the output directory.
const (
	SiteFile     = "site.yaml"
	FeaturesFile = "features.html"
	SidebarsFile = "sidebars.md"
)

// Options controls Write.
type Options struct {
	// Clean removes the output directory before writing.
	Clean bool
}

// Write emits s below dir and returns the written paths relative to dir in
// write order.
func Write(s *site.Site, dir string, opts Options) ([]string, error) {
	if s == nil {
		return nil, ferrors.NewError(ferrors.CategoryInternal, "emit: site is nil").Build()
	}
	if opts.Clean {
		if err := os.RemoveAll(dir); err != nil {
			return nil, fsError(err, "failed to clean output directory", dir)
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fsError(err, "failed to create output directory", dir)
	}

	var written []string
	write := func(rel string, data []byte) error {
		if err := writeFileAtomic(filepath.Join(dir, rel), data); err != nil {
			return err
		}
		written = append(written, rel)
		return nil
	}

	data, err := marshalSite(s)
	if err != nil {
		return nil, err
	}
	if err := write(SiteFile, data); err != nil {
		return written, err
	}

	var md bytes.Buffer
	if err := sidebar.WriteMarkdown(&md, s.Trees()); err != nil {
		return written, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render sidebar outline").Build()
	}
	if err := write(SidebarsFile, md.Bytes()); err != nil {
		return written, err
	}

	if len(s.Features) > 0 {
		var buf bytes.Buffer
		if err := features.WriteHTML(&buf, s.Features); err != nil {
			return written, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render features").Build()
		}
		if err := write(FeaturesFile, buf.Bytes()); err != nil {
			return written, err
		}
	}

	if s.API != nil {
		if err := write(APIPagePath(s.API.Route), s.API.HTML); err != nil {
			return written, err
		}
	}

	slog.Info("Wrote site", logfields.Path(dir), logfields.Count(len(written)))
	return written, nil
}

// APIPagePath maps a route such as "/flintlock-api" to "flintlock-api/index.html".
func APIPagePath(route string) string {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "index.html"
	}
	return filepath.Join(filepath.FromSlash(trimmed), "index.html")
}

func marshalSite(s *site.Site) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal site").Build()
	}
	if err := enc.Close(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal site").Build()
	}
	return buf.Bytes(), nil
}

// writeFileAtomic writes through a temporary file in the same directory so
// readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fsError(err, "failed to create directory", filepath.Dir(path))
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fsError(err, "failed to create temp file", path)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fsError(err, "failed to write file", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fsError(err, "failed to close file", path)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return fsError(err, "failed to set file mode", path)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fsError(err, "failed to move file into place", path)
	}
	return nil
}

func fsError(err error, msg, path string) error {
	return ferrors.FileSystemError(msg).WithCause(err).WithContext("path", path).Build()
}
