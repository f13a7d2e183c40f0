package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/sidebar"
)

const siteConfig = `title: Flintlock
url: https://docs.flintlock.dev
footer:
  style: dark
  copyright: "Copyright © {year} Weaveworks"
sidebars:
  docs:
    - intro
    - category: Guides
      items:
        - guides/images
        - guides/metrics
navbar:
  items:
    - label: Documentation
      docId: intro
    - label: GitHub
      href: https://github.com/weaveworks/flintlock
      position: right
features:
  - title: MicroVMs
    description: Create **microvms**.
api:
  specUrl: https://example.com/microvms.swagger.json
  route: /flintlock-api
`

// testSite lays out a config file and docs directory under a temp dir.
func testSite(t *testing.T, cfg string, pages ...string) string {
	t.Helper()
	root := t.TempDir()
	t.Chdir(root)
	for _, p := range pages {
		full := filepath.Join(root, "docs", filepath.FromSlash(p)+".md")
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o750))
		require.NoError(t, os.WriteFile(full, []byte("# "+p+"\n"), 0o600))
	}
	cfgPath := filepath.Join(root, "docsite.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cfgPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cli := &CLI{}
	var out bytes.Buffer
	parser, err := kong.New(cli,
		kong.Name("docsite"),
		kong.Vars{"version": "test"},
		kong.Bind(&Global{Out: &out}, cli),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = kctx.Run()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	cfgPath := testSite(t, siteConfig, "intro", "guides/images", "guides/metrics")

	out, err := run(t, "--config", cfgPath, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 1 sidebar(s), 2 navbar item(s)")
}

func TestValidate_UnresolvedReferences(t *testing.T) {
	cfg := `sidebars:
  docs:
    - intro
    - category: Troubleshooting
      items: [troubleshooting/missing-page, troubleshooting/other]
`
	cfgPath := testSite(t, cfg, "intro")

	out, err := run(t, "--config", cfgPath, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, sidebar.ErrUnresolvedReference)
	assert.Contains(t, out, "unresolved: troubleshooting/missing-page (at docs[1].items[0])")
	assert.Contains(t, out, "unresolved: troubleshooting/other (at docs[1].items[1])")
	assert.Equal(t, 3, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	assert.Contains(t, err.Error(), "troubleshooting/missing-page")
	assert.Contains(t, err.Error(), "troubleshooting/other")
}

func TestValidate_Duplicate(t *testing.T) {
	cfgPath := testSite(t, "sidebars:\n  docs: [a, a]\n", "a")

	_, err := run(t, "--config", cfgPath, "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, sidebar.ErrDuplicateReference)
}

func TestValidate_MissingDocsDir(t *testing.T) {
	cfgPath := testSite(t, "title: x\n")

	_, err := run(t, "--config", cfgPath, "validate")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

func TestBuild(t *testing.T) {
	cfgPath := testSite(t, siteConfig+"metrics:\n  textfile: metrics/docsite.prom\n", "intro", "guides/images", "guides/metrics")
	out := filepath.Join(filepath.Dir(cfgPath), "public")

	stdout, err := run(t, "--config", cfgPath, "build", "--output", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Built Flintlock")
	assert.FileExists(t, filepath.Join(out, "site.yaml"))
	assert.FileExists(t, filepath.Join(out, "features.html"))
	assert.FileExists(t, filepath.Join(out, "flintlock-api", "index.html"))
	assert.FileExists(t, filepath.Join(filepath.Dir(cfgPath), "metrics", "docsite.prom"))
}

func TestBuild_DefaultOutputNextToConfig(t *testing.T) {
	cfgPath := testSite(t, "sidebars:\n  docs: [intro]\n", "intro")

	_, err := run(t, "--config", cfgPath, "build")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(filepath.Dir(cfgPath), "build", "site.yaml"))
}

func TestTree(t *testing.T) {
	cfgPath := testSite(t, siteConfig, "intro", "guides/images", "guides/metrics")

	out, err := run(t, "--config", cfgPath, "tree")
	require.NoError(t, err)
	assert.Equal(t, "docs\n  intro\n  [Guides]\n    guides/images\n    guides/metrics\n", out)

	md, err := run(t, "--config", cfgPath, "tree", "--format", "markdown", "docs")
	require.NoError(t, err)
	assert.Contains(t, md, "# Sidebars")
	assert.Contains(t, md, "## docs")

	_, err = run(t, "--config", cfgPath, "tree", "missing")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "init", "--output", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote example configuration")
	assert.FileExists(t, filepath.Join(dir, "docsite.yaml"))

	_, err = run(t, "init", "--output", dir)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = run(t, "init", "--output", dir, "--force")
	require.NoError(t, err)
}

func TestNewLogger_Env(t *testing.T) {
	var buf bytes.Buffer
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFormat, "json")

	logger := newLogger(&buf, true)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
