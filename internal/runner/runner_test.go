package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gubarz/snipmd/internal/config"
	"github.com/gubarz/snipmd/internal/snippet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRunner(missing string) (*Runner, *snippet.Registry) {
	reg := snippet.NewRegistry()
	r := &Runner{
		log:      zap.NewNop(),
		registry: reg,
		missing:  missing,
		limit:    4,
	}
	return r, reg
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const demoSource = `package demo

// BEGIN greet
func Greet() string {
	return "hello"
}
// END greet
`

func setupDocs(t *testing.T) (string, string) {
	t.Helper()
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "src", "demo.go"), demoSource)

	doc := "# Guide\n\n" +
		"<!-- snippet file=../src/demo.go start=\"BEGIN greet\" end=\"END greet\" -->\n" +
		"```go\n" +
		"stale\n" +
		"```\n"
	docPath := filepath.Join(tmp, "docs", "guide.md")
	writeFile(t, docPath, doc)
	return tmp, docPath
}

func TestSyncRewritesDriftedBlock(t *testing.T) {
	tmp, docPath := setupDocs(t)
	r, reg := newTestRunner(config.MissingFail)

	summary, err := r.Sync(filepath.Join(tmp, "docs"))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DriftCount())

	got, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Contains(t, string(got), "func Greet() string {\n\treturn \"hello\"\n}\n")
	assert.NotContains(t, string(got), "stale")

	require.Equal(t, 1, reg.Len())
	assert.True(t, strings.HasSuffix(reg.Relative()[0], filepath.Join("src", "demo.go")))

	// A second run finds everything current.
	summary, err = r.Sync(filepath.Join(tmp, "docs"))
	require.NoError(t, err)
	assert.Equal(t, 0, summary.DriftCount())
}

func TestCheckReportsDriftWithoutWriting(t *testing.T) {
	tmp, docPath := setupDocs(t)
	before, err := os.ReadFile(docPath)
	require.NoError(t, err)

	r, _ := newTestRunner(config.MissingFail)
	summary, err := r.Check(filepath.Join(tmp, "docs"))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.DriftCount())

	after, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "check must not write")
}

func TestMissingSourceFailPolicy(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "guide.md"),
		"<!-- snippet file=gone.go -->\n```go\nx\n```\n")

	r, _ := newTestRunner(config.MissingFail)
	_, err := r.Sync(tmp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "guide.md")
}

func TestMissingSourcePlaceholderPolicy(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "broken.md"),
		"<!-- snippet file=gone.go -->\n```go\nx\n```\n")
	writeFile(t, filepath.Join(tmp, "src", "demo.go"), demoSource)
	writeFile(t, filepath.Join(tmp, "ok.md"),
		"<!-- snippet file=src/demo.go start=\"BEGIN greet\" end=\"END greet\" -->\n```go\nstale\n```\n")

	r, reg := newTestRunner(config.MissingPlaceholder)
	summary, err := r.Sync(tmp)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.DriftCount())

	got, err := os.ReadFile(filepath.Join(tmp, "broken.md"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "snippet source missing: gone.go")

	// The sibling file still synced, and both references were recorded.
	got, err = os.ReadFile(filepath.Join(tmp, "ok.md"))
	require.NoError(t, err)
	assert.Contains(t, string(got), "func Greet()")
	assert.Equal(t, 2, reg.Len())
}

func TestAmbiguousMarkerFailsTheFile(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "src.go"), "MARK\na\nMARK\nend\n")
	writeFile(t, filepath.Join(tmp, "guide.md"),
		"<!-- snippet file=src.go start=MARK -->\n```go\nx\n```\n")

	r, _ := newTestRunner(config.MissingFail)
	_, err := r.Sync(tmp)
	require.Error(t, err)

	var ambiguous *snippet.AmbiguousMarkerError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []int{0, 2}, ambiguous.Lines)
}

func TestWithMissingCompletesListingPastMissingSources(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "guide.md"),
		"<!-- snippet file=gone.go -->\n```go\nx\n```\n"+
			"<!-- snippet file=also-gone.go -->\n```go\ny\n```\n")

	r, reg := newTestRunner(config.MissingFail)
	r = r.WithMissing(config.MissingPlaceholder)

	_, err := r.Check(tmp)
	require.NoError(t, err)

	rel := reg.Relative()
	require.Len(t, rel, 2)
	assert.True(t, strings.HasSuffix(rel[0], "gone.go"))
	assert.True(t, strings.HasSuffix(rel[1], "also-gone.go"))
}

func TestCollectMarkdownSingleFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "one.md")
	writeFile(t, path, "plain\n")

	files, err := collectMarkdown(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestSummaryRender(t *testing.T) {
	s := &Summary{Files: []FileStatus{
		{Path: "a.md", Changed: false},
		{Path: "b.md", Changed: true},
	}}
	out := s.Render(DefaultStyles())
	assert.Contains(t, out, "a.md")
	assert.Contains(t, out, "b.md")
	assert.Contains(t, out, "2 files, 1 out of sync")
}
