package parser_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/parser"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// lcovParser stands in for an external adapter registered next to the
// built-in JSON importer.
type lcovParser struct{}

func (lcovParser) Name() string { return "LCOV" }

func (lcovParser) SupportsFile(fsys filesystem.Filesystem, filePath string) bool {
	return strings.HasPrefix(string(parser.Head(fsys, filePath)), "TN:")
}

func (lcovParser) Parse(string, parser.Config) (*tree.Tree, error) {
	return nil, errors.New("truncated record")
}

func init() {
	parser.RegisterParser(lcovParser{})
}

func sampleTree() *tree.Tree {
	t := tree.New(metric.Module, "shop")
	pkg := t.NewNode(metric.Package, "com.acme")
	file := t.NewFile("Cart.java", "com/acme/Cart.java")
	t.AddChild(t.Root(), pkg)
	t.AddChild(pkg, file)
	t.AddCoverage(file, metric.Line, coverage.New(1, 0))
	t.File(file).SetLineCoverage(4, coverage.New(1, 0))
	return t
}

func TestFindParserForFile(t *testing.T) {
	data, err := json.Marshal(sampleTree())
	require.NoError(t, err)
	fsys := filesystem.NewMemFS(map[string]string{
		"/tree.json":   "\n  " + string(data),
		"/cov.info":    "TN:\nSF:a.c\nend_of_record\n",
		"/unknown.txt": "hello",
		"/empty.json":  "",
	})

	p, err := parser.FindParserForFile(fsys, "/tree.json")
	require.NoError(t, err)
	assert.Equal(t, "CoverageTree", p.Name())

	p, err = parser.FindParserForFile(fsys, "/cov.info")
	require.NoError(t, err)
	assert.Equal(t, "LCOV", p.Name())

	for _, path := range []string{"/unknown.txt", "/empty.json", "/missing"} {
		_, err := parser.FindParserForFile(fsys, path)
		assert.ErrorContains(t, err, "no suitable parser found", path)
	}

	names := make([]string, 0, len(parser.GetParsers()))
	for _, p := range parser.GetParsers() {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{"CoverageTree", "LCOV"}, names)
}

func TestParseJSONTree(t *testing.T) {
	data, err := json.Marshal(sampleTree())
	require.NoError(t, err)
	fsys := filesystem.NewMemFS(map[string]string{"/tree.json": string(data)})

	got, err := parser.Parse("/tree.json", parser.Config{FS: fsys})
	require.NoError(t, err)

	assert.Equal(t, "shop", got.Name(got.Root()))
	file, ok := got.FindFile(got.Root(), "com/acme/Cart.java")
	require.True(t, ok)
	assert.Equal(t, coverage.New(1, 0), got.File(file).CoveragePerLine[4])
	assert.Equal(t, coverage.New(1, 0), got.Coverage(got.Root(), metric.Line))
}

func TestParseErrors(t *testing.T) {
	fsys := filesystem.NewMemFS(map[string]string{
		"/broken.json": "{\"metric\": ",
		"/cov.info":    "TN:\n",
		"/notes.txt":   "hello",
	})

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "missing file", path: "/missing.json", wantErr: "reading coverage tree"},
		{name: "unknown format", path: "/notes.txt", wantErr: "no suitable parser found for file: /notes.txt"},
		{name: "broken JSON", path: "/broken.json", wantErr: "CoverageTree parser: reading /broken.json"},
		{name: "adapter failure", path: "/cov.info", wantErr: "LCOV parser: reading /cov.info: truncated record"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.path, parser.Config{FS: fsys})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestHead(t *testing.T) {
	long := strings.Repeat("x", 2000)
	fsys := filesystem.NewMemFS(map[string]string{"/long": long, "/short": "ab"})

	assert.Len(t, parser.Head(fsys, "/long"), 512)
	assert.Equal(t, []byte("ab"), parser.Head(fsys, "/short"))
	assert.Nil(t, parser.Head(fsys, "/missing"))
}
