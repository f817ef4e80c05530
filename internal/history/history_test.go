package history

import (
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleTree(covered int) *tree.Tree {
	tr := tree.New(metric.Module, "module")
	file := tr.NewFile("Foo.java", "com/acme/Foo.java")
	tr.AddChild(tr.Root(), file)
	tr.AddCoverage(file, metric.Line, coverage.New(covered, 10-covered))
	return tr
}

func TestReferenceSkipsBuildsWithoutTree(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("job", &Record{Build: 1, Tree: sampleTree(4)}))
	require.NoError(t, s.Save("job", &Record{Build: 2, Tree: sampleTree(6)}))
	require.NoError(t, s.Save("job", &Record{Build: 3}))
	require.NoError(t, s.Save("job", &Record{Build: 5, Tree: sampleTree(8)}))

	tests := []struct {
		name   string
		before int
		want   int
	}{
		{name: "previous build has no tree", before: 4, want: 2},
		{name: "skips the build without tree", before: 3, want: 2},
		{name: "oldest", before: 2, want: 1},
		{name: "beyond the newest build", before: 100, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := s.Reference("job", tt.before)
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Build)
		})
	}
}

func TestReferenceRoundTripsTheTree(t *testing.T) {
	s := openStore(t)
	result := qualitygate.Evaluate(nil, nil)
	record := &Record{
		Build:    7,
		Recorded: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Tree:     sampleTree(3),
		Delta:    map[metric.Metric]*big.Rat{metric.Line: big.NewRat(-1, 12)},
		Result:   result,
	}
	require.NoError(t, s.Save("job", record))

	r, err := s.Reference("job", 8)

	require.NoError(t, err)
	assert.Equal(t, record.Recorded, r.Recorded.UTC())
	assert.Equal(t, coverage.New(3, 7), r.Tree.Coverage(r.Tree.Root(), metric.Line))
	assert.Equal(t, 0, big.NewRat(-1, 12).Cmp(r.Delta[metric.Line]))
	assert.Equal(t, qualitygate.Inactive, r.Result.Overall)
	assert.Equal(t, result.Messages, r.Result.Messages)
}

func TestReferenceWithoutHistory(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("other", &Record{Build: 1, Tree: sampleTree(1)}))

	_, err := s.Reference("job", 10)
	assert.ErrorIs(t, err, ErrNoReference)

	_, err = s.Reference("other", 1)
	assert.ErrorIs(t, err, ErrNoReference)
}

func TestSaveReplacesBuild(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.Save("job", &Record{Build: 1, Tree: sampleTree(1)}))
	require.NoError(t, s.Save("job", &Record{Build: 1, Tree: sampleTree(9)}))
	require.NoError(t, s.Save("job", &Record{Build: 300}))

	builds, err := s.Builds("job")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 300}, builds)

	r, err := s.Reference("job", 2)
	require.NoError(t, err)
	assert.Equal(t, coverage.New(9, 1), r.Tree.Coverage(r.Tree.Root(), metric.Line))
}

func TestSaveRejectsNegativeBuild(t *testing.T) {
	s := openStore(t)

	assert.Error(t, s.Save("job", &Record{Build: -1}))
}
