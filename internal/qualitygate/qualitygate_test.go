package qualitygate

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/value"
)

type key struct {
	metric   metric.Metric
	baseline Baseline
}

type mockStatistics map[key]value.Value

func (m mockStatistics) ValueFor(mt metric.Metric, b Baseline) (value.Value, bool) {
	v, ok := m[key{mt, b}]
	return v, ok
}

func createStatistics() mockStatistics {
	return mockStatistics{
		{metric.File, Project}:              value.NewCoverage(metric.File, coverage.New(3, 1)),
		{metric.Line, Project}:              value.NewCoverage(metric.Line, coverage.New(1, 1)),
		{metric.Line, ProjectDelta}:         value.NewFraction(metric.Line, big.NewRat(-1, 10)),
		{metric.Line, ModifiedLines}:        value.NewCoverage(metric.Line, coverage.New(1, 2)),
		{metric.Line, ModifiedLinesDelta}:   value.NewFraction(metric.Line, big.NewRat(1, 20)),
		{metric.Complexity, Project}:        value.NewInteger(metric.Complexity, 42),
		{metric.LOC, ProjectDelta}:          value.NewFraction(metric.LOC, big.NewRat(-7, 1)),
		{metric.Branch, ModifiedFilesDelta}: value.NewFraction(metric.Branch, big.NewRat(0, 1)),
	}
}

func TestEvaluateWithoutGatesIsInactive(t *testing.T) {
	result := Evaluate(createStatistics(), nil)

	assert.Equal(t, Inactive, result.Overall)
	assert.True(t, result.IsInactive())
	assert.True(t, result.IsSuccessful())
	assert.Equal(t, []string{"-> INACTIVE - No quality gate defined"}, result.Messages)
	assert.Empty(t, result.Items)
}

func TestEvaluatePassingGates(t *testing.T) {
	gates := []QualityGate{
		New(0, metric.File, Project, Unstable),
		New(50, metric.Line, Project, Failure),
		New(-10, metric.Line, ProjectDelta, Failure),
		New(5, metric.Line, ModifiedLinesDelta, Unstable),
	}

	result := Evaluate(createStatistics(), gates)

	assert.Equal(t, Passed, result.Overall)
	assert.True(t, result.IsSuccessful())
	assert.False(t, result.IsInactive())
	assert.Equal(t, []string{
		"-> [Overall project - File]: «Success» - (Actual value: 75.00%, Quality gate: 0.00)",
		"-> [Overall project - Line]: «Success» - (Actual value: 50.00%, Quality gate: 50.00)",
		"-> [Overall project (difference to reference job) - Line]: «Success» - (Actual value: -10.00%, Quality gate: -10.00)",
		"-> [Modified code lines (difference to overall project) - Line]: «Success» - (Actual value: +5.00%, Quality gate: 5.00)",
	}, result.Messages)
}

func TestEvaluateFailingGatesEscalate(t *testing.T) {
	gates := []QualityGate{
		New(76, metric.File, Project, Unstable),
		New(50, metric.Line, ModifiedLines, Failure),
		New(0, metric.File, Project, Unstable),
	}

	result := Evaluate(createStatistics(), gates)

	assert.Equal(t, Failed, result.Overall)
	assert.False(t, result.IsSuccessful())
	require.Len(t, result.Items, 3)
	assert.Equal(t, []Status{Warning, Failed, Passed},
		[]Status{result.Items[0].Status, result.Items[1].Status, result.Items[2].Status})
	assert.Equal(t, []string{
		"-> [Overall project - File]: «Unstable» - (Actual value: 75.00%, Quality gate: 76.00)",
		"-> [Modified code lines - Line]: «Failed» - (Actual value: 33.33%, Quality gate: 50.00)",
		"-> [Overall project - File]: «Success» - (Actual value: 75.00%, Quality gate: 0.00)",
	}, result.Messages)
}

func TestEvaluateMissingValueAlwaysFails(t *testing.T) {
	tests := []struct {
		name    string
		gate    QualityGate
		status  Status
		message string
	}{
		{
			name:    "unstable",
			gate:    New(-100, metric.Mutation, Project, Unstable),
			status:  Warning,
			message: "-> [Overall project - Mutation]: «Unstable» - (Actual value: n/a, Quality gate: -100.00)",
		},
		{
			name:    "failure",
			gate:    New(50, metric.Branch, ModifiedFiles, Failure),
			status:  Failed,
			message: "-> [Modified files - Branch]: «Failed» - (Actual value: n/a, Quality gate: 50.00)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Evaluate(createStatistics(), []QualityGate{tt.gate})

			assert.Equal(t, tt.status, result.Overall)
			assert.Equal(t, []string{tt.message}, result.Messages)
			assert.Equal(t, "n/a", result.Items[0].ActualValue)
		})
	}
}

func TestEvaluateCountMetrics(t *testing.T) {
	gates := []QualityGate{
		New(50, metric.Complexity, Project, Unstable),
		New(-10, metric.LOC, ProjectDelta, Failure),
		New(0, metric.Branch, ModifiedFilesDelta, Failure),
	}

	result := Evaluate(createStatistics(), gates)

	assert.Equal(t, Warning, result.Overall)
	assert.Equal(t, []string{
		"-> [Overall project - Cyclomatic Complexity]: «Unstable» - (Actual value: 42, Quality gate: 50.00)",
		"-> [Overall project (difference to reference job) - Lines of Code]: «Success» - (Actual value: -7, Quality gate: -10.00)",
		"-> [Modified files (difference to overall project) - Branch]: «Success» - (Actual value: +0.00%, Quality gate: 0.00)",
	}, result.Messages)
}

func TestEvaluatorWithCustomLabels(t *testing.T) {
	legacy := func(b Baseline) string {
		if b == ModifiedLines {
			return "Change coverage"
		}
		return b.String()
	}
	evaluator := NewEvaluator(WithBaselineLabels(legacy))

	result := evaluator.Evaluate(createStatistics(), []QualityGate{New(10, metric.Line, ModifiedLines, Unstable)})

	assert.Equal(t, []string{
		"-> [Change coverage - Line]: «Success» - (Actual value: 33.33%, Quality gate: 10.00)",
	}, result.Messages)
}

func TestWorseIsAJoin(t *testing.T) {
	all := []Status{Inactive, Passed, Warning, Failed}
	for i, a := range all {
		assert.Equal(t, a, Worse(a, a))
		assert.Equal(t, a, Worse(a, Inactive), "inactive is the bottom element")
		for j, b := range all {
			assert.Equal(t, Worse(a, b), Worse(b, a))
			if i > j {
				assert.Equal(t, a, Worse(a, b))
			}
			for _, c := range all {
				assert.Equal(t, Worse(Worse(a, b), c), Worse(a, Worse(b, c)))
			}
		}
	}
}

func TestParseBaseline(t *testing.T) {
	tests := []struct {
		input    string
		expected Baseline
	}{
		{"PROJECT", Project},
		{"project_delta", ProjectDelta},
		{"MODIFIED_LINES", ModifiedLines},
		{"modified-files-delta", ModifiedFilesDelta},
		{"INDIRECT", Indirect},
		{"CHANGE", ModifiedLines},
		{"CHANGE_DELTA", ModifiedLinesDelta},
		{"FILE", ModifiedFiles},
		{"FILE_DELTA", ModifiedFilesDelta},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, err := ParseBaseline(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b)
		})
	}

	_, err := ParseBaseline("SOMEWHERE")
	assert.Error(t, err)

	for _, b := range Baselines() {
		parsed, err := ParseBaseline(b.Name())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
}

func TestCriticality(t *testing.T) {
	assert.Equal(t, Warning, Unstable.Status())
	assert.Equal(t, Failed, Failure.Status())

	c, err := ParseCriticality("failure")
	require.NoError(t, err)
	assert.Equal(t, Failure, c)
	_, err = ParseCriticality("fatal")
	assert.Error(t, err)
}

func TestStatusText(t *testing.T) {
	for _, s := range []Status{Inactive, Passed, Warning, Failed} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var back Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, s, back)
	}
	assert.Equal(t, "Success", Passed.Description())
	assert.Equal(t, "Unstable", Warning.Description())
}
