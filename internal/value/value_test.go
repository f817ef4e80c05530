package value

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
)

func TestCoverageValueThresholds(t *testing.T) {
	v := NewCoverage(metric.Line, coverage.New(3, 2))

	assert.Equal(t, 0, v.Percentage().Cmp(big.NewRat(60, 1)))
	assert.False(t, IsBelowThreshold(v, 60.0), "exactly at the threshold is not below")
	assert.True(t, IsBelowThreshold(v, 60.01))
	assert.False(t, IsBelowThreshold(v, 0))
}

func TestThresholdIsExactDecimal(t *testing.T) {
	assert.Equal(t, 0, Threshold(0.1).Cmp(big.NewRat(1, 10)))
	assert.Equal(t, 0, Threshold(-10).Cmp(big.NewRat(-10, 1)))

	v := NewFraction(metric.Line, big.NewRat(1, 10))
	assert.False(t, IsBelowThreshold(v, 10))
}

func TestFractionValueScaling(t *testing.T) {
	coverageDelta := NewFraction(metric.Branch, big.NewRat(-1, 10))
	assert.Equal(t, 0, coverageDelta.Comparable().Cmp(big.NewRat(-10, 1)))
	assert.False(t, IsBelowThreshold(coverageDelta, -10))
	assert.True(t, IsBelowThreshold(coverageDelta, -9.99))

	locDelta := NewFraction(metric.LOC, big.NewRat(-5, 1))
	assert.Equal(t, 0, locDelta.Comparable().Cmp(big.NewRat(-5, 1)))
}

func TestFractionValueCopiesInput(t *testing.T) {
	f := big.NewRat(1, 2)
	v := NewFraction(metric.Line, f)
	f.SetInt64(7)

	assert.Equal(t, 0, v.Fraction.Cmp(big.NewRat(1, 2)))
}

func TestIntegerValue(t *testing.T) {
	v := NewInteger(metric.Complexity, 42)

	assert.Equal(t, metric.Complexity, v.Metric())
	assert.True(t, IsBelowThreshold(v, 50))
	assert.False(t, IsBelowThreshold(v, 42))
}
