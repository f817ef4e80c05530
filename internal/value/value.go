// Package value holds the typed statistics a quality gate is checked against.
package value

import (
	"math/big"
	"strconv"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
)

// Value is a single statistic of a metric.
type Value interface {
	Metric() metric.Metric
	// Comparable returns the number thresholds are compared with: a
	// percentage in [0, 100] for coverage, the raw number for counts.
	Comparable() *big.Rat
}

// IsBelowThreshold compares exactly. The threshold is taken in its shortest
// decimal form so that 60.0 never turns into 59.99999.
func IsBelowThreshold(v Value, threshold float64) bool {
	return v.Comparable().Cmp(Threshold(threshold)) < 0
}

// Threshold converts a configured threshold into an exact fraction.
func Threshold(threshold float64) *big.Rat {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(threshold, 'f', -1, 64))
	if !ok {
		return new(big.Rat).SetFloat64(threshold)
	}
	return r
}

var hundred = big.NewRat(100, 1)

// CoverageValue is the coverage of a coverage metric.
type CoverageValue struct {
	metric   metric.Metric
	Coverage coverage.Coverage
}

func NewCoverage(m metric.Metric, c coverage.Coverage) CoverageValue {
	return CoverageValue{metric: m, Coverage: c}
}

func (v CoverageValue) Metric() metric.Metric { return v.metric }

// Percentage returns the covered percentage in [0, 100].
func (v CoverageValue) Percentage() *big.Rat {
	return new(big.Rat).Mul(v.Coverage.CoveredPercentage(), hundred)
}

func (v CoverageValue) Comparable() *big.Rat { return v.Percentage() }

// IntegerValue is a count such as the cyclomatic complexity or LOC.
type IntegerValue struct {
	metric metric.Metric
	Value  int
}

func NewInteger(m metric.Metric, v int) IntegerValue {
	return IntegerValue{metric: m, Value: v}
}

func (v IntegerValue) Metric() metric.Metric { return v.metric }

func (v IntegerValue) Comparable() *big.Rat { return big.NewRat(int64(v.Value), 1) }

// FractionValue is a delta. For coverage metrics it is a difference of
// covered fractions, for count metrics a difference of counts.
type FractionValue struct {
	metric   metric.Metric
	Fraction *big.Rat
}

func NewFraction(m metric.Metric, f *big.Rat) FractionValue {
	return FractionValue{metric: m, Fraction: new(big.Rat).Set(f)}
}

func (v FractionValue) Metric() metric.Metric { return v.metric }

// Comparable scales coverage deltas to percentage points.
func (v FractionValue) Comparable() *big.Rat {
	if v.metric.IsCoverage() {
		return new(big.Rat).Mul(v.Fraction, hundred)
	}
	return new(big.Rat).Set(v.Fraction)
}
