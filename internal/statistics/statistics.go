// Package statistics flattens the trees and deltas of a build into the values
// quality gates read.
package statistics

import (
	"math/big"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/value"
)

// Input collects everything a statistics view is built from. Nil trees and
// nil delta maps stand for missing data.
type Input struct {
	Project            *tree.Tree
	ModifiedLines      *tree.Tree
	ModifiedFiles      *tree.Tree
	IndirectChanges    *tree.Tree
	ProjectDelta       map[metric.Metric]*big.Rat
	ModifiedLinesDelta map[metric.Metric]*big.Rat
	ModifiedFilesDelta map[metric.Metric]*big.Rat
}

// Statistics maps (metric, baseline) pairs to values.
type Statistics struct {
	values map[qualitygate.Baseline]map[metric.Metric]value.Value
}

// New computes all values eagerly. Coverage metrics without counted items and
// zero counts are left out.
func New(in Input) *Statistics {
	s := &Statistics{values: map[qualitygate.Baseline]map[metric.Metric]value.Value{}}
	s.values[qualitygate.Project] = treeValues(in.Project)
	s.values[qualitygate.ModifiedLines] = treeValues(in.ModifiedLines)
	s.values[qualitygate.ModifiedFiles] = treeValues(in.ModifiedFiles)
	s.values[qualitygate.Indirect] = treeValues(in.IndirectChanges)
	s.values[qualitygate.ProjectDelta] = deltaValues(in.ProjectDelta)
	s.values[qualitygate.ModifiedLinesDelta] = deltaValues(in.ModifiedLinesDelta)
	s.values[qualitygate.ModifiedFilesDelta] = deltaValues(in.ModifiedFilesDelta)
	return s
}

// ValueFor implements qualitygate.Statistics.
func (s *Statistics) ValueFor(m metric.Metric, b qualitygate.Baseline) (value.Value, bool) {
	v, ok := s.values[b][m]
	return v, ok
}

// Metrics returns the metrics with a value for the baseline in display order.
func (s *Statistics) Metrics(b qualitygate.Baseline) []metric.Metric {
	metrics := make([]metric.Metric, 0, len(s.values[b]))
	for m := range s.values[b] {
		metrics = append(metrics, m)
	}
	metric.Sort(metrics)
	return metrics
}

func treeValues(t *tree.Tree) map[metric.Metric]value.Value {
	values := map[metric.Metric]value.Value{}
	if t == nil {
		return values
	}
	root := t.Root()
	for _, m := range t.Metrics(root) {
		switch m {
		case metric.Complexity:
			if c := t.Complexity(root); c > 0 {
				values[m] = value.NewInteger(m, c)
			}
		case metric.LOC:
			if loc := t.LOC(root); loc > 0 {
				values[m] = value.NewInteger(m, loc)
			}
		default:
			if c := t.Coverage(root, m); c.IsSet() {
				values[m] = value.NewCoverage(m, c)
			}
		}
	}
	return values
}

func deltaValues(deltas map[metric.Metric]*big.Rat) map[metric.Metric]value.Value {
	values := map[metric.Metric]value.Value{}
	for m, d := range deltas {
		if d != nil {
			values[m] = value.NewFraction(m, d)
		}
	}
	return values
}
