package tree

import (
	"fmt"
	"math/big"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
)

var (
	coveredNode = coverage.New(1, 0)
	missedNode  = coverage.New(0, 1)
)

// Coverage folds the leaves of metric m over the subtree rooted at id.
//
// For container metrics a node of that kind also counts itself: as covered
// when at least one of its lines is covered, otherwise as missed.
func (t *Tree) Coverage(id NodeID, m metric.Metric) coverage.Coverage {
	if !m.IsCoverage() {
		panic(fmt.Sprintf("metric %s has no coverage, use Complexity or LOC", m.Name()))
	}
	n := t.node(id)
	total := coverage.NoCoverage
	for _, l := range n.leaves {
		if l.Metric == m {
			total = total.Add(l.Coverage)
		}
	}
	for _, c := range n.children {
		total = total.Add(t.Coverage(c, m))
	}
	if m.IsContainer() && n.metric == m {
		if t.Coverage(id, metric.Line).Covered > 0 {
			total = total.Add(coveredNode)
		} else {
			total = total.Add(missedNode)
		}
	}
	return total
}

// Complexity sums the cyclomatic complexity of all methods below id.
func (t *Tree) Complexity(id NodeID) int {
	n := t.node(id)
	total := 0
	if n.method != nil {
		total += n.method.Complexity
	}
	for _, c := range n.children {
		total += t.Complexity(c)
	}
	return total
}

// LOC is the number of lines with line coverage below id.
func (t *Tree) LOC(id NodeID) int {
	return t.Coverage(id, metric.Line).Total()
}

// Metrics returns the metrics present in the subtree rooted at id in display
// order: node kinds, leaf metrics, and the count metrics when non-zero.
func (t *Tree) Metrics(id NodeID) []metric.Metric {
	seen := map[metric.Metric]bool{}
	t.walk(id, func(nid NodeID) {
		n := &t.nodes[nid]
		seen[n.metric] = true
		for _, l := range n.leaves {
			seen[l.Metric] = true
		}
	})
	if t.Complexity(id) > 0 {
		seen[metric.Complexity] = true
	}
	if t.LOC(id) > 0 {
		seen[metric.LOC] = true
	}
	metrics := make([]metric.Metric, 0, len(seen))
	for m := range seen {
		metrics = append(metrics, m)
	}
	metric.Sort(metrics)
	return metrics
}

// MetricFractions returns the exact covered fraction of every coverage metric
// in the subtree that has at least one counted item.
func (t *Tree) MetricFractions(id NodeID) map[metric.Metric]*big.Rat {
	fractions := map[metric.Metric]*big.Rat{}
	for _, m := range t.Metrics(id) {
		if !m.IsCoverage() {
			continue
		}
		if pct, ok := coverage.Percentage(t.Coverage(id, m)); ok {
			fractions[m] = pct
		}
	}
	return fractions
}

// walk visits the subtree rooted at id in pre-order.
func (t *Tree) walk(id NodeID, visit func(NodeID)) {
	visit(id)
	for _, c := range t.node(id).children {
		t.walk(c, visit)
	}
}
