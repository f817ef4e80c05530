// Package delta computes exact differences between two coverage trees.
package delta

import (
	"math/big"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// Compute returns current minus reference for every metric of the current
// subtree that the reference subtree also provides. Coverage metrics are
// differences of covered fractions, Complexity and LOC differences of counts.
// A nil reference yields an empty map.
func Compute(current *tree.Tree, currentID tree.NodeID, reference *tree.Tree, referenceID tree.NodeID) map[metric.Metric]*big.Rat {
	deltas := map[metric.Metric]*big.Rat{}
	if current == nil || reference == nil {
		return deltas
	}

	currentFractions := current.MetricFractions(currentID)
	referenceFractions := reference.MetricFractions(referenceID)
	for m, value := range currentFractions {
		if ref, ok := referenceFractions[m]; ok {
			deltas[m] = new(big.Rat).Sub(value, ref)
		}
	}

	counts := []struct {
		metric metric.Metric
		value  func(*tree.Tree, tree.NodeID) int
	}{
		{metric.Complexity, (*tree.Tree).Complexity},
		{metric.LOC, (*tree.Tree).LOC},
	}
	for _, c := range counts {
		cur, ref := c.value(current, currentID), c.value(reference, referenceID)
		if cur > 0 && ref > 0 {
			deltas[c.metric] = big.NewRat(int64(cur-ref), 1)
		}
	}
	return deltas
}

// Project compares the roots of both trees.
func Project(current, reference *tree.Tree) map[metric.Metric]*big.Rat {
	if current == nil || reference == nil {
		return map[metric.Metric]*big.Rat{}
	}
	return Compute(current, current.Root(), reference, reference.Root())
}
