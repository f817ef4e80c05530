// Package treecreator derives the change-focused views of a decorated
// coverage tree.
package treecreator

import (
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// CreateModifiedLinesTree keeps the files with covered changed lines. The
// content of every kept file is replaced by LINE and BRANCH leaves that count
// the changed lines only.
func CreateModifiedLinesTree(t *tree.Tree) *tree.Tree {
	modified := t.Prune(t.Root(), func(id tree.NodeID) bool {
		return t.File(id).HasChangedCoverage()
	})
	for _, id := range modified.AllFiles(modified.Root()) {
		file := modified.File(id)
		line, branch := coverage.NoCoverage, coverage.NoCoverage
		for _, number := range file.ChangedLinesWithCoverage() {
			l, b := lineCoverage(file.CoveragePerLine[number])
			line, branch = line.Add(l), branch.Add(b)
		}
		replaceContent(modified, id, line, branch)
	}
	return modified
}

// CreateModifiedFilesTree keeps the files with covered changed lines together
// with their complete coverage.
func CreateModifiedFilesTree(t *tree.Tree) *tree.Tree {
	return t.Prune(t.Root(), func(id tree.NodeID) bool {
		return t.File(id).HasChangedCoverage()
	})
}

// CreateIndirectChangesTree keeps the files with indirect coverage changes.
// Every kept file only counts the lines whose coverage changed: a line with
// more covered items is counted as covered when it is now fully covered by
// the gain, a line with fewer covered items as missed when nothing is covered
// anymore. Branch-bearing lines add the changed number of branches.
func CreateIndirectChangesTree(t *tree.Tree) *tree.Tree {
	indirect := t.Prune(t.Root(), func(id tree.NodeID) bool {
		return t.File(id).HasIndirectChanges()
	})
	for _, id := range indirect.AllFiles(indirect.Root()) {
		file := indirect.File(id)
		line, branch := coverage.NoCoverage, coverage.NoCoverage
		for _, number := range file.SortedIndirectLines() {
			change := file.IndirectChanges[number]
			current := file.CoveragePerLine[number]
			switch {
			case change > 0:
				if change == current.Covered {
					line = line.Add(coverage.New(1, 0))
				}
				if current.Total() > 1 {
					branch = branch.Add(coverage.New(change, 0))
				}
			case change < 0:
				if current.Covered == 0 {
					line = line.Add(coverage.New(0, 1))
				}
				if current.Total() > 1 {
					branch = branch.Add(coverage.New(0, -change))
				}
			}
		}
		replaceContent(indirect, id, line, branch)
	}
	return indirect
}

// lineCoverage maps the coverage of one source line onto a single LINE item
// and, for branch-bearing lines, its branch counters.
func lineCoverage(c coverage.Coverage) (line, branch coverage.Coverage) {
	if c.Covered > 0 {
		line = coverage.New(1, 0)
	} else {
		line = coverage.New(0, 1)
	}
	if c.Total() > 1 {
		branch = c
	}
	return line, branch
}

func replaceContent(t *tree.Tree, id tree.NodeID, line, branch coverage.Coverage) {
	t.ClearContent(id)
	if line.IsSet() {
		t.AddCoverage(id, metric.Line, line)
	}
	if branch.IsSet() {
		t.AddCoverage(id, metric.Branch, branch)
	}
}
