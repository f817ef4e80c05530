package filechange

import (
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/delta"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// AttachChangedCodeLines marks the lines added by Insert and Replace hunks on
// the matching file nodes. Changes for unknown files are ignored.
func AttachChangedCodeLines(t *tree.Tree, changes map[string]FileChange) {
	files := t.FilesByPath(t.Root())
	for path, change := range slashKeys(changes) {
		id, ok := files[path]
		if !ok {
			continue
		}
		file := t.File(id)
		for _, line := range change.AddedLines() {
			file.AddChangedLine(line)
		}
	}
}

// AttachFileCoverageDeltas stores on every file the coverage delta against
// the matching file of the reference tree. Files are matched by path, renamed
// files through oldPaths (new path to old path).
func AttachFileCoverageDeltas(t, reference *tree.Tree, oldPaths map[string]string) {
	if reference == nil {
		return
	}
	referenceFiles := reference.FilesByPath(reference.Root())
	oldPaths = slashKeys(oldPaths)
	for _, id := range t.AllFiles(t.Root()) {
		refID, ok := referenceFile(t.Path(id), referenceFiles, oldPaths)
		if !ok {
			continue
		}
		file := t.File(id)
		for m, d := range delta.Compute(t, id, reference, refID) {
			if m.IsCoverage() {
				file.SetDelta(m, d)
			}
		}
	}
}

// AttachIndirectCoverageChanges records, for lines that were not edited, the
// difference of covered counts between the reference and the current build.
// Reference lines are moved to the current numbering with the hunks of the
// file; lines removed by the edit are skipped.
func AttachIndirectCoverageChanges(t, reference *tree.Tree, changes map[string]FileChange, oldPaths map[string]string) {
	if reference == nil {
		return
	}
	referenceFiles := reference.FilesByPath(reference.Root())
	changes, oldPaths = slashKeys(changes), slashKeys(oldPaths)
	for _, id := range t.AllFiles(t.Root()) {
		path := t.Path(id)
		refID, ok := referenceFile(path, referenceFiles, oldPaths)
		if !ok {
			continue
		}
		current, previous := t.File(id), reference.File(refID)
		if len(previous.CoveragePerLine) == 0 {
			continue
		}

		translation := NewLineTranslation(changesFor(path, changes, oldPaths).Changes)
		for oldLine, oldCoverage := range previous.CoveragePerLine {
			newLine, ok := translation.Translate(oldLine)
			if !ok || current.IsChanged(newLine) {
				continue
			}
			newCoverage, ok := current.CoveragePerLine[newLine]
			if !ok {
				continue
			}
			if d := newCoverage.Covered - oldCoverage.Covered; d != 0 {
				current.AddIndirectChange(newLine, d)
			}
		}
	}
}

func referenceFile(path string, referenceFiles map[string]tree.NodeID, oldPaths map[string]string) (tree.NodeID, bool) {
	if id, ok := referenceFiles[path]; ok {
		return id, true
	}
	if old, ok := oldPaths[path]; ok {
		id, found := referenceFiles[slashPath(old)]
		return id, found
	}
	return tree.None, false
}

func changesFor(path string, changes map[string]FileChange, oldPaths map[string]string) FileChange {
	if fc, ok := changes[path]; ok {
		return fc
	}
	if old, ok := oldPaths[path]; ok {
		if fc, ok := changes[slashPath(old)]; ok {
			return fc
		}
	}
	return FileChange{FileName: path}
}

// slashPath converts Windows separators so diff paths match tree paths on
// every platform.
func slashPath(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

func slashKeys[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[slashPath(k)] = v
	}
	return out
}
