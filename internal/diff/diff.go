// Package diff turns version control diffs into per-file change records.
package diff

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filechange"
)

// ChangeSet holds the changes of a diff keyed by the current path of each
// file, plus the previous path of every renamed file.
type ChangeSet struct {
	Files    map[string]filechange.FileChange
	OldPaths map[string]string
}

func newChangeSet() *ChangeSet {
	return &ChangeSet{
		Files:    map[string]filechange.FileChange{},
		OldPaths: map[string]string{},
	}
}

// Paths returns the changed paths in lexical order.
func (cs *ChangeSet) Paths() []string {
	paths := make([]string, 0, len(cs.Files))
	for p := range cs.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// StripPrefix removes a leading directory such as "src/main/java/" from all
// paths so they line up with the paths of the coverage tree. Paths without
// the prefix are kept unchanged.
func (cs *ChangeSet) StripPrefix(prefix string) *ChangeSet {
	prefix = strings.TrimSuffix(path.Clean(strings.ReplaceAll(prefix, "\\", "/")), "/") + "/"
	strip := func(p string) string {
		return strings.TrimPrefix(p, prefix)
	}
	stripped := newChangeSet()
	for p, fc := range cs.Files {
		fc.FileName = strip(fc.FileName)
		fc.OldFileName = strip(fc.OldFileName)
		stripped.Files[strip(p)] = fc
	}
	for newPath, oldPath := range cs.OldPaths {
		stripped.OldPaths[strip(newPath)] = strip(oldPath)
	}
	return stripped
}

// ParseUnified reads a git unified diff. Binary files are skipped.
func ParseUnified(raw string) (*ChangeSet, error) {
	files, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing diff: %w", err)
	}

	cs := newChangeSet()
	for _, f := range files {
		if f.IsBinary {
			continue
		}
		fc := filechange.FileChange{
			FileName:    f.NewName,
			OldFileName: f.OldName,
			EditType:    fileEditType(f),
		}
		if f.IsDelete {
			fc.FileName = f.OldName
		}
		for _, frag := range f.TextFragments {
			fc.Changes = append(fc.Changes, fragmentChanges(frag)...)
		}
		cs.Files[fc.FileName] = fc
		if f.IsRename {
			cs.OldPaths[f.NewName] = f.OldName
		}
	}
	return cs, nil
}

func fileEditType(f *gitdiff.File) filechange.FileEditType {
	switch {
	case f.IsNew:
		return filechange.Added
	case f.IsDelete:
		return filechange.Deleted
	case f.IsRename:
		return filechange.Renamed
	default:
		return filechange.Modified
	}
}

// fragmentChanges groups the runs of removed and added lines of a fragment
// into hunks.
func fragmentChanges(frag *gitdiff.TextFragment) []filechange.Change {
	oldLine, newLine := int(frag.OldPosition), int(frag.NewPosition)
	if frag.OldLines == 0 {
		oldLine++
	}
	if frag.NewLines == 0 {
		newLine++
	}

	var changes []filechange.Change
	var run hunkBuilder
	for _, line := range frag.Lines {
		switch line.Op {
		case gitdiff.OpDelete:
			run.remove(oldLine)
			oldLine++
		case gitdiff.OpAdd:
			run.add(newLine)
			newLine++
		default:
			changes = run.flush(changes, oldLine, newLine)
			oldLine++
			newLine++
		}
	}
	return run.flush(changes, oldLine, newLine)
}

type hunkBuilder struct {
	oldFrom, oldTo int
	newFrom, newTo int
}

func (h *hunkBuilder) remove(line int) {
	if h.oldFrom == 0 {
		h.oldFrom = line
	}
	h.oldTo = line
}

func (h *hunkBuilder) add(line int) {
	if h.newFrom == 0 {
		h.newFrom = line
	}
	h.newTo = line
}

// flush appends the pending hunk. oldNext and newNext are the next line
// numbers of both versions after the run.
func (h *hunkBuilder) flush(changes []filechange.Change, oldNext, newNext int) []filechange.Change {
	switch {
	case h.oldFrom != 0 && h.newFrom != 0:
		changes = append(changes, filechange.NewReplace(h.oldFrom, h.oldTo, h.newFrom, h.newTo))
	case h.newFrom != 0:
		changes = append(changes, filechange.NewInsert(oldNext-1, h.newFrom, h.newTo))
	case h.oldFrom != 0:
		changes = append(changes, filechange.NewDelete(h.oldFrom, h.oldTo, newNext-1))
	}
	*h = hunkBuilder{}
	return changes
}
