package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filechange"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filereader"
)

// FromContents computes the hunks between two versions of a file given as
// lines.
func FromContents(name string, before, after []string) filechange.FileChange {
	fc := filechange.FileChange{FileName: name, OldFileName: name, EditType: filechange.Modified}
	switch {
	case len(before) == 0 && len(after) > 0:
		fc.EditType = filechange.Added
	case len(after) == 0 && len(before) > 0:
		fc.EditType = filechange.Deleted
	}

	matcher := difflib.NewMatcher(before, after)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			fc.Changes = append(fc.Changes, filechange.NewReplace(op.I1+1, op.I2, op.J1+1, op.J2))
		case 'i':
			fc.Changes = append(fc.Changes, filechange.NewInsert(op.I1, op.J1+1, op.J2))
		case 'd':
			fc.Changes = append(fc.Changes, filechange.NewDelete(op.I1+1, op.I2, op.J1))
		}
	}
	return fc
}

// CompareFiles reads two snapshots of a source file and computes the hunks
// between them. name is the path the change is recorded under.
func CompareFiles(name, beforePath, afterPath string) (filechange.FileChange, error) {
	before, err := filereader.ReadLinesInFile(beforePath)
	if err != nil {
		return filechange.FileChange{}, fmt.Errorf("reading previous version of %s: %w", name, err)
	}
	after, err := filereader.ReadLinesInFile(afterPath)
	if err != nil {
		return filechange.FileChange{}, fmt.Errorf("reading current version of %s: %w", name, err)
	}
	return FromContents(name, before, after), nil
}
