package filechange

import (
	"fmt"
	"sort"
)

// EditType classifies a single hunk.
type EditType int

const (
	Insert EditType = iota
	Replace
	Delete
)

func (e EditType) String() string {
	switch e {
	case Insert:
		return "INSERT"
	case Replace:
		return "REPLACE"
	case Delete:
		return "DELETE"
	default:
		return fmt.Sprintf("EditType(%d)", int(e))
	}
}

// FileEditType classifies what happened to a file as a whole.
type FileEditType int

const (
	Added FileEditType = iota
	Modified
	Deleted
	Renamed
)

func (e FileEditType) String() string {
	switch e {
	case Added:
		return "ADD"
	case Modified:
		return "MODIFY"
	case Deleted:
		return "DELETE"
	case Renamed:
		return "RENAME"
	default:
		return fmt.Sprintf("FileEditType(%d)", int(e))
	}
}

// Change is a hunk with 1-based inclusive line ranges before and after the
// edit. For Insert the before range is the line after which the new lines
// appear, for Delete the after range is the line after which the removed
// lines used to be. Line 0 addresses the start of the file.
type Change struct {
	EditType       EditType
	FromLineBefore int
	ToLineBefore   int
	FromLineAfter  int
	ToLineAfter    int
}

// LinesBefore is the number of old lines consumed by the hunk.
func (c Change) LinesBefore() int {
	if c.EditType == Insert {
		return 0
	}
	return c.ToLineBefore - c.FromLineBefore + 1
}

// LinesAfter is the number of new lines produced by the hunk.
func (c Change) LinesAfter() int {
	if c.EditType == Delete {
		return 0
	}
	return c.ToLineAfter - c.FromLineAfter + 1
}

func (c Change) String() string {
	return fmt.Sprintf("%s(%d-%d -> %d-%d)", c.EditType, c.FromLineBefore, c.ToLineBefore, c.FromLineAfter, c.ToLineAfter)
}

// FileChange collects the hunks of a single file.
type FileChange struct {
	FileName    string
	OldFileName string
	EditType    FileEditType
	Changes     []Change
}

// ChangesByType returns the hunks of the given kind in input order.
func (fc FileChange) ChangesByType(t EditType) []Change {
	var changes []Change
	for _, c := range fc.Changes {
		if c.EditType == t {
			changes = append(changes, c)
		}
	}
	return changes
}

// AddedLines returns the new line numbers introduced by Insert and Replace
// hunks in ascending order.
func (fc FileChange) AddedLines() []int {
	seen := map[int]struct{}{}
	for _, c := range fc.Changes {
		if c.EditType == Delete {
			continue
		}
		for line := c.FromLineAfter; line <= c.ToLineAfter; line++ {
			seen[line] = struct{}{}
		}
	}
	lines := make([]int, 0, len(seen))
	for line := range seen {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

// LineTranslation maps line numbers of the old version of a file onto the
// new version.
type LineTranslation struct {
	hunks []Change
}

// NewLineTranslation orders the hunks by their position in the old file.
func NewLineTranslation(changes []Change) LineTranslation {
	hunks := append([]Change(nil), changes...)
	sort.SliceStable(hunks, func(i, j int) bool {
		return hunks[i].FromLineBefore < hunks[j].FromLineBefore
	})
	return LineTranslation{hunks: hunks}
}

// Translate returns the new line of old line, or false when the line was
// deleted or replaced.
func (lt LineTranslation) Translate(old int) (int, bool) {
	offset := 0
	for _, h := range lt.hunks {
		if h.EditType == Insert {
			if old <= h.FromLineBefore {
				return old + offset, true
			}
		} else {
			if old < h.FromLineBefore {
				return old + offset, true
			}
			if old <= h.ToLineBefore {
				return 0, false
			}
		}
		offset += h.LinesAfter() - h.LinesBefore()
	}
	return old + offset, true
}

// NewInsert records lines fromAfter..toAfter inserted after old line position.
func NewInsert(position, fromAfter, toAfter int) Change {
	return Change{EditType: Insert, FromLineBefore: position, ToLineBefore: position, FromLineAfter: fromAfter, ToLineAfter: toAfter}
}

// NewReplace records old lines fromBefore..toBefore replaced by new lines
// fromAfter..toAfter.
func NewReplace(fromBefore, toBefore, fromAfter, toAfter int) Change {
	return Change{EditType: Replace, FromLineBefore: fromBefore, ToLineBefore: toBefore, FromLineAfter: fromAfter, ToLineAfter: toAfter}
}

// NewDelete records old lines fromBefore..toBefore removed after new line
// position.
func NewDelete(fromBefore, toBefore, position int) Change {
	return Change{EditType: Delete, FromLineBefore: fromBefore, ToLineBefore: toBefore, FromLineAfter: position, ToLineAfter: position}
}
