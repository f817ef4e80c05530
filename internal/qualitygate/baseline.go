package qualitygate

import (
	"fmt"
	"strings"
)

// Baseline selects which statistic of a build a quality gate reads.
type Baseline int

const (
	Project Baseline = iota
	ProjectDelta
	ModifiedLines
	ModifiedLinesDelta
	ModifiedFiles
	ModifiedFilesDelta
	Indirect
)

type baselineDescriptor struct {
	name  string
	label string
}

var baselines = map[Baseline]baselineDescriptor{
	Project:            {"PROJECT", "Overall project"},
	ProjectDelta:       {"PROJECT_DELTA", "Overall project (difference to reference job)"},
	ModifiedLines:      {"MODIFIED_LINES", "Modified code lines"},
	ModifiedLinesDelta: {"MODIFIED_LINES_DELTA", "Modified code lines (difference to overall project)"},
	ModifiedFiles:      {"MODIFIED_FILES", "Modified files"},
	ModifiedFilesDelta: {"MODIFIED_FILES_DELTA", "Modified files (difference to overall project)"},
	Indirect:           {"INDIRECT", "Indirect changes"},
}

// legacyBaselines maps the names of the older change-coverage configuration
// onto the current baselines.
var legacyBaselines = map[string]Baseline{
	"CHANGE":       ModifiedLines,
	"CHANGE_DELTA": ModifiedLinesDelta,
	"FILE":         ModifiedFiles,
	"FILE_DELTA":   ModifiedFilesDelta,
}

// Baselines returns all baselines in declaration order.
func Baselines() []Baseline {
	return []Baseline{Project, ProjectDelta, ModifiedLines, ModifiedLinesDelta, ModifiedFiles, ModifiedFilesDelta, Indirect}
}

// Name returns the canonical identifier, e.g. "MODIFIED_LINES".
func (b Baseline) Name() string {
	if d, ok := baselines[b]; ok {
		return d.name
	}
	return fmt.Sprintf("Baseline(%d)", int(b))
}

// String returns the label used in quality gate messages.
func (b Baseline) String() string {
	if d, ok := baselines[b]; ok {
		return d.label
	}
	return b.Name()
}

// IsDelta reports whether the baseline reads a difference.
func (b Baseline) IsDelta() bool {
	return b == ProjectDelta || b == ModifiedLinesDelta || b == ModifiedFilesDelta
}

// ParseBaseline resolves current and legacy baseline names, ignoring case.
func ParseBaseline(name string) (Baseline, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "-", "_")
	for b, d := range baselines {
		if d.name == key {
			return b, nil
		}
	}
	if b, ok := legacyBaselines[key]; ok {
		return b, nil
	}
	return Project, fmt.Errorf("unknown quality gate baseline %q", name)
}

func (b Baseline) MarshalText() ([]byte, error) {
	return []byte(b.Name()), nil
}

func (b *Baseline) UnmarshalText(text []byte) error {
	parsed, err := ParseBaseline(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
