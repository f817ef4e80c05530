package metric

import (
	"fmt"
	"sort"
	"strings"
)

// Metric identifies a dimension of a coverage tree. Container metrics name
// the kind of a node, leaf metrics name the kind of a leaf counter.
type Metric int

const (
	Module Metric = iota
	Package
	File
	Class
	Method
	Line
	Instruction
	Branch
	Mutation
	Complexity
	LOC
)

type descriptor struct {
	name    string
	label   string
	order   int
	leaf    bool
	counter bool
}

// order is kept explicit so reordering the constants never changes sorting.
var descriptors = map[Metric]descriptor{
	Module:      {name: "MODULE", label: "Module", order: 0},
	Package:     {name: "PACKAGE", label: "Package", order: 1},
	File:        {name: "FILE", label: "File", order: 2},
	Class:       {name: "CLASS", label: "Class", order: 3},
	Method:      {name: "METHOD", label: "Method", order: 4},
	Line:        {name: "LINE", label: "Line", order: 5, leaf: true},
	Branch:      {name: "BRANCH", label: "Branch", order: 6, leaf: true},
	Instruction: {name: "INSTRUCTION", label: "Instruction", order: 7, leaf: true},
	Mutation:    {name: "MUTATION", label: "Mutation", order: 8, leaf: true},
	Complexity:  {name: "COMPLEXITY", label: "Cyclomatic Complexity", order: 9, counter: true},
	LOC:         {name: "LOC", label: "Lines of Code", order: 10, counter: true},
}

// legacyNames maps names used by older configurations onto current metrics.
var legacyNames = map[string]Metric{
	"REPORT":        Module,
	"CONDITIONAL":   Branch,
	"LINES_OF_CODE": LOC,
}

// All returns every metric in display order.
func All() []Metric {
	all := make([]Metric, 0, len(descriptors))
	for m := range descriptors {
		all = append(all, m)
	}
	Sort(all)
	return all
}

func (m Metric) describe() descriptor {
	d, ok := descriptors[m]
	if !ok {
		panic(fmt.Sprintf("unknown metric %d", int(m)))
	}
	return d
}

// Name returns the canonical upper-case identifier, e.g. "LINE".
func (m Metric) Name() string { return m.describe().name }

// String returns the display label, e.g. "Line".
func (m Metric) String() string {
	if d, ok := descriptors[m]; ok {
		return d.label
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

func (m Metric) Order() int { return m.describe().order }

// IsLeaf reports whether the metric is carried by leaf counters.
func (m Metric) IsLeaf() bool { return m.describe().leaf }

// IsContainer reports whether the metric names a node kind.
func (m Metric) IsContainer() bool {
	d := m.describe()
	return !d.leaf && !d.counter
}

// IsCoverage reports whether values of the metric are covered/missed pairs.
// Complexity and LOC are plain counts.
func (m Metric) IsCoverage() bool { return !m.describe().counter }

// Compare orders metrics by their display order.
func Compare(a, b Metric) int {
	return a.Order() - b.Order()
}

func Sort(metrics []Metric) {
	sort.Slice(metrics, func(i, j int) bool { return Compare(metrics[i], metrics[j]) < 0 })
}

// Parse resolves a metric from its canonical name, its label or a legacy alias.
// Matching ignores case and treats '-' and ' ' like '_'.
func Parse(name string) (Metric, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for m, d := range descriptors {
		if key == d.name || key == strings.ToUpper(strings.ReplaceAll(d.label, " ", "_")) {
			return m, nil
		}
	}
	if m, ok := legacyNames[key]; ok {
		return m, nil
	}
	return 0, fmt.Errorf("unknown metric %q", name)
}

func (m Metric) MarshalText() ([]byte, error) {
	if _, ok := descriptors[m]; !ok {
		return nil, fmt.Errorf("unknown metric %d", int(m))
	}
	return []byte(m.Name()), nil
}

func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
