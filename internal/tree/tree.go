package tree

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
)

// NodeID addresses a node inside the arena of a Tree.
type NodeID int

// None is the parent of root and detached nodes.
const None NodeID = -1

// Leaf is a coverage counter attached directly to a node.
type Leaf struct {
	Metric   metric.Metric     `json:"metric"`
	Coverage coverage.Coverage `json:"coverage"`
}

// FileData is the payload of FILE nodes.
type FileData struct {
	SourcePath      string
	CoveragePerLine map[int]coverage.Coverage
	ChangedLines    map[int]struct{}
	IndirectChanges map[int]int
	Delta           map[metric.Metric]*big.Rat
}

func newFileData(sourcePath string) *FileData {
	return &FileData{
		SourcePath:      sourcePath,
		CoveragePerLine: map[int]coverage.Coverage{},
		ChangedLines:    map[int]struct{}{},
		IndirectChanges: map[int]int{},
		Delta:           map[metric.Metric]*big.Rat{},
	}
}

func (f *FileData) clone() *FileData {
	c := newFileData(f.SourcePath)
	for line, cov := range f.CoveragePerLine {
		c.CoveragePerLine[line] = cov
	}
	for line := range f.ChangedLines {
		c.ChangedLines[line] = struct{}{}
	}
	for line, d := range f.IndirectChanges {
		c.IndirectChanges[line] = d
	}
	for m, d := range f.Delta {
		c.Delta[m] = new(big.Rat).Set(d)
	}
	return c
}

// SetLineCoverage records the coverage of a single source line.
func (f *FileData) SetLineCoverage(line int, c coverage.Coverage) {
	f.CoveragePerLine[line] = c
}

func (f *FileData) HasLineCoverage(line int) bool {
	_, ok := f.CoveragePerLine[line]
	return ok
}

func (f *FileData) AddChangedLine(line int) {
	f.ChangedLines[line] = struct{}{}
}

func (f *FileData) IsChanged(line int) bool {
	_, ok := f.ChangedLines[line]
	return ok
}

func (f *FileData) HasChangedLines() bool { return len(f.ChangedLines) > 0 }

// SortedChangedLines returns the changed lines in ascending order.
func (f *FileData) SortedChangedLines() []int {
	return sortedKeys(f.ChangedLines)
}

// ChangedLinesWithCoverage returns the changed lines that carry coverage data.
func (f *FileData) ChangedLinesWithCoverage() []int {
	var lines []int
	for _, line := range f.SortedChangedLines() {
		if f.HasLineCoverage(line) {
			lines = append(lines, line)
		}
	}
	return lines
}

// HasChangedCoverage reports whether a changed line carries coverage data.
func (f *FileData) HasChangedCoverage() bool {
	for line := range f.ChangedLines {
		if f.HasLineCoverage(line) {
			return true
		}
	}
	return false
}

func (f *FileData) AddIndirectChange(line, delta int) {
	f.IndirectChanges[line] = delta
}

func (f *FileData) HasIndirectChanges() bool { return len(f.IndirectChanges) > 0 }

// SortedIndirectLines returns the lines with indirect changes in ascending order.
func (f *FileData) SortedIndirectLines() []int {
	return sortedKeys(f.IndirectChanges)
}

func (f *FileData) SetDelta(m metric.Metric, d *big.Rat) {
	f.Delta[m] = new(big.Rat).Set(d)
}

func (f *FileData) DeltaFor(m metric.Metric) (*big.Rat, bool) {
	d, ok := f.Delta[m]
	return d, ok
}

// MethodData is the payload of METHOD nodes.
type MethodData struct {
	Line       int `json:"line,omitempty"`
	Complexity int `json:"complexity,omitempty"`
}

// HasValidLine reports whether the declaring line is known.
func (m *MethodData) HasValidLine() bool { return m.Line > 0 }

type node struct {
	metric   metric.Metric
	name     string
	parent   NodeID
	children []NodeID
	leaves   []Leaf
	file     *FileData
	method   *MethodData
}

// Tree is an arena of coverage nodes. Parent links are indices into the arena,
// children are owned by their parent. Removed nodes stay in the arena until the
// tree is copied.
type Tree struct {
	nodes []node
	root  NodeID
}

// New creates a tree with a single root node.
func New(m metric.Metric, name string) *Tree {
	t := &Tree{}
	t.root = t.NewNode(m, name)
	return t
}

func (t *Tree) Root() NodeID { return t.root }

// NewNode allocates a detached node. FILE and METHOD nodes get an empty payload.
func (t *Tree) NewNode(m metric.Metric, name string) NodeID {
	if !m.IsContainer() {
		panic(fmt.Sprintf("metric %s cannot be used as node kind", m.Name()))
	}
	n := node{metric: m, name: name, parent: None}
	switch m {
	case metric.File:
		n.file = newFileData("")
	case metric.Method:
		n.method = &MethodData{}
	}
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// NewFile allocates a detached FILE node.
func (t *Tree) NewFile(name, sourcePath string) NodeID {
	id := t.NewNode(metric.File, name)
	t.nodes[id].file.SourcePath = sourcePath
	return id
}

// NewMethod allocates a detached METHOD node declared at line.
func (t *Tree) NewMethod(name string, line int) NodeID {
	id := t.NewNode(metric.Method, name)
	t.nodes[id].method.Line = line
	return id
}

func (t *Tree) node(id NodeID) *node {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("node %d does not exist", id))
	}
	return &t.nodes[id]
}

// AddChild attaches child below parent. A node has at most one parent, and
// attaching the root or an ancestor of parent is rejected.
func (t *Tree) AddChild(parent, child NodeID) {
	p, c := t.node(parent), t.node(child)
	if child == t.root {
		panic("the root node cannot become a child")
	}
	if c.parent != None {
		panic(fmt.Sprintf("node '%s' already has parent '%s'", c.name, t.nodes[c.parent].name))
	}
	for anc := parent; anc != None; anc = t.nodes[anc].parent {
		if anc == child {
			panic(fmt.Sprintf("attaching '%s' below '%s' would create a cycle", c.name, p.name))
		}
	}
	c.parent = parent
	p.children = append(p.children, child)
}

// AddChildren attaches all children below parent in order.
func (t *Tree) AddChildren(parent NodeID, children ...NodeID) {
	for _, c := range children {
		t.AddChild(parent, c)
	}
}

// AddLeaf attaches a coverage counter. Only leaf metrics are accepted.
func (t *Tree) AddLeaf(id NodeID, leaf Leaf) {
	if !leaf.Metric.IsLeaf() {
		panic(fmt.Sprintf("metric %s is not a leaf metric", leaf.Metric.Name()))
	}
	n := t.node(id)
	n.leaves = append(n.leaves, leaf)
}

// AddCoverage is a shorthand for AddLeaf.
func (t *Tree) AddCoverage(id NodeID, m metric.Metric, c coverage.Coverage) {
	t.AddLeaf(id, Leaf{Metric: m, Coverage: c})
}

func (t *Tree) Metric(id NodeID) metric.Metric { return t.node(id).metric }

func (t *Tree) Name(id NodeID) string { return t.node(id).name }

// Parent returns the parent of id, or false for the root and detached nodes.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.node(id).parent
	return p, p != None
}

func (t *Tree) Children(id NodeID) []NodeID {
	return append([]NodeID(nil), t.node(id).children...)
}

func (t *Tree) HasChildren(id NodeID) bool { return len(t.node(id).children) > 0 }

func (t *Tree) Leaves(id NodeID) []Leaf {
	return append([]Leaf(nil), t.node(id).leaves...)
}

func (t *Tree) IsFile(id NodeID) bool { return t.node(id).file != nil }

// File returns the payload of a FILE node.
func (t *Tree) File(id NodeID) *FileData {
	n := t.node(id)
	if n.file == nil {
		panic(fmt.Sprintf("node '%s' is a %s, not a file", n.name, n.metric))
	}
	return n.file
}

// Method returns the payload of a METHOD node.
func (t *Tree) Method(id NodeID) *MethodData {
	n := t.node(id)
	if n.method == nil {
		panic(fmt.Sprintf("node '%s' is a %s, not a method", n.name, n.metric))
	}
	return n.method
}

// Size counts the nodes reachable from id, id included.
func (t *Tree) Size(id NodeID) int {
	size := 1
	for _, c := range t.node(id).children {
		size += t.Size(c)
	}
	return size
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
