package tree

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
)

type nodeJSON struct {
	Metric   metric.Metric `json:"metric"`
	Name     string        `json:"name"`
	Leaves   []Leaf        `json:"leaves,omitempty"`
	File     *fileJSON     `json:"file,omitempty"`
	Method   *MethodData   `json:"method,omitempty"`
	Children []nodeJSON    `json:"children,omitempty"`
}

type fileJSON struct {
	SourcePath      string                     `json:"sourcePath,omitempty"`
	CoveragePerLine map[int]coverage.Coverage  `json:"coveragePerLine,omitempty"`
	ChangedLines    []int                      `json:"changedLines,omitempty"`
	IndirectChanges map[int]int                `json:"indirectChanges,omitempty"`
	Delta           map[metric.Metric]*big.Rat `json:"delta,omitempty"`
}

// MarshalJSON encodes the nodes reachable from the root as nested objects.
// Fractions are written as exact "numerator/denominator" strings.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.toJSON(t.root))
}

func (t *Tree) toJSON(id NodeID) nodeJSON {
	n := &t.nodes[id]
	out := nodeJSON{
		Metric: n.metric,
		Name:   n.name,
		Leaves: n.leaves,
		Method: n.method,
	}
	if n.file != nil {
		out.File = &fileJSON{
			SourcePath:      n.file.SourcePath,
			CoveragePerLine: n.file.CoveragePerLine,
			ChangedLines:    n.file.SortedChangedLines(),
			IndirectChanges: n.file.IndirectChanges,
			Delta:           n.file.Delta,
		}
	}
	for _, c := range n.children {
		out.Children = append(out.Children, t.toJSON(c))
	}
	return out
}

// UnmarshalJSON replaces the receiver with the decoded tree.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var root nodeJSON
	if err := json.Unmarshal(data, &root); err != nil {
		return fmt.Errorf("failed to decode coverage tree: %w", err)
	}
	decoded := &Tree{}
	id, err := decoded.fromJSON(root)
	if err != nil {
		return err
	}
	decoded.root = id
	*t = *decoded
	return nil
}

func (t *Tree) fromJSON(in nodeJSON) (NodeID, error) {
	if !in.Metric.IsContainer() {
		return None, fmt.Errorf("node '%s' has invalid kind %s", in.Name, in.Metric.Name())
	}
	id := t.NewNode(in.Metric, in.Name)
	for _, l := range in.Leaves {
		if !l.Metric.IsLeaf() {
			return None, fmt.Errorf("node '%s' has invalid leaf metric %s", in.Name, l.Metric.Name())
		}
		t.AddLeaf(id, l)
	}
	if in.File != nil {
		if in.Metric != metric.File {
			return None, fmt.Errorf("node '%s' of kind %s carries file data", in.Name, in.Metric.Name())
		}
		f := t.nodes[id].file
		f.SourcePath = in.File.SourcePath
		for line, c := range in.File.CoveragePerLine {
			f.SetLineCoverage(line, c)
		}
		for _, line := range in.File.ChangedLines {
			f.AddChangedLine(line)
		}
		for line, d := range in.File.IndirectChanges {
			f.AddIndirectChange(line, d)
		}
		for m, d := range in.File.Delta {
			if d == nil {
				return None, fmt.Errorf("file '%s' has an empty %s delta", in.Name, m.Name())
			}
			f.SetDelta(m, d)
		}
	}
	if in.Method != nil {
		if in.Metric != metric.Method {
			return None, fmt.Errorf("node '%s' of kind %s carries method data", in.Name, in.Metric.Name())
		}
		*t.nodes[id].method = *in.Method
	}
	for _, c := range in.Children {
		child, err := t.fromJSON(c)
		if err != nil {
			return None, err
		}
		t.AddChild(id, child)
	}
	return id, nil
}
