package parser

import (
	"bytes"
	"encoding/json"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
)

// TreeParser reads coverage trees in the JSON layout the tool writes itself.
type TreeParser struct{}

func init() {
	RegisterParser(TreeParser{})
}

func (TreeParser) Name() string {
	return "CoverageTree"
}

// SupportsFile accepts files whose first non blank character opens a JSON
// object.
func (TreeParser) SupportsFile(fsys filesystem.Filesystem, filePath string) bool {
	head := bytes.TrimSpace(Head(fsys, filePath))
	return len(head) > 0 && head[0] == '{'
}

func (TreeParser) Parse(filePath string, cfg Config) (*tree.Tree, error) {
	data, err := cfg.FS.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	t := &tree.Tree{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, err
	}
	return t, nil
}
