// Package language holds the per-language source analysis used to enrich a
// coverage tree, currently the cyclomatic complexity of methods.
package language

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/tree"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/utils"
)

// ErrNotSupported is returned by a Processor that cannot compute a metric
// for its language.
var ErrNotSupported = errors.New("feature not supported for this language")

// MethodComplexity is the complexity of one function declared in a source
// file.
type MethodComplexity struct {
	Name       string
	Line       int
	Complexity int
}

// Processor defines the contract for all language-specific logic.
type Processor interface {
	// Name returns the unique, human-readable name of the processor (e.g. "Go").
	Name() string

	// Detect checks if this processor should be used for a given source file path.
	Detect(filePath string) bool

	// CalculateCyclomaticComplexity analyzes the content of a file and returns
	// the metric for each function. Languages without support return
	// ErrNotSupported.
	CalculateCyclomaticComplexity(filePath string, src []byte) ([]MethodComplexity, error)
}

const defaultName = "Default"

var registeredProcessors []Processor

// RegisterProcessor adds a processor to the list of available processors.
// Implementations call it from their init function.
func RegisterProcessor(p Processor) {
	registeredProcessors = append(registeredProcessors, p)
}

// FindProcessorForFile returns the first registered processor that detects
// filePath, falling back to the "Default" processor.
func FindProcessorForFile(filePath string) Processor {
	var fallback Processor
	for _, p := range registeredProcessors {
		if p.Name() == defaultName {
			fallback = p
			continue
		}
		if p.Detect(filePath) {
			return p
		}
	}
	if fallback != nil {
		return fallback
	}
	panic("FATAL: Default language processor was not registered.")
}

// AttachComplexity resolves every file of t below sourceDirs and fills the
// complexity of its methods that have none yet. Methods are matched by
// declaration line first and by name second. It returns the number of
// methods that received a value. Files that cannot be found or analyzed
// are skipped with a warning.
func AttachComplexity(t *tree.Tree, fsys filesystem.Filesystem, sourceDirs []string, logger log.FieldLogger) int {
	attached := 0
	for _, file := range t.AllFiles(t.Root()) {
		methods := methodsWithoutComplexity(t, file)
		if len(methods) == 0 {
			continue
		}
		path := t.Path(file)
		p := FindProcessorForFile(path)
		if p.Name() == defaultName {
			continue
		}

		results, err := analyze(p, fsys, path, sourceDirs)
		if err != nil {
			logger.WithField("file", path).Warnf("Skipping complexity: %v", err)
			continue
		}
		for _, m := range methods {
			if c, ok := match(t.Name(m), t.Method(m), results); ok {
				t.Method(m).Complexity = c
				attached++
			}
		}
	}
	return attached
}

func methodsWithoutComplexity(t *tree.Tree, file tree.NodeID) []tree.NodeID {
	var methods []tree.NodeID
	for _, m := range t.All(file, metric.Method) {
		if t.Method(m).Complexity == 0 {
			methods = append(methods, m)
		}
	}
	return methods
}

func analyze(p Processor, fsys filesystem.Filesystem, path string, sourceDirs []string) ([]MethodComplexity, error) {
	resolved, err := utils.FindFileInSourceDirs(fsys, path, sourceDirs)
	if err != nil {
		return nil, err
	}
	src, err := fsys.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}
	return p.CalculateCyclomaticComplexity(resolved, src)
}

func match(name string, m *tree.MethodData, results []MethodComplexity) (int, bool) {
	if m.HasValidLine() {
		for _, r := range results {
			if r.Line == m.Line {
				return r.Complexity, true
			}
		}
	}
	for _, r := range results {
		if r.Name == name || strings.HasSuffix(r.Name, "."+name) {
			return r.Complexity, true
		}
	}
	return 0, false
}
