package golang

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/fzipp/gocyclo"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/language"
)

// GoProcessor implements the language.Processor interface for Go.
type GoProcessor struct{}

func init() {
	language.RegisterProcessor(NewGoProcessor())
}

// NewGoProcessor creates a new, stateless GoProcessor.
func NewGoProcessor() language.Processor {
	return &GoProcessor{}
}

func (p *GoProcessor) Name() string {
	return "Go"
}

// Detect checks if the file path has a .go extension.
func (p *GoProcessor) Detect(filePath string) bool {
	return strings.HasSuffix(strings.ToLower(filePath), ".go")
}

// CalculateCyclomaticComplexity parses src and runs gocyclo over the
// resulting syntax tree. Function names look like "(*T).m" for methods.
func (p *GoProcessor) CalculateCyclomaticComplexity(filePath string, src []byte) ([]language.MethodComplexity, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filePath, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}

	stats := gocyclo.AnalyzeASTFile(f, fset, nil)
	results := make([]language.MethodComplexity, 0, len(stats))
	for _, s := range stats {
		results = append(results, language.MethodComplexity{
			Name:       s.FuncName,
			Line:       s.Pos.Line,
			Complexity: s.Complexity,
		})
	}
	return results, nil
}
