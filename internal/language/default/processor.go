package defaultprocessor

import (
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/language"
)

// DefaultProcessor is the fallback for languages that are not explicitly
// handled. It supports no metrics.
type DefaultProcessor struct{}

func init() {
	language.RegisterProcessor(NewDefaultProcessor())
}

func NewDefaultProcessor() language.Processor {
	return &DefaultProcessor{}
}

func (p *DefaultProcessor) Name() string {
	return "Default"
}

// Detect always returns false. FindProcessorForFile picks this processor
// only when nothing else matches.
func (p *DefaultProcessor) Detect(filePath string) bool {
	return false
}

func (p *DefaultProcessor) CalculateCyclomaticComplexity(string, []byte) ([]language.MethodComplexity, error) {
	return nil, language.ErrNotSupported
}
