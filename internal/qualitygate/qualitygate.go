// Package qualitygate checks the statistics of a build against configured
// thresholds and folds the verdicts into a single build status.
package qualitygate

import (
	"fmt"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/formatter"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/metric"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/value"
)

const noQualityGateMessage = "-> INACTIVE - No quality gate defined"

// QualityGate is a minimum a statistic of the build has to reach.
type QualityGate struct {
	Threshold   float64       `json:"threshold"`
	Metric      metric.Metric `json:"metric"`
	Baseline    Baseline      `json:"baseline"`
	Criticality Criticality   `json:"criticality"`
}

func New(threshold float64, m metric.Metric, b Baseline, c Criticality) QualityGate {
	return QualityGate{Threshold: threshold, Metric: m, Baseline: b, Criticality: c}
}

func (g QualityGate) String() string {
	return fmt.Sprintf("%s - %s", g.Baseline, g.Metric)
}

// Statistics provides the value of a metric for a baseline, or false when the
// build has no such value.
type Statistics interface {
	ValueFor(m metric.Metric, b Baseline) (value.Value, bool)
}

// Item is the verdict of a single quality gate.
type Item struct {
	Gate        QualityGate `json:"gate"`
	Status      Status      `json:"status"`
	ActualValue string      `json:"actualValue"`
}

// Result is the outcome of evaluating all quality gates of a build.
type Result struct {
	Overall  Status   `json:"overall"`
	Items    []Item   `json:"items,omitempty"`
	Messages []string `json:"messages,omitempty"`
}

// IsSuccessful is true when no gate failed, including when there are none.
func (r *Result) IsSuccessful() bool { return r.Overall.IsSuccessful() }

func (r *Result) IsInactive() bool { return r.Overall == Inactive }

// Evaluator runs quality gates. Labels and value formatting are configurable
// so that older gate configurations report with their own vocabulary.
type Evaluator struct {
	formatter     *formatter.Formatter
	baselineLabel func(Baseline) string
}

// Option customizes an Evaluator.
type Option func(*Evaluator)

// WithFormatter sets the formatter used for actual values and thresholds.
func WithFormatter(f *formatter.Formatter) Option {
	return func(e *Evaluator) { e.formatter = f }
}

// WithBaselineLabels replaces the baseline labels of the messages.
func WithBaselineLabels(label func(Baseline) string) Option {
	return func(e *Evaluator) { e.baselineLabel = label }
}

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{
		formatter:     formatter.Default(),
		baselineLabel: Baseline.String,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate checks the gates in the given order with the default evaluator.
func Evaluate(stats Statistics, gates []QualityGate) *Result {
	return NewEvaluator().Evaluate(stats, gates)
}

// Evaluate checks the gates in the given order. A gate without a value always
// fails. The overall status only ever gets worse.
func (e *Evaluator) Evaluate(stats Statistics, gates []QualityGate) *Result {
	if len(gates) == 0 {
		return &Result{Overall: Inactive, Messages: []string{noQualityGateMessage}}
	}

	result := &Result{Overall: Passed}
	for _, gate := range gates {
		status := Passed
		actual := formatter.NotAvailable
		v, ok := stats.ValueFor(gate.Metric, gate.Baseline)
		if ok {
			actual = e.formatter.Value(v)
			if value.IsBelowThreshold(v, gate.Threshold) {
				status = gate.Criticality.Status()
			}
		} else {
			status = gate.Criticality.Status()
		}

		result.Items = append(result.Items, Item{Gate: gate, Status: status, ActualValue: actual})
		result.Messages = append(result.Messages, fmt.Sprintf("-> [%s - %s]: «%s» - (Actual value: %s, Quality gate: %s)",
			e.baselineLabel(gate.Baseline), gate.Metric, status.Description(), actual, e.formatter.Threshold(gate.Threshold)))
		result.Overall = Worse(result.Overall, status)
	}
	return result
}
