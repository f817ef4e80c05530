package formatter

import (
	"math/big"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/coverage"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/value"
)

// NotAvailable is printed for values that do not exist.
const NotAvailable = "n/a"

// Formatter renders statistics for console and log output using the number
// conventions of a locale.
type Formatter struct {
	printer *message.Printer
}

// New creates a formatter for the given locale.
func New(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Default formats with English conventions.
func Default() *Formatter {
	return New(language.English)
}

// Value renders a statistic: coverage as percentage, deltas with an explicit
// sign and counts as plain integers.
func (f *Formatter) Value(v value.Value) string {
	switch typed := v.(type) {
	case value.CoverageValue:
		return f.Coverage(typed.Coverage)
	case value.IntegerValue:
		return f.printer.Sprintf("%d", typed.Value)
	case value.FractionValue:
		if typed.Metric().IsCoverage() {
			return f.signed(typed.Comparable(), "%.2f%%")
		}
		return f.signedInt(typed.Fraction)
	default:
		return NotAvailable
	}
}

// Coverage renders the covered percentage, or n/a for unset values.
func (f *Formatter) Coverage(c coverage.Coverage) string {
	if !c.IsSet() {
		return NotAvailable
	}
	return f.Percentage(value.NewCoverage(0, c).Percentage())
}

// Percentage renders a value in [0, 100] with two decimals.
func (f *Formatter) Percentage(pct *big.Rat) string {
	v, _ := pct.Float64()
	return f.printer.Sprintf("%.2f%%", v)
}

// Threshold renders a quality gate threshold with two decimals.
func (f *Formatter) Threshold(threshold float64) string {
	return f.printer.Sprintf("%.2f", threshold)
}

func (f *Formatter) signed(r *big.Rat, format string) string {
	v, _ := new(big.Rat).Abs(r).Float64()
	return sign(r) + f.printer.Sprintf(format, v)
}

func (f *Formatter) signedInt(r *big.Rat) string {
	abs := new(big.Rat).Abs(r)
	n := new(big.Int).Quo(abs.Num(), abs.Denom())
	return sign(r) + f.printer.Sprintf("%d", n.Int64())
}

func sign(r *big.Rat) string {
	if r.Sign() < 0 {
		return "-"
	}
	return "+"
}
