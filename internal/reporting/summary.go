package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/formatter"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
)

// WriteSummary prints the values of every baseline that has any, followed by
// the quality gate verdicts.
func WriteSummary(w io.Writer, out *Output, f *formatter.Formatter) error {
	if f == nil {
		f = formatter.Default()
	}
	var sb strings.Builder

	sb.WriteString("Coverage summary\n")
	for _, b := range qualitygate.Baselines() {
		metrics := out.Statistics.Metrics(b)
		if len(metrics) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "  %s:\n", b)
		for _, m := range metrics {
			v, _ := out.Statistics.ValueFor(m, b)
			fmt.Fprintf(&sb, "    %-22s %s\n", m.String()+":", f.Value(v))
		}
	}

	for _, msg := range out.TreeLog.Errors() {
		fmt.Fprintf(&sb, "%s\n", msg)
	}

	sb.WriteString("Quality gates\n")
	for _, msg := range out.Result.Messages {
		fmt.Fprintf(&sb, "  %s\n", msg)
	}
	fmt.Fprintf(&sb, "Quality gate status: %s\n", out.Result.Overall.Name())

	_, err := io.WriteString(w, sb.String())
	return err
}
