// Package cli wires the coverage-gate commands.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
)

// Exit codes of the evaluate command. Warnings and failures of quality gates
// get their own codes so that CI systems can tell them apart.
const (
	ExitOK      = 0
	ExitWarning = 1
	ExitFailure = 2
	ExitError   = 3
)

// StatusError carries a quality gate verdict that should end the process
// with a non-zero code.
type StatusError struct {
	Status qualitygate.Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("quality gate status is %s", e.Status.Name())
}

// ExitCode maps the error returned by Execute onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch statusErr.Status {
		case qualitygate.Warning:
			return ExitWarning
		case qualitygate.Failed:
			return ExitFailure
		default:
			return ExitOK
		}
	}
	return ExitError
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "coverage-gate",
		Short: "Evaluate coverage quality gates for a build",
		Long: `coverage-gate compares the coverage tree of a build with a reference build,
focuses it on the lines changed by a diff and checks the configured quality gates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to the configuration file (default ./coverage-gate.yaml)")

	root.AddCommand(newEvaluateCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command line and returns the error that should decide the
// exit code, see ExitCode.
func Execute() error {
	root := newRootCmd()
	err := root.Execute()
	var statusErr *StatusError
	if err != nil && !errors.As(err, &statusErr) {
		root.PrintErrln("Error:", err)
	}
	return err
}
