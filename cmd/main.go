package main

import (
	"os"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
