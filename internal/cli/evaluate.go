package cli

import (
	"github.com/spf13/cobra"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/formatter"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/logging"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/qualitygate"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/reportconfig"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/reporting"
)

func newEvaluateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the quality gates of a build",
		Long: `Load the coverage tree of a build, compare it with the reference build and the
changes of the diff, and check the configured quality gates.

Exit codes:
  0 - all quality gates passed, or none are configured
  1 - a quality gate with criticality UNSTABLE was missed
  2 - a quality gate with criticality FAILURE was missed
  3 - the evaluation could not be run`,
		Args: cobra.NoArgs,
		RunE: runEvaluate,
	}

	flags := cmd.Flags()
	flags.StringP("tree", "t", "", "coverage tree of the build (JSON)")
	flags.StringP("reference", "r", "", "coverage tree of the reference build (JSON)")
	flags.StringP("diff", "d", "", "unified diff between the reference and the build")
	flags.String("history", "", "history database used to find and record reference builds")
	flags.String("job", "", "job name in the history database")
	flags.Int("build", 0, "build number in the history database")
	flags.StringSlice("source-dir", nil, "source directories used to compute complexity")
	flags.String("strip-prefix", "", "leading directory removed from the paths of the diff")
	flags.StringSlice("filter", nil, "file filters: +pattern includes, -pattern excludes")
	flags.StringP("verbosity", "v", "", "logging verbosity: Verbose, Info, Warning, Error, Off")
	flags.String("locale", "", "locale used to format numbers, e.g. en or de")
	flags.String("write-tree", "", "write the decorated coverage tree to this file")
	return cmd
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := reportconfig.Load(configPath, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.VerbosityLevel(), cmd.ErrOrStderr())
	fsys := filesystem.DefaultFS{}
	out, err := reporting.Evaluate(cmd.Context(), reporting.NewReportContext(cfg, logger, fsys))
	if err != nil {
		return err
	}

	if err := reporting.WriteSummary(cmd.OutOrStdout(), out, formatter.New(cfg.Language())); err != nil {
		return err
	}
	if path, _ := cmd.Flags().GetString("write-tree"); path != "" {
		if err := reporting.WriteTree(fsys, path, out.Project); err != nil {
			return err
		}
	}

	if out.Result.Overall == qualitygate.Warning || out.Result.Overall == qualitygate.Failed {
		return &StatusError{Status: out.Result.Overall}
	}
	return nil
}
