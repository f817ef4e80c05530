package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/filesystem"
	"github.com/IgorBayerl/ReportGenerator/go_coverage_gate/internal/reportconfig"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with the default settings",
		Long: `Write a configuration file with the default settings. Without a path the
template is printed to standard output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			if err := reportconfig.WriteDefault(&buf); err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}

			fsys := filesystem.DefaultFS{}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := fsys.Stat(args[0]); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite it", args[0])
			}
			if err := fsys.WriteFile(args[0], buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
	return cmd
}
