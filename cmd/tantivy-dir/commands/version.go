package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theduke/tantivy/cmd/tantivy-dir/internal/build"
	"github.com/theduke/tantivy/pkg/cli"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatOutput != "" {
			format, err := cli.ParseFormat(formatOutput)
			if err != nil {
				return err
			}
			return cli.NewPrinter(cmd.OutOrStdout(), format).Print(build.Get())
		}
		fmt.Fprintln(cmd.OutOrStdout(), build.String())
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "  config: %s\n", globalConfig.Path())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
