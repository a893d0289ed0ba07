package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theduke/tantivy/cmd/tantivy-dir/internal/config"
	"github.com/theduke/tantivy/pkg/cli"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or edit the configuration file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := printer(cmd)
		if err != nil {
			return err
		}
		return p.Print(globalConfig)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), globalConfig.Path())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value and save the file.\n\nKeys: root, watch_interval, log_level, output",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := globalConfig.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := globalConfig.Save(); err != nil {
			return err
		}
		// The saved output key may be what is being fixed, so ignore it here.
		cli.NewPrinter(cmd.OutOrStdout(), cli.FormatYAML).Success("%s = %s", args[0], args[1])
		return nil
	},
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return config.Keys(), cobra.ShellCompDirectiveNoFileComp
		}
		return nil, cobra.ShellCompDirectiveDefault
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)

	rootCmd.AddCommand(configCmd)
}
