package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/theduke/tantivy/cmd/tantivy-dir/internal/config"
	"github.com/theduke/tantivy/pkg/cli"
	"github.com/theduke/tantivy/pkg/directory"
	"github.com/theduke/tantivy/pkg/watch"
)

var (
	// Global flags
	rootDir      string
	cfgFile      string
	formatOutput string
	verbose      bool

	// Global configuration (loaded before each command)
	globalConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tantivy-dir",
	Short: "Inspect and edit an index directory",
	Long: `tantivy-dir - operate on an index directory through its storage layer.

Files are addressed by paths relative to the index root. Segment files are
write-once: 'put' refuses to overwrite. The metadata file (meta.json) is
replaced wholesale with 'write' and can be followed with 'watch'.

Configuration is read from the OS config directory:
  macOS:   ~/Library/Application Support/tantivy-dir/config.yaml
  Linux:   ~/.config/tantivy-dir/config.yaml

Examples:
  tantivy-dir -r ./index put seg_0001.idx < seg.bin
  tantivy-dir -r ./index cat seg_0001.idx --range 0:64 | xxd
  echo '{"v":2}' | tantivy-dir -r ./index write meta.json
  tantivy-dir -r ./index watch --count 1`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "index root directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/tantivy-dir/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&formatOutput, "output", "o", "", "output format: yaml, json, raw")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	globalConfig = cfg
	cli.SetupLogging(cmd.ErrOrStderr(), cli.ParseLevel(cfg.LogLevel), verbose)
	slog.Debug("config loaded", "path", cfg.Path())
	return nil
}

// outputFormat resolves --output against the config default.
func outputFormat() (cli.OutputFormat, error) {
	name := formatOutput
	if name == "" && globalConfig != nil {
		name = globalConfig.Output
	}
	return cli.ParseFormat(name)
}

// printer returns a Printer on the command's stdout in the selected format.
func printer(cmd *cobra.Command) (*cli.Printer, error) {
	format, err := outputFormat()
	if err != nil {
		return nil, err
	}
	return cli.NewPrinter(cmd.OutOrStdout(), format), nil
}

// openDirectory opens the index root selected by --root or the config.
func openDirectory() (*directory.FS, error) {
	root := rootDir
	if root == "" && globalConfig != nil {
		root = globalConfig.Root
	}
	if root == "" {
		return nil, errors.New("no index root: pass --root or set 'root' with 'tantivy-dir config set root <dir>'")
	}

	var wopts watch.Options
	if globalConfig != nil {
		interval, err := globalConfig.Interval()
		if err != nil {
			return nil, err
		}
		wopts.Interval = interval
	}
	d, err := directory.Open(root, directory.WithWatchOptions(wopts))
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	return d, nil
}
