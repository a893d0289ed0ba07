package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/theduke/tantivy/pkg/directory"
)

var watchCount int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line each time meta.json changes",
	Long: `Subscribe to changes of the index metadata file and print one line per
notification. Runs until interrupted, or until --count notifications have
been printed.`,
	Args: cobra.NoArgs,
	RunE: runWatchCmd,
}

func init() {
	watchCmd.Flags().IntVarP(&watchCount, "count", "n", 0, "exit after n notifications (0 = forever)")

	rootCmd.AddCommand(watchCmd)
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return watchMeta(ctx, d, cmd.OutOrStdout(), watchCount)
}

// watchMeta prints a line per metadata change until ctx is done or count
// notifications have been seen. A count of zero means no limit.
func watchMeta(ctx context.Context, d directory.Directory, w io.Writer, count int) error {
	changes := make(chan struct{}, 1)
	h, err := d.Watch(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer h.Close()
	slog.Debug("watching", "path", directory.MetaFilepath)

	for seen := 0; count == 0 || seen < count; seen++ {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			fmt.Fprintf(w, "%s %s changed\n", time.Now().Format(time.RFC3339), directory.MetaFilepath)
		}
	}
	return nil
}
