package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/theduke/tantivy/pkg/cli"
)

var putCmd = &cobra.Command{
	Use:   "put <path> [source]",
	Short: "Create a new file from source (or stdin)",
	Long: `Create a new file in the index and fill it from source, or stdin when
source is omitted or "-". Fails if the file already exists.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPut,
}

var writeData string

var writeCmd = &cobra.Command{
	Use:   "write <path> [source]",
	Short: "Replace the whole content of a file",
	Long: `Replace the content of a file in a single write call, creating it if
needed. Content comes from --data, source, or stdin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVar(&writeData, "data", "", "literal content to write")

	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(writeCmd)
}

// openSource returns the reader for an optional source argument.
func openSource(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) < 2 || args[1] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[1])
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	return f, nil
}

func runPut(cmd *cobra.Command, args []string) error {
	p, err := printer(cmd)
	if err != nil {
		return err
	}
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	src, err := openSource(cmd, args)
	if err != nil {
		return err
	}
	defer src.Close()

	w, err := d.OpenWrite(args[0])
	if err != nil {
		return err
	}
	n, err := io.Copy(w, src)
	if err != nil {
		return fmt.Errorf("write %s: %w", args[0], errors.Join(err, w.Terminate()))
	}
	if err := w.Terminate(); err != nil {
		return fmt.Errorf("write %s: %w", args[0], err)
	}
	p.Success("wrote %s to %s", cli.FormatBytes(n), args[0])
	return nil
}

func runWrite(cmd *cobra.Command, args []string) error {
	p, err := printer(cmd)
	if err != nil {
		return err
	}
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	var data []byte
	if cmd.Flags().Changed("data") {
		data = []byte(writeData)
	} else {
		src, err := openSource(cmd, args)
		if err != nil {
			return err
		}
		defer src.Close()
		if data, err = io.ReadAll(src); err != nil {
			return fmt.Errorf("read source: %w", err)
		}
	}

	if err := d.AtomicWrite(args[0], data); err != nil {
		return err
	}
	p.Success("replaced %s (%s)", args[0], cli.FormatBytes(int64(len(data))))
	return nil
}
