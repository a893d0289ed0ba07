package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var catRange string

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print a file, or a byte range of it",
	Long: `Open a read handle on the file and print its bytes. With --range start:end
only the half-open range [start, end) is printed; either bound may be
omitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

var readCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Print a whole file read in one call",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func init() {
	catCmd.Flags().StringVar(&catRange, "range", "", "byte range start:end")

	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(readCmd)
}

// parseRange parses "start:end" against a file of the given length.
func parseRange(s string, length int) (start, end int, err error) {
	if s == "" {
		return 0, length, nil
	}
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid range %q: want start:end", s)
	}
	start, end = 0, length
	if lo != "" {
		if start, err = strconv.Atoi(lo); err != nil {
			return 0, 0, fmt.Errorf("invalid range start %q", lo)
		}
	}
	if hi != "" {
		if end, err = strconv.Atoi(hi); err != nil {
			return 0, 0, fmt.Errorf("invalid range end %q", hi)
		}
	}
	if start < 0 || end < start || end > length {
		return 0, 0, fmt.Errorf("range %d:%d outside file of %d bytes", start, end, length)
	}
	return start, end, nil
}

func runCat(cmd *cobra.Command, args []string) error {
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	h, err := d.GetFileHandle(args[0])
	if err != nil {
		return err
	}
	defer h.Close()

	start, end, err := parseRange(catRange, h.Len())
	if err != nil {
		return err
	}
	data, err := h.ReadBytes(start, end)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runRead(cmd *cobra.Command, args []string) error {
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	data, err := d.AtomicRead(args[0])
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
