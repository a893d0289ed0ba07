package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theduke/tantivy/pkg/cli"
	"github.com/theduke/tantivy/pkg/directory"
)

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show whether a file exists and its length",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

var existsCmd = &cobra.Command{
	Use:   "exists <path>",
	Short: "Print true or false",
	Args:  cobra.ExactArgs(1),
	RunE:  runExists,
}

var rmCmd = &cobra.Command{
	Use:     "rm <path>",
	Aliases: []string{"delete"},
	Short:   "Delete a file",
	Args:    cobra.ExactArgs(1),
	RunE:    runRm,
}

func init() {
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(existsCmd)
	rootCmd.AddCommand(rmCmd)
}

func statFile(d directory.Directory, path string) (cli.FileStat, error) {
	h, err := d.GetFileHandle(path)
	if errors.Is(err, directory.ErrFileDoesNotExist) {
		return cli.MissingFile(path), nil
	}
	if err != nil {
		return cli.FileStat{}, err
	}
	defer h.Close()
	return cli.NewFileStat(path, h.Len()), nil
}

func runStat(cmd *cobra.Command, args []string) error {
	p, err := printer(cmd)
	if err != nil {
		return err
	}
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	st, err := statFile(d, args[0])
	if err != nil {
		return err
	}
	return p.Print(st)
}

func runExists(cmd *cobra.Command, args []string) error {
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	ok, err := d.Exists(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ok)
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	p, err := printer(cmd)
	if err != nil {
		return err
	}
	d, err := openDirectory()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.Delete(args[0]); err != nil {
		return err
	}
	p.Success("deleted %s", args[0])
	return nil
}
