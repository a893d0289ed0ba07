// Package cli provides common helpers for the tantivy command-line tools.
//
// This package includes:
//   - Output formatting (YAML, JSON, raw)
//   - Human readable sizes
//   - slog setup shared by all commands
//
// Example usage:
//
//	cli.SetupLogging(os.Stderr, slog.LevelInfo, verbose)
//	cli.NewPrinter(os.Stdout, cli.FormatJSON).Print(cli.NewFileStat("meta.json", 7))
package cli
