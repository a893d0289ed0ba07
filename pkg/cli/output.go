package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat is the rendering of command results.
type OutputFormat string

const (
	// FormatYAML is the default.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON renders indented JSON.
	FormatJSON OutputFormat = "json"
	// FormatRaw writes file contents unchanged and one line per result.
	FormatRaw OutputFormat = "raw"
)

// ParseFormat validates a user supplied format name. Empty means YAML.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatYAML, FormatJSON, FormatRaw:
		return f, nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// Printer renders command results to W in Format.
type Printer struct {
	Format OutputFormat
	W      io.Writer
}

// NewPrinter returns a Printer writing to w, or to stdout if w is nil.
func NewPrinter(w io.Writer, format OutputFormat) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{Format: format, W: w}
}

// Print renders v.
//
// In raw format byte slices and strings are written as is, a
// fmt.Stringer is written as one line, and anything else falls back to
// YAML.
func (p *Printer) Print(v any) error {
	switch p.Format {
	case FormatJSON:
		enc := json.NewEncoder(p.W)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML, "":
		return p.yaml(v)
	case FormatRaw:
		switch v := v.(type) {
		case []byte:
			_, err := p.W.Write(v)
			return err
		case string:
			_, err := io.WriteString(p.W, v)
			return err
		case fmt.Stringer:
			_, err := fmt.Fprintln(p.W, v.String())
			return err
		}
		return p.yaml(v)
	default:
		return fmt.Errorf("unsupported output format: %s", p.Format)
	}
}

func (p *Printer) yaml(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = p.W.Write(data)
	return err
}

// Success prints a confirmation line.
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.W, "✓ "+format+"\n", args...)
}
