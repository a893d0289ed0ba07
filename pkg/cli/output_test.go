package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatJSON).Print(NewFileStat("meta.json", 7)); err != nil {
		t.Fatalf("Print error: %v", err)
	}

	var got FileStat
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if got.Path != "meta.json" || got.Length != 7 || !got.Exists {
		t.Errorf("decoded = %+v", got)
	}
}

func TestPrinter_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := NewPrinter(&buf, FormatYAML).Print(MissingFile("meta.json")); err != nil {
		t.Fatalf("Print error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "path: meta.json") || !strings.Contains(out, "exists: false") {
		t.Errorf("unexpected YAML: %s", out)
	}
	if strings.Contains(out, "size:") {
		t.Errorf("missing file should omit size: %s", out)
	}
}

func TestPrinter_Raw(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"bytes", []byte(`{"v":1}`), `{"v":1}`},
		{"string", "text", "text"},
		{"stat", NewFileStat("seg.idx", 1536), "seg.idx\t1.50 KB\n"},
		{"missing", MissingFile("seg.idx"), "seg.idx\tmissing\n"},
		{"fallback", map[string]int{"n": 1}, "n: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewPrinter(&buf, FormatRaw).Print(tt.in); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("raw = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestPrinter_Unsupported(t *testing.T) {
	if err := NewPrinter(&bytes.Buffer{}, "xml").Print(1); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestPrinter_Success(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf, FormatYAML).Success("deleted %s", "seg.idx")
	if buf.String() != "✓ deleted seg.idx\n" {
		t.Errorf("Success = %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatYAML, false},
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{"raw", FormatRaw, false},
		{"table", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
