package cli

import "fmt"

// FileStat describes one file of an index directory.
type FileStat struct {
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
	Length int    `json:"length" yaml:"length"`
	Size   string `json:"size,omitempty" yaml:"size,omitempty"`
}

// NewFileStat describes an existing file of length bytes.
func NewFileStat(path string, length int) FileStat {
	return FileStat{
		Path:   path,
		Exists: true,
		Length: length,
		Size:   FormatBytes(int64(length)),
	}
}

// MissingFile describes a path with no file behind it.
func MissingFile(path string) FileStat {
	return FileStat{Path: path}
}

// String is the raw rendering: the path, a tab, then the size or
// "missing".
func (s FileStat) String() string {
	if !s.Exists {
		return s.Path + "\tmissing"
	}
	return s.Path + "\t" + s.Size
}

// FormatBytes renders a byte count with a binary unit. Counts below 1 KB
// are exact.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
