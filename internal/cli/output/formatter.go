package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTable, FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, plain, json or yaml)", s)
	}
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatPlain:
		return &TableFormatter{Plain: true}
	default:
		return &TableFormatter{}
	}
}
