package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how commands render their results
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	// FormatFZF prints one tab-separated record per line with the full id
	// first, for piping into fzf and back into mboard
	FormatFZF Format = "fzf"
)

// Formatter writes command results in the selected format
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Format returns the configured format
func (f *Formatter) Format() Format {
	return f.format
}

// Structured reports whether output is machine-readable
func (f *Formatter) Structured() bool {
	return f.format == FormatJSON || f.format == FormatYAML
}

// Print encodes a board, column, task or history value. Text and fzf
// formats fall back to the value's default rendering.
func (f *Formatter) Print(data interface{}) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(data)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return err
		}
		return encoder.Close()
	case FormatText, FormatFZF:
		_, err := fmt.Fprintln(f.writer, data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", f.format)
	}
}

// Record writes one fzf line. Tabs and newlines inside fields are folded
// into spaces so every record stays on one line with a fixed field count.
func (f *Formatter) Record(fields ...string) error {
	cleaned := make([]string, len(fields))
	for i, field := range fields {
		cleaned[i] = strings.Join(strings.Fields(field), " ")
	}
	_, err := fmt.Fprintln(f.writer, strings.Join(cleaned, "\t"))
	return err
}

// ParseFormat converts a string to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "fzf":
		return FormatFZF, nil
	default:
		return FormatText, fmt.Errorf("invalid format '%s': must be one of: text, json, yaml, fzf", s)
	}
}
