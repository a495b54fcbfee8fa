// Package view provides output formatting for maistat commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	// FormatTable prints aligned columns with a header row.
	FormatTable Format = "table"
	// FormatJSON prints machine-readable JSON.
	FormatJSON Format = "json"
	// FormatPlain prints tab-separated rows without headers.
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted output format names.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat checks that format names a supported output format.
// The empty string selects the default and is accepted.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	for _, f := range ValidFormats() {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", format, strings.Join(ValidFormats(), ", "))
}

// Renderer renders data in a specific format.
type Renderer struct {
	format Format
	writer io.Writer
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{format: format, writer: os.Stdout}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderTable renders data as a table with columns padded to equal width.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.tableJSON(headers, rows)
	case FormatPlain:
		r.tablePlain(rows)
	default:
		r.tablePadded(headers, rows)
	}
}

func (r *Renderer) tablePadded(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	printRow := func(cells []string) {
		for i, val := range cells {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			if i < len(cells)-1 && i < len(widths) {
				fmt.Fprintf(r.writer, "%-*s", widths[i], val)
			} else {
				fmt.Fprint(r.writer, val)
			}
		}
		fmt.Fprintln(r.writer)
	}

	printRow(headers)
	for _, row := range rows {
		printRow(row)
	}
}

func (r *Renderer) tableJSON(headers []string, rows [][]string) {
	var records []map[string]string
	for _, row := range rows {
		rec := make(map[string]string, len(headers))
		for i, val := range row {
			if i < len(headers) {
				rec[strings.ToLower(headers[i])] = val
			}
		}
		records = append(records, rec)
	}
	r.RenderJSON(records)
}

func (r *Renderer) tablePlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderJSON renders an object as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		fmt.Fprintf(r.writer, `{"%s": "%s"}`+"\n", key, value)
		return
	}
	color.New(color.Bold).Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	r.status(color.FgGreen, "✓", msg)
}

// Warning prints a warning message.
func (r *Renderer) Warning(msg string) {
	r.status(color.FgYellow, "!", msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	r.status(color.FgRed, "✗", msg)
}

func (r *Renderer) status(attr color.Attribute, mark, msg string) {
	color.New(attr).Fprintln(r.writer, mark+" "+msg)
}

// Truncate truncates a string to at most maxLen bytes, appending an
// ellipsis when there is room for one.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	if cut < 1 {
		return s[:maxLen]
	}
	return s[:cut] + "..."
}
