// Package maidata parses the maidata.txt song container format: &key=value
// metadata directives and multi-line inote_N note-data blocks terminated by
// an E sentinel. Parsing is lenient; no input is ever rejected.
package maidata

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Chart is one difficulty's worth of a song: its number (the N of the
// lv_N/des_N/inote_N directives), level label, charter description, and raw
// note-data lines. The note data is kept verbatim for the notation engine.
type Chart struct {
	Number      int      `json:"chart_number"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
	NoteData    []string `json:"note_data"`
}

// File is one parsed maidata.txt: the metadata directives and the charts
// assembled from the numbered directive families.
type File struct {
	Metadata map[string]string `json:"metadata"`
	Charts   []Chart           `json:"charts"`
}

// Parse reads a maidata container from r. Directives are &key=value lines;
// an &inote_N= directive opens note-data collection that runs until a lone
// E line, the next directive, or EOF. Lines are trimmed and empty lines
// skipped; unrecognized text outside a note block is ignored. The only
// error is a read failure.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart data: %w", err)
	}

	f := &File{Metadata: make(map[string]string)}
	noteData := make(map[string][]string)

	var openBlock string // inote_ suffix of the block being collected
	var buffer []string

	flush := func() {
		if openBlock != "" {
			noteData[openBlock] = buffer
		}
		openBlock = ""
		buffer = nil
	}

	text := strings.TrimPrefix(string(data), "\uFEFF")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "&"):
			flush()
			key, value, _ := strings.Cut(line[1:], "=")
			if suffix, ok := strings.CutPrefix(key, "inote_"); ok {
				// Text after = on the directive line is not collected.
				openBlock = suffix
			} else {
				f.Metadata[key] = strings.TrimSpace(value)
			}
		case line == "E":
			// Closes an open note block; stray sentinels are skipped.
			flush()
		case openBlock != "":
			buffer = append(buffer, line)
		}
	}
	flush()

	f.Charts = assembleCharts(f.Metadata, noteData)
	return f, nil
}

// ParseFile parses the maidata container at path.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chart file: %w", err)
	}
	defer fh.Close()

	return Parse(fh)
}

// assembleCharts builds one Chart per number appearing as a lv_, des_, or
// inote_ suffix, sorted by number. Missing pieces stay empty.
func assembleCharts(metadata map[string]string, noteData map[string][]string) []Chart {
	numbers := make(map[int]bool)
	for key := range metadata {
		prefix, suffix, ok := strings.Cut(key, "_")
		if !ok || (prefix != "lv" && prefix != "des") {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil {
			numbers[n] = true
		}
	}
	for suffix := range noteData {
		if n, err := strconv.Atoi(suffix); err == nil {
			numbers[n] = true
		}
	}

	charts := make([]Chart, 0, len(numbers))
	for n := range numbers {
		charts = append(charts, Chart{
			Number:      n,
			Level:       metadata["lv_"+strconv.Itoa(n)],
			Description: metadata["des_"+strconv.Itoa(n)],
			NoteData:    noteData[strconv.Itoa(n)],
		})
	}
	sort.Slice(charts, func(i, j int) bool { return charts[i].Number < charts[j].Number })
	return charts
}

// Title returns the song title directive, or "" when absent.
func (f *File) Title() string {
	return f.Metadata["title"]
}

// WholeBPM returns the wholebpm directive parsed as a number. The second
// return value is false when the directive is absent or not numeric.
func (f *File) WholeBPM() (float64, bool) {
	raw, ok := f.Metadata["wholebpm"]
	if !ok {
		return 0, false
	}
	bpm, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return bpm, true
}

// Chart returns the chart with the given number.
func (f *File) Chart(number int) (Chart, bool) {
	for _, c := range f.Charts {
		if c.Number == number {
			return c, true
		}
	}
	return Chart{}, false
}

// Warnings reports quality problems that do not prevent parsing: missing
// title or des directives and charts without note data.
func (f *File) Warnings() []string {
	var warnings []string
	for _, field := range []string{"title", "des"} {
		if _, ok := f.Metadata[field]; !ok {
			warnings = append(warnings, fmt.Sprintf("missing required field: %s", field))
		}
	}
	for _, c := range f.Charts {
		if len(c.NoteData) == 0 {
			warnings = append(warnings, fmt.Sprintf("chart %d has no note data", c.Number))
		}
	}
	return warnings
}
