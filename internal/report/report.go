// Package report formats library scan results as Markdown and HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Choimoe/MaidataStatistic/internal/library"
	"github.com/Choimoe/MaidataStatistic/internal/util"
)

// mdParser is a pre-configured goldmark instance with GFM table extension.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Build renders scan results as a Markdown report: a summary line, one
// section per matched file, and a trailing section for unreadable files.
func Build(results []library.Result) string {
	var b strings.Builder
	b.WriteString("# Chart Library Report\n\n")

	matched := 0
	var failed []library.Result
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
			continue
		}
		if res.Matched {
			matched++
		}
	}
	fmt.Fprintf(&b, "Matched %d of %d chart files.\n", matched, len(results))

	for _, res := range results {
		if !res.Matched || res.File == nil {
			continue
		}
		title := res.File.Title()
		if title == "" {
			title = res.Path
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		fmt.Fprintf(&b, "`%s`\n", res.Path)
		if len(res.Details) > 0 {
			b.WriteString("\n| Detail | Value |\n| --- | --- |\n")
			for _, k := range util.SortedKeys(res.Details) {
				fmt.Fprintf(&b, "| %s | %s |\n", k, res.Details[k])
			}
		}
	}

	if len(failed) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, res := range failed {
			fmt.Fprintf(&b, "- `%s`: %v\n", res.Path, res.Err)
		}
	}
	return b.String()
}

// RenderHTML converts a Markdown report to an HTML fragment.
func RenderHTML(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	return buf.String(), nil
}
