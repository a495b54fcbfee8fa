// Package analyze provides the analyze command for pattern searches
// over chart files.
package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Choimoe/MaidataStatistic/api"
	"github.com/Choimoe/MaidataStatistic/internal/config"
	"github.com/Choimoe/MaidataStatistic/internal/library"
	"github.com/Choimoe/MaidataStatistic/internal/report"
	"github.com/Choimoe/MaidataStatistic/internal/util"
	"github.com/Choimoe/MaidataStatistic/internal/view"
	"github.com/Choimoe/MaidataStatistic/pkg/maidata"
	"github.com/Choimoe/MaidataStatistic/pkg/simai"
)

type analyzeOptions struct {
	path     string // Positional arg: chart file or library directory
	pattern  string // Comma-separated lane identities
	fileName string // Chart file name when scanning a directory
	level    string // Keep only songs with a chart at this level
	minBPM   float64
	report   string // Report file path
	server   string // Running serve instance to query instead

	configPath string
	output     string
	noColor    bool
}

// NewCmdAnalyze creates the analyze command.
func NewCmdAnalyze() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Find charts that play a lane pattern",
		Long: `Search chart files for a consecutive lane pattern.

The pattern is a comma-separated sequence of note identities (lane
digits or touch zones such as A1). A chart matches when some run of
consecutive time slots contains each identity in order; notes struck
alongside the pattern do not prevent a match.

With a directory (or the configured library root) every chart file in
the tree is scanned. With --server the search runs on a maistat serve
instance instead of the local filesystem.`,
		Example: `  # Scan the configured library for an alternating 1-8 jack
  maistat analyze --pattern 1,8,1,8

  # Scan one song
  maistat analyze ./SongA/maidata.txt --pattern 3,3,3

  # Only songs with a level 13+ chart at 180 BPM or faster
  maistat analyze --pattern 1,8,1,8 --level 13+ --min-bpm 180

  # Write an HTML report
  maistat analyze --pattern 1,8,1,8 --report jacks.html

  # Ask a running maistat serve instance
  maistat analyze --pattern 1,8,1,8 --server http://localhost:8080

  # JSON for scripting
  maistat analyze --pattern 1,8,1,8 -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.path = args[0]
			}
			opts.configPath, _ = cmd.Flags().GetString("config")
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runAnalyze(opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "Lane pattern, comma-separated (e.g. 1,8,1,8)")
	cmd.Flags().StringVar(&opts.fileName, "file-name", "", "Chart file name to scan for (default maidata.txt)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Keep only songs with a chart at this level")
	cmd.Flags().Float64Var(&opts.minBPM, "min-bpm", 0, "Keep only songs with wholebpm at or above this value")
	cmd.Flags().StringVar(&opts.report, "report", "", "Write a report to this file (.html/.htm renders HTML)")
	cmd.Flags().StringVar(&opts.server, "server", "", "URL of a running maistat serve instance")

	return cmd
}

func runAnalyze(opts *analyzeOptions, client *api.Client) error {
	// Validate output format
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	remote := opts.server != "" || client != nil
	if remote && (opts.report != "" || opts.level != "" || opts.minBPM > 0) {
		return fmt.Errorf("--report, --level, and --min-bpm filter a local scan and cannot be combined with --server")
	}
	if opts.minBPM < 0 {
		return fmt.Errorf("invalid --min-bpm: %v (must be >= 0)", opts.minBPM)
	}

	target, err := parsePattern(opts.pattern)
	if err != nil {
		return err
	}

	configPath := opts.configPath
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(target) == 0 {
		target = cfg.DefaultPattern
	}
	if len(target) == 0 {
		return fmt.Errorf("analyze requires a pattern (--pattern or default_pattern in config)")
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	// Remote mode: ask a running serve instance.
	if remote {
		if client == nil {
			client = api.NewClient(opts.server)
		}
		results, err := client.Search(context.Background(), target)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return renderResults(renderer, opts.output, results)
	}

	path := opts.path
	if path == "" {
		path = cfg.LibraryRoot
	}
	if path == "" {
		return fmt.Errorf("no path given and no library_root configured (run 'maistat init')")
	}
	fileName := opts.fileName
	if fileName == "" {
		fileName = cfg.FileName
	}

	pred := simai.HasPattern(target)
	matcher := library.PatternMatcher(target)
	if opts.level != "" || opts.minBPM > 0 {
		matcher = filteredMatcher(matcher, opts.level, opts.minBPM)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	var scanned []library.Result
	if info.IsDir() {
		scanned, err = library.Scanner{Root: path, FileName: fileName, Matcher: matcher}.Scan()
		if err != nil {
			return err
		}
	} else {
		scanned = []library.Result{library.ScanFile(path, matcher)}
	}

	var results []api.SearchResult
	for _, res := range scanned {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "warning: %s: %v\n", res.Path, res.Err)
			continue
		}
		if !res.Matched {
			continue
		}
		results = append(results, api.SearchResult{
			Path:   res.Path,
			Title:  res.File.Title(),
			Charts: simai.FindCharts(res.File.Charts, pred),
		})
	}

	if opts.report != "" {
		if err := writeReport(opts.report, scanned); err != nil {
			return err
		}
		renderer.Success("Report written: " + opts.report)
	}

	return renderResults(renderer, opts.output, results)
}

func renderResults(renderer *view.Renderer, output string, results []api.SearchResult) error {
	if output == "json" {
		if results == nil {
			results = []api.SearchResult{}
		}
		return renderer.RenderJSON(results)
	}

	if len(results) == 0 {
		renderer.RenderText("No matching charts found.")
		return nil
	}

	headers := []string{"PATH", "TITLE", "CHARTS"}
	var rows [][]string
	for _, r := range results {
		rows = append(rows, []string{
			r.Path,
			view.Truncate(r.Title, 40),
			util.JoinInts(r.Charts, ", "),
		})
	}
	renderer.RenderTable(headers, rows)
	return nil
}

// parsePattern splits a comma-separated pattern flag into identities.
func parsePattern(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	target := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			return nil, fmt.Errorf("invalid pattern %q: empty entry", raw)
		}
		target = append(target, p)
	}
	return target, nil
}

// filteredMatcher rejects songs failing the level or BPM filter before
// delegating to the pattern matcher.
func filteredMatcher(inner library.Matcher, level string, minBPM float64) library.Matcher {
	return func(path string, f *maidata.File) (map[string]string, bool) {
		if level != "" && !hasLevel(f, level) {
			return nil, false
		}
		if minBPM > 0 {
			bpm, ok := f.WholeBPM()
			if !ok || bpm < minBPM {
				return nil, false
			}
		}
		return inner(path, f)
	}
}

func hasLevel(f *maidata.File, level string) bool {
	for _, c := range f.Charts {
		if c.Level == level {
			return true
		}
	}
	return false
}

func writeReport(path string, results []library.Result) error {
	content := report.Build(results)

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".html" || ext == ".htm" {
		html, err := report.RenderHTML(content)
		if err != nil {
			return err
		}
		content = html
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
