// Package library discovers chart files under a song library root and
// applies a caller-supplied matcher to each one.
package library

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/Choimoe/MaidataStatistic/internal/util"
	"github.com/Choimoe/MaidataStatistic/pkg/maidata"
	"github.com/Choimoe/MaidataStatistic/pkg/simai"
)

// DefaultFileName is the chart file name searched for when the scanner
// has none configured.
const DefaultFileName = "maidata.txt"

// Matcher inspects one parsed chart file. It returns details worth
// surfacing alongside the result and whether the file is a match.
type Matcher func(path string, f *maidata.File) (map[string]string, bool)

// Result is the outcome for a single discovered chart file. A file
// that could not be read carries its error here; the scan goes on.
type Result struct {
	Path    string
	File    *maidata.File
	Err     error
	Matched bool
	Details map[string]string
}

// Scanner walks Root recursively and runs Matcher over every file
// named FileName. A zero FileName means DefaultFileName; a nil Matcher
// matches any file that has at least one chart with note data.
type Scanner struct {
	Root     string
	FileName string
	Matcher  Matcher
}

// Scan returns one Result per discovered chart file, in walk order.
// Only a traversal failure is returned as an error.
func (s Scanner) Scan() ([]Result, error) {
	fileName := s.FileName
	if fileName == "" {
		fileName = DefaultFileName
	}

	var results []Result
	walk := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != fileName {
			return nil
		}
		results = append(results, ScanFile(path, s.Matcher))
		return nil
	}
	if err := filepath.WalkDir(s.Root, walk); err != nil {
		return nil, fmt.Errorf("failed to scan library root: %w", err)
	}
	return results, nil
}

// ScanFile parses a single chart file and applies the matcher to it,
// for callers that target one song instead of a whole library.
func ScanFile(path string, m Matcher) Result {
	if m == nil {
		m = hasNoteData
	}
	res := Result{Path: path}
	f, err := maidata.ParseFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.File = f
	res.Details, res.Matched = m(path, f)
	return res
}

func hasNoteData(_ string, f *maidata.File) (map[string]string, bool) {
	for _, c := range f.Charts {
		if len(c.NoteData) > 0 {
			return nil, true
		}
	}
	return nil, false
}

// PatternMatcher builds a Matcher that reports files where any chart
// plays the target identity sequence, recording the matched chart
// numbers under the "charts" detail key.
func PatternMatcher(target []string) Matcher {
	pred := simai.HasPattern(target)
	return func(_ string, f *maidata.File) (map[string]string, bool) {
		charts := simai.FindCharts(f.Charts, pred)
		if len(charts) == 0 {
			return nil, false
		}
		return map[string]string{"charts": util.JoinInts(charts, ", ")}, true
	}
}
