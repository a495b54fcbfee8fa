// tokens.go defines the segment structure produced by note-data tokenization.
package simai

import "strings"

// Segment is one (header-run, note-run) pair of a note-data line. Headers
// holds each structural header token verbatim, in source order; Notes holds
// the plain text that follows, up to the next header, delimiters included.
type Segment struct {
	Headers []string
	Notes   string
}

// HeaderText returns the segment's header tokens joined back together.
func (s Segment) HeaderText() string {
	return strings.Join(s.Headers, "")
}

// Beats splits the segment's note text on the beat separator. A segment
// with no note text has no beats.
func (s Segment) Beats() []string {
	if s.Notes == "" {
		return nil
	}
	return strings.Split(s.Notes, ",")
}

// SplitNotes splits one beat into its concurrent note tokens. Tokens are
// trimmed of surrounding whitespace but not otherwise altered.
func SplitNotes(beat string) []string {
	notes := strings.Split(beat, "/")
	for i, n := range notes {
		notes[i] = strings.TrimSpace(n)
	}
	return notes
}
