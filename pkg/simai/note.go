// note.go derives canonical root identities from note tokens.
package simai

import (
	"strings"
	"unicode/utf8"
)

// Root returns the canonical root identity of a single note token: the
// leading character, or the leading two characters when the token starts
// with one of the touch areas A through E and a second character exists.
// Decorations after the root are ignored. The second return value is false
// for empty or whitespace-only tokens, which have no identity.
func Root(note string) (string, bool) {
	note = strings.TrimSpace(note)
	if note == "" {
		return "", false
	}

	first, size := utf8.DecodeRuneInString(note)
	if first >= 'A' && first <= 'E' && size < len(note) {
		_, next := utf8.DecodeRuneInString(note[size:])
		return note[:size+next], true
	}
	return note[:size], true
}
