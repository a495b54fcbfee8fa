// Package simai implements the simai chart notation engine: a tokenizer
// for note-data lines, a temporal model of concurrent note roots, a
// sliding-window pattern matcher over that model, and a rewrite engine
// that reconstructs charts from per-note transforms.
package simai

// TokenizeLine scans one line of note data and decomposes it into an
// ordered sequence of segments. The scanner alternates between two states:
//   - header state: consumes a maximal run of header tokens, each either a
//     tempo marker (N) / (N.M) or a subdivision marker {N}
//   - plain state: consumes text up to the next position where a valid
//     header begins
//
// Malformed bracket constructs are not headers; they stay in the plain
// text, so reconstructing headers + notes always reproduces the input.
// A blank line yields no segments. TokenizeLine never fails.
func TokenizeLine(line string) []Segment {
	var segments []Segment
	pos := 0

	for pos < len(line) {
		var headers []string
		for pos < len(line) {
			end, ok := scanHeader(line, pos)
			if !ok {
				break
			}
			headers = append(headers, line[pos:end])
			pos = end
		}

		notesStart := pos
		for pos < len(line) {
			if _, ok := scanHeader(line, pos); ok {
				break
			}
			pos++
		}

		segments = append(segments, Segment{
			Headers: headers,
			Notes:   line[notesStart:pos],
		})
	}

	return segments
}

// scanHeader attempts to match a header token starting at pos. It returns
// the position just past the token and whether one was found.
func scanHeader(s string, pos int) (int, bool) {
	if pos >= len(s) {
		return pos, false
	}
	switch s[pos] {
	case '(':
		return scanTempoHeader(s, pos)
	case '{':
		return scanSubdivisionHeader(s, pos)
	}
	return pos, false
}

// scanTempoHeader matches (N) or (N.M) where N is one or more digits and M
// is zero or more digits.
func scanTempoHeader(s string, pos int) (int, bool) {
	i := pos + 1
	digitStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digitStart {
		return pos, false
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && s[i] == ')' {
		return i + 1, true
	}
	return pos, false
}

// scanSubdivisionHeader matches {N} where N is one or more digits.
func scanSubdivisionHeader(s string, pos int) (int, bool) {
	i := pos + 1
	digitStart := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digitStart {
		return pos, false
	}
	if i < len(s) && s[i] == '}' {
		return i + 1, true
	}
	return pos, false
}

// isDigit returns true if b is an ASCII digit.
func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
