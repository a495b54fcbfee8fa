// rewrite.go reconstructs note data from per-note transform decisions.
package simai

import "strings"

// NoteTransform decides the fate of a single note token. Returning a
// non-empty replacement with ok=true keeps the note (possibly altered);
// returning ok=false or an empty replacement deletes it.
type NoteTransform interface {
	TransformNote(note string) (replacement string, ok bool)
}

// NoteTransformFunc adapts a plain function to the NoteTransform interface.
type NoteTransformFunc func(note string) (string, bool)

func (f NoteTransformFunc) TransformNote(note string) (string, bool) {
	return f(note)
}

// BeatTagger is implemented by transforms that additionally prepend a
// decoration token to every beat where at least one note survives.
// Chart-variant generators use it to mark the beats they touched.
type BeatTagger interface {
	BeatTag() string
}

// RewriteBeat applies t to every note of one beat and re-joins the
// survivors with the note separator. A beat whose notes are all deleted
// reconstructs to the empty string; it still occupies its position between
// the surrounding beat separators.
func RewriteBeat(beat string, t NoteTransform) string {
	if strings.TrimSpace(beat) == "" {
		return ""
	}

	var kept []string
	for _, note := range SplitNotes(beat) {
		replacement, ok := t.TransformNote(note)
		if ok && replacement != "" {
			kept = append(kept, replacement)
		}
	}
	if len(kept) == 0 {
		return ""
	}

	joined := strings.Join(kept, "/")
	if tagger, ok := t.(BeatTagger); ok {
		return tagger.BeatTag() + joined
	}
	return joined
}

// RewriteLine tokenizes one note-data line, applies t to every note, and
// re-emits each segment as its header tokens verbatim followed by the
// rebuilt note text. Beat separators are preserved exactly, so an
// identity transform reproduces the line unchanged.
func RewriteLine(line string, t NoteTransform) string {
	var b strings.Builder
	b.Grow(len(line))

	for _, seg := range TokenizeLine(line) {
		b.WriteString(seg.HeaderText())
		b.WriteString(rewriteNotes(seg.Notes, t))
	}
	return b.String()
}

// rewriteNotes rebuilds one segment's note text beat by beat.
func rewriteNotes(notes string, t NoteTransform) string {
	if notes == "" {
		return ""
	}
	beats := strings.Split(notes, ",")
	for i, beat := range beats {
		beats[i] = RewriteBeat(beat, t)
	}
	return strings.Join(beats, ",")
}

// RewriteChart applies t across all note-data lines of a chart. Lines are
// trimmed of surrounding whitespace before rewriting; the result has the
// same number of lines as the input.
func RewriteChart(noteData []string, t NoteTransform) []string {
	out := make([]string, len(noteData))
	for i, line := range noteData {
		out[i] = RewriteLine(strings.TrimSpace(line), t)
	}
	return out
}
