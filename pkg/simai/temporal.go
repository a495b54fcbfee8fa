// temporal.go builds the ordered time-slot model used for pattern analysis.
package simai

import "strings"

// TimeSlot is the set of root identities sounding at one beat.
type TimeSlot map[string]bool

// TemporalRoots flattens a chart's note-data lines into its ordered
// sequence of time slots. All lines are concatenated into one stream and
// split on the beat separator; blocks that are empty after trimming are
// rests between written beats and contribute no slot at all. Each retained
// block becomes exactly one slot holding the root identities of its notes,
// which may be the empty set when the block is header text only.
func TemporalRoots(noteData []string) []TimeSlot {
	stream := strings.Join(noteData, "")

	var slots []TimeSlot
	for _, block := range strings.Split(stream, ",") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		slots = append(slots, blockRoots(block))
	}
	return slots
}

// blockRoots extracts the root identity set from one beat block.
// Duplicate roots collapse; tokens with no identity are dropped.
func blockRoots(block string) TimeSlot {
	slot := make(TimeSlot)
	cleaned := stripDecorations(block)
	for _, note := range strings.Split(cleaned, "/") {
		if root, ok := Root(note); ok {
			slot[root] = true
		}
	}
	return slot
}

// stripDecorations removes {...} and (...) spans from a beat block before
// root extraction. Spans close at the nearest closing bracket; a bracket
// with no closer is kept as ordinary text.
func stripDecorations(block string) string {
	var b strings.Builder
	b.Grow(len(block))

	for i := 0; i < len(block); i++ {
		switch block[i] {
		case '{':
			if end := strings.IndexByte(block[i+1:], '}'); end >= 0 {
				i += end + 1
				continue
			}
			b.WriteByte(block[i])
		case '(':
			if end := strings.IndexByte(block[i+1:], ')'); end >= 0 {
				i += end + 1
				continue
			}
			b.WriteByte(block[i])
		default:
			b.WriteByte(block[i])
		}
	}
	return b.String()
}
