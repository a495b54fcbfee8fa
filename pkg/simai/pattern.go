// pattern.go matches target root sequences against the temporal model.
package simai

import "github.com/Choimoe/MaidataStatistic/pkg/maidata"

// Predicate reports whether a temporal root sequence satisfies some
// structural condition. Predicates are supplied by callers; HasPattern
// builds the most common one.
type Predicate func(slots []TimeSlot) bool

// MatchesPattern reports whether target occurs somewhere in slots: it
// slides a window of len(target) consecutive slots over the sequence and
// succeeds when every target identity is present in the slot at its
// window offset. Fewer slots than target identities is never a match.
func MatchesPattern(slots []TimeSlot, target []string) bool {
	if len(slots) < len(target) {
		return false
	}
	for start := 0; start+len(target) <= len(slots); start++ {
		if windowMatches(slots[start:start+len(target)], target) {
			return true
		}
	}
	return false
}

func windowMatches(window []TimeSlot, target []string) bool {
	for i, want := range target {
		if !window[i][want] {
			return false
		}
	}
	return true
}

// HasPattern returns a predicate that reports whether target occurs in a
// slot sequence, per MatchesPattern.
func HasPattern(target []string) Predicate {
	return func(slots []TimeSlot) bool {
		return MatchesPattern(slots, target)
	}
}

// FindCharts returns the numbers of the charts whose temporal root
// sequence satisfies pred. Charts without note data are skipped. An empty
// result means no chart matched.
func FindCharts(charts []maidata.Chart, pred Predicate) []int {
	var matched []int
	for _, chart := range charts {
		if len(chart.NoteData) == 0 {
			continue
		}
		if pred(TemporalRoots(chart.NoteData)) {
			matched = append(matched, chart.Number)
		}
	}
	return matched
}
