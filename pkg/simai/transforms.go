// transforms.go provides the stock note transforms built on the rewrite engine.
package simai

import (
	"fmt"
	"math/rand"
	"strings"
)

// Keep returns the identity transform: every note survives unchanged.
func Keep() NoteTransform {
	return NoteTransformFunc(func(note string) (string, bool) {
		return note, true
	})
}

// RandomDrop returns a transform that deletes each note independently with
// probability alpha, drawing from r.
func RandomDrop(r *rand.Rand, alpha float64) NoteTransform {
	return NoteTransformFunc(func(note string) (string, bool) {
		if r.Float64() >= alpha {
			return note, true
		}
		return "", false
	})
}

// StripBreaks returns a transform that deletes every break note and keeps
// everything else unchanged.
func StripBreaks() NoteTransform {
	return NoteTransformFunc(func(note string) (string, bool) {
		if strings.Contains(note, "b") {
			return "", false
		}
		return note, true
	})
}

// SlideSplit returns a transform that thins a chart while decomposing its
// slides. Break notes are deleted with probability breakAlpha. Slide notes
// are resolved on two independent draws: both succeeding keeps the slide
// intact, only the first keeps the star head ("1$"), only the second keeps
// a headless slide ("1?-5[4:1]"), neither deletes it. All other notes are
// deleted with probability alpha.
func SlideSplit(r *rand.Rand, alpha, breakAlpha float64) NoteTransform {
	return NoteTransformFunc(func(note string) (string, bool) {
		if strings.Contains(strings.ToLower(note), "b") {
			if r.Float64() >= breakAlpha {
				return note, true
			}
			return "", false
		}

		if isSlide(note) {
			head, tail := note[:1], note[1:]
			a, b := r.Float64(), r.Float64()
			switch {
			case a >= alpha && b >= alpha:
				return note, true
			case a >= alpha:
				return head + "$", true
			case b >= alpha:
				return head + "?" + tail, true
			}
			return "", false
		}

		if r.Float64() >= alpha {
			return note, true
		}
		return "", false
	})
}

// isSlide reports whether a note token begins a slide figure: optional
// start-position digits followed by a slide shape marker.
func isSlide(note string) bool {
	i := 0
	for i < len(note) && isDigit(note[i]) {
		i++
	}
	if i >= len(note) {
		return false
	}
	if i+1 < len(note) && (note[i:i+2] == "pp" || note[i:i+2] == "qq") {
		return true
	}
	switch note[i] {
	case '-', '>', '<', '^', 'v', 'p', 's', 'z', 'w', 'V', 'q':
		return true
	}
	return false
}

// SpeedTagger wraps another transform and marks every beat it leaves
// non-empty with a synthesized speed decoration <HS*x>. x is drawn from a
// normal distribution with mean 1.0 and deviation (High-Low)/2, redrawn
// until it lands inside [Low, High], and rendered with two decimals.
type SpeedTagger struct {
	Inner NoteTransform
	Rand  *rand.Rand
	Low   float64
	High  float64
}

func (s SpeedTagger) TransformNote(note string) (string, bool) {
	return s.Inner.TransformNote(note)
}

// BeatTag synthesizes the speed decoration for one surviving beat.
func (s SpeedTagger) BeatTag() string {
	stddev := (s.High - s.Low) / 2
	x := s.Rand.NormFloat64()*stddev + 1.0
	for x < s.Low || x > s.High {
		x = s.Rand.NormFloat64()*stddev + 1.0
	}
	return fmt.Sprintf("<HS*%.2f>", x)
}

// Chain composes transforms left to right, feeding each survivor into the
// next transform. The first deletion wins. Chain itself never tags beats;
// wrap the chain in a SpeedTagger for that.
func Chain(transforms ...NoteTransform) NoteTransform {
	return NoteTransformFunc(func(note string) (string, bool) {
		current := note
		for _, t := range transforms {
			next, ok := t.TransformNote(current)
			if !ok || next == "" {
				return "", false
			}
			current = next
		}
		return current, true
	})
}
