package model

import (
	"fmt"
)

// Unbounded is the maximum count of a segment without upper limit.
const Unbounded = -1

// Segment is a run of consecutive children matched by Match, occurring
// between Min and Max times (Max may be Unbounded).
type Segment struct {
	Match    Matcher
	Min, Max int
}

// Once is a segment of exactly one child.
func Once(m Matcher) Segment { return Segment{Match: m, Min: 1, Max: 1} }

// Optional is a segment of zero or one child.
func Optional(m Matcher) Segment { return Segment{Match: m, Min: 0, Max: 1} }

// Star is a segment of any number of children.
func Star(m Matcher) Segment { return Segment{Match: m, Min: 0, Max: Unbounded} }

// Plus is a segment of one or more children.
func Plus(m Matcher) Segment { return Segment{Match: m, Min: 1, Max: Unbounded} }

func (s Segment) String() string {
	switch {
	case s.Min == 0 && s.Max == Unbounded:
		return "zero or more " + s.Match.String()
	case s.Min == 1 && s.Max == Unbounded:
		return "one or more " + s.Match.String()
	case s.Min == 0 && s.Max == 1:
		return "an optional " + s.Match.String()
	case s.Min == 1 && s.Max == 1:
		return "one " + s.Match.String()
	case s.Max == Unbounded:
		return fmt.Sprintf("%d or more %s", s.Min, s.Match)
	}
	return fmt.Sprintf("%d to %d %s", s.Min, s.Max, s.Match)
}

// Runs accepts children forming consecutive runs as given by segments.
// If repeat is set, the segments form a group which may occur zero or more
// times (e.g. groups of dt elements followed by dd elements). Children
// matched by transparent (e.g. script-supporting elements) are ignored
// wherever they appear, without disturbing the scan. transparent may be
// the zero Matcher.
//
// The scan is a single greedy pass from left to right: a child extends the
// current run if it can, otherwise the scan moves on to the next segment.
func Runs(transparent Matcher, repeat bool, segments ...Segment) *Model {
	return &Model{
		kind:        KindRuns,
		segments:    segments,
		transparent: transparent,
		repeat:      repeat,
	}
}

func (m *Model) checkRuns(children []Node) Verdict {
	segs := m.segments
	i, count := 0, 0 // current segment, number of children in current run
	for _, ch := range children {
		if m.transparent.Matches(ch) {
			continue
		}
		advanced := 0
		for {
			if i >= len(segs) {
				return RejectFor(ch, "%s is not expected here", Label(ch))
			}
			s := segs[i]
			if s.Match.Matches(ch) && (s.Max == Unbounded || count < s.Max) {
				count++
				break
			}
			if count < s.Min {
				return RejectFor(ch, "expected %s before %s", s.Match, Label(ch))
			}
			i, count = i+1, 0
			advanced++
			if m.repeat && i == len(segs) {
				i = 0
			}
			if advanced > len(segs) { // went round the group without a match
				return RejectFor(ch, "%s is not expected here", Label(ch))
			}
		}
	}
	if m.repeat && i == 0 && count == 0 {
		return Accept() // no group started
	}
	if i < len(segs) && count < segs[i].Min {
		return Reject("expected %s at the end", segs[i].Match)
	}
	for j := i + 1; j < len(segs); j++ {
		if segs[j].Min > 0 {
			return Reject("expected %s at the end", segs[j].Match)
		}
	}
	return Accept()
}

func (m *Model) describeRuns() Expectation {
	items := make([]Expectation, len(m.segments))
	for i, s := range m.segments {
		items[i] = Leaf(s.String())
	}
	e := Expectation{Join: JoinFollowedBy, Items: items}
	if m.repeat {
		e.Text = "zero or more groups of"
	}
	if !m.transparent.IsZero() {
		e.Note = "optionally intermixed with " + m.transparent.String()
	}
	return e
}
