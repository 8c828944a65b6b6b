package router

import "fmt"

// SegmentKind identifies how a route segment matches.
type SegmentKind uint8

const (
	// SegmentStatic matches one literal path segment. The empty literal
	// matches nothing and consumes nothing.
	SegmentStatic SegmentKind = iota

	// SegmentParam matches exactly one path segment and captures it.
	SegmentParam

	// SegmentWildcard matches the remaining path segments, zero or more, and
	// captures them joined by "/".
	SegmentWildcard
)

// Segment is one element of a route pattern.
type Segment struct {
	Kind SegmentKind

	// Value is the literal for static segments and the capture name
	// otherwise.
	Value string
}

// Static returns a literal segment.
func Static(s string) Segment { return Segment{Kind: SegmentStatic, Value: s} }

// Param returns a single-segment capture.
func Param(name string) Segment { return Segment{Kind: SegmentParam, Value: name} }

// Wildcard returns a capture of the rest of the path.
func Wildcard(name string) Segment { return Segment{Kind: SegmentWildcard, Value: name} }

// String returns the segment in pattern syntax.
func (s Segment) String() string {
	switch s.Kind {
	case SegmentStatic:
		return s.Value
	case SegmentParam:
		return ":" + s.Value
	case SegmentWildcard:
		return "*" + s.Value
	default:
		return fmt.Sprintf("?%s", s.Value)
	}
}

// effective drops empty static segments, which consume no path.
func effective(segs []Segment) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		if s.Kind == SegmentStatic && s.Value == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
