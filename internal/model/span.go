package model

import "fmt"

// Span is a half-open byte interval [Start, End) into the input text.
type Span struct {
	Start int `json:"start"` // Offset of the first byte
	End   int `json:"end"`   // One past the last byte
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// StrictlyContains reports whether s contains other and is wider.
func (s Span) StrictlyContains(other Span) bool {
	return s.Contains(other) && s != other
}

// Overlaps reports whether the spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Less orders spans by start offset, then end offset. Together with
// equality this is a total order.
func (s Span) Less(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}
	return s.End < other.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
