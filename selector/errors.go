package selector

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks; the typed errors below carry details.
var (
	ErrDuplicateSegment = errors.New("duplicate selector segment")
	ErrSegmentOrder     = errors.New("selector segment out of order")
)

// DuplicateSegmentError reports an attempt to append a segment category that
// may appear at most once in a compound selector (tag name, id,
// pseudo-element) when one is already present.
type DuplicateSegmentError struct {
	Segment  Segment
	Selector string
}

func (e *DuplicateSegmentError) Error() string {
	return fmt.Sprintf("duplicate %s segment in selector %q", e.Segment, e.Selector)
}

func (e *DuplicateSegmentError) Is(target error) bool {
	return target == ErrDuplicateSegment
}

// SegmentOrderError reports an attempt to append a segment after a
// later-category segment is already present.
type SegmentOrderError struct {
	Segment  Segment // category being appended
	After    Segment // latest category already in the selector
	Selector string
}

func (e *SegmentOrderError) Error() string {
	return fmt.Sprintf("cannot append %s segment after %s in selector %q", e.Segment, e.After, e.Selector)
}

func (e *SegmentOrderError) Is(target error) bool {
	return target == ErrSegmentOrder
}
