// Package selector builds CSS selector strings from immutable fragments.
// Every append returns a new Fragment, so partially built selectors can be
// shared and extended in several directions without copying anything by hand.
package selector

// Segment identifies a simple-selector category. Categories have a fixed
// order inside a compound selector: tag, id, class, attribute, pseudo-class,
// pseudo-element. Once a later category has been appended, earlier ones are
// rejected.
type Segment int

const (
	SegmentNone Segment = iota
	SegmentTag
	SegmentID
	SegmentClass
	SegmentAttribute
	SegmentPseudoClass
	SegmentPseudoElement
)

func (s Segment) String() string {
	switch s {
	case SegmentTag:
		return "tag name"
	case SegmentID:
		return "id"
	case SegmentClass:
		return "class"
	case SegmentAttribute:
		return "attribute"
	case SegmentPseudoClass:
		return "pseudo-class"
	case SegmentPseudoElement:
		return "pseudo-element"
	default:
		return "none"
	}
}
