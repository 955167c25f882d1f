package selector

// Fragment is a partially or fully built compound selector. The zero value
// is an empty selector ready to be appended to. Fragments are immutable:
// append operations return a new value and never touch the receiver, so a
// fragment may be kept and extended along several branches, or rendered
// concurrently, without coordination.
//
// Category bookkeeping is explicit state rather than a substring scan over
// the accumulated text, so attribute values containing '.', ':' or '#'
// cannot be mistaken for segments.
type Fragment struct {
	text string
	last Segment // highest category appended so far

	hasTag           bool
	hasID            bool
	hasPseudoElement bool
}

// Starters. Each creates a fresh single-segment fragment.

// Tag starts a selector with a tag name, e.g. Tag("div") renders "div".
func Tag(name string) Fragment {
	return Fragment{text: name, last: SegmentTag, hasTag: true}
}

// ID starts a selector with an id segment, e.g. ID("main") renders "#main".
func ID(value string) Fragment {
	return Fragment{text: "#" + value, last: SegmentID, hasID: true}
}

// Class starts a selector with a class segment, e.g. Class("active") renders ".active".
func Class(value string) Fragment {
	return Fragment{text: "." + value, last: SegmentClass}
}

// Attribute starts a selector with an attribute segment. The spec string is
// used verbatim, e.g. Attribute(`href$=".png"`) renders `[href$=".png"]`.
func Attribute(spec string) Fragment {
	return Fragment{text: "[" + spec + "]", last: SegmentAttribute}
}

// PseudoClass starts a selector with a pseudo-class segment, e.g.
// PseudoClass("hover") renders ":hover".
func PseudoClass(name string) Fragment {
	return Fragment{text: ":" + name, last: SegmentPseudoClass}
}

// PseudoElement starts a selector with a pseudo-element segment, e.g.
// PseudoElement("before") renders "::before".
func PseudoElement(name string) Fragment {
	return Fragment{text: "::" + name, last: SegmentPseudoElement, hasPseudoElement: true}
}

// String returns the selector text accumulated so far. It is a pure
// accessor and may be called any number of times.
func (f Fragment) String() string {
	return f.text
}

// Empty reports whether nothing has been appended yet.
func (f Fragment) Empty() bool {
	return f.last == SegmentNone && f.text == ""
}

// AppendTag appends a tag name. A tag must come first: it fails with
// DuplicateSegmentError when a tag or pseudo-element is already present and
// with SegmentOrderError when any other segment precedes it.
func (f Fragment) AppendTag(name string) (Fragment, error) {
	if f.hasTag || f.hasPseudoElement {
		return Fragment{}, &DuplicateSegmentError{Segment: SegmentTag, Selector: f.text}
	}
	if f.text != "" {
		return Fragment{}, &SegmentOrderError{Segment: SegmentTag, After: f.last, Selector: f.text}
	}
	return f.append(name, SegmentTag), nil
}

// AppendID appends an id segment. At most one id is allowed and it must
// precede class, attribute and pseudo segments.
func (f Fragment) AppendID(value string) (Fragment, error) {
	if f.hasID {
		return Fragment{}, &DuplicateSegmentError{Segment: SegmentID, Selector: f.text}
	}
	if f.last > SegmentID {
		return Fragment{}, &SegmentOrderError{Segment: SegmentID, After: f.last, Selector: f.text}
	}
	return f.append("#"+value, SegmentID), nil
}

// AppendClass appends a class segment. Classes may repeat but must precede
// attribute and pseudo segments.
func (f Fragment) AppendClass(value string) (Fragment, error) {
	if f.last > SegmentClass {
		return Fragment{}, &SegmentOrderError{Segment: SegmentClass, After: f.last, Selector: f.text}
	}
	return f.append("."+value, SegmentClass), nil
}

// AppendAttribute appends an attribute segment with the spec string taken
// verbatim. Attributes may repeat but must precede pseudo segments.
func (f Fragment) AppendAttribute(spec string) (Fragment, error) {
	if f.last > SegmentAttribute {
		return Fragment{}, &SegmentOrderError{Segment: SegmentAttribute, After: f.last, Selector: f.text}
	}
	return f.append("["+spec+"]", SegmentAttribute), nil
}

// AppendPseudoClass appends a pseudo-class segment. Pseudo-classes may
// repeat but must precede a pseudo-element.
func (f Fragment) AppendPseudoClass(name string) (Fragment, error) {
	if f.last > SegmentPseudoClass {
		return Fragment{}, &SegmentOrderError{Segment: SegmentPseudoClass, After: f.last, Selector: f.text}
	}
	return f.append(":"+name, SegmentPseudoClass), nil
}

// AppendPseudoElement appends a pseudo-element segment, the last category
// in a compound selector. At most one is allowed.
func (f Fragment) AppendPseudoElement(name string) (Fragment, error) {
	if f.hasPseudoElement {
		return Fragment{}, &DuplicateSegmentError{Segment: SegmentPseudoElement, Selector: f.text}
	}
	return f.append("::"+name, SegmentPseudoElement), nil
}

// append produces the successor fragment. Callers have already validated
// that seg may follow f.last.
func (f Fragment) append(token string, seg Segment) Fragment {
	next := f
	next.text += token
	next.last = seg
	switch seg {
	case SegmentTag:
		next.hasTag = true
	case SegmentID:
		next.hasID = true
	case SegmentPseudoElement:
		next.hasPseudoElement = true
	}
	return next
}
