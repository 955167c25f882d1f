package selector

import "fmt"

// Combinator joins two selectors in a combined selector.
type Combinator int

const (
	// Descendant is the whitespace combinator ("a b").
	Descendant Combinator = iota
	// Child is ">".
	Child
	// AdjacentSibling is "+".
	AdjacentSibling
	// GeneralSibling is "~".
	GeneralSibling
)

func (c Combinator) String() string {
	switch c {
	case Descendant:
		return " "
	case Child:
		return ">"
	case AdjacentSibling:
		return "+"
	case GeneralSibling:
		return "~"
	default:
		// this should never happen
		panic("unsupported combinator requested")
	}
}

// Name returns the human readable combinator name used in configuration
// and diagnostics.
func (c Combinator) Name() string {
	switch c {
	case Descendant:
		return "descendant"
	case Child:
		return "child"
	case AdjacentSibling:
		return "adjacent"
	case GeneralSibling:
		return "general"
	default:
		return "unknown"
	}
}

// CombinatorNames lists valid combinator names for Name and ParseCombinatorName.
func CombinatorNames() []string {
	return []string{"descendant", "child", "adjacent", "general"}
}

// ParseCombinator maps a literal combinator operator (" ", ">", "+", "~")
// to its Combinator value.
func ParseCombinator(op string) (Combinator, error) {
	switch op {
	case " ":
		return Descendant, nil
	case ">":
		return Child, nil
	case "+":
		return AdjacentSibling, nil
	case "~":
		return GeneralSibling, nil
	default:
		return 0, fmt.Errorf("unknown combinator %q", op)
	}
}

// ParseCombinatorName maps a combinator name ("descendant", "child",
// "adjacent", "general") to its Combinator value.
func ParseCombinatorName(name string) (Combinator, error) {
	switch name {
	case "descendant":
		return Descendant, nil
	case "child":
		return Child, nil
	case "adjacent":
		return AdjacentSibling, nil
	case "general":
		return GeneralSibling, nil
	default:
		return 0, fmt.Errorf("unknown combinator name %q", name)
	}
}

// Combine joins two already built fragments with a combinator. The operator
// is always surrounded by single spaces, including the descendant
// combinator whose operator is itself a space. "a b" therefore renders with
// three consecutive spaces; downstream consumers rely on this exact form,
// so it is kept even though it looks odd.
//
// Appends on the combined fragment continue the right-hand compound, so its
// category state carries over from right.
func Combine(left Fragment, op Combinator, right Fragment) (Fragment, error) {
	if op < Descendant || op > GeneralSibling {
		return Fragment{}, fmt.Errorf("unknown combinator %d", int(op))
	}
	if left.Empty() || right.Empty() {
		return Fragment{}, fmt.Errorf("cannot combine empty selector fragments")
	}
	next := right
	next.text = left.String() + " " + op.String() + " " + right.String()
	return next, nil
}
