package capability

import (
	"math"
	"sort"
	"strings"

	"cssel/selector"
)

// Built-in capability sets.

func init() {
	Register(NewSet("point", func(data []byte) (Value, error) {
		p, err := decodeInto[Point](data)
		if err != nil {
			return nil, err
		}
		return p, nil
	}))
	Register(NewSet("rule", func(data []byte) (Value, error) {
		r, err := decodeInto[Rule](data)
		if err != nil {
			return nil, err
		}
		return r, nil
	}))
}

// Point is a plain coordinate pair with a computed distance accessor.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Capability() string {
	return "point"
}

// Dist returns the distance from the origin.
func (p Point) Dist() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Rule is a style rule: a selector string with its declarations.
type Rule struct {
	Selector     string            `json:"selector"`
	Declarations map[string]string `json:"declarations"`
}

func (r Rule) Capability() string {
	return "rule"
}

// Valid reports whether the rule's selector parses under the builder's
// segment rules.
func (r Rule) Valid() bool {
	_, err := selector.NewParser(nil).Parse(r.Selector)
	return err == nil
}

// Declaration looks up a declaration value by property name.
func (r Rule) Declaration(name string) (string, bool) {
	v, ok := r.Declarations[name]
	return v, ok
}

// Text renders the rule in stylesheet form with declarations in sorted
// property order.
func (r Rule) Text() string {
	props := make([]string, 0, len(r.Declarations))
	for name := range r.Declarations {
		props = append(props, name)
	}
	sort.Strings(props)

	var sb strings.Builder
	sb.WriteString(r.Selector)
	sb.WriteString(" { ")
	for _, name := range props {
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(r.Declarations[name])
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}
