package capability

import (
	"fmt"
	"sort"
)

// Value is parsed data with a capability set's behaviors attached. Concrete
// accessors are reached by asserting to the set's value type.
type Value interface {
	// Capability names the set this value exposes.
	Capability() string
}

// Set names a capability bundle and knows how to construct its typed value
// from decoded JSON text.
type Set struct {
	name      string
	construct func(data []byte) (Value, error)
}

// NewSet defines a capability set. Constructors receive the raw JSON text
// and return the fully typed value.
func NewSet(name string, construct func(data []byte) (Value, error)) Set {
	return Set{name: name, construct: construct}
}

// Name returns the set name used for registry lookups.
func (s Set) Name() string {
	return s.name
}

var sets = make(map[string]Set)

// Register adds a capability set to the registry. Registration happens at
// init time; duplicate names are programmer errors.
func Register(s Set) {
	if _, dup := sets[s.name]; dup {
		// this should never happen
		panic(fmt.Sprintf("capability set %q registered twice", s.name))
	}
	sets[s.name] = s
}

// Lookup finds a registered capability set by name.
func Lookup(name string) (Set, bool) {
	s, ok := sets[name]
	return s, ok
}

// Names lists registered capability set names, sorted.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
