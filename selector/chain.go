package selector

// Chain carries a fragment together with the first append error, so call
// sites can compose selectors fluently and check the error once:
//
//	f, err := selector.Start(selector.Tag("a")).
//		Attribute(`href$=".png"`).
//		PseudoClass("focus").
//		Build()
//
// After a failure all further calls are no-ops and Build returns the
// original error.
type Chain struct {
	f   Fragment
	err error
}

// Start begins a chain from an already built fragment.
func Start(f Fragment) Chain {
	return Chain{f: f}
}

// NewChain begins a chain from the empty fragment.
func NewChain() Chain {
	return Chain{}
}

func (c Chain) Tag(name string) Chain {
	if c.err != nil {
		return c
	}
	c.f, c.err = c.f.AppendTag(name)
	return c
}

func (c Chain) ID(value string) Chain {
	if c.err != nil {
		return c
	}
	c.f, c.err = c.f.AppendID(value)
	return c
}

func (c Chain) Class(value string) Chain {
	if c.err != nil {
		return c
	}
	c.f, c.err = c.f.AppendClass(value)
	return c
}

func (c Chain) Attribute(spec string) Chain {
	if c.err != nil {
		return c
	}
	c.f, c.err = c.f.AppendAttribute(spec)
	return c
}

func (c Chain) PseudoClass(name string) Chain {
	if c.err != nil {
		return c
	}
	c.f, c.err = c.f.AppendPseudoClass(name)
	return c
}

func (c Chain) PseudoElement(name string) Chain {
	if c.err != nil {
		return c
	}
	c.f, c.err = c.f.AppendPseudoElement(name)
	return c
}

// Combine joins the chained fragment (as the left side) with another
// fragment using op.
func (c Chain) Combine(op Combinator, right Fragment) Chain {
	if c.err != nil {
		return c
	}
	c.f, c.err = Combine(c.f, op, right)
	return c
}

// Build returns the accumulated fragment or the first error encountered.
func (c Chain) Build() (Fragment, error) {
	if c.err != nil {
		return Fragment{}, c.err
	}
	return c.f, nil
}

// MustBuild is Build for chains that are known to be valid, typically
// package-level selector values. It panics on error.
func (c Chain) MustBuild() Fragment {
	f, err := c.Build()
	if err != nil {
		panic(err)
	}
	return f
}
