package selector_test

import (
	"errors"
	"testing"

	"cssel/selector"
)

func TestFragment_Starters(t *testing.T) {
	tests := []struct {
		name string
		f    selector.Fragment
		want string
	}{
		{"tag", selector.Tag("div"), "div"},
		{"id", selector.ID("main"), "#main"},
		{"class", selector.Class("active"), ".active"},
		{"attribute", selector.Attribute(`href$=".png"`), `[href$=".png"]`},
		{"pseudo-class", selector.PseudoClass("hover"), ":hover"},
		{"pseudo-element", selector.PseudoElement("before"), "::before"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFragment_StringIdempotent(t *testing.T) {
	f, err := selector.Tag("a").AppendClass("external")
	if err != nil {
		t.Fatalf("AppendClass() error = %v", err)
	}

	first := f.String()
	second := f.String()
	if first != second {
		t.Errorf("String() not idempotent: %q then %q", first, second)
	}
}

func TestFragment_IDWithClasses(t *testing.T) {
	f, err := selector.Start(selector.ID("main")).
		Class("container").
		Class("editable").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := f.String(); got != "#main.container.editable" {
		t.Errorf("String() = %q, want %q", got, "#main.container.editable")
	}
}

func TestFragment_TagAttributePseudoClass(t *testing.T) {
	f, err := selector.Start(selector.Tag("a")).
		Attribute(`href$=".png"`).
		PseudoClass("focus").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got := f.String(); got != `a[href$=".png"]:focus` {
		t.Errorf("String() = %q, want %q", got, `a[href$=".png"]:focus`)
	}
}

func TestFragment_Immutable(t *testing.T) {
	base := selector.Tag("div")

	left, err := base.AppendClass("left")
	if err != nil {
		t.Fatalf("AppendClass() error = %v", err)
	}
	right, err := base.AppendClass("right")
	if err != nil {
		t.Fatalf("AppendClass() error = %v", err)
	}

	if got := base.String(); got != "div" {
		t.Errorf("base mutated: String() = %q, want %q", got, "div")
	}
	if got := left.String(); got != "div.left" {
		t.Errorf("left String() = %q, want %q", got, "div.left")
	}
	if got := right.String(); got != "div.right" {
		t.Errorf("right String() = %q, want %q", got, "div.right")
	}
}

func TestFragment_DuplicateTag(t *testing.T) {
	_, err := selector.Tag("div").AppendTag("span")
	if err == nil {
		t.Fatal("AppendTag() on fragment with tag expected to fail")
	}

	var dup *selector.DuplicateSegmentError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateSegmentError", err)
	}
	if dup.Segment != selector.SegmentTag {
		t.Errorf("Segment = %v, want %v", dup.Segment, selector.SegmentTag)
	}
	if !errors.Is(err, selector.ErrDuplicateSegment) {
		t.Error("errors.Is(err, ErrDuplicateSegment) = false")
	}
}

func TestFragment_TagAfterPseudoElement(t *testing.T) {
	// a pseudo-element counts against the tag slot as well
	_, err := selector.PseudoElement("before").AppendTag("div")
	if err == nil {
		t.Fatal("AppendTag() after pseudo-element expected to fail")
	}
	if !errors.Is(err, selector.ErrDuplicateSegment) {
		t.Errorf("error = %v, want ErrDuplicateSegment", err)
	}
}

func TestFragment_TagAfterOtherSegment(t *testing.T) {
	_, err := selector.Class("active").AppendTag("div")
	if err == nil {
		t.Fatal("AppendTag() after class expected to fail")
	}

	var ord *selector.SegmentOrderError
	if !errors.As(err, &ord) {
		t.Fatalf("error = %v, want SegmentOrderError", err)
	}
	if ord.Segment != selector.SegmentTag || ord.After != selector.SegmentClass {
		t.Errorf("SegmentOrderError = %v after %v, want %v after %v",
			ord.Segment, ord.After, selector.SegmentTag, selector.SegmentClass)
	}
}

func TestFragment_DuplicateID(t *testing.T) {
	_, err := selector.ID("main").AppendID("other")
	if err == nil {
		t.Fatal("AppendID() on fragment with id expected to fail")
	}
	if !errors.Is(err, selector.ErrDuplicateSegment) {
		t.Errorf("error = %v, want ErrDuplicateSegment", err)
	}
}

func TestFragment_IDAfterClass(t *testing.T) {
	_, err := selector.Class("active").AppendID("main")
	if err == nil {
		t.Fatal("AppendID() after class expected to fail")
	}
	if !errors.Is(err, selector.ErrSegmentOrder) {
		t.Errorf("error = %v, want ErrSegmentOrder", err)
	}
}

func TestFragment_ClassAfterPseudoClass(t *testing.T) {
	f, err := selector.Tag("a").AppendPseudoClass("hover")
	if err != nil {
		t.Fatalf("AppendPseudoClass() error = %v", err)
	}

	_, err = f.AppendClass("active")
	if err == nil {
		t.Fatal("AppendClass() after pseudo-class expected to fail")
	}

	var ord *selector.SegmentOrderError
	if !errors.As(err, &ord) {
		t.Fatalf("error = %v, want SegmentOrderError", err)
	}
	if ord.After != selector.SegmentPseudoClass {
		t.Errorf("After = %v, want %v", ord.After, selector.SegmentPseudoClass)
	}
}

func TestFragment_ClassesRepeat(t *testing.T) {
	f, err := selector.Start(selector.Class("a")).Class("b").Class("c").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := f.String(); got != ".a.b.c" {
		t.Errorf("String() = %q, want %q", got, ".a.b.c")
	}
}

func TestFragment_AttributesRepeat(t *testing.T) {
	f, err := selector.Start(selector.Tag("input")).
		Attribute("type=text").
		Attribute("required").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := f.String(); got != "input[type=text][required]" {
		t.Errorf("String() = %q, want %q", got, "input[type=text][required]")
	}
}

func TestFragment_AttributeAfterPseudoClass(t *testing.T) {
	f, _ := selector.Tag("a").AppendPseudoClass("hover")
	_, err := f.AppendAttribute("href")
	if err == nil {
		t.Fatal("AppendAttribute() after pseudo-class expected to fail")
	}
	if !errors.Is(err, selector.ErrSegmentOrder) {
		t.Errorf("error = %v, want ErrSegmentOrder", err)
	}
}

func TestFragment_PseudoClassAfterPseudoElement(t *testing.T) {
	f, _ := selector.Tag("p").AppendPseudoElement("first-line")
	_, err := f.AppendPseudoClass("hover")
	if err == nil {
		t.Fatal("AppendPseudoClass() after pseudo-element expected to fail")
	}
	if !errors.Is(err, selector.ErrSegmentOrder) {
		t.Errorf("error = %v, want ErrSegmentOrder", err)
	}
}

func TestFragment_DuplicatePseudoElement(t *testing.T) {
	f, _ := selector.Tag("p").AppendPseudoElement("before")
	_, err := f.AppendPseudoElement("after")
	if err == nil {
		t.Fatal("second AppendPseudoElement() expected to fail")
	}
	if !errors.Is(err, selector.ErrDuplicateSegment) {
		t.Errorf("error = %v, want ErrDuplicateSegment", err)
	}
}

func TestFragment_FullChain(t *testing.T) {
	f, err := selector.Start(selector.Tag("input")).
		ID("email").
		Class("field").
		Attribute("type=email").
		PseudoClass("focus").
		PseudoElement("placeholder").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := "input#email.field[type=email]:focus::placeholder"
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFragment_FailedAppendLeavesOriginal(t *testing.T) {
	f, _ := selector.Tag("p").AppendPseudoElement("before")

	if _, err := f.AppendClass("x"); err == nil {
		t.Fatal("AppendClass() after pseudo-element expected to fail")
	}

	// prior fragment unaffected by the failed operation
	if got := f.String(); got != "p::before" {
		t.Errorf("String() = %q, want %q", got, "p::before")
	}
}

func TestFragment_AttributeValueWithDelimiters(t *testing.T) {
	// '.', ':' and '#' inside an attribute value must not register as
	// class/pseudo/id segments
	f, err := selector.Start(selector.Tag("a")).
		Attribute(`href$=".png"`).
		Class("thumb").
		ID("hero").
		Build()
	if err == nil {
		t.Fatal("ID after class expected to fail regardless of attribute content")
	}

	f, err = selector.Start(selector.Tag("a")).
		Attribute(`href="#top:main.css"`).
		PseudoClass("visited").
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := `a[href="#top:main.css"]:visited`
	if got := f.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
