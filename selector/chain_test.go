package selector_test

import (
	"errors"
	"testing"

	"cssel/selector"
)

func TestChain_FirstErrorSticks(t *testing.T) {
	_, err := selector.Start(selector.PseudoClass("hover")).
		Class("active"). // order violation
		ID("main").      // would be a second violation, must not mask the first
		Build()
	if err == nil {
		t.Fatal("Build() expected to fail")
	}

	var ord *selector.SegmentOrderError
	if !errors.As(err, &ord) {
		t.Fatalf("error = %v, want SegmentOrderError", err)
	}
	if ord.Segment != selector.SegmentClass {
		t.Errorf("Segment = %v, want %v (the first failing append)", ord.Segment, selector.SegmentClass)
	}
}

func TestChain_FromEmpty(t *testing.T) {
	f, err := selector.NewChain().Tag("nav").Class("top").Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := f.String(); got != "nav.top" {
		t.Errorf("String() = %q, want %q", got, "nav.top")
	}
}

func TestChain_Combine(t *testing.T) {
	f, err := selector.Start(selector.Tag("div")).
		ID("main").
		Combine(selector.AdjacentSibling, selector.Tag("p")).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := f.String(); got != "div#main + p" {
		t.Errorf("String() = %q, want %q", got, "div#main + p")
	}
}

func TestChain_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustBuild() expected to panic on invalid chain")
		}
	}()
	selector.Start(selector.Tag("a")).Tag("b").MustBuild()
}
