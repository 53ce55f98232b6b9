package tikz

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// stubPalette maps rgb strings to names.
type stubPalette map[string]string

func (p stubPalette) ColorName(rgb string) (string, bool) {
	name, ok := p[rgb]
	return name, ok
}

var testPalette = stubPalette{
	"147,197,253": "Node Blue",
	"74,85,104":   "Edge Gray",
	"9,9,9":       "---",
}

func TestRegistryDerive(t *testing.T) {
	reg := NewRegistry(testPalette, false)

	if got := reg.Derive("", "v", 1); got != "" {
		t.Errorf("Derive(empty) = %q, want empty", got)
	}
	if got := reg.Derive("147,197,253", "v", 1); got != "NodeBlue" {
		t.Errorf("Derive(palette) = %q, want NodeBlue", got)
	}
	if got := reg.Derive("147,197,253", "e", 9); got != "NodeBlue" {
		t.Errorf("Derive(palette again) = %q, want NodeBlue", got)
	}
	if got := reg.Derive("1,2,3", "e", 4); got != "e4Color" {
		t.Errorf("Derive(custom) = %q, want e4Color", got)
	}
	if got := reg.Derive("9,9,9", "t", 2); got != "t2Color" {
		t.Errorf("Derive(palette name without letters) = %q, want t2Color", got)
	}

	want := []ColorDef{
		{Name: "NodeBlue", RGB: "147,197,253"},
		{Name: "e4Color", RGB: "1,2,3"},
		{Name: "t2Color", RGB: "9,9,9"},
	}
	if diff := cmp.Diff(want, reg.Definitions()); diff != "" {
		t.Errorf("Definitions() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryCustomColorPerElement(t *testing.T) {
	reg := NewRegistry(nil, false)

	a := reg.Derive("10,20,30", "v", 1)
	b := reg.Derive("10,20,30", "v", 2)
	if a != "v1Color" || b != "v2Color" {
		t.Errorf("Derive() = %q, %q, want v1Color, v2Color", a, b)
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistryDedupe(t *testing.T) {
	reg := NewRegistry(nil, true)

	a := reg.Derive("10,20,30", "v", 1)
	b := reg.Derive("10,20,30", "v", 2)
	if a != "v1Color" || b != "v1Color" {
		t.Errorf("Derive() = %q, %q, want v1Color twice", a, b)
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRegistryNameCollision(t *testing.T) {
	reg := NewRegistry(nil, false)

	// Same vertex id in two diagrams, different custom colors.
	first := reg.Derive("255,0,0", "v", 1)
	second := reg.Derive("0,0,255", "v", 1)
	third := reg.Derive("0,255,0", "v", 1)
	again := reg.Derive("0,0,255", "v", 1)

	if first != "v1Color" {
		t.Errorf("first = %q, want v1Color", first)
	}
	if second != "v1Color2" {
		t.Errorf("second = %q, want v1Color2", second)
	}
	if third != "v1Color3" {
		t.Errorf("third = %q, want v1Color3", third)
	}
	if again != "v1Color2" {
		t.Errorf("again = %q, want v1Color2", again)
	}
	if reg.Len() != 3 {
		t.Errorf("Len() = %d, want 3", reg.Len())
	}
}
