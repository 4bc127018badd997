package models

import "testing"

// TestParseViewTypeRoundTrip verifies every view type name parses back
func TestParseViewTypeRoundTrip(t *testing.T) {
	for _, v := range AllViewTypes {
		got, err := ParseViewType(v.String())
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", v.String(), err)
		}
		if got != v {
			t.Errorf("Expected %v, got %v", v, got)
		}
	}
}

// TestParseViewTypeUnknown verifies unknown names are rejected
func TestParseViewTypeUnknown(t *testing.T) {
	if _, err := ParseViewType("Image_Oblique"); err == nil {
		t.Error("Expected error for unknown view type, got nil")
	}
	if s := ViewType(99).String(); s != "ViewType(99)" {
		t.Errorf("Expected ViewType(99), got %s", s)
	}
}
