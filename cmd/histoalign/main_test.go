package main

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// TestParseVec verifies the x,y,z flag format
func TestParseVec(t *testing.T) {
	testCases := []struct {
		input    string
		expected r3.Vec
		valid    bool
	}{
		{"0,0,0", r3.Vec{}, true},
		{"1.5, -2,3", r3.Vec{X: 1.5, Y: -2, Z: 3}, true},
		{"1,2", r3.Vec{}, false},
		{"1,b,3", r3.Vec{}, false},
	}

	for _, tc := range testCases {
		got, err := parseVec(tc.input)
		if tc.valid && err != nil {
			t.Errorf("parseVec(%q): unexpected error %v", tc.input, err)
			continue
		}
		if !tc.valid {
			if err == nil {
				t.Errorf("parseVec(%q): expected error, got %v", tc.input, got)
			}
			continue
		}
		if got != tc.expected {
			t.Errorf("parseVec(%q): expected %v, got %v", tc.input, tc.expected, got)
		}
	}
}
