package model

import "testing"

func TestParseCandidate(t *testing.T) {
	tests := []struct {
		raw, name, details string
	}{
		{"1. Nestlé || Food and beverages, Switzerland", "Nestlé", "Food and beverages, Switzerland"},
		{"- Bayer || Pharmaceuticals, Germany", "Bayer", "Pharmaceuticals, Germany"},
		{"3M || Conglomerate, United States", "3M", "Conglomerate, United States"},
		{"10) Shell||Energy", "Shell", "Energy"},
		{"Siemens", "Siemens", ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			c := ParseCandidate(tt.raw)
			if c.Name != tt.name {
				t.Errorf("name = %q, want %q", c.Name, tt.name)
			}
			if c.Details != tt.details {
				t.Errorf("details = %q, want %q", c.Details, tt.details)
			}
			if c.Raw != tt.raw {
				t.Errorf("raw = %q, want %q", c.Raw, tt.raw)
			}
		})
	}
}
