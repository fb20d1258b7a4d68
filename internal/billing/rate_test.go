package billing

import "testing"

func TestParse_Range(t *testing.T) {
	tests := []struct {
		input    string
		min, max float64
	}{
		{"$70-$85", 70, 85},
		{"$70-85", 70, 85},
		{"70-90", 70, 90},
		{"$70 - $85/hr", 70, 85},
		{"$72.50-$85.25", 72.50, 85.25},
	}

	for _, tt := range tests {
		r := Parse(tt.input)
		if r.Min == nil || r.Max == nil {
			t.Fatalf("Parse(%q) = %+v, want both bounds set", tt.input, r)
		}
		if *r.Min != tt.min {
			t.Errorf("Parse(%q) min = %v, want %v", tt.input, *r.Min, tt.min)
		}
		if *r.Max != tt.max {
			t.Errorf("Parse(%q) max = %v, want %v", tt.input, *r.Max, tt.max)
		}
	}
}

func TestParse_SingleValueIsUpperBoundOnly(t *testing.T) {
	tests := []struct {
		input string
		max   float64
	}{
		{"$80 MAX", 80},
		{"$75", 75},
		{"80", 80},
		{"$63/hr", 63},
	}

	for _, tt := range tests {
		r := Parse(tt.input)
		if r.Min != nil {
			t.Errorf("Parse(%q) min = %v, want nil: single value must never set min", tt.input, *r.Min)
		}
		if r.Max == nil {
			t.Fatalf("Parse(%q) max = nil, want %v", tt.input, tt.max)
		}
		if *r.Max != tt.max {
			t.Errorf("Parse(%q) max = %v, want %v", tt.input, *r.Max, tt.max)
		}
	}
}

func TestParse_NoNumbers(t *testing.T) {
	for _, input := range []string{"", "   ", "no numbers here", "TBD"} {
		r := Parse(input)
		if r.Min != nil || r.Max != nil {
			t.Errorf("Parse(%q) = %+v, want empty range", input, r)
		}
	}
}
