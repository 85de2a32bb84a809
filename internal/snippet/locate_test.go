package snippet

import (
	"reflect"
	"testing"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		needle   string
		expected []int
	}{
		{
			name:     "single match",
			lines:    []string{"alpha", "beta BEGIN here", "gamma"},
			needle:   "BEGIN",
			expected: []int{1},
		},
		{
			name:     "no match",
			lines:    []string{"alpha", "beta", "gamma"},
			needle:   "BEGIN",
			expected: nil,
		},
		{
			name:     "multiple matches in order",
			lines:    []string{"x END", "y", "z END", "END"},
			needle:   "END",
			expected: []int{0, 2, 3},
		},
		{
			name:     "needle twice on one line counts once",
			lines:    []string{"END and END again", "other"},
			needle:   "END",
			expected: []int{0},
		},
		{
			name:     "case sensitive",
			lines:    []string{"begin", "BEGIN"},
			needle:   "BEGIN",
			expected: []int{1},
		},
		{
			name:     "empty input",
			lines:    nil,
			needle:   "x",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Locate(tt.lines, tt.needle)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Locate(%v, %q) = %v, want %v", tt.lines, tt.needle, got, tt.expected)
			}
		})
	}
}
