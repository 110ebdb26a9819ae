package cli

import (
	"testing"
)

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"drawing.png", "drawing_traced_points.png"},
		{"scan.jpg", "scan_traced_points.jpg"},
		{"dir/plan.png", "dir/plan_traced_points.png"},
		{"noext", "noext_traced_points"},
	}
	for _, tt := range tests {
		if got := defaultOutputPath(tt.input); got != tt.want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMaskOutputPath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"drawing_traced_points.png", "drawing_traced_points_mask.png"},
		{"drawing_traced_points.jpg", "drawing_traced_points_mask.png"},
		{"custom.png", "custom_mask.png"},
		{"dir/plan_traced_points.png", "dir/plan_traced_points_mask.png"},
	}
	for _, tt := range tests {
		if got := maskOutputPath(tt.output); got != tt.want {
			t.Errorf("maskOutputPath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}
