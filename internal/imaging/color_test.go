package imaging

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"00ff00", color.RGBA{0, 255, 0, 255}, false},
		{"#00F", color.RGBA{0, 0, 255, 255}, false},
		{"#000000", color.RGBA{0, 0, 0, 255}, false},
		{"#ffffff00", color.RGBA{0, 0, 0, 0}, false},
		{"#ff000080", color.RGBA{128, 0, 0, 128}, false},
		{" #FFFFFF ", color.RGBA{255, 255, 255, 255}, false},
		{"", color.RGBA{}, true},
		{"#ff00", color.RGBA{}, true},
		{"#gg0000", color.RGBA{}, true},
		{"#ff0000zz", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMustColor_FallsBack(t *testing.T) {
	if got := mustColor("nope", "#00ff00"); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("fallback: got %v", got)
	}
	if got := mustColor("", DefaultScoreColor); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("empty: got %v", got)
	}
}

func TestColorHex(t *testing.T) {
	if got := ColorHex(color.RGBA{255, 128, 0, 255}); got != "#ff8000" {
		t.Errorf("ColorHex: got %s", got)
	}
}
