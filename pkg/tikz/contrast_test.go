package tikz

import (
	"fmt"
	"testing"
)

func TestContrast(t *testing.T) {
	tests := []struct {
		name string
		rgb  string
		want string
	}{
		{"empty", "", InkBlack},
		{"black background", "0,0,0", InkWhite},
		{"white background", "255,255,255", InkBlack},
		{"node blue", "147,197,253", InkBlack},
		{"edge gray", "74,85,104", InkWhite},
		{"error red", "239,68,68", InkWhite},
		{"success green", "34,197,94", InkBlack},
		{"threshold is black", "128,128,128", InkBlack},
		{"just below threshold", "127,127,127", InkWhite},
		{"spaces allowed", " 0, 0 , 0 ", InkWhite},
		{"two components", "1,2", InkBlack},
		{"four components", "1,2,3,4", InkBlack},
		{"not numbers", "a,b,c", InkBlack},
		{"hex notation", "#000000", InkBlack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contrast(tt.rgb); got != tt.want {
				t.Errorf("Contrast(%q) = %q, want %q", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestContrastDeterministic(t *testing.T) {
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				rgb := fmt.Sprintf("%d,%d,%d", r, g, b)
				first := Contrast(rgb)
				if first != InkBlack && first != InkWhite {
					t.Fatalf("Contrast(%q) = %q, want black or white", rgb, first)
				}
				if again := Contrast(rgb); again != first {
					t.Fatalf("Contrast(%q) not deterministic: %q then %q", rgb, first, again)
				}
			}
		}
	}
}

func TestParseRGB(t *testing.T) {
	r, g, b, ok := ParseRGB("1, 2,3")
	if !ok {
		t.Fatal("ParseRGB() ok = false, want true")
	}
	if r != 1 || g != 2 || b != 3 {
		t.Errorf("ParseRGB() = %d,%d,%d, want 1,2,3", r, g, b)
	}

	if _, _, _, ok := ParseRGB("1,,3"); ok {
		t.Error("ParseRGB() should reject an empty component")
	}
}
