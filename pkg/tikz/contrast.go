package tikz

import (
	"strconv"
	"strings"
)

// Ink colors returned by Contrast.
const (
	InkBlack = "black"
	InkWhite = "white"
)

// Contrast returns the ink ("black" or "white") that stays legible on a
// background of the given "r,g,b" color, using YIQ perceived brightness.
// Empty or malformed input yields black.
func Contrast(rgb string) string {
	r, g, b, ok := ParseRGB(rgb)
	if !ok {
		return InkBlack
	}
	if float64(r*299+g*587+b*114)/1000 < 128 {
		return InkWhite
	}
	return InkBlack
}

// ParseRGB splits an "r,g,b" string into its components.
// Spaces around components are allowed; range is not checked.
func ParseRGB(rgb string) (r, g, b int, ok bool) {
	if rgb == "" {
		return 0, 0, 0, false
	}
	parts := strings.Split(rgb, ",")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var vals [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], true
}
