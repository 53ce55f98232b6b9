package tikz

import (
	"regexp"
	"strings"
)

// Identifier keeps only ASCII letters and digits of text.
// The result may be empty; callers choose their own fallback.
func Identifier(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EscapeUnderscore escapes underscores for literal LaTeX text.
func EscapeUnderscore(text string) string {
	return strings.ReplaceAll(text, "_", `\_`)
}

var indexedVarRe = regexp.MustCompile(`^([a-zA-Z]+)_?(\d+)$`)

// FormatEdgeLabel renders an edge label. Labels shaped like indexed
// variables ("x_12", "w3") become math subscripts ("$x_{12}$"); anything
// else is grouped literal text with underscores turned into spaces.
func FormatEdgeLabel(label string) string {
	if m := indexedVarRe.FindStringSubmatch(strings.TrimSpace(label)); m != nil {
		return "$" + m[1] + "_{" + m[2] + "}$"
	}
	return "{" + strings.ReplaceAll(label, "_", " ") + "}"
}
