package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// StripANSI removes ANSI escape sequences from s, leaving only the visible
// characters.
func StripANSI(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s))

	inEscape := false

	for _, r := range s {
		if r == '\x1b' {
			inEscape = true

			continue
		}

		if inEscape {
			// CSI sequences end on the first alphabetic byte.
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}

			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// VisibleWidth returns the terminal display width of s, excluding ANSI escape
// sequences. This is the only width measurement used by the package.
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// fit truncates s to at most width visible characters and pads it with spaces
// to exactly width. Escape sequences are preserved but never counted.
func fit(s string, width int) string {
	s = truncVisible(s, width)

	if pad := width - VisibleWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}

	return s
}

// center centers s within width, truncating first if it is too wide. The
// result always has exactly width visible characters.
func center(s string, width int) string {
	s = truncVisible(s, width)

	gap := width - VisibleWidth(s)
	if gap <= 0 {
		return s
	}

	left := gap / 2

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

// truncVisible cuts s after width visible characters. Escape sequences before
// the cut survive; a wide rune that would straddle the boundary is dropped.
func truncVisible(s string, width int) string {
	if VisibleWidth(s) <= width {
		return s
	}

	var sb strings.Builder

	inEscape := false
	used := 0

	for _, r := range s {
		if r == '\x1b' {
			inEscape = true

			sb.WriteRune(r)

			continue
		}

		if inEscape {
			sb.WriteRune(r)

			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}

			continue
		}

		w := runewidth.RuneWidth(r)
		if used+w > width {
			break
		}

		used += w

		sb.WriteRune(r)
	}

	return sb.String()
}
