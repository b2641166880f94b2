package render

import (
	"fmt"
	"math"
	"strings"
)

// Border glyphs shared by every frame.
const (
	borderVertical   = "║"
	borderHorizontal = "═"
	ruleChar         = "─"
)

// DefaultInterior is the standard panel content width.
const DefaultInterior = 113

// WideInterior is the content width used by evolution chain panels, which
// place up to three full-size sprites side by side.
const WideInterior = 218

// Frame wraps content lines in box-drawing borders at a fixed interior
// content width. It is a pure transform: every emitted line, stripped of
// escape sequences, is exactly Interior+4 characters wide regardless of the
// input.
type Frame struct {
	Interior int
}

// NewFrame returns a [Frame] with the given interior content width.
func NewFrame(interior int) Frame {
	if interior < 1 {
		interior = 1
	}

	return Frame{Interior: interior}
}

// Top returns the frame's opening border row.
func (f Frame) Top() string {
	return "╔" + strings.Repeat(borderHorizontal, f.Interior+2) + "╗"
}

// Separator returns a full-width divider row.
func (f Frame) Separator() string {
	return "╠" + strings.Repeat(borderHorizontal, f.Interior+2) + "╣"
}

// Bottom returns the frame's closing border row.
func (f Frame) Bottom() string {
	return "╚" + strings.Repeat(borderHorizontal, f.Interior+2) + "╝"
}

// Line pads or truncates s to the interior width and affixes the side
// borders.
func (f Frame) Line(s string) string {
	return borderVertical + " " + fit(s, f.Interior) + " " + borderVertical
}

// Center centers s within the interior width and affixes the side borders.
func (f Frame) Center(s string) string {
	return borderVertical + " " + center(s, f.Interior) + " " + borderVertical
}

// Blank returns an empty content row.
func (f Frame) Blank() string {
	return f.Line("")
}

// Wrap runs every line through [Frame.Line].
func (f Frame) Wrap(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = f.Line(line)
	}

	return out
}

// Header returns the opening rows of a titled panel: top border, centered
// title, separator.
func (f Frame) Header(title string) []string {
	return []string{f.Top(), f.Center(title), f.Separator()}
}

// Table lays out tabular content inside the frame: a title, a rule, an
// optional column header with its own rule, then at most rowCap data rows.
// When rows exceed the cap, a single "... and N more" summary line replaces
// the remainder; noun names the things being counted.
func (f Frame) Table(title, header string, rows []string, rowCap int, noun string) []string {
	ruleWidth := min(f.Interior, 80)
	rule := strings.Repeat(ruleChar, ruleWidth)

	out := []string{f.Line(title + ":"), f.Line(rule)}

	if header != "" {
		out = append(out, f.Line(header), f.Line(rule))
	}

	shown := rows
	if rowCap > 0 && len(rows) > rowCap {
		shown = rows[:rowCap]
	}

	for _, row := range shown {
		out = append(out, f.Line(row))
	}

	if remaining := len(rows) - len(shown); remaining > 0 {
		out = append(out, f.Line(fmt.Sprintf("... and %d more %s", remaining, noun)))
	}

	return out
}

// SideBySide joins equal-width columns row by row with the literal gap string
// between them. Blocks are normalized to their declared widths and the
// tallest height first, so every returned row has identical visible width.
func SideBySide(gap string, blocks ...Block) []string {
	if len(blocks) == 0 {
		return nil
	}

	height := 0
	for _, b := range blocks {
		height = max(height, b.Height())
	}

	norm := make([]Block, len(blocks))
	for i, b := range blocks {
		norm[i] = b.Normalize(b.Width, height)
	}

	rows := make([]string, height)

	var sb strings.Builder

	for y := range height {
		sb.Reset()

		for i, b := range norm {
			if i > 0 {
				sb.WriteString(gap)
			}

			sb.WriteString(b.Lines[y])
		}

		rows[y] = sb.String()
	}

	return rows
}

// StatBarLength is the number of cells in a comparison stat bar.
const StatBarLength = 20

// StatBar renders value as a filled bar of length cells, scaled against
// maxValue. The filled count is round(value/maxValue*length).
func StatBar(value, maxValue, length int) string {
	if maxValue < 1 {
		maxValue = 1
	}

	filled := int(math.Round(float64(value) / float64(maxValue) * float64(length)))

	filled = max(filled, 0)
	filled = min(filled, length)

	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// StatMarkers returns the directional indicators for a compared pair: the
// marker points toward the larger value, and a tie marks both sides.
func StatMarkers(left, right int) (string, string) {
	switch {
	case left > right:
		return "►", " "
	case right > left:
		return " ", "◄"
	default:
		return "=", "="
	}
}

// StatRow formats one stat comparison line: name, markers, values, and a pair
// of [StatBarLength]-cell bars scaled to the larger value.
func StatRow(name string, left, right int) string {
	leftMark, rightMark := StatMarkers(left, right)
	scale := max(left, right, 1)

	return fmt.Sprintf("%8s: %s %3d [%s] VS [%s] %-3d %s",
		name, leftMark, left,
		StatBar(left, scale, StatBarLength),
		StatBar(right, scale, StatBarLength),
		right, rightMark)
}

// Section builds one panel section, downgrading a panic in build to a single
// inline notice line so one broken section cannot blank the whole panel. The
// notice is a raw line; callers composing bare column content normalize it
// along with the rest. Builders that emit bordered rows use [Frame.Section]
// so the notice stays bordered too.
func Section(name string, build func() []string) (lines []string) {
	defer func() {
		if r := recover(); r != nil {
			lines = []string{fmt.Sprintf("%s unavailable: %v", name, r)}
		}
	}()

	return build()
}

// Section is like the package-level [Section], for builders whose lines are
// already framed rows: the recovered notice is emitted through [Frame.Line]
// so it keeps the border and exact interior width.
func (f Frame) Section(name string, build func() []string) (lines []string) {
	defer func() {
		if r := recover(); r != nil {
			lines = []string{f.Line(fmt.Sprintf("%s unavailable: %v", name, r))}
		}
	}()

	return build()
}
