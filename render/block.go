package render

import (
	"strings"
	"unicode/utf8"
)

// Block is a rectangular region of text: an ordered sequence of lines, each
// conceptually fitted to Width visible characters.
//
// Blocks are values; methods return modified copies and never mutate the
// receiver's line slice.
type Block struct {
	Lines []string
	Width int
}

// NewBlock creates a [Block] of the given width from the provided lines.
// Lines are stored as-is; call [Block.Normalize] to enforce the dimensions.
func NewBlock(width int, lines ...string) Block {
	return Block{Lines: append([]string(nil), lines...), Width: width}
}

// BlockFromString creates a [Block] by splitting s on newlines.
func BlockFromString(s string, width int) Block {
	return Block{Lines: strings.Split(s, "\n"), Width: width}
}

// Height returns the number of lines in the block.
func (b Block) Height() int {
	return len(b.Lines)
}

// String joins the block's lines with newlines.
func (b Block) String() string {
	return strings.Join(b.Lines, "\n")
}

// Normalize returns a copy of b with exactly height lines, each exactly width
// visible characters: lines are truncated and space-padded, missing lines are
// appended blank, and surplus lines are dropped. Overflow is truncation, not
// reflow. Normalizing an already-normalized block is a no-op.
func (b Block) Normalize(width, height int) Block {
	out := Block{Lines: make([]string, height), Width: width}

	for i := range height {
		if i < len(b.Lines) {
			out.Lines[i] = fit(b.Lines[i], width)
		} else {
			out.Lines[i] = strings.Repeat(" ", width)
		}
	}

	return out
}

// Wrap splits text into lines of at most width visible characters, breaking
// on whitespace. A single word longer than width is hard-cut into width-size
// chunks. Empty input yields a single empty line, never zero lines, so
// callers may index line 0 unconditionally.
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string

	current := ""

	for _, word := range words {
		// Words wider than the target get chunked; they can never pack.
		for VisibleWidth(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}

			head := truncVisible(word, width)
			if head == "" {
				// A rune wider than width still has to consume input.
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}

			lines = append(lines, head)
			word = word[len(head):]
		}

		switch {
		case current == "":
			current = word
		case VisibleWidth(current)+1+VisibleWidth(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
