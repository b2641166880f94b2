package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbgaribay/poketerm/render"
)

func TestBlockNormalize(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		block  render.Block
		width  int
		height int
		want   []string
	}{
		"pad short lines": {
			block:  render.NewBlock(5, "ab"),
			width:  5,
			height: 2,
			want:   []string{"ab   ", "     "},
		},
		"truncate long lines": {
			block:  render.NewBlock(3, "abcdef"),
			width:  3,
			height: 1,
			want:   []string{"abc"},
		},
		"drop surplus lines": {
			block:  render.NewBlock(2, "a", "b", "c"),
			width:  2,
			height: 2,
			want:   []string{"a ", "b "},
		},
		"ansi escapes excluded from width": {
			block:  render.NewBlock(6, "\x1b[91mab\x1b[0m"),
			width:  6,
			height: 1,
			want:   []string{"\x1b[91mab\x1b[0m    "},
		},
		"empty block": {
			block:  render.Block{},
			width:  4,
			height: 2,
			want:   []string{"    ", "    "},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := tc.block.Normalize(tc.width, tc.height)
			assert.Equal(t, tc.want, got.Lines)

			for _, line := range got.Lines {
				assert.Equal(t, tc.width, render.VisibleWidth(line))
			}
		})
	}
}

func TestBlockNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	b := render.NewBlock(10, "one", "two words", "a slightly longer line")

	once := b.Normalize(10, 5)
	twice := once.Normalize(10, 5)

	assert.Equal(t, once, twice)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		text  string
		width int
		want  []string
	}{
		"empty yields one empty line": {
			text:  "",
			width: 10,
			want:  []string{""},
		},
		"whitespace only yields one empty line": {
			text:  "   \t  ",
			width: 10,
			want:  []string{""},
		},
		"fits on one line": {
			text:  "a small mouse",
			width: 20,
			want:  []string{"a small mouse"},
		},
		"breaks at word boundary": {
			text:  "when several of these gather their electricity can build",
			width: 20,
			want: []string{
				"when several of",
				"these gather their",
				"electricity can",
				"build",
			},
		},
		"exact fit": {
			text:  "ab cd",
			width: 5,
			want:  []string{"ab cd"},
		},
		"long word hard cut into chunks": {
			text:  "abcdefghij",
			width: 4,
			want:  []string{"abcd", "efgh", "ij"},
		},
		"long word after packed line": {
			text:  "ok abcdefgh",
			width: 4,
			want:  []string{"ok", "abcd", "efgh"},
		},
		"wide runes chunk at rune boundaries": {
			text:  "日本語",
			width: 2,
			want:  []string{"日", "本", "語"},
		},
		"wide rune at width one still advances": {
			text:  "日本",
			width: 1,
			want:  []string{"日", "本"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := render.Wrap(tc.text, tc.width)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestWrapNeverExceedsWidth(t *testing.T) {
	t.Parallel()

	text := "Whenever Pikachu comes across something new it blasts it with a jolt of electricity"

	for width := 1; width <= 40; width++ {
		lines := render.Wrap(text, width)
		require.NotEmpty(t, lines)

		for _, line := range lines {
			assert.LessOrEqual(t, render.VisibleWidth(line), width, "width %d", width)
		}
	}
}

func TestWrapRoundTrip(t *testing.T) {
	t.Parallel()

	text := "  an  oddly   spaced	description of a creature  "
	lines := render.Wrap(text, 12)

	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(lines, " "))
}
