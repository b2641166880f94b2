package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbgaribay/poketerm/render"
)

// encodePNG renders a w x h image filled with c into PNG bytes.
func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := range h {
		for x := range w {
			img.Set(x, y, c)
		}
	}

	var buf bytes.Buffer

	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestSpriteDimensions(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		srcW       int
		srcH       int
		width      int
		wantHeight int
	}{
		"square at width 40": {
			srcW:  96,
			srcH:  96,
			width: 40,
			// round(40 * 1.0 * 0.45)
			wantHeight: 18,
		},
		"half-height source": {
			srcW:  100,
			srcH:  50,
			width: 40,
			// round(40 * 0.5 * 0.45)
			wantHeight: 9,
		},
		"width 50 square": {
			srcW:       96,
			srcH:       96,
			width:      50,
			wantHeight: 23,
		},
		"tiny width still renders": {
			srcW:       96,
			srcH:       96,
			width:      1,
			wantHeight: 1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data := encodePNG(t, tc.srcW, tc.srcH, color.NRGBA{R: 120, G: 120, B: 120, A: 255})

			got := render.Sprite(data, tc.width)

			require.Len(t, got.Lines, tc.wantHeight)

			for _, line := range got.Lines {
				assert.Len(t, line, tc.width)
			}
		})
	}
}

func TestSpriteFullyTransparentRendersBrightest(t *testing.T) {
	t.Parallel()

	data := encodePNG(t, 32, 32, color.NRGBA{})

	got := render.Sprite(data, 20)

	brightest := string(render.GlyphRamp[len(render.GlyphRamp)-1])
	for _, line := range got.Lines {
		assert.Equal(t, strings.Repeat(brightest, 20), line)
	}
}

func TestSpriteBrightnessExtremes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		fill color.Color
		want byte
	}{
		"black maps to darkest glyph": {
			fill: color.NRGBA{A: 255},
			want: render.GlyphRamp[0],
		},
		"white maps to lightest glyph": {
			fill: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
			want: render.GlyphRamp[len(render.GlyphRamp)-1],
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data := encodePNG(t, 16, 16, tc.fill)

			got := render.Sprite(data, 10)

			require.NotEmpty(t, got.Lines)

			for _, line := range got.Lines {
				for i := range len(line) {
					assert.Equal(t, string(tc.want), string(line[i]))
				}
			}
		})
	}
}

func TestSpritePlaceholders(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data []byte
		want string
	}{
		"nil data": {
			data: nil,
			want: "No sprite available",
		},
		"undecodable data": {
			data: []byte("not an image"),
			want: "Failed to render sprite",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := render.Sprite(tc.data, 50)

			require.Len(t, got.Lines, render.PlaceholderHeight)
			assert.Equal(t, tc.want, strings.TrimRight(got.Lines[0], " "))

			for _, line := range got.Lines {
				assert.Equal(t, 50, render.VisibleWidth(line))
			}
		})
	}
}
