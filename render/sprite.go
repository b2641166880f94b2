package render

import (
	"bytes"
	"image"
	"math"
	"strings"

	// Register decoders for the sprite formats the API serves.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// GlyphRamp orders glyphs from darkest-looking to lightest-looking on screen.
// Doubled characters flatten the ramp so mid-tones do not band.
const GlyphRamp = "@@%%##**++==--::..  "

// heightFactor compensates for terminal glyphs being roughly twice as tall as
// they are wide.
const heightFactor = 0.45

// PlaceholderHeight is the height of the blocks returned when a sprite is
// missing or cannot be decoded, chosen to match a typical rendered sprite so
// surrounding layout does not shift.
const PlaceholderHeight = 20

// Sprite renders image bytes as a [Block] of brightness glyphs, width columns
// wide. The image is composited onto a white background first, so fully
// transparent pixels come out as the lightest glyph rather than black.
//
// Sprite never fails: nil or empty data yields the "No sprite available"
// placeholder, and undecodable data yields the "Failed to render sprite"
// placeholder. Both have the same dimensions as a normal sprite block.
func Sprite(data []byte, width int) Block {
	if width < 1 {
		width = 1
	}

	if len(data) == 0 {
		return placeholder("No sprite available", width)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return placeholder("Failed to render sprite", width)
	}

	return spriteFromImage(img, width)
}

func spriteFromImage(img image.Image, width int) Block {
	bounds := img.Bounds()

	srcW := bounds.Dx()
	srcH := bounds.Dy()

	if srcW < 1 || srcH < 1 {
		return placeholder("Failed to render sprite", width)
	}

	aspect := float64(srcH) / float64(srcW)

	height := int(math.Round(float64(width) * aspect * heightFactor))
	if height < 1 {
		height = 1
	}

	// Flatten transparency onto white before any sampling.
	flat := image.NewRGBA(image.Rect(0, 0, srcW, srcH))
	draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Over)

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), flat, flat.Bounds(), draw.Src, nil)

	lines := make([]string, height)

	var sb strings.Builder

	for y := range height {
		sb.Reset()
		sb.Grow(width)

		for x := range width {
			px := scaled.RGBAAt(x, y)
			sb.WriteByte(glyphFor(luminance(px.R, px.G, px.B)))
		}

		lines[y] = sb.String()
	}

	return Block{Lines: lines, Width: width}
}

// luminance converts an opaque RGB pixel to perceived brightness in [0, 255].
func luminance(r, g, b uint8) uint8 {
	return uint8(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}

// glyphFor maps brightness p to the ramp via floor(p/255 * (len-1)), which
// stays within [0, len-1] for the full input range.
func glyphFor(p uint8) byte {
	return GlyphRamp[int(p)*(len(GlyphRamp)-1)/255]
}

func placeholder(message string, width int) Block {
	return NewBlock(width, message).Normalize(width, PlaceholderHeight)
}
