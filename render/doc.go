// Package render converts sprite bitmaps into terminal text and composes
// fixed-width bordered panels.
//
// The two halves are the sprite renderer and the layout compositor. [Sprite]
// maps image bytes onto a grid of brightness glyphs. The compositor assembles
// rectangular [Block] values into bordered output through [Frame]: blocks are
// normalized to exact visible dimensions with [Block.Normalize], joined into
// columns with [SideBySide], and wrapped in border glyphs line by line.
//
// Every width decision in the package goes through [VisibleWidth], which
// excludes ANSI escape sequences. Mixing escape codes into padding arithmetic
// is how borders drift; routing all measurement through one function keeps
// them exact.
//
// The package is a pure transform. It performs no I/O, holds no state between
// calls, and never returns an error: missing or undecodable sprites become
// placeholder blocks of the expected dimensions, and a panic while building a
// panel section is downgraded to an inline notice by [Section].
package render
