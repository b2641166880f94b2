// Package pokedex builds the formatted text panels shown by the terminal
// client. Each view fetches its records through [pokeapi.Client], lays the
// content out with the render package, and writes finished panels to the
// configured output.
package pokedex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/render"
)

// Layout constants shared by the standard-width views.
const (
	spriteGap     = " │ "
	defaultSprite = 50
	minSprite     = 20
	maxSprite     = 80
)

// Dex renders Pokédex views.
type Dex struct {
	api         *pokeapi.Client
	out         io.Writer
	spriteWidth int
	color       bool
	logger      *slog.Logger
}

// Option configures a [Dex].
type Option func(*Dex)

// WithOutput directs panel output to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Dex) {
		d.out = w
	}
}

// WithSpriteWidth sets the entry panel sprite width. Values outside the
// renderable range are clamped.
func WithSpriteWidth(w int) Option {
	return func(d *Dex) {
		d.spriteWidth = min(max(w, minSprite), maxSprite)
	}
}

// WithColor toggles ANSI color output.
func WithColor(enabled bool) Option {
	return func(d *Dex) {
		d.color = enabled
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dex) {
		d.logger = logger
	}
}

// New creates a [Dex] writing colored panels to stdout, modified by opts.
func New(api *pokeapi.Client, opts ...Option) *Dex {
	d := &Dex{
		api:         api,
		out:         os.Stdout,
		spriteWidth: defaultSprite,
		color:       true,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *Dex) print(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(d.out, line)
	}
}

func (d *Dex) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format+"\n", args...)
}

// colored wraps s in an SGR sequence when color output is enabled.
func (d *Dex) colored(code, s string) string {
	if !d.color {
		return s
	}

	return "\033[" + code + "m" + s + "\033[0m"
}

// typeCell formats a type name as an exactly-8-visible-character colored cell
// for move tables.
func (d *Dex) typeCell(typeName string) string {
	code, ok := gamedata.TypeColors[strings.ToLower(typeName)]
	if !ok {
		code = gamedata.DefaultColor
	}

	cell := strings.ToUpper(typeName)
	if len(cell) > 8 {
		cell = cell[:8]
	}

	return d.colored(code, fmt.Sprintf("%-8s", cell))
}

// categoryCell formats a damage class as an exactly-8-visible-character
// colored cell.
func (d *Dex) categoryCell(category string) string {
	code, ok := gamedata.CategoryColors[strings.ToLower(category)]
	if !ok {
		code = gamedata.DefaultColor
	}

	cell := category
	if len(cell) > 8 {
		cell = cell[:8]
	}

	return d.colored(code, fmt.Sprintf("%-8s", cell))
}

// typesLine joins a creature's types as " / "-separated colored uppercase
// names.
func (d *Dex) typesLine(types []pokeapi.TypeSlot) string {
	parts := make([]string, 0, len(types))
	for _, t := range types {
		code, ok := gamedata.TypeColors[t.Type.Name]
		if !ok {
			code = gamedata.DefaultColor
		}

		parts = append(parts, d.colored(code, strings.ToUpper(t.Type.Name)))
	}

	return strings.Join(parts, " / ")
}

// sprite fetches and renders a creature's sprite at the given width. Fetch
// failures degrade to the renderer's placeholder block.
func (d *Dex) sprite(ctx context.Context, p *pokeapi.Pokemon, width int) render.Block {
	data, err := d.api.SpriteBytes(ctx, p)
	if err != nil {
		d.logger.DebugContext(ctx, "sprite fetch failed",
			slog.String("name", p.Name),
			slog.Any("error", err),
		)

		return render.Sprite(nil, width)
	}

	return render.Sprite(data, width)
}
