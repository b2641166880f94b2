package pokedex

import (
	"context"
	"fmt"
	"strings"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/render"
)

// entryStatBarCells is the length of the small per-stat bar in the entry
// panel info column.
const entryStatBarCells = 15

// Entry fetches a creature by name or ID and prints its Pokédex entry panel:
// sprite on the left, basic info, abilities, description, and base stats on
// the right.
func (d *Dex) Entry(ctx context.Context, query string) (*pokeapi.Bundle, error) {
	b, err := d.api.Bundle(ctx, query)
	if err != nil {
		return nil, err
	}

	d.print(d.entryPanel(ctx, b))

	return b, nil
}

func (d *Dex) entryPanel(ctx context.Context, b *pokeapi.Bundle) []string {
	f := render.NewFrame(render.DefaultInterior)
	p := b.Pokemon

	infoWidth := f.Interior - render.VisibleWidth(spriteGap) - d.spriteWidth

	sprite := d.sprite(ctx, p, d.spriteWidth)

	info := render.NewBlock(infoWidth, d.infoColumn(b, infoWidth)...)
	height := max(sprite.Height(), info.Height(), render.PlaceholderHeight)
	sprite = sprite.Normalize(d.spriteWidth, height)
	info = info.Normalize(infoWidth, height)

	lines := f.Header("POKÉDEX ENTRY")
	lines = append(lines, f.Line(d.entryTitle(p, f.Interior)), f.Separator())
	lines = append(lines, f.Wrap(render.SideBySide(spriteGap, sprite, info))...)
	lines = append(lines, f.Bottom())

	return lines
}

// entryTitle builds the "#NNN - Name" row with the colored type list pushed
// against the right edge.
func (d *Dex) entryTitle(p *pokeapi.Pokemon, width int) string {
	left := fmt.Sprintf("#%03d - %s", p.ID, gamedata.DisplayName(p.Name))
	right := "Type: " + d.typesLine(p.Types)

	pad := width - render.VisibleWidth(left) - render.VisibleWidth(right)

	return left + strings.Repeat(" ", max(pad, 0)) + right
}

func (d *Dex) infoColumn(b *pokeapi.Bundle, width int) []string {
	p, s := b.Pokemon, b.Species

	var lines []string

	lines = append(lines, render.Section("Basic info", func() []string {
		out := render.Wrap(fmt.Sprintf("Height: %.1fm | Weight: %.1fkg",
			float64(p.Height)/10, float64(p.Weight)/10), width)
		out = append(out, render.Wrap("Egg Groups: "+joinDisplayNames(s.EggGroups), width)...)
		out = append(out, render.Wrap("Growth Rate: "+gamedata.DisplayName(s.GrowthRate.Name), width)...)

		return append(out, render.Wrap("Optimal Nature: "+gamedata.OptimalNature(statsByKey(p)), width)...)
	})...)
	lines = append(lines, "")

	lines = append(lines, "ABILITIES:")
	lines = append(lines, render.Section("Abilities", func() []string {
		return d.abilityLines(b, width)
	})...)
	lines = append(lines, "")

	lines = append(lines, "DESCRIPTION:")
	lines = append(lines, render.Section("Description", func() []string {
		return render.Wrap(pokeapi.EnglishFlavorText(s.FlavorTextEntries, "No description available."), width)
	})...)
	lines = append(lines, "")

	lines = append(lines, "BASE STATS:")
	lines = append(lines, render.Section("Base stats", func() []string {
		return statLines(p)
	})...)

	return lines
}

func (d *Dex) abilityLines(b *pokeapi.Bundle, width int) []string {
	if len(b.Abilities) == 0 {
		return []string{"No abilities available."}
	}

	var lines []string
	for _, a := range b.Abilities {
		desc := pokeapi.EnglishFlavorText(a.FlavorTextEntries, "No description available.")
		lines = append(lines, render.Wrap(gamedata.DisplayName(a.Name)+": "+desc, width)...)
	}

	return lines
}

func statLines(p *pokeapi.Pokemon) []string {
	byKey := statsByKey(p)

	lines := make([]string, 0, len(gamedata.Stats))
	for _, s := range gamedata.Stats {
		v := byKey[s.Key]
		filled := min(v/10, entryStatBarCells)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", entryStatBarCells-filled)
		lines = append(lines, fmt.Sprintf("  %-8s: %3d %s", s.Name, v, bar))
	}

	return lines
}

func statsByKey(p *pokeapi.Pokemon) map[string]int {
	byKey := make(map[string]int, len(p.Stats))
	for _, sv := range p.Stats {
		byKey[sv.Stat.Name] = sv.BaseStat
	}

	return byKey
}

func joinDisplayNames(refs []pokeapi.NamedRef) string {
	if len(refs) == 0 {
		return "Unknown"
	}

	names := make([]string, len(refs))
	for i, r := range refs {
		names[i] = gamedata.DisplayName(r.Name)
	}

	return strings.Join(names, ", ")
}
