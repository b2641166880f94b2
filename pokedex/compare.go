package pokedex

import (
	"context"
	"fmt"
	"strings"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/render"
)

// compareSpriteWidth is the per-side sprite width in the comparison panel.
const compareSpriteWidth = 50

// Compare prints a side-by-side comparison panel for two creatures: sprites,
// basic info, stat bars, types, and abilities.
func (d *Dex) Compare(ctx context.Context, name1, name2 string) error {
	p1, err := d.api.Pokemon(ctx, name1)
	if err != nil {
		return err
	}

	p2, err := d.api.Pokemon(ctx, name2)
	if err != nil {
		return err
	}

	d.print(d.comparePanel(ctx, p1, p2))

	return nil
}

func (d *Dex) comparePanel(ctx context.Context, p1, p2 *pokeapi.Pokemon) []string {
	f := render.NewFrame(render.DefaultInterior)

	name1 := gamedata.DisplayName(p1.Name)
	name2 := gamedata.DisplayName(p2.Name)

	lines := f.Header(fmt.Sprintf("%s VS %s - COMPARISON", name1, name2))

	lines = append(lines, f.Section("Sprites", func() []string {
		return d.compareSprites(ctx, f, p1, p2, name1, name2)
	})...)

	lines = append(lines, f.Center("BASIC INFORMATION"), f.Separator())
	lines = append(lines,
		f.Center(fmt.Sprintf("Pokédex ID:      #%-8d                        #%-8d", p1.ID, p2.ID)),
		f.Center(fmt.Sprintf("Height:          %-8.1fm                     %-8.1fm",
			float64(p1.Height)/10, float64(p2.Height)/10)),
		f.Center(fmt.Sprintf("Weight:          %-8.1fkg                     %-8.1fkg",
			float64(p1.Weight)/10, float64(p2.Weight)/10)),
		f.Blank(),
	)

	lines = append(lines, f.Center("BASE STATS"), f.Separator())
	lines = append(lines, f.Section("Base stats", func() []string {
		return d.compareStats(f, p1, p2)
	})...)

	lines = append(lines, f.Center("TYPES"), f.Separator())
	lines = append(lines, f.Center(fmt.Sprintf("%s     VS     %s",
		centerCell(typeSummary(p1.Types), 45), centerCell(typeSummary(p2.Types), 45))))
	lines = append(lines, f.Blank())

	lines = append(lines, f.Center("ABILITIES"), f.Separator())
	lines = append(lines, d.compareAbilities(f, p1, p2)...)
	lines = append(lines, f.Blank(), f.Bottom())

	return lines
}

func (d *Dex) compareSprites(ctx context.Context, f render.Frame, p1, p2 *pokeapi.Pokemon, name1, name2 string) []string {
	s1 := d.sprite(ctx, p1, compareSpriteWidth)
	s2 := d.sprite(ctx, p2, compareSpriteWidth)

	height := max(s1.Height(), s2.Height(), render.PlaceholderHeight)
	s1 = s1.Normalize(compareSpriteWidth, height)
	s2 = s2.Normalize(compareSpriteWidth, height)

	lines := []string{
		f.Blank(),
		f.Center(fmt.Sprintf("%s   %s",
			centerCell(name1, compareSpriteWidth), centerCell(name2, compareSpriteWidth))),
		f.Blank(),
	}

	// The middle sprite row carries the VS marker; every other row keeps the
	// plain gap so the columns stay aligned.
	for i := range height {
		gap := "    "
		if i == height/2 {
			gap = " VS "
		}

		lines = append(lines, f.Center(s1.Lines[i]+gap+s2.Lines[i]))
	}

	return append(lines, f.Blank())
}

func (d *Dex) compareStats(f render.Frame, p1, p2 *pokeapi.Pokemon) []string {
	stats1 := statsByKey(p1)
	stats2 := statsByKey(p2)

	var lines []string

	total1, total2 := 0, 0
	for _, s := range gamedata.Stats {
		v1, v2 := stats1[s.Key], stats2[s.Key]
		total1 += v1
		total2 += v2

		lines = append(lines, f.Center(render.StatRow(s.Name, v1, v2)))
	}

	lines = append(lines, f.Blank())
	lines = append(lines, f.Center(render.StatRow("TOTAL", total1, total2)))
	lines = append(lines, f.Blank())

	return lines
}

func (d *Dex) compareAbilities(f render.Frame, p1, p2 *pokeapi.Pokemon) []string {
	names1 := abilityNames(p1)
	names2 := abilityNames(p2)

	rows := max(len(names1), len(names2), 1)

	lines := make([]string, 0, rows)
	for i := range rows {
		a1, a2 := "", ""
		if i < len(names1) {
			a1 = names1[i]
		}

		if i < len(names2) {
			a2 = names2[i]
		}

		lines = append(lines, f.Center(fmt.Sprintf("%s     VS     %s",
			centerCell(a1, 45), centerCell(a2, 45))))
	}

	return lines
}

func abilityNames(p *pokeapi.Pokemon) []string {
	names := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		name := gamedata.DisplayName(a.Ability.Name)
		if a.IsHidden {
			name += " (Hidden)"
		}

		names = append(names, name)
	}

	return names
}

func typeSummary(types []pokeapi.TypeSlot) string {
	if len(types) == 0 {
		return "No types"
	}

	names := make([]string, len(types))
	for i, t := range types {
		names[i] = gamedata.DisplayName(t.Type.Name)
	}

	return strings.Join(names, " / ")
}

// centerCell centers s in a fixed-width plain text cell.
func centerCell(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}

	left := pad / 2

	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
