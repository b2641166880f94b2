package pokedex

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/render"
)

// Display caps for the breeding panel.
const (
	eggMoveAnalysisCap = 10
	eggMoveDisplayCap  = 8
	groupSampleCap     = 8
)

// Compatibility is the outcome of an egg-group compatibility check.
type Compatibility struct {
	Compatible   bool
	Reason       string
	SharedGroups []string
}

// EggMoveSource pairs an inheritable egg move with the parents able to pass
// it down.
type EggMoveSource struct {
	Name   string
	Source string
}

// Breed prints the breeding compatibility analysis for two creatures: egg
// groups, offspring, inheritable egg moves, and group member samples.
func (d *Dex) Breed(ctx context.Context, name1, name2 string) error {
	b1, err := d.api.Bundle(ctx, name1)
	if err != nil {
		return err
	}

	b2, err := d.api.Bundle(ctx, name2)
	if err != nil {
		return err
	}

	d.print(d.breedingPanel(ctx, b1, b2))

	return nil
}

// CheckCompatibility applies the egg-group breeding rules: members of the
// no-eggs-discovered group never breed, Ditto breeds with anything except
// another Ditto, and everything else needs a shared egg group.
func CheckCompatibility(groups1, groups2 []string) Compatibility {
	if slices.Contains(groups1, "no-eggs-discovered") || slices.Contains(groups2, "no-eggs-discovered") {
		return Compatibility{
			Reason: "One or both Pokémon cannot breed (No Eggs Discovered group)",
		}
	}

	ditto1 := slices.Contains(groups1, "ditto")
	ditto2 := slices.Contains(groups2, "ditto")

	switch {
	case ditto1 && ditto2:
		return Compatibility{Reason: "Ditto cannot breed with another Ditto"}
	case ditto1 || ditto2:
		return Compatibility{
			Compatible:   true,
			Reason:       "Ditto can breed with any breedable Pokémon",
			SharedGroups: []string{"ditto"},
		}
	}

	var shared []string
	for _, g := range groups1 {
		if slices.Contains(groups2, g) {
			shared = append(shared, g)
		}
	}

	if len(shared) == 0 {
		return Compatibility{Reason: "No shared egg groups"}
	}

	return Compatibility{Compatible: true, Reason: "Shared egg groups", SharedGroups: shared}
}

// Offspring determines the resulting species: the non-Ditto parent when
// Ditto is involved, otherwise the female parent's line.
func Offspring(name1, name2 string, groups1, groups2 []string) (species, rule string) {
	switch {
	case slices.Contains(groups1, "ditto"):
		return name2, "Ditto breeding - offspring is non-Ditto parent"
	case slices.Contains(groups2, "ditto"):
		return name1, "Ditto breeding - offspring is non-Ditto parent"
	default:
		return name1 + " or " + name2, "Offspring species depends on female parent"
	}
}

func (d *Dex) breedingPanel(ctx context.Context, b1, b2 *pokeapi.Bundle) []string {
	f := render.NewFrame(render.DefaultInterior)

	name1 := gamedata.DisplayName(b1.Pokemon.Name)
	name2 := gamedata.DisplayName(b2.Pokemon.Name)

	groups1 := eggGroupNames(b1.Species)
	groups2 := eggGroupNames(b2.Species)

	compat := CheckCompatibility(groups1, groups2)

	lines := f.Header(fmt.Sprintf("%s × %s BREEDING ANALYSIS", name1, name2))

	status := "COMPATIBILITY: Not Compatible"
	if compat.Compatible {
		status = "COMPATIBILITY: Compatible"
	}

	lines = append(lines, f.Line(status), f.Line("REASON: "+compat.Reason), f.Blank())

	if !compat.Compatible {
		lines = append(lines, f.Line("BREEDING SUGGESTIONS:"))
		lines = append(lines, f.Line(fmt.Sprintf("%s is in: %s", name1, joinGroupNames(groups1))))
		lines = append(lines, f.Line(fmt.Sprintf("%s is in: %s", name2, joinGroupNames(groups2))))
		lines = append(lines, f.Blank())
		lines = append(lines, f.Line("Try using Ditto, or find Pokémon that share egg groups!"))

		return append(lines, f.Bottom())
	}

	lines = append(lines, f.Line("SHARED EGG GROUPS: "+joinGroupNames(compat.SharedGroups)))
	lines = append(lines, f.Line(fmt.Sprintf("%s EGG GROUPS: %s", name1, joinGroupNames(groups1))))
	lines = append(lines, f.Line(fmt.Sprintf("%s EGG GROUPS: %s", name2, joinGroupNames(groups2))))
	lines = append(lines, f.Blank())

	species, rule := Offspring(name1, name2, groups1, groups2)
	offspringBase := b1
	if slices.Contains(groups1, "ditto") {
		offspringBase = b2
	}

	lines = append(lines, f.Line("OFFSPRING: "+species), f.Line("RULE: "+rule), f.Blank())

	lines = append(lines, f.Section("Egg moves", func() []string {
		return d.eggMoveLines(ctx, f, b1, b2, offspringBase)
	})...)

	lines = append(lines, f.Section("Egg group connections", func() []string {
		return d.groupConnectionLines(ctx, f, compat.SharedGroups)
	})...)

	lines = append(lines, f.Line("BREEDING TIPS:"))
	for _, tip := range []string{
		"• Egg moves are inherited from the father (Gen 1 - Gen 5)",
		"• Egg moves are inherited from either parent (Gen 6+)",
		"• Use 'moves gen X egg' command to see specific egg moves",
		"• Ditto can breed with any non-legendary, breedable Pokémon",
		"• Offspring will be the lowest evolution of the female parent's line",
	} {
		lines = append(lines, f.Line(tip))
	}

	return append(lines, f.Bottom())
}

func (d *Dex) eggMoveLines(ctx context.Context, f render.Frame, b1, b2, offspring *pokeapi.Bundle) []string {
	moves := d.InheritableEggMoves(ctx, b1.Pokemon, b2.Pokemon, offspring.Pokemon.Name)
	if len(moves) == 0 {
		return []string{
			f.Line(fmt.Sprintf("%s cannot learn moves through breeding",
				gamedata.DisplayName(offspring.Pokemon.Name))),
			f.Blank(),
		}
	}

	lines := []string{f.Line("POSSIBLE EGG MOVES:")}

	for i, m := range moves {
		if i == eggMoveDisplayCap {
			break
		}

		lines = append(lines, f.Line(fmt.Sprintf("• %-25s (from: %s)",
			truncate(m.Name, 25), truncate(m.Source, 40))))
	}

	if extra := len(moves) - eggMoveDisplayCap; extra > 0 {
		lines = append(lines, f.Line(fmt.Sprintf("... and %d more potential egg moves", extra)))
	}

	return append(lines, f.Blank())
}

// InheritableEggMoves lists the offspring species' egg moves and which of the
// two parents can pass each one down. Moves neither parent learns are marked
// as needing chain breeding.
func (d *Dex) InheritableEggMoves(ctx context.Context, parent1, parent2 *pokeapi.Pokemon, offspringName string) []EggMoveSource {
	offspring, err := d.api.Pokemon(ctx, offspringName)
	if err != nil {
		d.logger.DebugContext(ctx, "offspring lookup failed",
			slog.String("name", offspringName),
			slog.Any("error", err),
		)

		return nil
	}

	moves1 := moveNameSet(parent1)
	moves2 := moveNameSet(parent2)

	var out []EggMoveSource

	for _, entry := range offspring.Moves {
		if len(out) == eggMoveAnalysisCap {
			break
		}

		isEggMove := slices.ContainsFunc(entry.VersionGroupDetails, func(vgd pokeapi.VersionGroupDetail) bool {
			return vgd.MoveLearnMethod.Name == "egg"
		})
		if !isEggMove {
			continue
		}

		var sources []string
		if _, ok := moves1[entry.Move.Name]; ok {
			sources = append(sources, gamedata.DisplayName(parent1.Name))
		}

		if _, ok := moves2[entry.Move.Name]; ok {
			sources = append(sources, gamedata.DisplayName(parent2.Name))
		}

		source := "Chain breeding required"
		if len(sources) > 0 {
			source = strings.Join(sources, " or ")
		}

		out = append(out, EggMoveSource{
			Name:   gamedata.DisplayName(entry.Move.Name),
			Source: source,
		})
	}

	return out
}

func (d *Dex) groupConnectionLines(ctx context.Context, f render.Frame, shared []string) []string {
	lines := []string{f.Line("EGG GROUP CONNECTIONS:")}

	shown := 0
	for _, group := range shared {
		if shown == 2 {
			break
		}

		eg, err := d.api.EggGroup(ctx, group)
		if err != nil || len(eg.PokemonSpecies) == 0 {
			continue
		}

		shown++

		sample := make([]string, 0, groupSampleCap)
		for i, sp := range eg.PokemonSpecies {
			if i == groupSampleCap {
				break
			}

			sample = append(sample, gamedata.DisplayName(sp.Name))
		}

		text := fmt.Sprintf("%s Group: %s", gamedata.DisplayName(group), strings.Join(sample, ", "))
		if extra := len(eg.PokemonSpecies) - groupSampleCap; extra > 0 {
			text += fmt.Sprintf("... (+%d more)", extra)
		}

		for _, wrapped := range render.Wrap(text, f.Interior) {
			lines = append(lines, f.Line(wrapped))
		}
	}

	if shown == 0 {
		return nil
	}

	return append(lines, f.Blank())
}

func eggGroupNames(s *pokeapi.Species) []string {
	names := make([]string, 0, len(s.EggGroups))
	for _, g := range s.EggGroups {
		names = append(names, g.Name)
	}

	return names
}

func joinGroupNames(groups []string) string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = gamedata.DisplayName(g)
	}

	return strings.Join(names, ", ")
}

func moveNameSet(p *pokeapi.Pokemon) map[string]struct{} {
	set := make(map[string]struct{}, len(p.Moves))
	for _, m := range p.Moves {
		set[m.Move.Name] = struct{}{}
	}

	return set
}
