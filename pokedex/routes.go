package pokedex

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/render"
)

// routeColWidth is the per-creature column width in the encounter listing.
const routeColWidth = 55

// Route looks up a location area by a loose query ("route 104",
// "eterna-forest", "victory road") and prints the creatures found there,
// optionally filtered to one game version.
func (d *Dex) Route(ctx context.Context, query, game string) error {
	index, err := d.api.LocationAreaIndex(ctx)
	if err != nil {
		return err
	}

	normalized := pokeapi.Normalize(query)

	matches := matchAreas(index, normalized)
	if len(matches) == 0 {
		d.printf("No locations found matching %q", query)
		d.suggestAreas(index, normalized)

		return nil
	}

	best := bestAreaMatch(matches, normalized)
	if best == "" {
		d.showAreaOptions(matches)

		return nil
	}

	area, err := d.api.LocationArea(ctx, best)
	if err != nil {
		return err
	}

	d.print(d.areaPanel(area, game))

	return nil
}

// matchAreas collects index entries matching the query: exact name, either
// substring direction, or a bare route number against "route-N" areas.
func matchAreas(index []pokeapi.NamedRef, query string) []string {
	routeNum := strings.TrimPrefix(query, "route-")
	isRouteNum := routeNum != "" && isDigits(routeNum)

	var matches []string
	for _, ref := range index {
		name := ref.Name

		switch {
		case name == query:
			matches = append(matches, name)
		case strings.Contains(name, query) || strings.Contains(query, name):
			matches = append(matches, name)
		case isRouteNum && strings.Contains(name, "route-"+routeNum):
			matches = append(matches, name)
		}
	}

	return matches
}

// bestAreaMatch resolves multiple matches: an exact name wins, then a name
// starting with the query. With neither, a single match wins by default and
// several return "" so the caller can list the options.
func bestAreaMatch(matches []string, query string) string {
	if len(matches) == 1 {
		return matches[0]
	}

	for _, m := range matches {
		if m == query {
			return m
		}
	}

	for _, m := range matches {
		if strings.HasPrefix(m, query) {
			return m
		}
	}

	return ""
}

func (d *Dex) showAreaOptions(matches []string) {
	f := render.NewFrame(render.DefaultInterior)

	lines := f.Header("LOCATION OPTIONS")
	for i, name := range matches {
		if i == 10 {
			break
		}

		lines = append(lines, f.Line(fmt.Sprintf("%2d. %s", i+1, gamedata.DisplayName(name))))
	}

	lines = append(lines, f.Blank(), f.Line("Try being more specific with your search!"), f.Bottom())
	d.print(lines)
}

// suggestAreas offers near-miss area names when nothing matched: areas
// sharing any query word, or containing the query's digits.
func (d *Dex) suggestAreas(index []pokeapi.NamedRef, query string) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}

		return -1
	}, query)

	words := strings.Split(query, "-")

	var suggestions []string
	for _, ref := range index {
		matched := false
		for _, w := range words {
			if w != "" && strings.Contains(ref.Name, w) {
				matched = true

				break
			}
		}

		if !matched && digits != "" && strings.Contains(ref.Name, digits) {
			matched = true
		}

		if matched {
			suggestions = append(suggestions, ref.Name)
			if len(suggestions) == 10 {
				break
			}
		}
	}

	if len(suggestions) == 0 {
		return
	}

	d.printf("Did you mean one of these?")
	for _, s := range suggestions {
		d.printf("  • %s", gamedata.DisplayName(s))
	}
}

// areaEncounter aggregates one creature's encounter slots in an area.
type areaEncounter struct {
	name    string
	methods []encounterMethod
}

type encounterMethod struct {
	method string
	levels string
	chance int
}

func (d *Dex) areaPanel(area *pokeapi.LocationArea, game string) []string {
	f := render.NewFrame(render.DefaultInterior)

	title := gamedata.DisplayName(area.Name) + " - Pokémon Encounters"
	if game != "" {
		title += fmt.Sprintf(" (%s)", gamedata.DisplayName(game))
	}

	lines := f.Header(title)

	encounters := groupAreaEncounters(area, game)
	if len(encounters) == 0 {
		lines = append(lines, f.Line("No Pokémon found"))

		return append(lines, f.Bottom())
	}

	lines = append(lines, f.Blank())

	for i := 0; i < len(encounters); i += 2 {
		left := encounterColumn(encounters[i], routeColWidth)

		var right []string
		if i+1 < len(encounters) {
			right = encounterColumn(encounters[i+1], routeColWidth)
		}

		rows := render.SideBySide("   ",
			render.NewBlock(routeColWidth, left...),
			render.NewBlock(routeColWidth, right...))
		lines = append(lines, f.Wrap(rows)...)

		if i+2 < len(encounters) {
			lines = append(lines, f.Blank())
		}
	}

	lines = append(lines, f.Blank(), f.Bottom())

	return lines
}

// groupAreaEncounters flattens the area's encounter list per creature,
// keeping one entry per method and level range with its best chance, sorted
// by chance.
func groupAreaEncounters(area *pokeapi.LocationArea, game string) []areaEncounter {
	byName := make(map[string]map[string]encounterMethod)

	for _, enc := range area.PokemonEncounters {
		for _, vd := range enc.VersionDetails {
			if game != "" && vd.Version.Name != pokeapi.Normalize(game) {
				continue
			}

			for _, detail := range vd.EncounterDetails {
				m := encounterMethod{
					method: gamedata.DisplayName(detail.Method.Name),
					levels: fmt.Sprintf("%d-%d", detail.MinLevel, detail.MaxLevel),
					chance: detail.Chance,
				}

				key := m.method + "/" + m.levels

				methods, ok := byName[enc.Pokemon.Name]
				if !ok {
					methods = make(map[string]encounterMethod)
					byName[enc.Pokemon.Name] = methods
				}

				if prev, ok := methods[key]; !ok || m.chance > prev.chance {
					methods[key] = m
				}
			}
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]areaEncounter, 0, len(names))
	for _, name := range names {
		methods := make([]encounterMethod, 0, len(byName[name]))
		for _, m := range byName[name] {
			methods = append(methods, m)
		}

		sort.Slice(methods, func(i, j int) bool {
			return methods[i].chance > methods[j].chance
		})

		out = append(out, areaEncounter{name: name, methods: methods})
	}

	return out
}

func encounterColumn(enc areaEncounter, width int) []string {
	lines := []string{gamedata.DisplayName(enc.name)}

	for _, m := range enc.methods {
		line := fmt.Sprintf("%s: %d%%, Lv.%s", m.method, m.chance, m.levels)
		if len(line) > width {
			line = fmt.Sprintf("%s: %d%%", m.method, m.chance)
		}

		lines = append(lines, truncate(line, width))
	}

	return lines
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return s != ""
}
