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

// locationRowCap bounds the encounter table before the summary line.
const locationRowCap = 25

// EncounterRow is one row of the encounter location table.
type EncounterRow struct {
	Location string
	Area     string
	Method   string
	Levels   string
	Chance   int
}

// Locations prints where a creature can be encountered, filtered to a
// generation or one game of it.
func (d *Dex) Locations(ctx context.Context, p *pokeapi.Pokemon, generation int, game string) error {
	rows, label, err := d.encounterRows(ctx, p, generation, game)
	if err != nil {
		return err
	}

	f := render.NewFrame(render.DefaultInterior)

	lines := f.Header(fmt.Sprintf("%s - %s LOCATIONS",
		strings.ToUpper(p.Name), strings.ToUpper(label)))

	if len(rows) == 0 {
		lines = append(lines, f.Line("No encounter locations found for "+label))
	} else {
		formatted := make([]string, len(rows))
		for i, r := range rows {
			formatted[i] = fmt.Sprintf("%-25s %-20s %-15s %-8s %-6s",
				truncate(r.Location, 25), truncate(r.Area, 20),
				truncate(r.Method, 15), truncate(r.Levels, 8),
				fmt.Sprintf("%d%%", r.Chance))
		}

		lines = append(lines, f.Table("ENCOUNTER LOCATIONS",
			fmt.Sprintf("%-25s %-20s %-15s %-8s %-6s",
				"LOCATION", "AREA", "METHOD", "LEVEL", "CHANCE"),
			formatted, locationRowCap, "locations")...)
	}

	lines = append(lines, f.Bottom())
	d.print(lines)

	return nil
}

func (d *Dex) encounterRows(ctx context.Context, p *pokeapi.Pokemon, generation int, game string) ([]EncounterRow, string, error) {
	groups, label := gamedata.VersionGroups(generation, game)

	encounters, err := d.api.EncounterAreas(ctx, p)
	if err != nil {
		return nil, label, err
	}

	var rows []EncounterRow

	for _, enc := range encounters {
		location := d.locationOfArea(ctx, enc.LocationArea)

		for _, vd := range enc.VersionDetails {
			group := gamedata.VersionGroupForVersion(vd.Version.Name)
			if !slices.Contains(groups, group) {
				continue
			}

			for _, detail := range vd.EncounterDetails {
				levels := fmt.Sprintf("Lv. %d", detail.MinLevel)
				if detail.MinLevel != detail.MaxLevel {
					levels = fmt.Sprintf("Lv. %d-%d", detail.MinLevel, detail.MaxLevel)
				}

				rows = append(rows, EncounterRow{
					Location: location,
					Area:     gamedata.DisplayName(enc.LocationArea.Name),
					Method:   gamedata.DisplayName(detail.Method.Name),
					Levels:   levels,
					Chance:   detail.Chance,
				})
			}
		}
	}

	slices.SortStableFunc(rows, func(a, b EncounterRow) int {
		if c := strings.Compare(a.Location, b.Location); c != 0 {
			return c
		}

		return strings.Compare(a.Area, b.Area)
	})

	return dedupeRows(rows), label, nil
}

// locationOfArea resolves an area's parent location display name, degrading
// to "Unknown Location" when either lookup fails.
func (d *Dex) locationOfArea(ctx context.Context, area pokeapi.NamedRef) string {
	la, err := d.api.LocationArea(ctx, area.Name)
	if err != nil {
		d.logger.DebugContext(ctx, "area lookup failed",
			slog.String("area", area.Name),
			slog.Any("error", err),
		)

		return "Unknown Location"
	}

	loc, err := d.api.Location(ctx, la.Location.Name)
	if err != nil {
		return "Unknown Location"
	}

	return gamedata.DisplayName(loc.Name)
}

func dedupeRows(rows []EncounterRow) []EncounterRow {
	seen := make(map[EncounterRow]struct{}, len(rows))

	out := rows[:0]
	for _, r := range rows {
		key := r
		key.Chance = 0

		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		out = append(out, r)
	}

	return out
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit]
	}

	return s
}
