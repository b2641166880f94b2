package gamedata

import (
	"fmt"
	"strings"
)

// genVersionGroups maps a generation to its version groups. The "all" key
// covers the whole generation; the remaining keys select a single game
// pairing by its version-group slug.
var genVersionGroups = map[int]map[string][]string{
	1: {
		"all":      {"red-blue", "yellow"},
		"red-blue": {"red-blue"},
		"yellow":   {"yellow"},
	},
	2: {
		"all":         {"gold-silver", "crystal"},
		"gold-silver": {"gold-silver"},
		"crystal":     {"crystal"},
	},
	3: {
		"all":               {"ruby-sapphire", "emerald", "firered-leafgreen"},
		"ruby-sapphire":     {"ruby-sapphire"},
		"emerald":           {"emerald"},
		"firered-leafgreen": {"firered-leafgreen"},
	},
	4: {
		"all":                  {"diamond-pearl", "platinum", "heartgold-soulsilver"},
		"diamond-pearl":        {"diamond-pearl"},
		"platinum":             {"platinum"},
		"heartgold-soulsilver": {"heartgold-soulsilver"},
	},
	5: {
		"all":             {"black-white", "black-2-white-2"},
		"black-white":     {"black-white"},
		"black-2-white-2": {"black-2-white-2"},
	},
	6: {
		"all":                       {"x-y", "omega-ruby-alpha-sapphire"},
		"x-y":                       {"x-y"},
		"omega-ruby-alpha-sapphire": {"omega-ruby-alpha-sapphire"},
	},
	7: {
		"all":                  {"sun-moon", "ultra-sun-ultra-moon"},
		"sun-moon":             {"sun-moon"},
		"ultra-sun-ultra-moon": {"ultra-sun-ultra-moon"},
	},
	8: {
		"all":          {"sword-shield"},
		"sword-shield": {"sword-shield"},
	},
	9: {
		"all":            {"scarlet-violet"},
		"scarlet-violet": {"scarlet-violet"},
	},
}

// versionGroupByVersion maps an individual game version to its version group,
// used when filtering encounter data which is keyed by version rather than
// version group.
var versionGroupByVersion = map[string]string{
	"red": "red-blue", "blue": "red-blue", "yellow": "yellow",
	"gold": "gold-silver", "silver": "gold-silver", "crystal": "crystal",
	"ruby": "ruby-sapphire", "sapphire": "ruby-sapphire", "emerald": "emerald",
	"firered": "firered-leafgreen", "leafgreen": "firered-leafgreen",
	"diamond": "diamond-pearl", "pearl": "diamond-pearl", "platinum": "platinum",
	"heartgold": "heartgold-soulsilver", "soulsilver": "heartgold-soulsilver",
	"black": "black-white", "white": "black-white",
	"black-2": "black-2-white-2", "white-2": "black-2-white-2",
	"x": "x-y", "y": "x-y",
	"omega-ruby": "omega-ruby-alpha-sapphire", "alpha-sapphire": "omega-ruby-alpha-sapphire",
	"sun": "sun-moon", "moon": "sun-moon",
	"ultra-sun": "ultra-sun-ultra-moon", "ultra-moon": "ultra-sun-ultra-moon",
	"sword": "sword-shield", "shield": "sword-shield",
	"scarlet": "scarlet-violet", "violet": "scarlet-violet",
}

// romanNumerals converts the roman suffix of API generation names.
var romanNumerals = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5,
	"vi": 6, "vii": 7, "viii": 8, "ix": 9,
}

// MaxGeneration is the newest generation the tables cover.
const MaxGeneration = 9

// VersionGroups resolves a generation and optional game selector to the set
// of version groups to filter by, plus a human label for the selection. An
// unrecognized game falls back to the whole generation.
func VersionGroups(generation int, game string) ([]string, string) {
	gen, ok := genVersionGroups[generation]
	if !ok {
		return nil, fmt.Sprintf("Generation %d", generation)
	}

	if game != "" {
		if groups, ok := gen[game]; ok {
			return groups, DisplayName(game)
		}
	}

	return gen["all"], fmt.Sprintf("Generation %d", generation)
}

// VersionGroupForVersion maps a single game version name ("emerald",
// "soulsilver") to its version group. Unknown versions map to themselves.
func VersionGroupForVersion(version string) string {
	if group, ok := versionGroupByVersion[version]; ok {
		return group
	}

	return version
}

// KnownVersion reports whether name is an individual game version.
func KnownVersion(name string) bool {
	_, ok := versionGroupByVersion[name]

	return ok
}

// GenerationNumber parses an API generation name like "generation-iii" into
// its number. Unknown names report a number past every real generation so
// callers filtering by "introduced no later than" exclude them.
func GenerationNumber(apiName string) int {
	idx := strings.LastIndex(apiName, "-")
	if idx < 0 {
		return MaxGeneration + 1
	}

	if n, ok := romanNumerals[strings.ToLower(apiName[idx+1:])]; ok {
		return n
	}

	return MaxGeneration + 1
}

// GameVersions lists the individual game versions per generation, for the
// "games" help panel.
func GameVersions() map[int][]string {
	out := make(map[int][]string, MaxGeneration)

	for version, group := range versionGroupByVersion {
		for gen, groups := range genVersionGroups {
			for _, g := range groups["all"] {
				if g == group {
					out[gen] = append(out[gen], version)
				}
			}
		}
	}

	return out
}
