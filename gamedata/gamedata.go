// Package gamedata holds the immutable lookup tables the Pokédex views work
// from: display colors, stat vocabulary, nature effects, and the mapping
// between generations, game versions, and API version groups.
//
// Everything here is read-only configuration data. Nothing in the package
// performs I/O or keeps state.
package gamedata

import (
	"fmt"
	"strings"
)

// TypeColors maps a creature type name to its ANSI SGR color code.
var TypeColors = map[string]string{
	"normal":   "37",
	"fire":     "91",
	"water":    "94",
	"electric": "93",
	"grass":    "92",
	"ice":      "96",
	"fighting": "31",
	"poison":   "95",
	"ground":   "33",
	"flying":   "36",
	"psychic":  "35",
	"bug":      "32",
	"rock":     "33",
	"ghost":    "35",
	"dragon":   "34",
	"dark":     "90",
	"steel":    "37",
	"fairy":    "95",
}

// CategoryColors maps a move damage class to its ANSI SGR color code.
var CategoryColors = map[string]string{
	"physical": "91",
	"special":  "94",
	"status":   "93",
}

// DefaultColor is the SGR code used for unrecognized types and categories.
const DefaultColor = "37"

// Stat pairs an API stat key with its display name.
type Stat struct {
	Key  string
	Name string
}

// Stats lists the six base stats in canonical display order.
var Stats = []Stat{
	{Key: "hp", Name: "HP"},
	{Key: "attack", Name: "Attack"},
	{Key: "defense", Name: "Defense"},
	{Key: "special-attack", Name: "Sp. Atk"},
	{Key: "special-defense", Name: "Sp. Def"},
	{Key: "speed", Name: "Speed"},
}

// StatName returns the display name for an API stat key, falling back to the
// key itself.
func StatName(key string) string {
	for _, s := range Stats {
		if s.Key == key {
			return s.Name
		}
	}

	return key
}

// Nature describes which stat a nature boosts and which it reduces.
type Nature struct {
	Name    string
	Boosts  string
	Reduces string
}

// Natures lists every non-neutral nature. Order matters: [OptimalNature]
// scans it front to back, so ties resolve deterministically.
var Natures = []Nature{
	{Name: "Adamant", Boosts: "attack", Reduces: "special-attack"},
	{Name: "Bold", Boosts: "defense", Reduces: "attack"},
	{Name: "Brave", Boosts: "attack", Reduces: "speed"},
	{Name: "Calm", Boosts: "special-defense", Reduces: "attack"},
	{Name: "Careful", Boosts: "special-defense", Reduces: "special-attack"},
	{Name: "Hasty", Boosts: "speed", Reduces: "defense"},
	{Name: "Impish", Boosts: "defense", Reduces: "special-attack"},
	{Name: "Jolly", Boosts: "speed", Reduces: "special-attack"},
	{Name: "Lax", Boosts: "defense", Reduces: "special-defense"},
	{Name: "Lonely", Boosts: "attack", Reduces: "defense"},
	{Name: "Mild", Boosts: "special-attack", Reduces: "defense"},
	{Name: "Modest", Boosts: "special-attack", Reduces: "attack"},
	{Name: "Naive", Boosts: "speed", Reduces: "special-defense"},
	{Name: "Naughty", Boosts: "attack", Reduces: "special-defense"},
	{Name: "Quiet", Boosts: "special-attack", Reduces: "speed"},
	{Name: "Rash", Boosts: "special-attack", Reduces: "special-defense"},
	{Name: "Relaxed", Boosts: "defense", Reduces: "speed"},
	{Name: "Sassy", Boosts: "special-defense", Reduces: "speed"},
	{Name: "Timid", Boosts: "speed", Reduces: "attack"},
}

// OptimalNature suggests a nature for the given base stats: one that boosts
// the highest non-HP stat and reduces the lowest. When no nature matches both
// ends, any nature boosting the highest stat is suggested; with nothing to
// optimize the neutral Hardy is returned.
func OptimalNature(stats map[string]int) string {
	highest, lowest := "", ""

	for _, s := range Stats {
		if s.Key == "hp" {
			continue
		}

		v, ok := stats[s.Key]
		if !ok {
			continue
		}

		if highest == "" || v > stats[highest] {
			highest = s.Key
		}

		if lowest == "" || v < stats[lowest] {
			lowest = s.Key
		}
	}

	if highest == "" {
		return "Hardy (Neutral)"
	}

	for _, n := range Natures {
		if n.Boosts == highest && n.Reduces == lowest {
			return describeNature(n)
		}
	}

	for _, n := range Natures {
		if n.Boosts == highest {
			return describeNature(n)
		}
	}

	return "Hardy (Neutral)"
}

func describeNature(n Nature) string {
	return fmt.Sprintf("%s (+%s, -%s)", n.Name, DisplayName(n.Boosts), DisplayName(n.Reduces))
}

// DisplayName converts an API slug like "special-attack" or "route-104" into
// its human form ("Special Attack", "Route 104").
func DisplayName(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}

		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}
