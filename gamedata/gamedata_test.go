package gamedata_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbgaribay/poketerm/gamedata"
)

func TestOptimalNature(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		stats map[string]int
		want  string
	}{
		"attack high speed low picks brave": {
			stats: map[string]int{
				"hp": 100, "attack": 130, "defense": 80,
				"special-attack": 60, "special-defense": 80, "speed": 50,
			},
			want: "Brave (+Attack, -Speed)",
		},
		"special attacker picks modest": {
			stats: map[string]int{
				"hp": 60, "attack": 50, "defense": 70,
				"special-attack": 120, "special-defense": 80, "speed": 90,
			},
			want: "Modest (+Special Attack, -Attack)",
		},
		"hp never considered": {
			stats: map[string]int{
				"hp": 255, "attack": 10, "defense": 10,
				"special-attack": 10, "special-defense": 10, "speed": 5,
			},
			// Highest non-HP stat is attack (first in stat order).
			want: "Brave (+Attack, -Speed)",
		},
		"no stats yields neutral": {
			stats: map[string]int{},
			want:  "Hardy (Neutral)",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, gamedata.OptimalNature(tc.stats))
		})
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		slug string
		want string
	}{
		"simple":       {slug: "emerald", want: "Emerald"},
		"hyphenated":   {slug: "special-attack", want: "Special Attack"},
		"route number": {slug: "route-104", want: "Route 104"},
		"empty":        {slug: "", want: ""},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, gamedata.DisplayName(tc.slug))
		})
	}
}

func TestVersionGroups(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		generation int
		game       string
		wantGroups []string
		wantLabel  string
	}{
		"generation only": {
			generation: 3,
			game:       "",
			wantGroups: []string{"ruby-sapphire", "emerald", "firered-leafgreen"},
			wantLabel:  "Generation 3",
		},
		"specific game": {
			generation: 3,
			game:       "emerald",
			wantGroups: []string{"emerald"},
			wantLabel:  "Emerald",
		},
		"unknown game falls back to generation": {
			generation: 3,
			game:       "platinum",
			wantGroups: []string{"ruby-sapphire", "emerald", "firered-leafgreen"},
			wantLabel:  "Generation 3",
		},
		"unknown generation": {
			generation: 42,
			game:       "",
			wantGroups: nil,
			wantLabel:  "Generation 42",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			groups, label := gamedata.VersionGroups(tc.generation, tc.game)
			assert.Equal(t, tc.wantGroups, groups)
			assert.Equal(t, tc.wantLabel, label)
		})
	}
}

func TestVersionGroupForVersion(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ruby-sapphire", gamedata.VersionGroupForVersion("sapphire"))
	assert.Equal(t, "heartgold-soulsilver", gamedata.VersionGroupForVersion("soulsilver"))
	assert.Equal(t, "mystery-dungeon", gamedata.VersionGroupForVersion("mystery-dungeon"))
}

func TestGenerationNumber(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		name string
		want int
	}{
		"gen one":   {name: "generation-i", want: 1},
		"gen four":  {name: "generation-iv", want: 4},
		"gen nine":  {name: "generation-ix", want: 9},
		"unknown":   {name: "generation-xx", want: gamedata.MaxGeneration + 1},
		"malformed": {name: "whatever", want: gamedata.MaxGeneration + 1},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, gamedata.GenerationNumber(tc.name))
		})
	}
}

func TestGameVersionsCoverEveryGeneration(t *testing.T) {
	t.Parallel()

	games := gamedata.GameVersions()

	for gen := 1; gen <= gamedata.MaxGeneration; gen++ {
		require.NotEmpty(t, games[gen], "generation %d", gen)
	}

	assert.Contains(t, games[3], "emerald")
	assert.Contains(t, games[9], "violet")
}
