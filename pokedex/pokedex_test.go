package pokedex_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/pokedex"
	"github.com/jbgaribay/poketerm/render"
)

func intp(v int) *int { return &v }

func spritePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 96, 96))
	for y := range 96 {
		for x := range 96 {
			img.Set(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

// newTestDex wires a Dex to a fixture server, capturing panel output.
func newTestDex(t *testing.T, routes map[string]string) (*pokedex.Dex, *bytes.Buffer, *httptest.Server) {
	t.Helper()

	sprite := spritePNG(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".png") {
			_, _ = w.Write(sprite)

			return
		}

		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	var out bytes.Buffer

	api := pokeapi.NewClient(pokeapi.WithBaseURL(srv.URL))
	d := pokedex.New(api, pokedex.WithOutput(&out), pokedex.WithColor(false))

	return d, &out, srv
}

func pikachuFixtures(srvURL string) map[string]string {
	return map[string]string{
		"/pokemon/pikachu": `{
			"id": 25, "name": "pikachu", "height": 4, "weight": 60,
			"types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
			"stats": [
				{"base_stat": 35, "stat": {"name": "hp", "url": ""}},
				{"base_stat": 55, "stat": {"name": "attack", "url": ""}},
				{"base_stat": 40, "stat": {"name": "defense", "url": ""}},
				{"base_stat": 50, "stat": {"name": "special-attack", "url": ""}},
				{"base_stat": 50, "stat": {"name": "special-defense", "url": ""}},
				{"base_stat": 90, "stat": {"name": "speed", "url": ""}}
			],
			"abilities": [{"ability": {"name": "static", "url": "` + srvURL + `/ability/9"}, "is_hidden": false}],
			"moves": [],
			"sprites": {"front_default": "` + srvURL + `/sprites/25.png"},
			"species": {"name": "pikachu", "url": "` + srvURL + `/pokemon-species/25"}
		}`,
		"/pokemon-species/25": `{
			"name": "pikachu",
			"egg_groups": [{"name": "field", "url": ""}, {"name": "fairy", "url": ""}],
			"growth_rate": {"name": "medium-fast", "url": ""},
			"flavor_text_entries": [
				{"flavor_text": "It stores electricity\nin its cheeks.", "language": {"name": "en", "url": ""}}
			],
			"evolution_chain": {"url": "` + srvURL + `/evolution-chain/10"}
		}`,
		"/ability/9": `{
			"name": "static",
			"flavor_text_entries": [
				{"flavor_text": "Contact may paralyze.", "language": {"name": "en", "url": ""}}
			]
		}`,
	}
}

func TestEntryPanel(t *testing.T) {
	t.Parallel()

	routes := map[string]string{}
	d, out, srv := newTestDex(t, routes)

	for k, v := range pikachuFixtures(srv.URL) {
		routes[k] = v
	}

	b, err := d.Entry(t.Context(), "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, 25, b.Pokemon.ID)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.NotEmpty(t, lines)

	for i, line := range lines {
		assert.Equal(t, render.DefaultInterior+4, render.VisibleWidth(line), "line %d: %q", i, line)
	}

	text := out.String()
	assert.Contains(t, text, "POKÉDEX ENTRY")
	assert.Contains(t, text, "#025 - Pikachu")
	assert.Contains(t, text, "Type: ELECTRIC")
	assert.Contains(t, text, "Egg Groups: Field, Fairy")
	assert.Contains(t, text, "ABILITIES:")
	assert.Contains(t, text, "Static: Contact may paralyze.")
	assert.Contains(t, text, "It stores electricity in its cheeks.")
	assert.Contains(t, text, "Speed")
}

func TestComparePanel(t *testing.T) {
	t.Parallel()

	routes := map[string]string{}
	d, out, srv := newTestDex(t, routes)

	for k, v := range pikachuFixtures(srv.URL) {
		routes[k] = v
	}

	routes["/pokemon/raichu"] = `{
		"id": 26, "name": "raichu", "height": 8, "weight": 300,
		"types": [{"slot": 1, "type": {"name": "electric", "url": ""}}],
		"stats": [
			{"base_stat": 60, "stat": {"name": "hp", "url": ""}},
			{"base_stat": 90, "stat": {"name": "attack", "url": ""}},
			{"base_stat": 55, "stat": {"name": "defense", "url": ""}},
			{"base_stat": 90, "stat": {"name": "special-attack", "url": ""}},
			{"base_stat": 80, "stat": {"name": "special-defense", "url": ""}},
			{"base_stat": 110, "stat": {"name": "speed", "url": ""}}
		],
		"abilities": [{"ability": {"name": "static", "url": ""}, "is_hidden": false}],
		"moves": [],
		"sprites": {"front_default": "` + srv.URL + `/sprites/26.png"},
		"species": {"name": "raichu", "url": ""}
	}`

	require.NoError(t, d.Compare(t.Context(), "pikachu", "raichu"))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	for i, line := range lines {
		assert.Equal(t, render.DefaultInterior+4, render.VisibleWidth(line), "line %d: %q", i, line)
	}

	text := out.String()
	assert.Contains(t, text, "Pikachu VS Raichu - COMPARISON")
	assert.Contains(t, text, "BASE STATS")

	// Raichu wins every stat, so every marker points right.
	assert.Contains(t, text, "◄")
	assert.NotContains(t, text, "►")
}

func TestBuildLearnset(t *testing.T) {
	t.Parallel()

	d, _, _ := newTestDex(t, map[string]string{
		"/move/thunder-shock": `{
			"name": "thunder-shock", "power": 40, "accuracy": 100, "pp": 30,
			"type": {"name": "electric", "url": ""},
			"damage_class": {"name": "special", "url": ""},
			"generation": {"name": "generation-i", "url": ""}
		}`,
		"/move/volt-tackle": `{
			"name": "volt-tackle", "power": 120, "accuracy": 100, "pp": 15,
			"type": {"name": "electric", "url": ""},
			"damage_class": {"name": "physical", "url": ""},
			"generation": {"name": "generation-iii", "url": ""}
		}`,
	})

	p := &pokeapi.Pokemon{
		Name: "pikachu",
		Moves: []pokeapi.MoveEntry{
			{
				Move: pokeapi.NamedRef{Name: "thunder-shock"},
				VersionGroupDetails: []pokeapi.VersionGroupDetail{
					{
						LevelLearnedAt:  1,
						MoveLearnMethod: pokeapi.NamedRef{Name: "level-up"},
						VersionGroup:    pokeapi.NamedRef{Name: "red-blue"},
					},
					{
						// Duplicate from another gen 1 group, dropped by dedupe.
						LevelLearnedAt:  1,
						MoveLearnMethod: pokeapi.NamedRef{Name: "level-up"},
						VersionGroup:    pokeapi.NamedRef{Name: "yellow"},
					},
				},
			},
			{
				// Gen 3 move, excluded when filtering to gen 1.
				Move: pokeapi.NamedRef{Name: "volt-tackle"},
				VersionGroupDetails: []pokeapi.VersionGroupDetail{
					{
						MoveLearnMethod: pokeapi.NamedRef{Name: "egg"},
						VersionGroup:    pokeapi.NamedRef{Name: "emerald"},
					},
				},
			},
		},
	}

	gen1, err := d.BuildLearnset(t.Context(), p, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "Generation 1", gen1.Filter)
	require.Len(t, gen1.LevelUp, 1)
	assert.Equal(t, "Thunder Shock", gen1.LevelUp[0].Name)
	assert.Equal(t, 1, gen1.LevelUp[0].Level)
	assert.Empty(t, gen1.Egg)

	gen3, err := d.BuildLearnset(t.Context(), p, 3, "emerald")
	require.NoError(t, err)
	assert.Equal(t, "Emerald", gen3.Filter)
	require.Len(t, gen3.Egg, 1)
	assert.Equal(t, "Volt Tackle", gen3.Egg[0].Name)
	assert.Empty(t, gen3.LevelUp, "red-blue is not an emerald version group")
}

func TestLocations(t *testing.T) {
	t.Parallel()

	routes := map[string]string{}
	d, out, srv := newTestDex(t, routes)

	routes["/pokemon/25/encounters"] = `[
		{
			"location_area": {"name": "kanto-route-2-area", "url": ""},
			"version_details": [
				{
					"version": {"name": "red", "url": ""},
					"encounter_details": [
						{"method": {"name": "walk", "url": ""}, "min_level": 3, "max_level": 5, "chance": 45}
					]
				},
				{
					"version": {"name": "emerald", "url": ""},
					"encounter_details": [
						{"method": {"name": "walk", "url": ""}, "min_level": 10, "max_level": 10, "chance": 20}
					]
				}
			]
		}
	]`
	routes["/location-area/kanto-route-2-area"] = `{
		"name": "kanto-route-2-area",
		"location": {"name": "kanto-route-2", "url": ""},
		"pokemon_encounters": []
	}`
	routes["/location/kanto-route-2"] = `{"name": "kanto-route-2", "areas": []}`

	p := &pokeapi.Pokemon{
		ID:                     25,
		Name:                   "pikachu",
		LocationAreaEncounters: srv.URL + "/pokemon/25/encounters",
	}

	require.NoError(t, d.Locations(t.Context(), p, 1, ""))

	text := out.String()
	assert.Contains(t, text, "PIKACHU - GENERATION 1 LOCATIONS")
	assert.Contains(t, text, "Kanto Route 2")
	assert.Contains(t, text, "Lv. 3-5")
	assert.Contains(t, text, "45%")
	assert.NotContains(t, text, "Lv. 10", "emerald encounter is not gen 1")

	for i, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.Equal(t, render.DefaultInterior+4, render.VisibleWidth(line), "line %d: %q", i, line)
	}
}

func TestRouteMatching(t *testing.T) {
	t.Parallel()

	index := `{
		"count": 3, "next": null,
		"results": [
			{"name": "hoenn-route-104-area", "url": ""},
			{"name": "hoenn-route-110-area", "url": ""},
			{"name": "eterna-forest-area", "url": ""}
		]
	}`

	t.Run("unique route number match", func(t *testing.T) {
		t.Parallel()

		routes := map[string]string{"/location-area": index}
		d, out, _ := newTestDex(t, routes)

		routes["/location-area/hoenn-route-104-area"] = `{
			"name": "hoenn-route-104-area",
			"location": {"name": "hoenn-route-104", "url": ""},
			"pokemon_encounters": [
				{
					"pokemon": {"name": "poochyena", "url": ""},
					"version_details": [
						{
							"version": {"name": "emerald", "url": ""},
							"encounter_details": [
								{"method": {"name": "walk", "url": ""}, "min_level": 4, "max_level": 5, "chance": 40}
							]
						}
					]
				}
			]
		}`

		require.NoError(t, d.Route(t.Context(), "route 104", ""))

		text := out.String()
		assert.Contains(t, text, "Hoenn Route 104 Area - Pokémon Encounters")
		assert.Contains(t, text, "Poochyena")
		assert.Contains(t, text, "Walk: 40%, Lv.4-5")
	})

	t.Run("ambiguous query lists options", func(t *testing.T) {
		t.Parallel()

		d, out, _ := newTestDex(t, map[string]string{"/location-area": index})

		require.NoError(t, d.Route(t.Context(), "route 1", ""))

		text := out.String()
		assert.Contains(t, text, "LOCATION OPTIONS")
		assert.Contains(t, text, "Hoenn Route 104 Area")
		assert.Contains(t, text, "Hoenn Route 110 Area")
	})

	t.Run("game filter excludes other versions", func(t *testing.T) {
		t.Parallel()

		routes := map[string]string{"/location-area": index}
		d, out, _ := newTestDex(t, routes)

		routes["/location-area/eterna-forest-area"] = `{
			"name": "eterna-forest-area",
			"location": {"name": "eterna-forest", "url": ""},
			"pokemon_encounters": [
				{
					"pokemon": {"name": "buneary", "url": ""},
					"version_details": [
						{
							"version": {"name": "diamond", "url": ""},
							"encounter_details": [
								{"method": {"name": "walk", "url": ""}, "min_level": 10, "max_level": 12, "chance": 35}
							]
						}
					]
				}
			]
		}`

		require.NoError(t, d.Route(t.Context(), "eterna forest", "pearl"))

		assert.Contains(t, out.String(), "No Pokémon found")
	})

	t.Run("no match suggests alternatives", func(t *testing.T) {
		t.Parallel()

		d, out, _ := newTestDex(t, map[string]string{"/location-area": index})

		require.NoError(t, d.Route(t.Context(), "viridian woods", ""))

		assert.Contains(t, out.String(), "No locations found")
	})
}

func TestFlattenChain(t *testing.T) {
	t.Parallel()

	chain := &pokeapi.EvolutionChain{
		Chain: pokeapi.ChainLink{
			Species: pokeapi.NamedRef{Name: "bulbasaur"},
			EvolvesTo: []pokeapi.ChainLink{
				{
					Species: pokeapi.NamedRef{Name: "ivysaur"},
					EvolutionDetails: []pokeapi.EvolutionDetail{
						{Trigger: pokeapi.NamedRef{Name: "level-up"}, MinLevel: intp(16)},
					},
					EvolvesTo: []pokeapi.ChainLink{
						{
							Species: pokeapi.NamedRef{Name: "venusaur"},
							EvolutionDetails: []pokeapi.EvolutionDetail{
								{Trigger: pokeapi.NamedRef{Name: "level-up"}, MinLevel: intp(32)},
							},
						},
					},
				},
			},
		},
	}

	stages := pokedex.FlattenChain(chain)
	require.Len(t, stages, 3)

	assert.Equal(t, pokedex.EvoStage{Name: "bulbasaur", Stage: 1}, stages[0])
	assert.Equal(t, pokedex.EvoStage{Name: "ivysaur", Stage: 2, Requirement: "LEVEL 16"}, stages[1])
	assert.Equal(t, pokedex.EvoStage{Name: "venusaur", Stage: 3, Requirement: "LEVEL 32"}, stages[2])
}

func TestFlattenChainRequirements(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		detail pokeapi.EvolutionDetail
		want   string
	}{
		"item": {
			detail: pokeapi.EvolutionDetail{
				Trigger: pokeapi.NamedRef{Name: "use-item"},
				Item:    &pokeapi.NamedRef{Name: "thunder-stone"},
			},
			want: "USE THUNDER STONE",
		},
		"trade": {
			detail: pokeapi.EvolutionDetail{Trigger: pokeapi.NamedRef{Name: "trade"}},
			want:   "TRADE",
		},
		"happiness": {
			detail: pokeapi.EvolutionDetail{
				Trigger:      pokeapi.NamedRef{Name: "level-up"},
				MinHappiness: intp(220),
			},
			want: "LEVEL UP Happiness 220",
		},
		"known move": {
			detail: pokeapi.EvolutionDetail{
				Trigger:   pokeapi.NamedRef{Name: "level-up"},
				KnownMove: &pokeapi.NamedRef{Name: "double-hit"},
			},
			want: "LEVEL UP Knows Double Hit",
		},
		"time of day": {
			detail: pokeapi.EvolutionDetail{
				Trigger:   pokeapi.NamedRef{Name: "level-up"},
				MinLevel:  intp(20),
				TimeOfDay: "night",
			},
			want: "LEVEL 20 Night time",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			chain := &pokeapi.EvolutionChain{
				Chain: pokeapi.ChainLink{
					Species: pokeapi.NamedRef{Name: "a"},
					EvolvesTo: []pokeapi.ChainLink{
						{
							Species:          pokeapi.NamedRef{Name: "b"},
							EvolutionDetails: []pokeapi.EvolutionDetail{tc.detail},
						},
					},
				},
			}

			stages := pokedex.FlattenChain(chain)
			require.Len(t, stages, 2)
			assert.Equal(t, tc.want, stages[1].Requirement)
		})
	}
}

func TestCheckCompatibility(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		groups1, groups2 []string
		wantCompatible   bool
		wantShared       []string
	}{
		"shared group": {
			groups1:        []string{"field", "fairy"},
			groups2:        []string{"field"},
			wantCompatible: true,
			wantShared:     []string{"field"},
		},
		"no shared group": {
			groups1: []string{"monster"},
			groups2: []string{"bug"},
		},
		"no eggs discovered": {
			groups1: []string{"no-eggs-discovered"},
			groups2: []string{"field"},
		},
		"ditto with anything": {
			groups1:        []string{"ditto"},
			groups2:        []string{"monster"},
			wantCompatible: true,
			wantShared:     []string{"ditto"},
		},
		"ditto with ditto": {
			groups1: []string{"ditto"},
			groups2: []string{"ditto"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := pokedex.CheckCompatibility(tc.groups1, tc.groups2)
			assert.Equal(t, tc.wantCompatible, got.Compatible)
			assert.Equal(t, tc.wantShared, got.SharedGroups)
		})
	}
}

func TestOffspring(t *testing.T) {
	t.Parallel()

	species, rule := pokedex.Offspring("Pikachu", "Ditto", []string{"field"}, []string{"ditto"})
	assert.Equal(t, "Pikachu", species)
	assert.Contains(t, rule, "non-Ditto parent")

	species, _ = pokedex.Offspring("Ditto", "Eevee", []string{"ditto"}, []string{"field"})
	assert.Equal(t, "Eevee", species)

	species, rule = pokedex.Offspring("Pikachu", "Marill", []string{"field"}, []string{"field"})
	assert.Equal(t, "Pikachu or Marill", species)
	assert.Contains(t, rule, "female parent")
}

func TestInheritableEggMoves(t *testing.T) {
	t.Parallel()

	d, _, _ := newTestDex(t, map[string]string{
		"/pokemon/pichu": `{
			"id": 172, "name": "pichu",
			"moves": [
				{
					"move": {"name": "volt-tackle", "url": ""},
					"version_group_details": [
						{"move_learn_method": {"name": "egg", "url": ""}, "version_group": {"name": "emerald", "url": ""}}
					]
				},
				{
					"move": {"name": "wish", "url": ""},
					"version_group_details": [
						{"move_learn_method": {"name": "egg", "url": ""}, "version_group": {"name": "emerald", "url": ""}}
					]
				},
				{
					"move": {"name": "thunder-shock", "url": ""},
					"version_group_details": [
						{"move_learn_method": {"name": "level-up", "url": ""}, "version_group": {"name": "emerald", "url": ""}}
					]
				}
			]
		}`,
	})

	parent1 := &pokeapi.Pokemon{
		Name:  "pikachu",
		Moves: []pokeapi.MoveEntry{{Move: pokeapi.NamedRef{Name: "volt-tackle"}}},
	}
	parent2 := &pokeapi.Pokemon{Name: "ditto"}

	moves := d.InheritableEggMoves(t.Context(), parent1, parent2, "pichu")
	require.Len(t, moves, 2)

	assert.Equal(t, pokedex.EggMoveSource{Name: "Volt Tackle", Source: "Pikachu"}, moves[0])
	assert.Equal(t, pokedex.EggMoveSource{Name: "Wish", Source: "Chain breeding required"}, moves[1])
}
