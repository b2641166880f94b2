package pokeapi

// NamedRef is the ubiquitous PokéAPI name/url pair.
type NamedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon mirrors the subset of the /pokemon resource the views consume.
type Pokemon struct {
	ID                     int          `json:"id"`
	Name                   string       `json:"name"`
	Height                 int          `json:"height"`
	Weight                 int          `json:"weight"`
	Types                  []TypeSlot   `json:"types"`
	Stats                  []StatValue  `json:"stats"`
	Abilities              []AbilityRef `json:"abilities"`
	Moves                  []MoveEntry  `json:"moves"`
	Sprites                Sprites      `json:"sprites"`
	Species                NamedRef     `json:"species"`
	LocationAreaEncounters string       `json:"location_area_encounters"`
}

// TypeSlot is one of a creature's (up to two) types.
type TypeSlot struct {
	Slot int      `json:"slot"`
	Type NamedRef `json:"type"`
}

// StatValue is one base stat entry.
type StatValue struct {
	BaseStat int      `json:"base_stat"`
	Stat     NamedRef `json:"stat"`
}

// AbilityRef is an ability slot on a creature.
type AbilityRef struct {
	Ability  NamedRef `json:"ability"`
	IsHidden bool     `json:"is_hidden"`
}

// Sprites holds the sprite URLs. Only the default front sprite is used.
type Sprites struct {
	FrontDefault string `json:"front_default"`
}

// MoveEntry is one move a creature can learn, with per-version-group detail.
type MoveEntry struct {
	Move                NamedRef             `json:"move"`
	VersionGroupDetails []VersionGroupDetail `json:"version_group_details"`
}

// VersionGroupDetail describes how a move is learned in one version group.
type VersionGroupDetail struct {
	LevelLearnedAt  int      `json:"level_learned_at"`
	MoveLearnMethod NamedRef `json:"move_learn_method"`
	VersionGroup    NamedRef `json:"version_group"`
}

// Species mirrors the subset of /pokemon-species the views consume.
type Species struct {
	Name              string       `json:"name"`
	EggGroups         []NamedRef   `json:"egg_groups"`
	GrowthRate        NamedRef     `json:"growth_rate"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
	EvolutionChain    struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}

// FlavorText is one localized flavor text entry.
type FlavorText struct {
	FlavorText string   `json:"flavor_text"`
	Language   NamedRef `json:"language"`
}

// Ability mirrors the subset of /ability the views consume.
type Ability struct {
	Name              string       `json:"name"`
	FlavorTextEntries []FlavorText `json:"flavor_text_entries"`
}

// Move mirrors the subset of /move the views consume. Power, accuracy, and PP
// are pointers because the API reports them as null for status moves.
type Move struct {
	Name        string   `json:"name"`
	Power       *int     `json:"power"`
	Accuracy    *int     `json:"accuracy"`
	PP          *int     `json:"pp"`
	Type        NamedRef `json:"type"`
	DamageClass NamedRef `json:"damage_class"`
	Generation  NamedRef `json:"generation"`
}

// Encounter is one element of a creature's location-area encounter list.
type Encounter struct {
	LocationArea   NamedRef           `json:"location_area"`
	VersionDetails []VersionEncounter `json:"version_details"`
}

// VersionEncounter holds the encounter slots for one game version.
type VersionEncounter struct {
	Version          NamedRef          `json:"version"`
	EncounterDetails []EncounterDetail `json:"encounter_details"`
}

// EncounterDetail is one encounter slot: method, level range, and chance.
type EncounterDetail struct {
	Method   NamedRef `json:"method"`
	MinLevel int      `json:"min_level"`
	MaxLevel int      `json:"max_level"`
	Chance   int      `json:"chance"`
}

// LocationArea mirrors the subset of /location-area the views consume.
type LocationArea struct {
	Name              string          `json:"name"`
	Location          NamedRef        `json:"location"`
	PokemonEncounters []AreaEncounter `json:"pokemon_encounters"`
}

// AreaEncounter is one creature found in a location area.
type AreaEncounter struct {
	Pokemon        NamedRef           `json:"pokemon"`
	VersionDetails []VersionEncounter `json:"version_details"`
}

// Location mirrors the subset of /location the views consume.
type Location struct {
	Name  string     `json:"name"`
	Areas []NamedRef `json:"areas"`
}

// EggGroup mirrors the subset of /egg-group the views consume.
type EggGroup struct {
	Name           string     `json:"name"`
	PokemonSpecies []NamedRef `json:"pokemon_species"`
}

// EvolutionChain mirrors /evolution-chain.
type EvolutionChain struct {
	Chain ChainLink `json:"chain"`
}

// ChainLink is one node of an evolution chain.
type ChainLink struct {
	Species          NamedRef          `json:"species"`
	EvolutionDetails []EvolutionDetail `json:"evolution_details"`
	EvolvesTo        []ChainLink       `json:"evolves_to"`
}

// EvolutionDetail describes one way a species evolves into this link.
type EvolutionDetail struct {
	Trigger      NamedRef  `json:"trigger"`
	MinLevel     *int      `json:"min_level"`
	MinHappiness *int      `json:"min_happiness"`
	TimeOfDay    string    `json:"time_of_day"`
	Item         *NamedRef `json:"item"`
	KnownMove    *NamedRef `json:"known_move"`
	Location     *NamedRef `json:"location"`
}

// resourcePage is one page of a paged list endpoint.
type resourcePage struct {
	Count   int        `json:"count"`
	Next    string     `json:"next"`
	Results []NamedRef `json:"results"`
}

// Bundle groups the record set fetched for a single creature lookup.
type Bundle struct {
	Pokemon   *Pokemon
	Species   *Species
	Abilities []*Ability
}

// EnglishFlavorText returns the first English entry, cleaned of the form-feed
// and newline soup the API embeds, or fallback when none exists.
func EnglishFlavorText(entries []FlavorText, fallback string) string {
	for _, e := range entries {
		if e.Language.Name != "en" {
			continue
		}

		return cleanFlavorText(e.FlavorText)
	}

	return fallback
}
