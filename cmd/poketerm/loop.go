package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jbgaribay/poketerm/gamedata"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/pokedex"
	"github.com/jbgaribay/poketerm/render"
)

// errQuit signals a clean exit from the interactive loop.
var errQuit = errors.New("quit")

// app holds the interactive session state: the view builder, the API client
// for stats, and the most recently viewed creature.
type app struct {
	dex     *pokedex.Dex
	api     *pokeapi.Client
	in      io.Reader
	out     io.Writer
	current *pokeapi.Bundle
}

// loop reads commands from stdin until exit, quit, or EOF. Command errors are
// printed and the loop continues.
func (a *app) loop(ctx context.Context) error {
	a.welcome()

	scanner := bufio.NewScanner(bufio.NewReader(a.in))

	for {
		fmt.Fprintf(a.out, "\nEnter Pokémon name/ID or command (current: %s): ", a.currentName())

		if !scanner.Scan() {
			fmt.Fprintln(a.out)

			return scanner.Err()
		}

		err := a.dispatch(ctx, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}

		if err != nil {
			fmt.Fprintf(a.out, "Error: %v\n", err)
		}
	}
}

func (a *app) currentName() string {
	if a.current == nil {
		return "None"
	}

	return gamedata.DisplayName(a.current.Pokemon.Name)
}

// dispatch runs a single command line. Recognized keywords run their command;
// anything else is treated as a creature search, falling back to a location
// search when no creature matches a multi-word query.
func (a *app) dispatch(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		fmt.Fprintln(a.out, "Thanks for using poketerm. Gotta catch 'em all!")

		return errQuit
	case "help", "c", "commands":
		a.help()

		return nil
	case "games":
		a.games()

		return nil
	case "cache":
		a.cacheStats()

		return nil
	case "compare":
		if len(fields) != 3 {
			fmt.Fprintln(a.out, "Usage: compare <pokemon1> <pokemon2>  (e.g. compare pikachu raichu)")

			return nil
		}

		return a.dex.Compare(ctx, fields[1], fields[2])
	case "breed":
		if len(fields) != 3 {
			fmt.Fprintln(a.out, "Usage: breed <pokemon1> <pokemon2>  (e.g. breed pikachu ditto)")

			return nil
		}

		return a.dex.Breed(ctx, fields[1], fields[2])
	case "route":
		if len(fields) < 2 {
			fmt.Fprintln(a.out, "Usage: route <number or name> [game]  (e.g. route 104 emerald)")

			return nil
		}

		query, game := splitGame(fields[1:])

		return a.dex.Route(ctx, query, game)
	case "moves", "learnset", "tm", "egg", "tutor":
		return a.moves(ctx, fields)
	case "location", "locations":
		return a.locations(ctx, fields)
	case "evo", "evolution":
		if a.current == nil {
			fmt.Fprintln(a.out, "Search for a Pokémon first before viewing its evolution chain.")

			return nil
		}

		return a.dex.Evolution(ctx, a.current.Pokemon)
	}

	return a.search(ctx, line, fields)
}

// search looks the query up as a creature; an unmatched multi-word query is
// retried as a location name.
func (a *app) search(ctx context.Context, line string, fields []string) error {
	b, err := a.dex.Entry(ctx, line)
	if err == nil {
		a.current = b

		return nil
	}

	if !errors.Is(err, pokeapi.ErrNotFound) {
		return err
	}

	if len(fields) > 1 {
		query, game := splitGame(fields)

		return a.dex.Route(ctx, query, game)
	}

	fmt.Fprintf(a.out, "No Pokémon found matching %q. Try a name like 'pikachu' or a Pokédex number.\n", line)

	return nil
}

func (a *app) moves(ctx context.Context, fields []string) error {
	if a.current == nil {
		fmt.Fprintln(a.out, "Search for a Pokémon first before viewing its moves.")

		return nil
	}

	gen, game, ok := parseGenGame(fields[1:])
	if !ok {
		fmt.Fprintf(a.out, "Usage: %s gen <1-%d> [game]  (e.g. %s gen 3 emerald)\n",
			fields[0], gamedata.MaxGeneration, fields[0])

		return nil
	}

	return a.dex.Moves(ctx, a.current.Pokemon, gen, game, pokedex.MoveKind(strings.ToLower(fields[0])))
}

func (a *app) locations(ctx context.Context, fields []string) error {
	if a.current == nil {
		fmt.Fprintln(a.out, "Search for a Pokémon first before viewing its locations.")

		return nil
	}

	gen, game, ok := parseGenGame(fields[1:])
	if !ok {
		fmt.Fprintf(a.out, "Usage: location gen <1-%d> [game], or location <game>  (e.g. location emerald)\n",
			gamedata.MaxGeneration)

		return nil
	}

	return a.dex.Locations(ctx, a.current.Pokemon, gen, game)
}

// parseGenGame parses either "gen N [game]" or a bare game version name,
// resolving the game's generation in the latter case.
func parseGenGame(args []string) (int, string, bool) {
	if len(args) >= 2 && strings.EqualFold(args[0], "gen") {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > gamedata.MaxGeneration {
			return 0, "", false
		}

		game := ""
		if len(args) >= 3 {
			game = pokeapi.Normalize(args[2])
		}

		return n, game, true
	}

	if len(args) == 1 {
		game := pokeapi.Normalize(args[0])
		if gen := generationOf(game); gen != 0 {
			return gen, game, true
		}
	}

	return 0, "", false
}

// generationOf resolves an individual game version to its generation number,
// or 0 when the version is unknown.
func generationOf(version string) int {
	for gen, versions := range gamedata.GameVersions() {
		for _, v := range versions {
			if v == version {
				return gen
			}
		}
	}

	return 0
}

// splitGame peels a trailing game version off a query, so "route 104 emerald"
// becomes the query "route 104" filtered to emerald.
func splitGame(fields []string) (string, string) {
	if len(fields) > 1 {
		last := pokeapi.Normalize(fields[len(fields)-1])
		if gamedata.KnownVersion(last) {
			return strings.Join(fields[:len(fields)-1], " "), last
		}
	}

	return strings.Join(fields, " "), ""
}

func (a *app) welcome() {
	f := render.NewFrame(render.DefaultInterior)

	lines := f.Header("POKÉDEX TERMINAL")
	lines = append(lines, f.Center("Welcome, Trainer!"), f.Separator(), f.Blank())
	lines = append(lines,
		f.Line("QUICK START:"),
		f.Line("  • Type any Pokémon name or number to search (e.g. 'pikachu', '25')"),
		f.Line("  • 'compare pikachu raichu' compares two Pokémon side by side"),
		f.Line("  • 'help' lists every command, 'exit' quits"),
		f.Blank(), f.Bottom())

	a.print(lines)
}

func (a *app) help() {
	f := render.NewFrame(render.DefaultInterior)

	lines := f.Header("POKÉDEX COMMANDS")
	lines = append(lines, f.Blank(), f.Line("BASIC COMMANDS:"),
		f.Line("  • 'help' or 'c' - Show this command list"),
		f.Line("  • 'exit' or 'quit' - Exit the Pokédex"),
		f.Line("  • 'games' - Show available game versions"),
		f.Line("  • 'cache' - Show response cache statistics"),
		f.Blank(), f.Line("SEARCH COMMANDS:"),
		f.Line("  • Type any Pokémon name to search (e.g. 'pikachu', 'charizard')"),
		f.Line("  • Pokédex numbers work too (e.g. '25' for Pikachu)"),
		f.Blank(), f.Line("COMPARISON AND BREEDING:"),
		f.Line("  • 'compare <pokemon1> <pokemon2>' - Compare two Pokémon side by side"),
		f.Line("  • 'breed <pokemon1> <pokemon2>' - Check breeding compatibility and egg moves"),
		f.Blank(), f.Line("ROUTE/LOCATION COMMANDS:"),
		f.Line("  • 'route <number> [game]' - Show Pokémon found at a specific route"),
		f.Line("  • '<location> [game]' - Show Pokémon found at a named location"),
		f.Line("    Examples: 'route 104', 'route 104 emerald', 'victory road platinum'"),
		f.Blank(), f.Line("COMMANDS AFTER VIEWING A POKÉMON:"),
		f.Line("  • 'moves gen X [game]' - All moves for generation X"),
		f.Line("  • 'learnset gen X [game]' - Level-up moves only"),
		f.Line("  • 'tm gen X [game]' - TM/HM moves only"),
		f.Line("  • 'egg gen X [game]' - Egg moves only"),
		f.Line("  • 'tutor gen X [game]' - Move tutor moves only"),
		f.Line("  • 'location gen X [game]' or 'location <game>' - Encounter locations"),
		f.Line("  • 'evo' - Show the evolution chain with sprites"),
		f.Blank(), f.Line("EXAMPLES:"),
		f.Line("  • 'tm gen 3 emerald' - Only Emerald TM moves"),
		f.Line("  • 'location gen 4 platinum' - Where to find this Pokémon in Platinum"),
		f.Line("  • 'compare bulbasaur venusaur' - Compare a starter with its final evolution"),
		f.Blank(), f.Bottom())

	a.print(lines)
}

func (a *app) games() {
	f := render.NewFrame(render.DefaultInterior)
	versions := gamedata.GameVersions()

	lines := f.Header("AVAILABLE GAME VERSIONS")
	lines = append(lines, f.Blank())

	for gen := 1; gen <= gamedata.MaxGeneration; gen++ {
		names := versions[gen]
		if len(names) == 0 {
			continue
		}

		slices.Sort(names)
		lines = append(lines, f.Line(fmt.Sprintf("GENERATION %d: %s", gen, strings.Join(names, ", "))))
	}

	lines = append(lines, f.Blank(),
		f.Line("Usage: 'moves gen 3 emerald' or 'tm gen 4 platinum'"),
		f.Blank(), f.Bottom())

	a.print(lines)
}

func (a *app) cacheStats() {
	f := render.NewFrame(render.DefaultInterior)
	stats := a.api.CacheStats()

	lines := f.Header("CACHE STATISTICS")
	lines = append(lines, f.Blank(),
		f.Line(fmt.Sprintf("  Memory hits : %d", stats.MemoryHits)),
		f.Line(fmt.Sprintf("  Disk hits   : %d", stats.DiskHits)),
		f.Line(fmt.Sprintf("  Misses      : %d", stats.Misses)),
		f.Line(fmt.Sprintf("  Writes      : %d", stats.Writes)),
		f.Line(fmt.Sprintf("  Hit rate    : %.0f%%", stats.HitRate()*100)),
		f.Blank(), f.Bottom())

	a.print(lines)
}

func (a *app) print(lines []string) {
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
}
