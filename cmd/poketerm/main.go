// Package main provides the CLI entry point for poketerm, a terminal Pokédex
// that renders PokéAPI records as bordered ASCII panels.
//
// With arguments it runs a single command and exits
// (poketerm pikachu, poketerm compare pikachu raichu); without arguments it
// starts an interactive prompt.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jbgaribay/poketerm/cache"
	"github.com/jbgaribay/poketerm/pokeapi"
	"github.com/jbgaribay/poketerm/pokedex"
	"github.com/jbgaribay/poketerm/version"
)

func main() {
	cfg := NewConfig()

	rootCmd := &cobra.Command{
		Use:   "poketerm [command ...]",
		Short: "Terminal Pokédex powered by PokéAPI",
		Long: `poketerm looks up Pokémon on PokéAPI and renders entries, comparisons,
movesets, encounter locations, evolution chains, and breeding analysis as
bordered text panels. Run without arguments for an interactive prompt.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version.String("poketerm"),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfg, args)
		},
	}
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	cfg.RegisterFlags(rootCmd.Flags())

	completionErr := cfg.RegisterCompletions(rootCmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, cfg *Config, args []string) error {
	err := cfg.LoadFile(cmd.Flags())
	if err != nil {
		return err
	}

	handler, err := cfg.Log.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	apiOpts := []pokeapi.Option{pokeapi.WithLogger(logger)}

	if !cfg.NoCache {
		dir, dirErr := cfg.resolveCacheDir()
		if dirErr != nil {
			return dirErr
		}

		cc, cacheErr := cache.New(dir)
		if cacheErr != nil {
			return fmt.Errorf("opening cache: %w", cacheErr)
		}

		removed, cleanErr := cc.CleanupExpired()
		if cleanErr != nil {
			logger.Debug("cache cleanup failed", "error", cleanErr)
		} else if removed > 0 {
			logger.Debug("removed expired cache entries", "count", removed)
		}

		apiOpts = append(apiOpts, pokeapi.WithCache(cc))
	}

	api := pokeapi.NewClient(apiOpts...)

	dexOpts := []pokedex.Option{
		pokedex.WithLogger(logger),
		pokedex.WithColor(!cfg.NoColor && term.IsTerminal(int(os.Stdout.Fd()))),
	}

	if w := cfg.SpriteWidth(); w != 0 {
		dexOpts = append(dexOpts, pokedex.WithSpriteWidth(w))
	}

	a := &app{
		dex: pokedex.New(api, dexOpts...),
		api: api,
		in:  os.Stdin,
		out: os.Stdout,
	}

	ctx := cmd.Context()

	if !cfg.NoPreload {
		api.Prefetch(ctx)
	}

	if len(args) > 0 {
		return a.dispatch(ctx, strings.Join(args, " "))
	}

	return a.loop(ctx)
}
