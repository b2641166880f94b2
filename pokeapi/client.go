// Package pokeapi is a small PokéAPI (pokeapi.co) client covering the
// resources the terminal views need. Responses pass through an optional
// [cache.Cache] so repeat lookups avoid the network entirely.
package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jbgaribay/poketerm/cache"
)

// DefaultBaseURL is the public PokéAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

var (
	// ErrNotFound is returned when the API reports no such resource.
	ErrNotFound = errors.New("resource not found")

	// ErrStatus is returned for any other non-2xx response.
	ErrStatus = errors.New("unexpected response status")
)

// Client fetches PokéAPI resources.
type Client struct {
	base   string
	client *http.Client
	cache  *cache.Cache
	logger *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.base = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the underlying [http.Client].
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithCache attaches a response cache. Without one every call hits the
// network.
func WithCache(cc *cache.Cache) Option {
	return func(c *Client) {
		c.cache = cc
	}
}

// WithLogger sets the logger used for background fetch activity.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a [Client] for [DefaultBaseURL], modified by opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		base:   DefaultBaseURL,
		client: &http.Client{Timeout: 15 * time.Second},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// CacheStats reports cache hit counters, or zeroes when no cache is attached.
func (c *Client) CacheStats() cache.Stats {
	if c.cache == nil {
		return cache.Stats{}
	}

	return c.cache.Stats()
}

// Normalize lowercases a user-supplied resource name and converts interior
// spaces to the hyphens the API expects.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))

	return strings.ReplaceAll(name, " ", "-")
}

// Pokemon fetches /pokemon/{name} by name or numeric ID.
func (c *Client) Pokemon(ctx context.Context, name string) (*Pokemon, error) {
	var p Pokemon
	if err := c.getJSON(ctx, "pokemon", c.base+"/pokemon/"+Normalize(name), &p); err != nil {
		return nil, fmt.Errorf("fetching pokemon %q: %w", name, err)
	}

	return &p, nil
}

// SpeciesByURL fetches a /pokemon-species resource by its URL.
func (c *Client) SpeciesByURL(ctx context.Context, url string) (*Species, error) {
	var s Species
	if err := c.getJSON(ctx, "species", url, &s); err != nil {
		return nil, fmt.Errorf("fetching species: %w", err)
	}

	return &s, nil
}

// AbilityByURL fetches an /ability resource by its URL.
func (c *Client) AbilityByURL(ctx context.Context, url string) (*Ability, error) {
	var a Ability
	if err := c.getJSON(ctx, "ability", url, &a); err != nil {
		return nil, fmt.Errorf("fetching ability: %w", err)
	}

	return &a, nil
}

// Move fetches /move/{name}.
func (c *Client) Move(ctx context.Context, name string) (*Move, error) {
	var m Move
	if err := c.getJSON(ctx, "move", c.base+"/move/"+Normalize(name), &m); err != nil {
		return nil, fmt.Errorf("fetching move %q: %w", name, err)
	}

	return &m, nil
}

// EncounterAreas fetches the creature's location-area encounter list.
func (c *Client) EncounterAreas(ctx context.Context, p *Pokemon) ([]Encounter, error) {
	url := p.LocationAreaEncounters
	if url == "" {
		url = fmt.Sprintf("%s/pokemon/%d/encounters", c.base, p.ID)
	}

	var encs []Encounter
	if err := c.getJSON(ctx, "encounters", url, &encs); err != nil {
		return nil, fmt.Errorf("fetching encounters for %s: %w", p.Name, err)
	}

	return encs, nil
}

// LocationArea fetches /location-area/{name}.
func (c *Client) LocationArea(ctx context.Context, name string) (*LocationArea, error) {
	var la LocationArea
	if err := c.getJSON(ctx, "location-area", c.base+"/location-area/"+Normalize(name), &la); err != nil {
		return nil, fmt.Errorf("fetching location area %q: %w", name, err)
	}

	return &la, nil
}

// Location fetches /location/{name}.
func (c *Client) Location(ctx context.Context, name string) (*Location, error) {
	var l Location
	if err := c.getJSON(ctx, "location", c.base+"/location/"+Normalize(name), &l); err != nil {
		return nil, fmt.Errorf("fetching location %q: %w", name, err)
	}

	return &l, nil
}

// EvolutionChainByURL fetches an /evolution-chain resource by its URL.
func (c *Client) EvolutionChainByURL(ctx context.Context, url string) (*EvolutionChain, error) {
	var ec EvolutionChain
	if err := c.getJSON(ctx, "evolution-chain", url, &ec); err != nil {
		return nil, fmt.Errorf("fetching evolution chain: %w", err)
	}

	return &ec, nil
}

// EggGroup fetches /egg-group/{name}.
func (c *Client) EggGroup(ctx context.Context, name string) (*EggGroup, error) {
	var eg EggGroup
	if err := c.getJSON(ctx, "egg-group", c.base+"/egg-group/"+Normalize(name), &eg); err != nil {
		return nil, fmt.Errorf("fetching egg group %q: %w", name, err)
	}

	return &eg, nil
}

// LocationAreaIndex fetches the full paged index of location-area names.
func (c *Client) LocationAreaIndex(ctx context.Context) ([]NamedRef, error) {
	url := c.base + "/location-area?limit=1000"

	var all []NamedRef
	for url != "" {
		var page resourcePage
		if err := c.getJSON(ctx, "index", url, &page); err != nil {
			return nil, fmt.Errorf("fetching location area index: %w", err)
		}

		all = append(all, page.Results...)
		url = page.Next
	}

	return all, nil
}

// Bundle fetches the creature plus its species and ability records. Ability
// fetch failures are tolerated; the returned slice holds what succeeded.
func (c *Client) Bundle(ctx context.Context, name string) (*Bundle, error) {
	p, err := c.Pokemon(ctx, name)
	if err != nil {
		return nil, err
	}

	s, err := c.SpeciesByURL(ctx, p.Species.URL)
	if err != nil {
		return nil, err
	}

	abilities := make([]*Ability, 0, len(p.Abilities))
	for _, ref := range p.Abilities {
		a, err := c.AbilityByURL(ctx, ref.Ability.URL)
		if err != nil {
			c.logger.DebugContext(ctx, "skipping ability",
				slog.String("ability", ref.Ability.Name),
				slog.Any("error", err),
			)

			continue
		}

		abilities = append(abilities, a)
	}

	return &Bundle{Pokemon: p, Species: s, Abilities: abilities}, nil
}

// SpriteBytes downloads the creature's default front sprite. It returns
// [ErrNotFound] when the record carries no sprite URL.
func (c *Client) SpriteBytes(ctx context.Context, p *Pokemon) ([]byte, error) {
	url := p.Sprites.FrontDefault
	if url == "" {
		return nil, fmt.Errorf("no sprite for %s: %w", p.Name, ErrNotFound)
	}

	return c.getBytes(ctx, "sprite", url)
}

// PopularNames is the warm-up set fetched by [Client.Prefetch].
var PopularNames = []string{
	"pikachu", "charizard", "mewtwo", "mew", "lucario",
	"garchomp", "rayquaza", "arceus", "greninja", "eevee",
}

// Prefetch warms the cache with [PopularNames] in the background. It is
// best-effort: failures are logged at debug level and otherwise ignored.
func (c *Client) Prefetch(ctx context.Context) {
	go func() {
		for _, name := range PopularNames {
			if ctx.Err() != nil {
				return
			}

			if _, err := c.Bundle(ctx, name); err != nil {
				c.logger.DebugContext(ctx, "prefetch failed",
					slog.String("name", name),
					slog.Any("error", err),
				)
			}
		}
		c.logger.DebugContext(ctx, "prefetch complete",
			slog.Int("count", len(PopularNames)),
		)
	}()
}

func (c *Client) getJSON(ctx context.Context, category, url string, v any) error {
	body, err := c.getBytes(ctx, category, url)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s response: %w", category, err)
	}

	return nil
}

func (c *Client) getBytes(ctx context.Context, category, url string) ([]byte, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(category, url); ok {
			return body, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Put(category, url, body); err != nil {
			c.logger.DebugContext(ctx, "cache write failed",
				slog.String("url", url),
				slog.Any("error", err),
			)
		}
	}

	return body, nil
}

// cleanFlavorText collapses the control characters and hard wraps the API
// embeds in flavor text into single spaces.
func cleanFlavorText(s string) string {
	s = strings.ReplaceAll(s, "\f", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "­ ", "")
	s = strings.ReplaceAll(s, "­", "")

	return strings.Join(strings.Fields(s), " ")
}
