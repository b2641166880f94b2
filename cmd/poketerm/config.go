package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/jbgaribay/poketerm/log"
)

// Flags holds CLI flag names, allowing customization while keeping sensible
// defaults via [NewConfig].
type Flags struct {
	Width     string
	NoColor   string
	CacheDir  string
	NoCache   string
	NoPreload string
	File      string
}

// NewConfig creates a new [Config] embedding these flag names.
func (f Flags) NewConfig() *Config {
	return &Config{
		Log:   log.NewConfig(),
		Flags: f,
	}
}

// Config holds CLI flag values.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. An optional YAML file named by the config flag is
// merged in by [Config.LoadFile]; explicitly set flags win over file values.
type Config struct {
	Width     int
	NoColor   bool
	CacheDir  string
	NoCache   bool
	NoPreload bool
	File      string
	Log       *log.Config
	Flags     Flags
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Width:     "width",
		NoColor:   "no-color",
		CacheDir:  "cache-dir",
		NoCache:   "no-cache",
		NoPreload: "no-preload",
		File:      "config",
	}

	return f.NewConfig()
}

// RegisterFlags adds all flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.IntVar(&c.Width, c.Flags.Width, 0,
		"sprite width in columns (0 = auto-detect from terminal size)")
	flags.BoolVar(&c.NoColor, c.Flags.NoColor, false,
		"disable ANSI colors in panel output")
	flags.StringVar(&c.CacheDir, c.Flags.CacheDir, "",
		"response cache directory (default: user cache dir)")
	flags.BoolVar(&c.NoCache, c.Flags.NoCache, false,
		"disable the response cache entirely")
	flags.BoolVar(&c.NoPreload, c.Flags.NoPreload, false,
		"skip background prefetch of popular entries")
	flags.StringVar(&c.File, c.Flags.File, "",
		"path to a YAML config file")
	c.Log.RegisterFlags(flags)
}

// RegisterCompletions registers shell completions for flags on cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := c.Log.RegisterCompletions(cmd)
	if err != nil {
		return err
	}

	err = cmd.MarkFlagFilename(c.Flags.File, "yaml", "yml")
	if err != nil {
		return fmt.Errorf("registering config completion: %w", err)
	}

	return nil
}

// fileConfig mirrors the YAML config file. Pointer fields distinguish "unset"
// from zero values.
type fileConfig struct {
	Width     *int    `yaml:"width"`
	NoColor   *bool   `yaml:"no_color"`
	CacheDir  *string `yaml:"cache_dir"`
	NoPreload *bool   `yaml:"no_preload"`
	LogLevel  *string `yaml:"log_level"`
	LogFormat *string `yaml:"log_format"`
}

// LoadFile merges the YAML config file into c. Values from the file apply
// only where the corresponding flag was not set on the command line.
func (c *Config) LoadFile(flags *pflag.FlagSet) error {
	if c.File == "" {
		return nil
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig

	err = yaml.Unmarshal(data, &fc)
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.File, err)
	}

	if fc.Width != nil && !flags.Changed(c.Flags.Width) {
		c.Width = *fc.Width
	}

	if fc.NoColor != nil && !flags.Changed(c.Flags.NoColor) {
		c.NoColor = *fc.NoColor
	}

	if fc.CacheDir != nil && !flags.Changed(c.Flags.CacheDir) {
		c.CacheDir = *fc.CacheDir
	}

	if fc.NoPreload != nil && !flags.Changed(c.Flags.NoPreload) {
		c.NoPreload = *fc.NoPreload
	}

	if fc.LogLevel != nil && !flags.Changed(c.Log.Flags.Level) {
		c.Log.Level = *fc.LogLevel
	}

	if fc.LogFormat != nil && !flags.Changed(c.Log.Flags.Format) {
		c.Log.Format = *fc.LogFormat
	}

	return nil
}

// SpriteWidth resolves the sprite width. Zero auto-detects from the terminal:
// wide terminals get the default width, narrow ones a smaller sprite so the
// info column keeps room to breathe. The result is clamped by the renderer.
func (c *Config) SpriteWidth() int {
	if c.Width != 0 {
		return c.Width
	}

	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return 0
	}

	if cols < 100 {
		return 30
	}

	if cols < 120 {
		return 40
	}

	return 0
}

// resolveCacheDir returns the cache directory, defaulting to a poketerm
// subdirectory of the user cache dir.
func (c *Config) resolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}

	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolving cache dir: %w", err)
	}

	return filepath.Join(base, "poketerm"), nil
}
