// Package config loads pathtrace application settings from YAML or JSON.
//
// Library packages (astar, gridpath, field) are configured through
// functional options; this package is the file-backed layer the CLI and the
// HTTP server translate into those options.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pathtrace/astar"
	"github.com/katalvlaran/pathtrace/field"
	"github.com/katalvlaran/pathtrace/gridpath"
)

// ErrInvalidConfig is returned by Validate and Load for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete application configuration.
type Config struct {
	Costs  Costs  `yaml:"costs" json:"costs"`
	Image  Image  `yaml:"image" json:"image"`
	Search Search `yaml:"search" json:"search"`
	Server Server `yaml:"server" json:"server"`
	Log    Log    `yaml:"log" json:"log"`
}

// Costs mirrors gridpath.Costs with file tags.
type Costs struct {
	Axis            float64 `yaml:"axis" json:"axis"`
	Diagonal        float64 `yaml:"diagonal" json:"diagonal"`
	ObstaclePenalty float64 `yaml:"obstacle_penalty" json:"obstacle_penalty"`
	HeuristicScale  float64 `yaml:"heuristic_scale" json:"heuristic_scale"`
}

// Image controls how input images become obstacle fields.
type Image struct {
	Invert    bool    `yaml:"invert" json:"invert"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// Search holds caller-imposed caps on each search.
type Search struct {
	// MaxExpansions caps expansions per search; 0 means unlimited.
	MaxExpansions int `yaml:"max_expansions" json:"max_expansions"`
	// Parallelism bounds concurrent searches in batch mode; 0 means NumCPU.
	Parallelism int `yaml:"parallelism" json:"parallelism"`
	// Timeout is a Go duration string ("2s", "500ms"); empty means none.
	Timeout string `yaml:"timeout" json:"timeout"`
}

// Server configures `pathtrace serve`.
type Server struct {
	Addr         string `yaml:"addr" json:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" json:"max_body_bytes"`
	// MaxPixels caps width×height of a request field; 0 means no limit.
	MaxPixels int64 `yaml:"max_pixels" json:"max_pixels"`
}

// Log configures the slog handler built by NewLogger.
type Log struct {
	Level  string `yaml:"level" json:"level"`   // debug, info, warn, error
	Format string `yaml:"format" json:"format"` // text or json
}

// Default returns the configuration used when no file is given.
func Default() Config {
	c := gridpath.DefaultCosts()

	return Config{
		Costs: Costs{
			Axis:            c.Axis,
			Diagonal:        c.Diagonal,
			ObstaclePenalty: c.ObstaclePenalty,
			HeuristicScale:  c.HeuristicScale,
		},
		Search: Search{Timeout: "30s"},
		Server: Server{Addr: ":8080", MaxBodyBytes: 8 << 20, MaxPixels: 1 << 22},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// LoadFromPath reads a config file (YAML or JSON) on top of Default.
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by content.
func LoadFromPath(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	return Load(data, filepath.Ext(path))
}

// Load parses config from bytes on top of Default and validates it.
// ext is the file extension used as a format hint; empty = detect from content.
// Keys absent from data keep their default values.
func Load(data []byte, ext string) (Config, error) {
	cfg := Default()
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		// JSON starts with {, anything else is YAML.
		if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
			ext = ".json"
		} else {
			ext = ".yaml"
		}
	}

	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config json: %w", err)
		}
	case ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported extension %q", ErrInvalidConfig, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if err := c.GridCosts().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Image.Threshold < 0 || c.Image.Threshold > 255 {
		return fmt.Errorf("%w: image.threshold %g outside [0,255]", ErrInvalidConfig, c.Image.Threshold)
	}
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("%w: search.max_expansions cannot be negative (%d)", ErrInvalidConfig, c.Search.MaxExpansions)
	}
	if c.Search.Parallelism < 0 {
		return fmt.Errorf("%w: search.parallelism cannot be negative (%d)", ErrInvalidConfig, c.Search.Parallelism)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.max_body_bytes cannot be negative", ErrInvalidConfig)
	}
	if c.Server.MaxPixels < 0 {
		return fmt.Errorf("%w: server.max_pixels cannot be negative", ErrInvalidConfig)
	}

	return nil
}

// GridCosts converts the cost section.
func (c Config) GridCosts() gridpath.Costs {
	return gridpath.Costs{
		Axis:            c.Costs.Axis,
		Diagonal:        c.Costs.Diagonal,
		ObstaclePenalty: c.Costs.ObstaclePenalty,
		HeuristicScale:  c.Costs.HeuristicScale,
	}
}

// ImageOptions converts the image section.
func (c Config) ImageOptions() field.ImageOptions {
	return field.ImageOptions{Invert: c.Image.Invert, Threshold: c.Image.Threshold}
}

// Timeout parses Search.Timeout; an empty string yields 0.
func (c Config) Timeout() (time.Duration, error) {
	if c.Search.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Search.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: search.timeout: %w", ErrInvalidConfig, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: search.timeout cannot be negative (%s)", ErrInvalidConfig, d)
	}

	return d, nil
}

// Level parses Log.Level; an empty string yields Info.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}

	return lvl, nil
}

// GridOptions translates the configuration into gridpath options, forwarding
// the expansion cap and logger to every search.
func (c Config) GridOptions(logger *slog.Logger) []gridpath.Option {
	opts := []gridpath.Option{
		gridpath.WithCosts(c.GridCosts()),
		gridpath.WithParallelism(c.Search.Parallelism),
	}
	if c.Search.MaxExpansions > 0 {
		opts = append(opts, gridpath.WithSearchOptions(astar.WithMaxExpansions(c.Search.MaxExpansions)))
	}
	if logger != nil {
		opts = append(opts, gridpath.WithLogger(logger))
	}

	return opts
}

// NewLogger builds a slog logger from the log section. Invalid levels fall
// back to Info; call Validate first to surface them.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	lvl, err := c.Level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch c.Log.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h)
}
