// Package config resolves simulator settings from defaults, an optional
// config file, and PROTOSIM_* environment variables, in that order.
//
// Config files may be YAML (.yaml, .yml, .json) or CUE (.cue). Both use the
// same field names. Command-line flags are applied on top by the cli package.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/roach88/protosim/internal/account"
	"github.com/roach88/protosim/internal/sim"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PROTOSIM"

// minWidth keeps the centered headings legible.
const minWidth = 20

// Window is a pause interval in milliseconds.
type Window struct {
	MinMS int `yaml:"min_ms" json:"min_ms"`
	MaxMS int `yaml:"max_ms" json:"max_ms"`
}

// Pacing lists every pause the simulator makes.
type Pacing struct {
	Stage    Window `yaml:"stage" json:"stage"`
	Recovery Window `yaml:"recovery" json:"recovery"`
	Account  Window `yaml:"account" json:"account"`
	Validate Window `yaml:"validate" json:"validate"`
	Settle   Window `yaml:"settle" json:"settle"`
	Startup  Window `yaml:"startup" json:"startup"`
	Notice   Window `yaml:"notice" json:"notice"`
}

// Errors bounds the number of synthetic stage errors per session.
type Errors struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Config is the resolved simulator configuration.
type Config struct {
	AccountsFile string `yaml:"accounts_file" json:"accounts_file"`
	Errors       Errors `yaml:"errors" json:"errors"`
	Width        int    `yaml:"width" json:"width"`
	BarWidth     int    `yaml:"bar_width" json:"bar_width"`
	// Fast disables every pause.
	Fast bool `yaml:"fast" json:"fast"`
	// Seed makes a run reproducible. Zero means unseeded.
	Seed   uint64 `yaml:"seed" json:"seed"`
	Pacing Pacing `yaml:"pacing" json:"pacing"`
}

// ValidationError reports an unusable setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Default returns the built-in configuration.
func Default() *Config {
	p := sim.DefaultPacing()
	return &Config{
		AccountsFile: account.DefaultFile,
		Errors:       Errors{Min: sim.DefaultBounds.Min, Max: sim.DefaultBounds.Max},
		Width:        78,
		BarWidth:     55,
		Pacing: Pacing{
			Stage:    fromWindow(p.Stage),
			Recovery: fromWindow(p.Recovery),
			Account:  fromWindow(p.Account),
			Validate: fromWindow(p.Validate),
			Settle:   fromWindow(p.Settle),
			Startup:  fromWindow(p.Startup),
			Notice:   fromWindow(p.Notice),
		},
	}
}

// Load resolves defaults, then the file at path (if non-empty), then the
// environment, and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".cue":
		if err := c.mergeCUE(path, data); err != nil {
			return err
		}
	default:
		return &ValidationError{Field: "config", Message: fmt.Sprintf("unsupported config file extension %q", filepath.Ext(path))}
	}
	return nil
}

// mergeCUE evaluates a CUE document, requires it to be concrete, and overlays
// its JSON form onto c so unset fields keep their current values.
func (c *Config) mergeCUE(path string, data []byte) error {
	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return fmt.Errorf("compile config %s: %w", path, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("validate config %s: %w", path, err)
	}
	raw, err := v.MarshalJSON()
	if err != nil {
		return fmt.Errorf("export config %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// env mirrors the overridable fields. Variables that are unset leave the
// prefilled value in place.
type env struct {
	AccountsFile string `envconfig:"ACCOUNTS_FILE"`
	ErrorMin     int    `envconfig:"ERROR_MIN"`
	ErrorMax     int    `envconfig:"ERROR_MAX"`
	Width        int    `envconfig:"WIDTH"`
	BarWidth     int    `envconfig:"BAR_WIDTH"`
	Fast         bool   `envconfig:"FAST"`
	Seed         uint64 `envconfig:"SEED"`
}

func (c *Config) mergeEnv() error {
	e := env{
		AccountsFile: c.AccountsFile,
		ErrorMin:     c.Errors.Min,
		ErrorMax:     c.Errors.Max,
		Width:        c.Width,
		BarWidth:     c.BarWidth,
		Fast:         c.Fast,
		Seed:         c.Seed,
	}
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	c.AccountsFile = e.AccountsFile
	c.Errors = Errors{Min: e.ErrorMin, Max: e.ErrorMax}
	c.Width = e.Width
	c.BarWidth = e.BarWidth
	c.Fast = e.Fast
	c.Seed = e.Seed
	return nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if c.AccountsFile == "" {
		return &ValidationError{Field: "accounts_file", Message: "must not be empty"}
	}
	if err := c.Bounds().Validate(len(sim.Stages())); err != nil {
		return &ValidationError{Field: "errors", Message: err.Error()}
	}
	if c.Width < minWidth {
		return &ValidationError{Field: "width", Message: fmt.Sprintf("must be at least %d", minWidth)}
	}
	if c.BarWidth < 1 {
		return &ValidationError{Field: "bar_width", Message: "must be positive"}
	}

	windows := []struct {
		name string
		w    Window
	}{
		{"stage", c.Pacing.Stage},
		{"recovery", c.Pacing.Recovery},
		{"account", c.Pacing.Account},
		{"validate", c.Pacing.Validate},
		{"settle", c.Pacing.Settle},
		{"startup", c.Pacing.Startup},
		{"notice", c.Pacing.Notice},
	}
	for _, w := range windows {
		if w.w.MinMS < 0 || w.w.MaxMS < w.w.MinMS {
			return &ValidationError{
				Field:   "pacing." + w.name,
				Message: fmt.Sprintf("need 0 <= min_ms <= max_ms, got %d..%d", w.w.MinMS, w.w.MaxMS),
			}
		}
	}
	return nil
}

// Bounds returns the error injection bounds.
func (c *Config) Bounds() sim.Bounds {
	return sim.Bounds{Min: c.Errors.Min, Max: c.Errors.Max}
}

// SimPacing converts the pacing table. Fast mode yields all-zero windows.
func (c *Config) SimPacing() sim.Pacing {
	if c.Fast {
		return sim.Pacing{}
	}
	return sim.Pacing{
		Stage:    c.Pacing.Stage.toWindow(),
		Recovery: c.Pacing.Recovery.toWindow(),
		Account:  c.Pacing.Account.toWindow(),
		Validate: c.Pacing.Validate.toWindow(),
		Settle:   c.Pacing.Settle.toWindow(),
		Startup:  c.Pacing.Startup.toWindow(),
		Notice:   c.Pacing.Notice.toWindow(),
	}
}

func (w Window) toWindow() sim.Window {
	return sim.Window{
		Min: time.Duration(w.MinMS) * time.Millisecond,
		Max: time.Duration(w.MaxMS) * time.Millisecond,
	}
}

func fromWindow(w sim.Window) Window {
	return Window{MinMS: int(w.Min / time.Millisecond), MaxMS: int(w.Max / time.Millisecond)}
}
