// Package config loads SkillPort's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/skillport/pkg/viewport"
)

// Environment overrides.
const (
	EnvAPIURL   = "SKILLPORT_API_URL"
	EnvAPIToken = "SKILLPORT_API_TOKEN"
	EnvDebug    = "SKILLPORT_DEBUG"
)

// Config holds the application configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Data    DataConfig    `yaml:"data"`

	path string
}

// APIConfig configures the REST client
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

// DisplayConfig configures layout
type DisplayConfig struct {
	CellWidth       int  `yaml:"cell_width"`       // logical units per terminal cell
	SmallBreakpoint int  `yaml:"small_breakpoint"` // units
	WideBreakpoint  int  `yaml:"wide_breakpoint"`  // units
	Mouse           bool `yaml:"mouse"`
}

// StorageConfig configures the local store
type StorageConfig struct {
	Driver string `yaml:"driver"` // "sqlite" (pure Go) or "sqlite3" (cgo)
	Path   string `yaml:"path"`
}

// DataConfig configures dataset overrides
type DataConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 5 * time.Second,
		},
		Display: DisplayConfig{
			CellWidth:       viewport.DefaultCellWidth,
			SmallBreakpoint: viewport.BreakpointSmall,
			WideBreakpoint:  viewport.BreakpointWide,
			Mouse:           true,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   filepath.Join(".skillport", "local.db"),
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/skillport/config.yaml, falling back
// to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "skillport", "config.yaml"), nil
}

// Load reads the config at path. A missing file yields defaults. Environment
// overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.Validate()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.API.Token = v
	}
}

// Validate clamps unusable values back to defaults.
func (c *Config) Validate() {
	def := Default()
	if c.Display.CellWidth <= 0 {
		c.Display.CellWidth = def.Display.CellWidth
	}
	bp := c.Breakpoints().Normalize()
	c.Display.SmallBreakpoint, c.Display.WideBreakpoint = bp.Small, bp.Wide
	if c.API.Timeout <= 0 {
		c.API.Timeout = def.API.Timeout
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	switch c.Storage.Driver {
	case "sqlite", "sqlite3":
	default:
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
}

// Breakpoints returns the configured viewport breakpoints.
func (c *Config) Breakpoints() viewport.Breakpoints {
	return viewport.Breakpoints{Small: c.Display.SmallBreakpoint, Wide: c.Display.WideBreakpoint}
}

// Authenticated reports whether an API token is configured.
func (c *Config) Authenticated() bool {
	return c.API.Token != ""
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}
