// Package config loads workflow settings from a config file and from Alfred
// workflow variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	aw "github.com/deanishe/awgo"
	"gopkg.in/yaml.v3"
)

// Config holds user-adjustable settings. Zero values mean "use the default".
type Config struct {
	// Timezone is an IANA name. Empty means detect from the host.
	Timezone string `toml:"timezone" yaml:"timezone"`

	// DayFirst reads ambiguous dates such as 05/06/2002 as day/month.
	DayFirst bool `toml:"day_first" yaml:"day_first"`

	// Output is one of auto, alfred, json, yaml or text.
	Output string `toml:"output" yaml:"output"`

	// Icon is the Alfred item icon, relative to the workflow directory.
	Icon string `toml:"icon" yaml:"icon"`

	Debug bool `toml:"debug" yaml:"debug"`

	// BundleID comes from Alfred and is never read from a file.
	BundleID string `toml:"-" yaml:"-"`
}

// Load reads the default config file. A missing file yields an empty config.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads path as YAML when it has a .yaml/.yml extension and as TOML
// otherwise.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// DefaultPath prefers ~/.config/alfred-time/config.toml and otherwise uses
// the OS config directory.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "alfred-time", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "alfred-time", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// Workflow variable names. Alfred exports them to the script's environment.
const (
	VarTimezone = "timezone"
	VarDayFirst = "day_first"
	VarOutput   = "output"
	VarIcon     = "icon"
	VarDebug    = "debug"
	VarBundleID = "alfred_workflow_bundleid"
)

// ApplyWorkflow overlays Alfred workflow variables on c. Variables that are
// unset or empty leave the file value alone.
func (c *Config) ApplyWorkflow(wf *aw.Config) {
	if v := wf.Get(VarTimezone); v != "" {
		c.Timezone = v
	}
	if wf.Get(VarDayFirst) != "" {
		c.DayFirst = wf.GetBool(VarDayFirst)
	}
	if v := wf.Get(VarOutput); v != "" {
		c.Output = v
	}
	if v := wf.Get(VarIcon); v != "" {
		c.Icon = v
	}
	if wf.Get(VarDebug) != "" {
		c.Debug = wf.GetBool(VarDebug)
	}
	c.BundleID = wf.Get(VarBundleID)
}
