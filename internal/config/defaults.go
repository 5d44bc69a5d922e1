package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName is used for XDG directory names.
const AppName = "accessblock"

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = "accessblock.yml"

// DefaultSchemes are the site colour schemes shipped with the block.
// Scheme 1 is the "no override" default and is never listed here.
var DefaultSchemes = []SchemeConfig{
	{ID: 2, Foreground: "#000000", Background: "#FAFAC8"},
	{ID: 3, Foreground: "#000000", Background: "#EDD1B0"},
	{ID: 4, Foreground: "#000000", Background: "#B987DC"},
}

// DefaultDataDir returns $XDG_DATA_HOME/accessblock.
func DefaultDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	schemes := make([]SchemeConfig, len(DefaultSchemes))
	copy(schemes, DefaultSchemes)

	return &Config{
		Server: ServerConfig{
			Port:       8080,
			UserHeader: "X-User-ID",
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			Path:   filepath.Join(DefaultDataDir(), "accessblock.db"),
			Table:  "accessibility_preferences",
		},
		Bionic: BionicConfig{
			Endpoint: "https://bionic-reading1.p.rapidapi.com",
			Host:     "bionic-reading1.p.rapidapi.com",
		},
		Schemes: schemes,
		Labels: LabelConfig{
			Activate:   "Toggle Bionic Mode",
			Loading:    "This might take a moment.",
			Deactivate: "Return to Default Text",
			Failure:    "Bionic mode is unavailable right now. Please try again.",
		},
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatText,
		},
	}
}
