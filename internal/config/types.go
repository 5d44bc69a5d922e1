package config

import "time"

// StorageDriver identifies the backend holding saved user preferences.
type StorageDriver string

const (
	DriverSQLite   StorageDriver = "sqlite"
	DriverDynamoDB StorageDriver = "dynamodb"
)

// LogFormat selects the logrus formatter.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// Config is the top-level accessblock configuration, corresponding to accessblock.yml.
type Config struct {
	Server   ServerConfig   `yaml:"server" koanf:"server"`
	Database DatabaseConfig `yaml:"database" koanf:"database"`
	Bionic   BionicConfig   `yaml:"bionic" koanf:"bionic"`
	Schemes  []SchemeConfig `yaml:"schemes" koanf:"schemes"`
	Labels   LabelConfig    `yaml:"labels" koanf:"labels"`
	Log      LogConfig      `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	UserHeader      string `yaml:"user_header" koanf:"user_header"`

	// EditorUsers may change per-instance colour schemes.
	EditorUsers []string `yaml:"editor_users,omitempty" koanf:"editor_users"`

	// StyleMaxAge is the Cache-Control max-age of generated stylesheets.
	StyleMaxAge time.Duration `yaml:"style_max_age" koanf:"style_max_age"`
}

// DatabaseConfig selects and configures the preference store.
type DatabaseConfig struct {
	Driver   StorageDriver `yaml:"driver" koanf:"driver"`
	Path     string        `yaml:"path" koanf:"path"`
	Table    string        `yaml:"table" koanf:"table"`
	Region   string        `yaml:"region" koanf:"region"`
	Endpoint string        `yaml:"endpoint" koanf:"endpoint"` // DynamoDB endpoint override (local testing)

	// HistoryRetention prunes change history older than this on startup.
	// Zero keeps everything.
	HistoryRetention time.Duration `yaml:"history_retention" koanf:"history_retention"`
}

// BionicConfig configures the remote text-transformation provider.
type BionicConfig struct {
	Endpoint          string        `yaml:"endpoint" koanf:"endpoint"`
	Host              string        `yaml:"host" koanf:"host"`
	APIKey            string        `yaml:"api_key" koanf:"api_key"`
	RequestsPerMinute int           `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	Timeout           time.Duration `yaml:"timeout" koanf:"timeout"`
}

// SchemeConfig is a site-level colour scheme. Only ids 2..4 are configurable.
type SchemeConfig struct {
	ID         int    `yaml:"id" koanf:"id"`
	Foreground string `yaml:"fg" koanf:"fg"`
	Background string `yaml:"bg" koanf:"bg"`
}

// LabelConfig holds the toggle control texts.
type LabelConfig struct {
	Activate   string `yaml:"activate" koanf:"activate"`
	Loading    string `yaml:"loading" koanf:"loading"`
	Deactivate string `yaml:"deactivate" koanf:"deactivate"`
	Failure    string `yaml:"failure" koanf:"failure"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level"`
	Format LogFormat `yaml:"format" koanf:"format"`
}
