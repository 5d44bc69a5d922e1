package config

import "errors"

// Configuration validation errors returned (wrapped) by Config.Validate.
var (
	ErrInvalidPort     = errors.New("invalid port: must be between 0 and 65535")
	ErrInvalidDriver   = errors.New("invalid database driver: must be sqlite or dynamodb")
	ErrMissingPath     = errors.New("database path is required for the sqlite driver")
	ErrMissingTable    = errors.New("database table is required for the dynamodb driver")
	ErrMissingEndpoint = errors.New("bionic endpoint is required")
	ErrInvalidRate     = errors.New("invalid requests_per_minute: must be non-negative")
	ErrInvalidTimeout  = errors.New("invalid bionic timeout: must be non-negative")
	ErrInvalidSchemeID = errors.New("invalid colour scheme id: only schemes 2, 3 and 4 are configurable")
	ErrInvalidColour   = errors.New("invalid colour: use a hex value such as #FF0050")
	ErrInvalidLogLevel = errors.New("invalid log level")
)
