package types

import "time"

// HTTPConfig holds shared HTTP settings for outbound requests.
type HTTPConfig struct {
	// Timeout bounds each request to the search API.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "figshare-search/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the article search URL. The query is sent as the
	// search_for parameter.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// MaxRetries caps the number of resends after an HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// RenderConfig holds settings shared by all card renderers.
type RenderConfig struct {
	// DescriptionLimit is the number of characters of description shown
	// before the truncation marker (default 200).
	DescriptionLimit int `json:"description_limit" yaml:"description_limit"`
}

// ServeConfig holds settings for the HTTP server.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// SessionTTL is how long an idle browser session keeps its results.
	SessionTTL time.Duration `json:"session_ttl" yaml:"session_ttl"`

	// AllowedOrigins lists origins allowed to call the JSON API.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	// Level is a logrus level name: debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// Config groups all component configurations.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Render RenderConfig `json:"render" yaml:"render"`
	Serve  ServeConfig  `json:"serve" yaml:"serve"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// Default values applied when a setting is zero.
const (
	DefaultEndpoint         = "https://api.figshare.com/v2/articles/search"
	DefaultTimeout          = 30 * time.Second
	DefaultUserAgent        = "figshare-search/0.1"
	DefaultMaxRetries       = 3
	DefaultDescriptionLimit = 200
	DefaultAddr             = ":8080"
	DefaultSessionTTL       = 2 * time.Hour
)

// WithDefaults returns a copy of c with zero settings replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Search.Endpoint == "" {
		c.Search.Endpoint = DefaultEndpoint
	}
	if c.Search.Timeout <= 0 {
		c.Search.Timeout = DefaultTimeout
	}
	if c.Search.UserAgent == "" {
		c.Search.UserAgent = DefaultUserAgent
	}
	if c.Search.MaxRetries <= 0 {
		c.Search.MaxRetries = DefaultMaxRetries
	}
	if c.Render.DescriptionLimit <= 0 {
		c.Render.DescriptionLimit = DefaultDescriptionLimit
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Serve.SessionTTL <= 0 {
		c.Serve.SessionTTL = DefaultSessionTTL
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	return c
}
