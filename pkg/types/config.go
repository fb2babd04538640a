// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wiki-watch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SearchConfig holds settings for the encyclopedia search client.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Host is the encyclopedia base URL (default "https://de.wikipedia.org").
	// Both the API endpoint and article URLs are derived from it.
	Host string `json:"host" yaml:"host" mapstructure:"host"`

	// ResultLimit is the srlimit sent to the API (default 6).
	ResultLimit int `json:"result_limit" yaml:"result_limit" mapstructure:"result_limit"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`

	// Contact is appended to the User-Agent as required by the Wikimedia
	// user-agent policy. Usually loaded from .secrets/wikimedia-contact.
	Contact string `json:"contact,omitempty" yaml:"contact,omitempty" mapstructure:"contact"`
}

// StorageConfig holds settings for the synced storage database.
type StorageConfig struct {
	// DataDir is the directory holding wiki-watch.db (default: XDG data home).
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// ServerConfig holds settings for the HTTP/WebSocket front end.
type ServerConfig struct {
	// Addr is the listen address (default ":8990").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Storage StorageConfig `json:"storage" yaml:"storage" mapstructure:"storage"`
	Server  ServerConfig  `json:"server" yaml:"server" mapstructure:"server"`
}
