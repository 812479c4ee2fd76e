package overseer

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultEndpoint       = "http://localhost:8080"
	DefaultConnectTimeout = 1 * time.Second
	DefaultReadTimeout    = 2 * time.Second
	DefaultQueueSize      = 256
	DefaultEventPath      = PathEvent
)

// Config holds the client configuration. The zero value targets a local
// Overseer on the default endpoint.
type Config struct {
	// Endpoint is the Overseer base URL (default: "http://localhost:8080")
	Endpoint string `env:"OVERSEER_ENDPOINT" envDefault:"http://localhost:8080"`

	// ConnectTimeout bounds establishing the TCP connection (default: 1s)
	ConnectTimeout time.Duration `env:"OVERSEER_CONNECT_TIMEOUT" envDefault:"1s"`

	// ReadTimeout bounds waiting for the response once the request is written (default: 2s)
	ReadTimeout time.Duration `env:"OVERSEER_READ_TIMEOUT" envDefault:"2s"`

	// QueueSize is the capacity of the background send queue (default: 256)
	QueueSize int `env:"OVERSEER_QUEUE_SIZE" envDefault:"256"`

	// EventPath is the path gameplay events are posted to (default: "/event").
	// Set to "/ingest" for servers that only expose the legacy endpoint.
	EventPath string `env:"OVERSEER_EVENT_PATH" envDefault:"/event"`
}

// validate checks that values are usable.
func (c *Config) validate() error {
	if c.Endpoint != "" {
		parsed, err := url.Parse(c.Endpoint)
		if err != nil {
			return errors.New("overseer: Endpoint must be a valid URL")
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return errors.New("overseer: Endpoint must include scheme and host")
		}
	}

	if c.ConnectTimeout < 0 {
		return errors.New("overseer: ConnectTimeout must be non-negative")
	}
	if c.ReadTimeout < 0 {
		return errors.New("overseer: ReadTimeout must be non-negative")
	}
	if c.QueueSize < 0 {
		return errors.New("overseer: QueueSize must be non-negative")
	}
	if c.EventPath != "" && !strings.HasPrefix(c.EventPath, "/") {
		return errors.New("overseer: EventPath must start with /")
	}

	return nil
}

// withDefaults returns a copy of the config with default values applied.
func (c Config) withDefaults() Config {
	cfg := c

	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Endpoint = strings.TrimSuffix(cfg.Endpoint, "/")

	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.EventPath == "" {
		cfg.EventPath = DefaultEventPath
	}

	return cfg
}
