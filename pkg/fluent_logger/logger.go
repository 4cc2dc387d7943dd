package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config holds the Fluent Bit forward-protocol endpoint.
type Config struct {
	Host      string // e.g. "127.0.0.1", or "fluent-bit" inside docker compose
	Port      int    // usually 24224
	TagPrefix string // prepended to every tag this service emits
	Timeout   time.Duration
}

// NewClient creates a Fluent Bit client. The connection is established lazily
// with the first post, so a successful return does not mean the endpoint is up.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost: cfg.Host,
		FluentPort: cfg.Port,
		TagPrefix:  cfg.TagPrefix,
		Timeout:    cfg.Timeout,
		Async:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	return logger, nil
}
