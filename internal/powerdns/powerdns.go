// Package powerdns fetches zones from and applies change sets to a PowerDNS
// server through its HTTP API, as an alternative to dig and nsupdate.
package powerdns

import (
	"context"
	"time"

	"github.com/joeig/go-powerdns/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/config"
)

const (
	defaultTimeout = 30 * time.Second
	defaultVHost   = "localhost"
)

// Engine wraps the PowerDNS API client.
type Engine struct {
	*powerdns.Client
}

// Open creates the API client from cfg.
func Open(cfg config.PowerDNS) (*Engine, error) {
	if cfg.URL == "" {
		return nil, ErrURLEmpty
	}

	vhost := cfg.VHost
	if vhost == "" {
		vhost = defaultVHost
	}

	return &Engine{Client: powerdns.New(cfg.URL, vhost, powerdns.WithAPIKey(cfg.APIKey))}, nil
}

// Test checks the API connection by listing the zones.
func (e *Engine) Test(ctx context.Context) error {
	if e == nil || e.Client == nil {
		return ErrClientNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	zones, err := e.Zones.List(ctx)
	if err != nil {
		return errors.Wrap(err, "PowerDNS API connection test failed")
	}

	log.Info().Int("zone_count", len(zones)).Msg("PowerDNS API connection test successful")

	return nil
}
