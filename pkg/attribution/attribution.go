package attribution

import (
	core "github.com/goliatone/go-attribution/components/attribution"
)

// Service exposes the underlying components/attribution.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// Bootstrap proxies to the internal bootstrap helper.
var Bootstrap = core.Bootstrap
