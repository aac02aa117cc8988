package attribution

import (
	"context"
	"errors"
	"fmt"
)

// Bootstrap wires a fully configured board: registry with the built-in
// widgets, a service bound to it, and the starter layout seeded. It is the
// single call applications make before mounting transports.
func Bootstrap(ctx context.Context, opts Options) (*Service, error) {
	svc := NewService(opts)
	if err := SeedLayout(ctx, svc); err != nil {
		return nil, err
	}
	svc.Start(ctx)
	return svc, nil
}

// RegisterDefinitions registers the built-in widget definitions with an
// external registry, for applications that compose their own.
func RegisterDefinitions(registry ProviderRegistry) error {
	if registry == nil {
		return errors.New("attribution: registry is required")
	}
	for _, def := range DefaultWidgetDefinitions() {
		if err := registry.RegisterDefinition(def); err != nil {
			return fmt.Errorf("register definition %s: %w", def.Code, err)
		}
	}
	return nil
}

// SeedLayout validates the starter widgets against their schemas. The
// service already carries the default placements; this surfaces manifest or
// schema drift at boot instead of first render.
func SeedLayout(_ context.Context, service *Service) error {
	if service == nil {
		return errors.New("attribution: service is required to seed layout")
	}
	var seedErr error
	for _, instance := range DefaultBoardWidgets() {
		if err := service.validateConfiguration(instance.DefinitionID, instance.Configuration); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed widget %s: %w", instance.ID, err))
		}
	}
	return seedErr
}
