package commands

import (
	"context"
	"errors"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	gocommand "github.com/goliatone/go-command"
)

// SeedBoardInput controls bootstrap behavior.
type SeedBoardInput struct {
	ManifestPath string `json:"manifest_path,omitempty"`
}

// SeedBoardCommand registers definitions and validates the starter layout.
type SeedBoardCommand struct {
	registry  *attribution.Registry
	service   *attribution.Service
	telemetry Telemetry
}

// NewSeedBoardCommand wires dependencies.
func NewSeedBoardCommand(registry *attribution.Registry, service *attribution.Service, telemetry Telemetry) *SeedBoardCommand {
	return &SeedBoardCommand{
		registry:  registry,
		service:   service,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[SeedBoardInput] = (*SeedBoardCommand)(nil)

// Execute runs the bootstrap pipeline.
func (c *SeedBoardCommand) Execute(ctx context.Context, msg SeedBoardInput) error {
	if c.registry == nil {
		return errors.New("seed command requires registry")
	}
	if err := attribution.RegisterDefinitions(c.registry); err != nil {
		return err
	}
	if msg.ManifestPath != "" {
		if _, err := c.registry.LoadManifestFile(msg.ManifestPath); err != nil {
			return err
		}
	}
	if c.service != nil {
		if err := attribution.SeedLayout(ctx, c.service); err != nil {
			return err
		}
	}
	c.telemetry.Record(ctx, "attribution.seed", map[string]any{
		"manifest": msg.ManifestPath != "",
	})
	return nil
}
