package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RegenerateDatasetInput carries an optional reason recorded in telemetry.
type RegenerateDatasetInput struct {
	Reason string `json:"reason,omitempty"`
}

type datasetService interface {
	Regenerate(ctx context.Context) error
}

// RegenerateDatasetCommand rebuilds the dataset window and every aggregate
// derived from it.
type RegenerateDatasetCommand struct {
	service   datasetService
	telemetry Telemetry
}

// NewRegenerateDatasetCommand creates the command.
func NewRegenerateDatasetCommand(service datasetService, telemetry Telemetry) *RegenerateDatasetCommand {
	return &RegenerateDatasetCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RegenerateDatasetInput] = (*RegenerateDatasetCommand)(nil)

// Execute reloads the dataset.
func (c *RegenerateDatasetCommand) Execute(ctx context.Context, msg RegenerateDatasetInput) error {
	if c.service == nil {
		return errors.New("regenerate command requires service")
	}
	if err := c.service.Regenerate(ctx); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "attribution.dataset.regenerate", map[string]any{
		"reason": msg.Reason,
	})
	return nil
}
