package commands

import (
	"context"
	"errors"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	gocommand "github.com/goliatone/go-command"
)

// SelectMetricInput switches the viewer's active funnel metric.
type SelectMetricInput struct {
	Viewer attribution.ViewerContext `json:"viewer"`
	Metric attribution.Metric        `json:"metric"`
}

type metricService interface {
	SelectMetric(ctx context.Context, viewer attribution.ViewerContext, metric attribution.Metric) error
}

// SelectMetricCommand persists the selection and triggers refresh hooks so
// the scorecards, chart, and tables repaint together.
type SelectMetricCommand struct {
	service   metricService
	telemetry Telemetry
}

// NewSelectMetricCommand creates the command.
func NewSelectMetricCommand(service metricService, telemetry Telemetry) *SelectMetricCommand {
	return &SelectMetricCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectMetricInput] = (*SelectMetricCommand)(nil)

// Execute delegates to the attribution service.
func (c *SelectMetricCommand) Execute(ctx context.Context, msg SelectMetricInput) error {
	if c.service == nil {
		return errors.New("select metric command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("select metric command requires viewer user id")
	}
	if err := c.service.SelectMetric(ctx, msg.Viewer, msg.Metric); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "attribution.metric.select", map[string]any{
		"user_id": msg.Viewer.UserID,
		"metric":  string(msg.Metric),
	})
	return nil
}
