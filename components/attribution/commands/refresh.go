package commands

import (
	"context"
	"errors"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	gocommand "github.com/goliatone/go-command"
)

// RefreshDashboardInput emits a refresh notification for a widget or area.
type RefreshDashboardInput struct {
	Event attribution.DashboardEvent
}

type refreshNotifier interface {
	NotifyDashboardUpdated(ctx context.Context, event attribution.DashboardEvent) error
}

// RefreshDashboardCommand triggers refresh hooks without binding transports.
type RefreshDashboardCommand struct {
	service   refreshNotifier
	telemetry Telemetry
}

// NewRefreshDashboardCommand creates the command.
func NewRefreshDashboardCommand(service refreshNotifier, telemetry Telemetry) *RefreshDashboardCommand {
	return &RefreshDashboardCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshDashboardInput] = (*RefreshDashboardCommand)(nil)

// Execute notifies the service's refresh hooks.
func (c *RefreshDashboardCommand) Execute(ctx context.Context, msg RefreshDashboardInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	event := msg.Event
	if event.Kind == "" {
		event.Kind = attribution.EventWidgetRefresh
	}
	if err := c.service.NotifyDashboardUpdated(ctx, event); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "attribution.dashboard.refresh", map[string]any{
		"kind":      event.Kind,
		"area_code": event.AreaCode,
		"widget_id": event.WidgetID,
	})
	return nil
}
