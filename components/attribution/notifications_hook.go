package attribution

import "context"

// NotificationsClient defines the minimal interface needed from an external
// notifications transport.
type NotificationsClient interface {
	PublishDashboardEvent(ctx context.Context, event DashboardEvent) error
}

// NotificationsHook forwards dashboard events to an external notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// DashboardUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) DashboardUpdated(ctx context.Context, event DashboardEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishDashboardEvent(ctx, event)
}
