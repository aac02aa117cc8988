package attribution

import "context"

// Telemetry records board operations for observability. Events are named
// under the attribution.* namespace (attribution.metric.select,
// attribution.dataset.regenerate, ...).
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
