package attribution

import "context"

// DatasetSource supplies the flat record feed the dashboard aggregates. The
// default source is the synthetic generator; production deployments swap in
// a feed client delivering equivalent rows.
type DatasetSource interface {
	Records(ctx context.Context) ([]Record, error)
}

// Authorizer determines if a viewer can see a widget instance.
type Authorizer interface {
	CanViewWidget(ctx context.Context, viewer ViewerContext, instance WidgetInstance) bool
}

// PreferenceStore persists per-viewer dashboard preferences.
type PreferenceStore interface {
	Preferences(ctx context.Context, viewer ViewerContext) (Preferences, error)
	SavePreferences(ctx context.Context, viewer ViewerContext, prefs Preferences) error
}

// ProviderRegistry stores widget definitions/providers discoverable via
// hooks or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook notifies transports (REST/WebSocket) about dashboard changes.
type RefreshHook interface {
	DashboardUpdated(ctx context.Context, event DashboardEvent) error
}

// WidgetAreaDefinition models a dashboard board area (scorecards row, chart
// canvas, breakdown tables).
type WidgetAreaDefinition struct {
	Code        string
	Name        string
	Description string
}

// WidgetDefinition describes a widget schema registered with the board.
type WidgetDefinition struct {
	Code                 string            `json:"code" yaml:"code"`
	Name                 string            `json:"name" yaml:"name"`
	NameLocalized        map[string]string `json:"name_localized,omitempty" yaml:"name_localized,omitempty"`
	Description          string            `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionLocalized map[string]string `json:"description_localized,omitempty" yaml:"description_localized,omitempty"`
	Category             string            `json:"category,omitempty" yaml:"category,omitempty"`
	Schema               map[string]any    `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// WidgetInstance is a configured widget placed on the board.
type WidgetInstance struct {
	ID            string
	DefinitionID  string
	AreaCode      string
	Configuration map[string]any
	Metadata      map[string]any
}

// ViewerContext captures the active user/locale information needed to
// render dashboards.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// Layout describes the resolved widget instances per board area.
type Layout struct {
	Areas map[string][]WidgetInstance
}

// DashboardEvent describes changes transports might care about: dataset
// loads/reloads, metric selection, widget refreshes.
type DashboardEvent struct {
	Kind     string `json:"kind"`
	AreaCode string `json:"area_code,omitempty"`
	WidgetID string `json:"widget_id,omitempty"`
	Metric   Metric `json:"metric,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Event kinds emitted by the service.
const (
	EventDatasetLoaded   = "dataset.loaded"
	EventDatasetReloaded = "dataset.reloaded"
	EventMetricSelected  = "metric.selected"
	EventWidgetRefresh   = "widget.refresh"
)
