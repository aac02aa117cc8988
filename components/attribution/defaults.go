package attribution

// Board areas for the outreach attribution dashboard.
const (
	AreaScorecards = "attribution.board.scorecards"
	AreaCharts     = "attribution.board.charts"
	AreaTables     = "attribution.board.tables"
)

// Widget codes registered out of the box.
const (
	WidgetScorecards             = "attribution.widget.scorecards"
	WidgetComparisonChart        = "attribution.widget.comparison_chart"
	WidgetBreakdownInboxProvider = "attribution.widget.breakdown_inbox_provider"
	WidgetBreakdownRegion        = "attribution.widget.breakdown_region"
	WidgetBreakdownPersona       = "attribution.widget.breakdown_persona"
	WidgetBreakdownCampaign      = "attribution.widget.breakdown_campaign"
)

var defaultAreaDefinitions = []WidgetAreaDefinition{
	{Code: AreaScorecards, Name: "KPI Scorecards", Description: "Funnel totals vs plan"},
	{Code: AreaCharts, Name: "Comparison Charts", Description: "Actual vs planned time series"},
	{Code: AreaTables, Name: "Breakdown Tables", Description: "Per-dimension metric totals"},
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code: WidgetScorecards,
		Name: "Funnel Scorecards",
		NameLocalized: map[string]string{
			"es": "Tarjetas del embudo",
		},
		Description: "Windowed funnel totals next to planned targets",
		DescriptionLocalized: map[string]string{
			"es": "Totales del embudo frente a lo planificado",
		},
		Category: "stats",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"compact": map[string]any{"type": "boolean", "default": false},
			},
			"additionalProperties": false,
		},
	},
	{
		Code: WidgetComparisonChart,
		Name: "Actual vs Plan",
		NameLocalized: map[string]string{
			"es": "Real frente a plan",
		},
		Description: "Daily series of the selected metric against its planned counterpart",
		Category:    "charts",
		Schema:      comparisonChartSchema(),
	},
	{
		Code:        WidgetBreakdownInboxProvider,
		Name:        "By Inbox Provider",
		Description: "Metric totals grouped by sending inbox provider",
		Category:    "tables",
		Schema:      breakdownSchema(),
	},
	{
		Code:        WidgetBreakdownRegion,
		Name:        "By Region",
		Description: "Metric totals grouped by target region",
		Category:    "tables",
		Schema:      breakdownSchema(),
	},
	{
		Code:        WidgetBreakdownPersona,
		Name:        "By Persona",
		Description: "Metric totals grouped by target persona",
		Category:    "tables",
		Schema:      breakdownSchema(),
	},
	{
		Code:        WidgetBreakdownCampaign,
		Name:        "By Campaign",
		Description: "Metric totals grouped by outreach campaign",
		Category:    "tables",
		Schema:      breakdownSchema(),
	},
}

func selectableMetricNames() []string {
	metrics := SelectableMetrics()
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = string(m)
	}
	return names
}

func themeVariantNames() []string {
	variants := DefaultThemeVariants()
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return names
}

func comparisonChartSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"metric": map[string]any{
				"type": "string",
				"enum": selectableMetricNames(),
			},
			"theme": map[string]any{
				"type": "string",
				"enum": themeVariantNames(),
			},
			"lookback_days": map[string]any{
				"type":    "integer",
				"minimum": 7,
				"maximum": defaultWindowDays,
				"default": defaultWindowDays,
			},
			"dynamic": map[string]any{
				"type":    "boolean",
				"default": false,
			},
			"refresh_endpoint": map[string]any{
				"type": "string",
			},
		},
		"additionalProperties": false,
	}
}

func breakdownSchema() map[string]any {
	dims := make([]string, 0, len(allDimensions))
	for _, d := range allDimensions {
		dims = append(dims, string(d))
	}
	return map[string]any{
		"type":     "object",
		"required": []string{"dimension"},
		"properties": map[string]any{
			"dimension": map[string]any{
				"type": "string",
				"enum": dims,
			},
			"metric": map[string]any{
				"type": "string",
				"enum": selectableMetricNames(),
			},
			"limit": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": 25,
			},
		},
		"additionalProperties": false,
	}
}

var defaultBoardWidgets = []WidgetInstance{
	{
		ID:            "board.scorecards",
		DefinitionID:  WidgetScorecards,
		AreaCode:      AreaScorecards,
		Configuration: map[string]any{},
	},
	{
		ID:            "board.comparison_chart",
		DefinitionID:  WidgetComparisonChart,
		AreaCode:      AreaCharts,
		Configuration: map[string]any{},
	},
	{
		ID:            "board.breakdown.inbox_provider",
		DefinitionID:  WidgetBreakdownInboxProvider,
		AreaCode:      AreaTables,
		Configuration: map[string]any{"dimension": string(DimensionInboxProvider)},
	},
	{
		ID:            "board.breakdown.region",
		DefinitionID:  WidgetBreakdownRegion,
		AreaCode:      AreaTables,
		Configuration: map[string]any{"dimension": string(DimensionRegion)},
	},
	{
		ID:            "board.breakdown.persona",
		DefinitionID:  WidgetBreakdownPersona,
		AreaCode:      AreaTables,
		Configuration: map[string]any{"dimension": string(DimensionPersona)},
	},
	{
		ID:            "board.breakdown.campaign",
		DefinitionID:  WidgetBreakdownCampaign,
		AreaCode:      AreaTables,
		Configuration: map[string]any{"dimension": string(DimensionCampaign)},
	},
}

// DefaultAreaDefinitions returns copies of the built-in board areas.
func DefaultAreaDefinitions() []WidgetAreaDefinition {
	out := make([]WidgetAreaDefinition, len(defaultAreaDefinitions))
	copy(out, defaultAreaDefinitions)
	return out
}

// DefaultWidgetDefinitions returns copies of the built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

// DefaultBoardWidgets returns the starter widget placements.
func DefaultBoardWidgets() []WidgetInstance {
	out := make([]WidgetInstance, len(defaultBoardWidgets))
	for i, instance := range defaultBoardWidgets {
		cp := instance
		cp.Configuration = cloneAnyMap(instance.Configuration)
		cp.Metadata = cloneAnyMap(instance.Metadata)
		out[i] = cp
	}
	return out
}

func cloneAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
