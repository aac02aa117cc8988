package attribution

import (
	"context"
	"testing"
)

func TestJSONSchemaValidatorRejectsInvalidPayload(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{
		Code: "demo.widget.string_required",
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"dimension"},
			"properties": map[string]any{
				"dimension": map[string]any{"type": "string", "minLength": 1},
			},
		},
	}
	if err := validator.Validate(def, map[string]any{"dimension": "region"}); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if err := validator.Validate(def, map[string]any{}); err == nil {
		t.Fatalf("expected validation error for missing dimension")
	}
}

func TestJSONSchemaValidatorCachesCompiledSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := WidgetDefinition{
		Code:   "demo.widget.cache",
		Schema: map[string]any{"type": "object"},
	}
	if err := validator.Validate(def, nil); err != nil {
		t.Fatalf("unexpected error validating config: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to contain 1 entry, got %d", len(validator.compiled))
	}
	if err := validator.Validate(def, map[string]any{}); err != nil {
		t.Fatalf("unexpected error on cached validation: %v", err)
	}
	if len(validator.compiled) != 1 {
		t.Fatalf("expected schema cache to remain 1 entry, got %d", len(validator.compiled))
	}
}

func TestDefaultDefinitionSchemas(t *testing.T) {
	validator := NewJSONSchemaValidator()
	defs := map[string]WidgetDefinition{}
	for _, def := range DefaultWidgetDefinitions() {
		defs[def.Code] = def
	}

	breakdown := defs[WidgetBreakdownRegion]
	if err := validator.Validate(breakdown, map[string]any{"dimension": "region", "limit": 5}); err != nil {
		t.Fatalf("expected valid breakdown config, got %v", err)
	}
	if err := validator.Validate(breakdown, map[string]any{"dimension": "elevation"}); err == nil {
		t.Fatal("expected unknown dimension to be rejected")
	}
	if err := validator.Validate(breakdown, map[string]any{"dimension": "region", "limit": 0}); err == nil {
		t.Fatal("expected out-of-range limit to be rejected")
	}

	chart := defs[WidgetComparisonChart]
	if err := validator.Validate(chart, map[string]any{"metric": "replies", "lookback_days": 30}); err != nil {
		t.Fatalf("expected valid chart config, got %v", err)
	}
	if err := validator.Validate(chart, map[string]any{"metric": "planned_sent"}); err == nil {
		t.Fatal("expected non-selectable metric to be rejected")
	}
}

func TestServiceAddWidgetHonorsValidatorOverride(t *testing.T) {
	instance := WidgetInstance{
		ID:            "board.comparison_chart.custom",
		DefinitionID:  WidgetComparisonChart,
		AreaCode:      AreaCharts,
		Configuration: map[string]any{"metric": "planned_sent"},
	}

	strict := NewService(Options{})
	if err := strict.AddWidget(context.Background(), instance); err == nil {
		t.Fatal("expected schema validation to reject non-selectable metric")
	}

	relaxed := NewService(Options{ConfigValidator: noopConfigValidator{}})
	if err := relaxed.AddWidget(context.Background(), instance); err != nil {
		t.Fatalf("expected noop validator to accept the config, got %v", err)
	}
}
