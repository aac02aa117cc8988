package commands

import (
	"context"
	"testing"

	attribution "github.com/goliatone/go-attribution/components/attribution"
)

type stubService struct {
	selectCalls     int
	selectedMetric  attribution.Metric
	regenerateCalls int
	refreshCalls    int
	lastEvent       attribution.DashboardEvent
	prefs           attribution.Preferences
	saveCalls       int
}

func (s *stubService) SelectMetric(_ context.Context, _ attribution.ViewerContext, metric attribution.Metric) error {
	s.selectCalls++
	s.selectedMetric = metric
	return nil
}

func (s *stubService) Regenerate(context.Context) error {
	s.regenerateCalls++
	return nil
}

func (s *stubService) NotifyDashboardUpdated(_ context.Context, event attribution.DashboardEvent) error {
	s.refreshCalls++
	s.lastEvent = event
	return nil
}

func (s *stubService) Preferences(context.Context, attribution.ViewerContext) (attribution.Preferences, error) {
	return s.prefs, nil
}

func (s *stubService) SavePreferences(_ context.Context, _ attribution.ViewerContext, prefs attribution.Preferences) error {
	s.saveCalls++
	s.prefs = prefs
	return nil
}

type stubTelemetry struct {
	calls int
}

func (t *stubTelemetry) Record(context.Context, string, map[string]any) {
	t.calls++
}

func TestSelectMetricCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewSelectMetricCommand(service, telemetry)

	if err := cmd.Execute(context.Background(), SelectMetricInput{Metric: attribution.MetricReplies}); err == nil {
		t.Fatal("expected error for missing viewer")
	}
	input := SelectMetricInput{
		Viewer: attribution.ViewerContext{UserID: "user-1"},
		Metric: attribution.MetricReplies,
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.selectCalls != 1 || service.selectedMetric != attribution.MetricReplies {
		t.Fatalf("expected select call with replies, got %d %s", service.selectCalls, service.selectedMetric)
	}
	if telemetry.calls == 0 {
		t.Fatal("expected telemetry to record events")
	}
}

func TestRegenerateDatasetCommand(t *testing.T) {
	service := &stubService{}
	cmd := NewRegenerateDatasetCommand(service, nil)
	if err := cmd.Execute(context.Background(), RegenerateDatasetInput{Reason: "manual"}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.regenerateCalls != 1 {
		t.Fatal("expected regenerate call")
	}
}

func TestRefreshDashboardCommandDefaultsKind(t *testing.T) {
	service := &stubService{}
	cmd := NewRefreshDashboardCommand(service, nil)
	if err := cmd.Execute(context.Background(), RefreshDashboardInput{
		Event: attribution.DashboardEvent{AreaCode: attribution.AreaCharts},
	}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.refreshCalls != 1 {
		t.Fatal("expected refresh call")
	}
	if service.lastEvent.Kind != attribution.EventWidgetRefresh {
		t.Fatalf("expected default kind, got %q", service.lastEvent.Kind)
	}
}

func TestSavePreferencesCommandMergesOverrides(t *testing.T) {
	service := &stubService{prefs: attribution.Preferences{
		SelectedMetric: attribution.MetricBounces,
		ThemeVariant:   "signal",
	}}
	cmd := NewSavePreferencesCommand(service, nil)

	if err := cmd.Execute(context.Background(), SavePreferencesInput{}); err == nil {
		t.Fatal("expected error for missing viewer")
	}
	input := SavePreferencesInput{
		Viewer:        attribution.ViewerContext{UserID: "user-1"},
		ThemeVariant:  "ledger",
		HiddenWidgets: []string{"board.breakdown.campaign"},
	}
	if err := cmd.Execute(context.Background(), input); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.saveCalls != 1 {
		t.Fatal("expected save call")
	}
	if service.prefs.ThemeVariant != "ledger" {
		t.Fatalf("expected theme override applied, got %q", service.prefs.ThemeVariant)
	}
	if service.prefs.SelectedMetric != attribution.MetricBounces {
		t.Fatalf("expected untouched metric preserved, got %q", service.prefs.SelectedMetric)
	}
	if !service.prefs.HiddenWidgets["board.breakdown.campaign"] {
		t.Fatalf("expected hidden widget recorded, got %+v", service.prefs.HiddenWidgets)
	}
}

func TestSeedBoardCommand(t *testing.T) {
	registry := attribution.NewRegistry()
	service := attribution.NewService(attribution.Options{Providers: registry})
	telemetry := &stubTelemetry{}
	cmd := NewSeedBoardCommand(registry, service, telemetry)
	if err := cmd.Execute(context.Background(), SeedBoardInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got := len(registry.Definitions()); got != len(attribution.DefaultWidgetDefinitions()) {
		t.Fatalf("expected %d definitions, got %d", len(attribution.DefaultWidgetDefinitions()), got)
	}
	if telemetry.calls == 0 {
		t.Fatal("expected telemetry to record events")
	}
}
