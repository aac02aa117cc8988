package attribution

import (
	"context"
	"testing"
)

func TestInMemoryPreferenceStore(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	viewer := ViewerContext{UserID: "user-1", Locale: "en"}
	prefs := Preferences{
		SelectedMetric: MetricReplies,
		ThemeVariant:   "ledger",
		AreaOrder: map[string][]string{
			AreaTables: {"board.breakdown.region", "board.breakdown.inbox_provider"},
		},
		HiddenWidgets: map[string]bool{"board.breakdown.campaign": true},
	}
	if err := store.SavePreferences(context.Background(), viewer, prefs); err != nil {
		t.Fatalf("SavePreferences returned error: %v", err)
	}
	out, err := store.Preferences(context.Background(), viewer)
	if err != nil {
		t.Fatalf("Preferences returned error: %v", err)
	}
	if out.SelectedMetric != MetricReplies {
		t.Fatalf("expected replies selected, got %s", out.SelectedMetric)
	}
	if out.Locale != "en" {
		t.Fatalf("expected locale metadata persisted, got %q", out.Locale)
	}
	if order := out.AreaOrder[AreaTables]; len(order) != 2 || order[0] != "board.breakdown.region" {
		t.Fatalf("expected override order, got %v", order)
	}
	if !out.HiddenWidgets["board.breakdown.campaign"] {
		t.Fatal("expected hidden widget persisted")
	}
}

func TestInMemoryPreferenceStoreDefaults(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	out, err := store.Preferences(context.Background(), ViewerContext{UserID: "fresh", Locale: "es"})
	if err != nil {
		t.Fatalf("Preferences returned error: %v", err)
	}
	if out.SelectedMetric != MetricEmailsSent {
		t.Fatalf("expected emails_sent default, got %s", out.SelectedMetric)
	}
	if out.Locale != "es" {
		t.Fatalf("expected viewer locale, got %q", out.Locale)
	}
	if out.AreaOrder == nil || out.HiddenWidgets == nil {
		t.Fatal("expected override maps initialized")
	}
}

func TestInMemoryPreferenceStoreRequiresUser(t *testing.T) {
	store := NewInMemoryPreferenceStore()
	if err := store.SavePreferences(context.Background(), ViewerContext{}, Preferences{}); err == nil {
		t.Fatal("expected error for missing user id")
	}
}
