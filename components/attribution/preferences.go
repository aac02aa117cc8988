package attribution

import (
	"context"
	"fmt"
	"sync"
)

// Preferences captures per-viewer dashboard state: the active metric driving
// scorecard highlighting and the comparison chart, the theme variant, and
// widget visibility/order overrides.
type Preferences struct {
	SelectedMetric Metric              `json:"selected_metric"`
	ThemeVariant   string              `json:"theme_variant,omitempty"`
	Locale         string              `json:"locale,omitempty"`
	AreaOrder      map[string][]string `json:"area_order,omitempty"`
	HiddenWidgets  map[string]bool     `json:"hidden_widgets,omitempty"`
}

func defaultPreferences(viewer ViewerContext) Preferences {
	return Preferences{
		SelectedMetric: MetricEmailsSent,
		Locale:         viewer.Locale,
		AreaOrder:      map[string][]string{},
		HiddenWidgets:  map[string]bool{},
	}
}

// InMemoryPreferenceStore provides a concurrency-safe default store.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]Preferences
}

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]Preferences),
	}
}

// Preferences returns stored preferences or defaults.
func (s *InMemoryPreferenceStore) Preferences(_ context.Context, viewer ViewerContext) (Preferences, error) {
	if viewer.UserID == "" {
		return defaultPreferences(viewer), nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if prefs, ok := s.data[s.key(viewer)]; ok {
		normalizePreferences(&prefs, viewer)
		return prefs, nil
	}
	return defaultPreferences(viewer), nil
}

// SavePreferences persists preferences for a viewer.
func (s *InMemoryPreferenceStore) SavePreferences(_ context.Context, viewer ViewerContext, prefs Preferences) error {
	if viewer.UserID == "" {
		return fmt.Errorf("attribution: preference store requires viewer user id")
	}
	normalizePreferences(&prefs, viewer)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[s.key(viewer)] = prefs
	return nil
}

func (s *InMemoryPreferenceStore) key(viewer ViewerContext) string {
	if viewer.Locale == "" {
		return viewer.UserID
	}
	return viewer.UserID + "::" + viewer.Locale
}

func normalizePreferences(prefs *Preferences, viewer ViewerContext) {
	if prefs.SelectedMetric == "" {
		prefs.SelectedMetric = MetricEmailsSent
	}
	if prefs.Locale == "" {
		prefs.Locale = viewer.Locale
	}
	if prefs.AreaOrder == nil {
		prefs.AreaOrder = map[string][]string{}
	}
	if prefs.HiddenWidgets == nil {
		prefs.HiddenWidgets = map[string]bool{}
	}
}
