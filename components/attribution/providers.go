package attribution

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// demoSeed keeps the out-of-the-box board deterministic across restarts.
const demoSeed = 20250630

var demoSource = &demoDataSource{}

var defaultProviders = map[string]Provider{
	"attribution.widget.scorecards":       NewScorecardsProvider(demoSource),
	"attribution.widget.comparison_chart": NewComparisonChartProvider(demoSource, nil, nil),
	"attribution.widget.breakdown_inbox_provider": NewBreakdownTableProvider(demoSource),
	"attribution.widget.breakdown_region":         NewBreakdownTableProvider(demoSource),
	"attribution.widget.breakdown_persona":        NewBreakdownTableProvider(demoSource),
	"attribution.widget.breakdown_campaign":       NewBreakdownTableProvider(demoSource),
}

// demoDataSource serves a fixed-seed synthetic dataset so the default
// providers work without any wiring. The real service replaces these
// providers with ones backed by its own dataset.
type demoDataSource struct {
	once   sync.Once
	days   []DayAggregate
	totals FunnelTotals
	cards  []Scorecard
	rows   []Record
}

func (s *demoDataSource) load() {
	s.once.Do(func() {
		anchor := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
		s.rows = GenerateDataset(GeneratorOptions{
			Anchor:  anchor,
			Entropy: rand.New(rand.NewSource(demoSeed)),
		})
		s.days = AggregateByDay(s.rows)
		s.totals = Totals(s.rows)
		s.cards = BuildScorecards(s.totals)
	})
}

func (s *demoDataSource) Scorecards(_ context.Context, _ ViewerContext) ([]Scorecard, error) {
	s.load()
	out := make([]Scorecard, len(s.cards))
	copy(out, s.cards)
	return out, nil
}

func (s *demoDataSource) DaySeries(_ context.Context, _ ViewerContext) ([]DayAggregate, error) {
	s.load()
	out := make([]DayAggregate, len(s.days))
	copy(out, s.days)
	return out, nil
}

func (s *demoDataSource) SelectedMetric(_ context.Context, _ ViewerContext) (Metric, error) {
	return MetricEmailsSent, nil
}

func (s *demoDataSource) BreakdownBy(_ context.Context, _ ViewerContext, dim Dimension, metric Metric) (Breakdown, error) {
	s.load()
	return BreakdownBy(s.rows, dim, metric), nil
}

func stringValue(value any, fallback string) string {
	if s, ok := value.(string); ok && s != "" {
		return s
	}
	return fallback
}

func boolValue(value any) bool {
	b, _ := value.(bool)
	return b
}

func intValue(value any, fallback int) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return fallback
	}
}
