package attribution

import (
	"context"
	"fmt"
	"math"
)

// ScorecardSource supplies the KPI cards for a viewer's dataset window.
type ScorecardSource interface {
	Scorecards(ctx context.Context, viewer ViewerContext) ([]Scorecard, error)
}

// ScorecardsProvider renders the KPI scorecard row.
type ScorecardsProvider struct {
	source ScorecardSource
}

// NewScorecardsProvider builds a provider backed by the given source.
func NewScorecardsProvider(source ScorecardSource) Provider {
	return &ScorecardsProvider{source: source}
}

// Fetch returns one payload entry per funnel metric.
func (p *ScorecardsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, fmt.Errorf("attribution: scorecards provider requires a source")
	}
	cards, err := p.source.Scorecards(ctx, meta.Viewer)
	if err != nil {
		return nil, fmt.Errorf("attribution: scorecards provider: %w", err)
	}
	payload := make([]map[string]any, 0, len(cards))
	for _, card := range cards {
		label := MetricLabelForLocale(ctx, meta.Translator, card.Metric, meta.Viewer.Locale)
		payload = append(payload, map[string]any{
			"metric":    string(card.Metric),
			"label":     label,
			"actual":    card.Actual,
			"planned":   card.Planned,
			"trend":     card.Trend,
			"trend_pct": math.Round(card.Trend*1000) / 10,
			"direction": trendDirection(card.Trend),
		})
	}
	return WidgetData{"cards": payload}, nil
}

func trendDirection(trend float64) string {
	switch {
	case trend > 0:
		return "up"
	case trend < 0:
		return "down"
	default:
		return "flat"
	}
}
