package attribution

import (
	"context"
	"fmt"
)

// BreakdownSource groups the dataset along one dimension for one metric.
type BreakdownSource interface {
	BreakdownBy(ctx context.Context, viewer ViewerContext, dim Dimension, metric Metric) (Breakdown, error)
	SelectedMetric(ctx context.Context, viewer ViewerContext) (Metric, error)
}

// BreakdownTableProvider renders a per-dimension totals table. The dimension
// is fixed by widget configuration; the metric follows the viewer's focus
// unless the configuration pins one.
type BreakdownTableProvider struct {
	source BreakdownSource
}

// NewBreakdownTableProvider builds a provider backed by the given source.
func NewBreakdownTableProvider(source BreakdownSource) Provider {
	return &BreakdownTableProvider{source: source}
}

// Fetch returns the ranked rows for the configured dimension.
func (p *BreakdownTableProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, fmt.Errorf("attribution: breakdown provider requires a source")
	}

	cfg := meta.Instance.Configuration
	rawDim := stringValue(cfg["dimension"], "")
	if rawDim == "" {
		return nil, fmt.Errorf("attribution: breakdown widget %q is missing a dimension", meta.Instance.ID)
	}
	dim, ok := ParseDimension(rawDim)
	if !ok {
		return nil, fmt.Errorf("attribution: unknown dimension %q", rawDim)
	}

	metric, err := p.resolveMetric(ctx, meta.Viewer, cfg)
	if err != nil {
		return nil, err
	}

	breakdown, err := p.source.BreakdownBy(ctx, meta.Viewer, dim, metric)
	if err != nil {
		return nil, fmt.Errorf("attribution: breakdown provider: %w", err)
	}

	entries := breakdown.Entries
	if limit := intValue(cfg["limit"], 0); limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}

	rows := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, map[string]any{
			"value": entry.Value,
			"sum":   entry.Sum,
			"share": breakdown.Share(entry),
		})
	}

	title := translateOrFallback(ctx, meta.Translator,
		"attribution.dimension."+string(dim), meta.Viewer.Locale, dim.Label(), nil)

	return WidgetData{
		"dimension": string(dim),
		"title":     title,
		"metric":    string(metric),
		"label":     MetricLabelForLocale(ctx, meta.Translator, metric, meta.Viewer.Locale),
		"total":     breakdown.Total,
		"rows":      rows,
	}, nil
}

func (p *BreakdownTableProvider) resolveMetric(ctx context.Context, viewer ViewerContext, cfg map[string]any) (Metric, error) {
	if raw := stringValue(cfg["metric"], ""); raw != "" {
		metric, ok := ParseMetric(raw)
		if !ok {
			return "", fmt.Errorf("attribution: unknown metric %q", raw)
		}
		return metric, nil
	}
	metric, err := p.source.SelectedMetric(ctx, viewer)
	if err != nil {
		return "", fmt.Errorf("attribution: breakdown provider: %w", err)
	}
	return metric, nil
}
