package attribution

import (
	"context"
	"fmt"
)

// SeriesSource supplies the by-day aggregates and the viewer's metric focus.
type SeriesSource interface {
	DaySeries(ctx context.Context, viewer ViewerContext) ([]DayAggregate, error)
	SelectedMetric(ctx context.Context, viewer ViewerContext) (Metric, error)
}

// ComparisonChartProvider plots the selected metric against its planned
// counterpart across the dataset window.
type ComparisonChartProvider struct {
	source   SeriesSource
	renderer *EChartsRenderer
	themes   *ThemeRegistry
}

// NewComparisonChartProvider builds the actual-vs-planned chart provider.
func NewComparisonChartProvider(source SeriesSource, renderer *EChartsRenderer, themes *ThemeRegistry) Provider {
	if renderer == nil {
		renderer = NewEChartsRenderer()
	}
	if themes == nil {
		themes = NewThemeRegistry(SelectionMultiWay, DefaultThemeVariants()...)
	}
	return &ComparisonChartProvider{
		source:   source,
		renderer: renderer,
		themes:   themes,
	}
}

// Fetch renders the comparison line chart for the viewer's selected metric.
func (p *ComparisonChartProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.source == nil {
		return nil, fmt.Errorf("attribution: comparison chart provider requires a source")
	}

	cfg := meta.Instance.Configuration
	metric, err := p.resolveMetric(ctx, meta.Viewer, cfg)
	if err != nil {
		return nil, err
	}
	planned, ok := PlannedCounterpart(metric)
	if !ok {
		return nil, fmt.Errorf("attribution: metric %q has no planned counterpart", metric)
	}

	days, err := p.source.DaySeries(ctx, meta.Viewer)
	if err != nil {
		return nil, fmt.Errorf("attribution: comparison chart provider: %w", err)
	}
	if lookback := intValue(cfg["lookback_days"], 0); lookback > 0 && lookback < len(days) {
		days = days[len(days)-lookback:]
	}

	xAxis := make([]string, len(days))
	actual := make([]float64, len(days))
	plannedValues := make([]float64, len(days))
	for i, day := range days {
		xAxis[i] = day.Date.Format("Jan 2")
		actual[i] = float64(day.Value(metric))
		plannedValues[i] = float64(day.Value(planned))
	}

	variant, err := p.themes.Resolve(stringValue(cfg["theme"], ""))
	if err != nil {
		return nil, err
	}

	title := translateOrFallback(ctx, meta.Translator,
		"attribution.widget.comparison_chart.title", meta.Viewer.Locale,
		metric.Label()+" vs Plan", nil)

	ceiling := SeriesCeiling(days, metric)
	spec := ChartSpec{
		Title:    title,
		Subtitle: fmt.Sprintf("%d days", len(days)),
		XAxis:    xAxis,
		Theme:    variant.ChartTheme,
		Curve:    variant.Curve,
		YMax:     ceiling,
	}
	series := []ChartSeries{
		{Name: metric.Label(), Values: actual},
		{Name: planned.Label(), Values: plannedValues},
	}

	key := ChartKey{
		WidgetID: meta.Instance.ID,
		Metric:   metric,
		Theme:    variant.Name,
		Points:   len(days),
	}
	if len(xAxis) > 0 {
		key.LastDay = xAxis[len(xAxis)-1]
	}
	html, err := p.renderer.Line(key.String(), spec, series)
	if err != nil {
		return nil, fmt.Errorf("attribution: comparison chart render: %w", err)
	}

	data := WidgetData{
		"chart_html": html,
		"metric":     string(metric),
		"planned":    string(planned),
		"label":      MetricLabelForLocale(ctx, meta.Translator, metric, meta.Viewer.Locale),
		"ceiling":    ceiling,
		"theme":      variant.Name,
		"points":     len(days),
	}
	if boolValue(cfg["dynamic"]) {
		data["dynamic"] = true
		if refresh := stringValue(cfg["refresh_endpoint"], ""); refresh != "" {
			data["refresh_endpoint"] = refresh
		}
	}
	return data, nil
}

func (p *ComparisonChartProvider) resolveMetric(ctx context.Context, viewer ViewerContext, cfg map[string]any) (Metric, error) {
	if raw := stringValue(cfg["metric"], ""); raw != "" {
		metric, ok := ParseMetric(raw)
		if !ok {
			return "", fmt.Errorf("attribution: unknown metric %q", raw)
		}
		return metric, nil
	}
	metric, err := p.source.SelectedMetric(ctx, viewer)
	if err != nil {
		return "", fmt.Errorf("attribution: comparison chart provider: %w", err)
	}
	return metric, nil
}
