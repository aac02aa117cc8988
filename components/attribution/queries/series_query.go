package queries

import (
	"context"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	gocommand "github.com/goliatone/go-command"
)

// SeriesInput identifies a series request for a viewer.
type SeriesInput struct {
	Viewer attribution.ViewerContext
	Metric attribution.Metric
}

// SeriesResult pairs the by-day aggregates with the chart ceiling for the
// requested metric.
type SeriesResult struct {
	Metric  attribution.Metric         `json:"metric"`
	Planned attribution.Metric         `json:"planned_metric"`
	Days    []attribution.DayAggregate `json:"days"`
	Ceiling float64                    `json:"ceiling"`
}

type seriesService interface {
	DaySeries(ctx context.Context, viewer attribution.ViewerContext) ([]attribution.DayAggregate, error)
	SelectedMetric(ctx context.Context, viewer attribution.ViewerContext) (attribution.Metric, error)
}

// SeriesQuery resolves the daily comparison series.
type SeriesQuery struct {
	service seriesService
}

// NewSeriesQuery builds the query.
func NewSeriesQuery(service seriesService) *SeriesQuery {
	return &SeriesQuery{service: service}
}

var _ gocommand.Querier[SeriesInput, SeriesResult] = (*SeriesQuery)(nil)

// Query returns the by-day series for the requested metric, falling back to
// the viewer's selected metric when the input leaves it blank.
func (q *SeriesQuery) Query(ctx context.Context, input SeriesInput) (SeriesResult, error) {
	metric := input.Metric
	if metric == "" {
		selected, err := q.service.SelectedMetric(ctx, input.Viewer)
		if err != nil {
			return SeriesResult{}, err
		}
		metric = selected
	}
	days, err := q.service.DaySeries(ctx, input.Viewer)
	if err != nil {
		return SeriesResult{}, err
	}
	planned, _ := attribution.PlannedCounterpart(metric)
	return SeriesResult{
		Metric:  metric,
		Planned: planned,
		Days:    days,
		Ceiling: attribution.SeriesCeiling(days, metric),
	}, nil
}
