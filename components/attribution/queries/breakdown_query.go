package queries

import (
	"context"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	gocommand "github.com/goliatone/go-command"
)

// BreakdownInput identifies a per-dimension totals request.
type BreakdownInput struct {
	Viewer    attribution.ViewerContext
	Dimension attribution.Dimension
	Metric    attribution.Metric
}

type breakdownService interface {
	BreakdownBy(ctx context.Context, viewer attribution.ViewerContext, dim attribution.Dimension, metric attribution.Metric) (attribution.Breakdown, error)
	SelectedMetric(ctx context.Context, viewer attribution.ViewerContext) (attribution.Metric, error)
}

// BreakdownQuery resolves the ranked per-dimension totals.
type BreakdownQuery struct {
	service breakdownService
}

// NewBreakdownQuery builds the query.
func NewBreakdownQuery(service breakdownService) *BreakdownQuery {
	return &BreakdownQuery{service: service}
}

var _ gocommand.Querier[BreakdownInput, attribution.Breakdown] = (*BreakdownQuery)(nil)

// Query groups the dataset along the requested dimension.
func (q *BreakdownQuery) Query(ctx context.Context, input BreakdownInput) (attribution.Breakdown, error) {
	metric := input.Metric
	if metric == "" {
		selected, err := q.service.SelectedMetric(ctx, input.Viewer)
		if err != nil {
			return attribution.Breakdown{}, err
		}
		metric = selected
	}
	return q.service.BreakdownBy(ctx, input.Viewer, input.Dimension, metric)
}
