package queries

import (
	"context"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	gocommand "github.com/goliatone/go-command"
)

type layoutService interface {
	ConfigureLayout(ctx context.Context, viewer attribution.ViewerContext) (attribution.Layout, error)
}

// LayoutQuery executes read-only layout resolution.
type LayoutQuery struct {
	service layoutService
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(service layoutService) *LayoutQuery {
	return &LayoutQuery{service: service}
}

var _ gocommand.Querier[attribution.ViewerContext, attribution.Layout] = (*LayoutQuery)(nil)

// Query resolves the layout for the viewer.
func (q *LayoutQuery) Query(ctx context.Context, viewer attribution.ViewerContext) (attribution.Layout, error) {
	return q.service.ConfigureLayout(ctx, viewer)
}
