// Package feed provides dataset sources that replace the synthetic
// generator with real outreach exports: a REST client and a CSV reader.
package feed

import (
	"context"
	"time"

	attribution "github.com/goliatone/go-attribution/components/attribution"
)

// RecordsQuery narrows a record fetch.
type RecordsQuery struct {
	Since     time.Time `json:"since,omitempty"`
	Until     time.Time `json:"until,omitempty"`
	Campaigns []string  `json:"campaigns,omitempty"`
}

// Client fetches outreach records from an upstream feed.
type Client interface {
	FetchRecords(ctx context.Context, query RecordsQuery) ([]attribution.Record, error)
}

// Source adapts a Client to the dashboard's DatasetSource contract.
type Source struct {
	Client Client
	Query  RecordsQuery
}

// Records fetches the configured window from the upstream feed.
func (s Source) Records(ctx context.Context) ([]attribution.Record, error) {
	return s.Client.FetchRecords(ctx, s.Query)
}

var _ attribution.DatasetSource = Source{}
