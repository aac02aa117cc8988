package feed

import (
	"context"
	"sync"

	attribution "github.com/goliatone/go-attribution/components/attribution"
)

// MockClient implements Client using in-memory fixtures. It records every
// query so tests can assert on windows and filters.
type MockClient struct {
	mu      sync.RWMutex
	records []attribution.Record
	err     error
	Queries []RecordsQuery
}

// NewMockClient builds a mock feed client from the provided fixtures.
func NewMockClient(records []attribution.Record) *MockClient {
	return &MockClient{records: records}
}

// Fail makes every fetch return the given error.
func (c *MockClient) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// FetchRecords returns the configured fixture rows.
func (c *MockClient) FetchRecords(_ context.Context, query RecordsQuery) ([]attribution.Record, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Queries = append(c.Queries, query)
	if c.err != nil {
		return nil, c.err
	}
	out := make([]attribution.Record, len(c.records))
	copy(out, c.records)
	return out, nil
}
