package attribution

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// RenderCache memoizes rendered chart HTML so repeated fetches are cheap.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartKey identifies a rendered chart: the same widget instance re-renders
// only when the metric, theme, or visible window changes.
type ChartKey struct {
	WidgetID string
	Metric   Metric
	Theme    string
	Points   int
	LastDay  string
}

// String flattens the key for cache storage.
func (k ChartKey) String() string {
	parts := []string{
		k.WidgetID,
		string(k.Metric),
		k.Theme,
		strconv.Itoa(k.Points),
		k.LastDay,
	}
	return strings.Join(parts, "|")
}

// ChartCache is an in-memory TTL cache for rendered charts.
type ChartCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]renderEntry
}

type renderEntry struct {
	html       string
	renderedAt time.Time
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL
// disables caching entirely.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:     ttl,
		entries: make(map[string]renderEntry),
	}
}

// GetOrRender returns the cached HTML for key, rendering and storing it on a
// miss. Expired entries are dropped before render runs so a failing render
// does not resurrect stale HTML.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}

	now := time.Now()
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && now.Sub(entry.renderedAt) < c.ttl {
		c.mu.Unlock()
		return entry.html, nil
	}
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = renderEntry{html: html, renderedAt: now}
	c.mu.Unlock()
	return html, nil
}

// Len reports live entries, sweeping anything already expired.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		if now.Sub(entry.renderedAt) >= c.ttl {
			delete(c.entries, key)
		}
	}
	return len(c.entries)
}
