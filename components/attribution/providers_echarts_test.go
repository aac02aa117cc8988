package attribution

import (
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEChartsRendererLine(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil))
	html, err := renderer.Line("", ChartSpec{
		Title: "Emails Sent vs Plan",
		XAxis: []string{"Jul 1", "Jul 2", "Jul 3"},
		YMax:  140,
	}, []ChartSeries{
		{Name: "Emails Sent", Values: []float64{100, 120, 90}},
		{Name: "Planned Sent", Values: []float64{110, 110, 110}},
	})
	require.NoError(t, err)
	lower := strings.ToLower(html)
	assert.Contains(t, lower, "echarts")
	assert.Contains(t, html, "Emails Sent")
	assert.Contains(t, html, "Planned Sent")
}

func TestEChartsRendererBar(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil))
	html, err := renderer.Bar("", ChartSpec{
		Title: "Replies by Region",
		XAxis: []string{"North America", "EMEA", "APAC"},
	}, []ChartSeries{
		{Name: "Replies", Values: []float64{42, 31, 18}},
	})
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(html), "echarts")
	assert.Contains(t, html, "Replies by Region")
}

func TestEChartsRendererPie(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil))
	html, err := renderer.Pie("", ChartSpec{Title: "Inbox Providers"}, []BreakdownEntry{
		{Value: "Google Workspace", Sum: 60},
		{Value: "Microsoft 365", Sum: 40},
	})
	require.NoError(t, err)
	assert.Contains(t, strings.ToLower(html), "echarts")
	assert.Contains(t, html, "Google Workspace")
}

func TestEChartsRendererUsesCache(t *testing.T) {
	t.Parallel()
	cache := &countingCache{}
	renderer := NewEChartsRenderer(WithChartCache(cache))
	spec := ChartSpec{Title: "Cached", XAxis: []string{"A", "B"}}
	series := []ChartSeries{{Name: "S1", Values: []float64{1, 2}}}

	_, err := renderer.Line("line:key", spec, series)
	require.NoError(t, err)
	_, err = renderer.Line("line:key", spec, series)
	require.NoError(t, err)

	assert.Equal(t, int32(1), cache.calls)
}

func TestEChartsRendererThemePrecedence(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(WithChartCache(nil), WithChartTheme(string(types.ThemeChalk)))
	// Spec theme wins over the renderer fallback.
	html, err := renderer.Line("", ChartSpec{
		Title: "Themed",
		XAxis: []string{"A"},
		Theme: string(types.ThemeWalden),
	}, []ChartSeries{{Name: "S", Values: []float64{1}}})
	require.NoError(t, err)
	assert.Contains(t, html, "walden")

	html, err = renderer.Line("", ChartSpec{
		Title: "Fallback",
		XAxis: []string{"A"},
	}, []ChartSeries{{Name: "S", Values: []float64{1}}})
	require.NoError(t, err)
	assert.Contains(t, html, "chalk")
}

func TestEChartsRendererAssetsHost(t *testing.T) {
	t.Parallel()
	renderer := NewEChartsRenderer(
		WithChartCache(nil),
		WithChartAssetsHost("https://cdn.example.com/echarts/"),
	)
	html, err := renderer.Line("", ChartSpec{
		Title: "CDN",
		XAxis: []string{"A"},
	}, []ChartSeries{{Name: "S", Values: []float64{1}}})
	require.NoError(t, err)
	assert.Contains(t, html, "https://cdn.example.com/echarts/")
}

type countingCache struct {
	calls int32
	value string
}

func (c *countingCache) GetOrRender(_ string, render func() (string, error)) (string, error) {
	if c.value != "" {
		return c.value, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	atomic.AddInt32(&c.calls, 1)
	c.value = html
	return html, nil
}

func BenchmarkEChartsRendererLine(b *testing.B) {
	renderer := NewEChartsRenderer(WithChartCache(nil))
	spec := ChartSpec{
		Title: "Benchmark",
		XAxis: []string{"A", "B", "C", "D", "E"},
	}
	series := []ChartSeries{
		{Name: "S1", Values: []float64{10, 20, 30, 40, 50}},
		{Name: "S2", Values: []float64{11, 21, 31, 41, 51}},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := renderer.Line("", spec, series); err != nil {
			b.Fatal(err)
		}
	}
}
