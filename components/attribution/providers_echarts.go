package attribution

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// envEChartsCDN overrides the assets host so the ECharts runtime loads from
// a CDN or self-hosted bucket.
const envEChartsCDN = "GO_ATTRIBUTION_ECHARTS_CDN"

var sharedChartCache = NewChartCache(5 * time.Minute)

// ChartSeries is one plotted series: a legend name and aligned values.
type ChartSeries struct {
	Name   string
	Values []float64
}

// ChartSpec carries everything a chart render needs besides the series.
type ChartSpec struct {
	Title    string
	Subtitle string
	XAxis    []string
	Theme    string
	Curve    CurveStyle
	// YMax pins the y-axis ceiling; zero lets echarts scale automatically.
	YMax float64
}

// EChartsRenderer renders server-side chart HTML.
type EChartsRenderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
}

// EChartsRendererOption customizes renderer behavior.
type EChartsRendererOption func(*EChartsRenderer)

// WithChartCache injects a render cache. Passing nil disables caching.
func WithChartCache(cache RenderCache) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets the fallback theme used when a spec has none.
func WithChartTheme(theme string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.theme = theme
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) EChartsRendererOption {
	return func(r *EChartsRenderer) {
		r.assetsHost = host
	}
}

// NewEChartsRenderer builds a renderer with the shared cache and the
// Westeros theme as defaults.
func NewEChartsRenderer(options ...EChartsRendererOption) *EChartsRenderer {
	r := &EChartsRenderer{
		cache:      sharedChartCache,
		theme:      string(types.ThemeWesteros),
		assetsHost: assetsHostFromEnv(),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Line renders a multi-series line chart keyed for the cache.
func (r *EChartsRenderer) Line(key string, spec ChartSpec, series []ChartSeries) (string, error) {
	return r.cached(key, func() (string, error) {
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalChartOptions(spec)...)
		line.SetXAxis(spec.XAxis)
		for _, s := range series {
			line.AddSeries(s.Name, toLineData(s.Values))
		}
		smooth := spec.Curve != CurveStraight
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(smooth)}))
		return renderChart(line)
	})
}

// Bar renders a multi-series bar chart keyed for the cache.
func (r *EChartsRenderer) Bar(key string, spec ChartSpec, series []ChartSeries) (string, error) {
	return r.cached(key, func() (string, error) {
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalChartOptions(spec)...)
		bar.SetXAxis(spec.XAxis)
		for _, s := range series {
			bar.AddSeries(s.Name, toBarData(s.Values))
		}
		return renderChart(bar)
	})
}

// Pie renders breakdown entries as a pie chart keyed for the cache.
func (r *EChartsRenderer) Pie(key string, spec ChartSpec, entries []BreakdownEntry) (string, error) {
	return r.cached(key, func() (string, error) {
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalChartOptions(spec)...)
		data := make([]opts.PieData, len(entries))
		for i, entry := range entries {
			name := entry.Value
			if name == "" {
				name = fmt.Sprintf("Slice %d", i+1)
			}
			data[i] = opts.PieData{Name: name, Value: entry.Sum}
		}
		pie.AddSeries(spec.Title, data)
		return renderChart(pie)
	})
}

func (r *EChartsRenderer) cached(key string, render func() (string, error)) (string, error) {
	if r.cache == nil || key == "" {
		return render()
	}
	return r.cache.GetOrRender(key, render)
}

func (r *EChartsRenderer) globalChartOptions(spec ChartSpec) []charts.GlobalOpts {
	theme := spec.Theme
	if theme == "" {
		theme = r.theme
	}
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	global := []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
	if spec.YMax > 0 {
		global = append(global, charts.WithYAxisOpts(opts.YAxis{Max: spec.YMax}))
	}
	return global
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func toLineData(values []float64) []opts.LineData {
	data := make([]opts.LineData, len(values))
	for i, v := range values {
		data[i] = opts.LineData{Value: v}
	}
	return data
}

func toBarData(values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, v := range values {
		data[i] = opts.BarData{Value: v}
	}
	return data
}

func assetsHostFromEnv() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		if !strings.HasSuffix(host, "/") {
			host += "/"
		}
		return host
	}
	return ""
}
