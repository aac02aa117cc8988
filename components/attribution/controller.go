package attribution

import (
	"context"
	"errors"
	"io"
	"sort"
)

// LayoutResolver is the slice of the service the controller needs.
type LayoutResolver interface {
	ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error)
}

// ControllerOptions wires the collaborators for HTML rendering.
type ControllerOptions struct {
	Service     LayoutResolver
	Renderer    Renderer
	Template    string
	Title       string
	Themes      *ThemeRegistry
	Preferences PreferenceStore
	Areas       []string
}

// Controller renders the attribution board to HTML.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = "board"
	}
	if opts.Title == "" {
		opts.Title = "Outreach Attribution"
	}
	if opts.Themes == nil {
		opts.Themes = NewThemeRegistry(SelectionMultiWay, DefaultThemeVariants()...)
	}
	return &Controller{opts: opts}
}

// Render resolves the layout for a viewer and returns it to the caller.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.opts.Service == nil {
		return Layout{}, nil
	}
	return c.opts.Service.ConfigureLayout(ctx, viewer)
}

// RenderTemplate resolves the layout and writes the rendered board HTML.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("attribution: controller renderer is required")
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, payload, out)
	return err
}

// LayoutPayload builds the template payload for a viewer: ordered areas with
// widget data flattened, the metric picker, and theme tokens.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	payload := map[string]any{
		"title":   c.opts.Title,
		"loading": false,
	}

	prefs := defaultPreferences(viewer)
	if c.opts.Preferences != nil {
		stored, err := c.opts.Preferences.Preferences(ctx, viewer)
		if err != nil {
			return nil, err
		}
		prefs = stored
	}

	variant := c.opts.Themes.ResolveForViewer(prefs)
	payload["theme"] = variant.Name
	payload["theme_css"] = variant.CSSVariablesInline()

	metrics := make([]map[string]any, 0, len(SelectableMetrics()))
	for _, m := range SelectableMetrics() {
		metrics = append(metrics, map[string]any{
			"code":     string(m),
			"label":    m.Label(),
			"selected": m == prefs.SelectedMetric,
		})
	}
	payload["metrics"] = metrics

	layout, err := c.Render(ctx, viewer)
	if err != nil {
		if errors.Is(err, ErrDatasetLoading) {
			payload["loading"] = true
			payload["areas"] = []map[string]any{}
			return payload, nil
		}
		return nil, err
	}

	payload["areas"] = c.areaPayload(layout)
	return payload, nil
}

func (c *Controller) areaPayload(layout Layout) []map[string]any {
	areas := make([]map[string]any, 0, len(layout.Areas))
	for _, code := range c.areaOrder(layout) {
		widgets, ok := layout.Areas[code]
		if !ok {
			continue
		}
		entries := make([]map[string]any, 0, len(widgets))
		for _, w := range widgets {
			entry := map[string]any{
				"id":         w.ID,
				"definition": w.DefinitionID,
			}
			if data, ok := w.Metadata["data"].(WidgetData); ok {
				for k, v := range data {
					entry[k] = v
				}
			}
			entries = append(entries, entry)
		}
		areas = append(areas, map[string]any{
			"code":    code,
			"widgets": entries,
		})
	}
	return areas
}

// areaOrder keeps the configured area sequence and appends any extra areas
// the layout carries in stable order.
func (c *Controller) areaOrder(layout Layout) []string {
	known := c.opts.Areas
	if len(known) == 0 {
		known = defaultAreas
	}
	order := make([]string, 0, len(layout.Areas))
	seen := make(map[string]struct{}, len(layout.Areas))
	for _, code := range known {
		if _, ok := layout.Areas[code]; ok {
			order = append(order, code)
			seen[code] = struct{}{}
		}
	}
	var extra []string
	for code := range layout.Areas {
		if _, ok := seen[code]; !ok {
			extra = append(extra, code)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}
