package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	"github.com/goliatone/go-attribution/components/attribution/commands"
	"github.com/goliatone/go-attribution/components/attribution/httpapi"
	"github.com/goliatone/go-attribution/components/attribution/queries"
	gocommand "github.com/goliatone/go-command"
)

// ViewerResolver converts a router.Context into a viewer context.
type ViewerResolver func(router.Context) attribution.ViewerContext

// Config wires go-router with the attribution controller, API, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *attribution.Controller
	API            httpapi.Executor
	Series         gocommand.Querier[queries.SeriesInput, queries.SeriesResult]
	Breakdown      gocommand.Querier[queries.BreakdownInput, attribution.Breakdown]
	Scorecards     attribution.ScorecardSource
	Broadcast      *attribution.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for board endpoints.
type RouteConfig struct {
	HTML        string
	Layout      string
	Series      string
	Breakdown   string
	Scorecards  string
	Metric      string
	Regenerate  string
	Refresh     string
	Preferences string
	WebSocket   string
}

// Register mounts board routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/attribution"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Controller.LayoutPayload(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.Series != nil {
		registerSeries(group, cfg.Series, viewerResolver, routes.Series)
	}
	if cfg.Breakdown != nil {
		registerBreakdown(group, cfg.Breakdown, viewerResolver, routes.Breakdown)
	}
	if cfg.Scorecards != nil {
		registerScorecards(group, cfg.Scorecards, viewerResolver, routes.Scorecards)
	}
	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerSeries[T any](r router.Router[T], q gocommand.Querier[queries.SeriesInput, queries.SeriesResult], resolver ViewerResolver, path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		input := queries.SeriesInput{Viewer: resolver(ctx)}
		if raw := ctx.Query("metric"); raw != "" {
			metric, ok := attribution.ParseMetric(raw)
			if !ok {
				return respondError(ctx, http.StatusBadRequest, errors.New("unknown metric "+raw))
			}
			input.Metric = metric
		}
		result, err := q.Query(ctx.Context(), input)
		if err != nil {
			return respondDatasetError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))
}

func registerBreakdown[T any](r router.Router[T], q gocommand.Querier[queries.BreakdownInput, attribution.Breakdown], resolver ViewerResolver, path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		rawDim := ctx.Param("dimension")
		if rawDim == "" {
			rawDim = ctx.Query("dimension")
		}
		dim, ok := attribution.ParseDimension(rawDim)
		if !ok {
			return respondError(ctx, http.StatusBadRequest, errors.New("unknown dimension "+rawDim))
		}
		input := queries.BreakdownInput{Viewer: resolver(ctx), Dimension: dim}
		if raw := ctx.Query("metric"); raw != "" {
			metric, ok := attribution.ParseMetric(raw)
			if !ok {
				return respondError(ctx, http.StatusBadRequest, errors.New("unknown metric "+raw))
			}
			input.Metric = metric
		}
		result, err := q.Query(ctx.Context(), input)
		if err != nil {
			return respondDatasetError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, result)
	}))
}

func registerScorecards[T any](r router.Router[T], source attribution.ScorecardSource, resolver ViewerResolver, path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		cards, err := source.Scorecards(ctx.Context(), resolver(ctx))
		if err != nil {
			return respondDatasetError(ctx, err)
		}
		return ctx.JSON(http.StatusOK, map[string]any{"cards": cards})
	}))
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Metric, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SelectMetricInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if payload.Viewer.UserID == "" {
			payload.Viewer = resolver(ctx)
		}
		if err := api.SelectMetric(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "selected"})
	}))

	r.Post(routes.Regenerate, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RegenerateDatasetInput
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		if err := api.Regenerate(ctx.Context(), payload); err != nil {
			return respondDatasetError(ctx, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "regenerating"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshDashboardInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SavePreferencesInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.Preferences(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *attribution.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) attribution.ViewerContext {
	var viewer attribution.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Param("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func respondDatasetError(ctx router.Context, err error) error {
	if errors.Is(err, attribution.ErrDatasetLoading) {
		return respondError(ctx, http.StatusServiceUnavailable, err)
	}
	return respondError(ctx, http.StatusInternalServerError, err)
}

func (cfg Config[T]) routes() RouteConfig {
	return defaultRouteConfig(cfg.Routes)
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/board"
	}
	if routes.Layout == "" {
		routes.Layout = "/board/_layout"
	}
	if routes.Series == "" {
		routes.Series = "/board/series"
	}
	if routes.Breakdown == "" {
		routes.Breakdown = "/board/breakdown/:dimension"
	}
	if routes.Scorecards == "" {
		routes.Scorecards = "/board/scorecards"
	}
	if routes.Metric == "" {
		routes.Metric = "/board/metric"
	}
	if routes.Regenerate == "" {
		routes.Regenerate = "/board/regenerate"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/board/refresh"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/board/preferences"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/board/ws"
	}
	return routes
}
