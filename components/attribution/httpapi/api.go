package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	"github.com/goliatone/go-attribution/components/attribution/commands"
	"github.com/goliatone/go-attribution/components/attribution/queries"
	gocommand "github.com/goliatone/go-command"
)

// Executor is the command surface transports invoke.
type Executor interface {
	SelectMetric(ctx context.Context, input commands.SelectMetricInput) error
	Regenerate(ctx context.Context, input commands.RegenerateDatasetInput) error
	Refresh(ctx context.Context, input commands.RefreshDashboardInput) error
	Preferences(ctx context.Context, input commands.SavePreferencesInput) error
}

// CommandExecutor adapts go-command commanders to the Executor interface.
type CommandExecutor struct {
	SelectMetricCmd gocommand.Commander[commands.SelectMetricInput]
	RegenerateCmd   gocommand.Commander[commands.RegenerateDatasetInput]
	RefreshCmd      gocommand.Commander[commands.RefreshDashboardInput]
	PreferencesCmd  gocommand.Commander[commands.SavePreferencesInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) SelectMetric(ctx context.Context, input commands.SelectMetricInput) error {
	if e.SelectMetricCmd == nil {
		return errors.New("httpapi: select metric command not configured")
	}
	return e.SelectMetricCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Regenerate(ctx context.Context, input commands.RegenerateDatasetInput) error {
	if e.RegenerateCmd == nil {
		return errors.New("httpapi: regenerate command not configured")
	}
	return e.RegenerateCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Refresh(ctx context.Context, input commands.RefreshDashboardInput) error {
	if e.RefreshCmd == nil {
		return errors.New("httpapi: refresh command not configured")
	}
	return e.RefreshCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Preferences(ctx context.Context, input commands.SavePreferencesInput) error {
	if e.PreferencesCmd == nil {
		return errors.New("httpapi: preferences command not configured")
	}
	return e.PreferencesCmd.Execute(ctx, input)
}

// ViewerResolver derives the viewer from an incoming request.
type ViewerResolver func(*http.Request) attribution.ViewerContext

// Handlers exposes HTTP endpoints backed by shared commands and queries.
type Handlers struct {
	Exec       Executor
	Series     gocommand.Querier[queries.SeriesInput, queries.SeriesResult]
	Breakdown  gocommand.Querier[queries.BreakdownInput, attribution.Breakdown]
	Scorecards attribution.ScorecardSource
	Viewer     ViewerResolver
}

func (h *Handlers) viewer(r *http.Request) attribution.ViewerContext {
	if h.Viewer != nil {
		return h.Viewer(r)
	}
	return attribution.ViewerContext{
		UserID: r.Header.Get("X-User-ID"),
		Locale: r.Header.Get("Accept-Language"),
	}
}

// HandleSelectMetric switches the viewer's active funnel metric.
func (h *Handlers) HandleSelectMetric(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectMetricInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Viewer.UserID == "" {
		payload.Viewer = h.viewer(r)
	}
	if err := h.Exec.SelectMetric(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleRegenerate rebuilds the synthetic dataset window.
func (h *Handlers) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	var payload commands.RegenerateDatasetInput
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if err := h.Exec.Regenerate(r.Context(), payload); err != nil {
		writeDatasetError(w, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandleRefresh emits a widget refresh event.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshDashboardInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Exec.Refresh(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// HandlePreferences stores viewer board overrides.
func (h *Handlers) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	var payload commands.SavePreferencesInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Viewer.UserID == "" {
		payload.Viewer = h.viewer(r)
	}
	if err := h.Exec.Preferences(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleSeries returns the by-day comparison series as JSON.
func (h *Handlers) HandleSeries(w http.ResponseWriter, r *http.Request) {
	input := queries.SeriesInput{Viewer: h.viewer(r)}
	if raw := r.URL.Query().Get("metric"); raw != "" {
		metric, ok := attribution.ParseMetric(raw)
		if !ok {
			http.Error(w, "unknown metric "+raw, http.StatusBadRequest)
			return
		}
		input.Metric = metric
	}
	result, err := h.Series.Query(r.Context(), input)
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleBreakdown returns per-dimension totals as JSON.
func (h *Handlers) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	rawDim := r.URL.Query().Get("dimension")
	dim, ok := attribution.ParseDimension(rawDim)
	if !ok {
		http.Error(w, "unknown dimension "+rawDim, http.StatusBadRequest)
		return
	}
	input := queries.BreakdownInput{Viewer: h.viewer(r), Dimension: dim}
	if raw := r.URL.Query().Get("metric"); raw != "" {
		metric, ok := attribution.ParseMetric(raw)
		if !ok {
			http.Error(w, "unknown metric "+raw, http.StatusBadRequest)
			return
		}
		input.Metric = metric
	}
	result, err := h.Breakdown.Query(r.Context(), input)
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleScorecards returns the KPI cards as JSON.
func (h *Handlers) HandleScorecards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.Scorecards.Scorecards(r.Context(), h.viewer(r))
	if err != nil {
		writeDatasetError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cards": cards})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeDatasetError maps the loading sentinel to 503 so clients retry after
// the deferred load completes.
func writeDatasetError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, attribution.ErrDatasetLoading) {
		status = http.StatusServiceUnavailable
	}
	http.Error(w, err.Error(), status)
}
