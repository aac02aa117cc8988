package commands

import (
	"context"
	"errors"

	attribution "github.com/goliatone/go-attribution/components/attribution"
	gocommand "github.com/goliatone/go-command"
)

// SavePreferencesInput captures viewer overrides for board customization.
type SavePreferencesInput struct {
	Viewer        attribution.ViewerContext `json:"viewer"`
	ThemeVariant  string                    `json:"theme_variant,omitempty"`
	AreaOrder     map[string][]string       `json:"area_order,omitempty"`
	HiddenWidgets []string                  `json:"hidden_widget_ids,omitempty"`
}

type preferenceService interface {
	Preferences(ctx context.Context, viewer attribution.ViewerContext) (attribution.Preferences, error)
	SavePreferences(ctx context.Context, viewer attribution.ViewerContext, prefs attribution.Preferences) error
}

// SavePreferencesCommand persists per-viewer board overrides.
type SavePreferencesCommand struct {
	service   preferenceService
	telemetry Telemetry
}

// NewSavePreferencesCommand creates the command.
func NewSavePreferencesCommand(service preferenceService, telemetry Telemetry) *SavePreferencesCommand {
	return &SavePreferencesCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SavePreferencesInput] = (*SavePreferencesCommand)(nil)

// Execute merges the overrides into the viewer's stored preferences.
func (c *SavePreferencesCommand) Execute(ctx context.Context, msg SavePreferencesInput) error {
	if c.service == nil {
		return errors.New("preferences command requires service")
	}
	if msg.Viewer.UserID == "" {
		return errors.New("preferences command requires viewer user id")
	}
	prefs, err := c.service.Preferences(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	if msg.ThemeVariant != "" {
		prefs.ThemeVariant = msg.ThemeVariant
	}
	if msg.AreaOrder != nil {
		prefs.AreaOrder = msg.AreaOrder
	}
	if msg.HiddenWidgets != nil {
		prefs.HiddenWidgets = make(map[string]bool, len(msg.HiddenWidgets))
		for _, id := range msg.HiddenWidgets {
			prefs.HiddenWidgets[id] = true
		}
	}
	if err := c.service.SavePreferences(ctx, msg.Viewer, prefs); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "attribution.preferences.save", map[string]any{
		"user_id":    msg.Viewer.UserID,
		"areas":      len(msg.AreaOrder),
		"hidden_cnt": len(msg.HiddenWidgets),
	})
	return nil
}
