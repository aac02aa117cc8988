package activity

import "context"

// Config controls emitter behavior. Channel overrides the default channel
// stamped on events that carry none.
type Config struct {
	Enabled bool
	Channel string
}

// Emitter publishes activity events to its hooks.
type Emitter struct {
	hooks   Hooks
	channel string
	enabled bool
}

// NewEmitter builds an emitter. An emitter without hooks is disabled
// regardless of configuration.
func NewEmitter(hooks Hooks, cfg Config) *Emitter {
	return &Emitter{
		hooks:   hooks,
		channel: cfg.Channel,
		enabled: cfg.Enabled && len(hooks) > 0,
	}
}

// Enabled reports whether Emit will do anything.
func (e *Emitter) Enabled() bool {
	return e != nil && e.enabled
}

// Emit publishes the event through the hook chain.
func (e *Emitter) Emit(ctx context.Context, evt Event) error {
	if !e.Enabled() {
		return nil
	}
	if evt.Channel == "" {
		evt.Channel = e.channel
	}
	return e.hooks.Notify(ctx, evt)
}

// CaptureHook records every event it receives, for tests and audits.
type CaptureHook struct {
	Events []Event
}

// Notify appends the event.
func (h *CaptureHook) Notify(_ context.Context, evt Event) error {
	h.Events = append(h.Events, evt)
	return nil
}
