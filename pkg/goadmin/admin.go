package goadmin

import (
	"context"
	"errors"

	activitypkg "github.com/goliatone/go-attribution/pkg/activity"
	attributionpkg "github.com/goliatone/go-attribution/pkg/attribution"
)

// MenuBuilder ensures board entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures board link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the attribution service + feature flags into an admin shell.
type Config struct {
	EnableBoard     bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *attributionpkg.Service
	DefaultMenuItem MenuItem
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg Config
}

// New creates an Admin helper that can seed board menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableBoard && cfg.Service == nil {
		return nil, errors.New("goadmin: attribution service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "Attribution"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "admin.attribution"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "chart-line"
	}
	return &Admin{cfg: cfg}, nil
}

// Board exposes the configured attribution service when enabled.
func (a *Admin) Board() *attributionpkg.Service {
	if !a.cfg.EnableBoard {
		return nil
	}
	return a.cfg.Service
}

// Bootstrap seeds menu entries when board support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableBoard || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
