package goadmin_test

import (
	"context"
	"testing"

	core "github.com/goliatone/go-attribution/components/attribution"
	attributionpkg "github.com/goliatone/go-attribution/pkg/attribution"
	"github.com/goliatone/go-attribution/pkg/goadmin"
)

type stubMenuBuilder struct {
	calls    int
	menuCode string
	item     goadmin.MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, menuCode string, item goadmin.MenuItem) error {
	s.calls++
	s.menuCode = menuCode
	s.item = item
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	service := attributionpkg.NewService(core.Options{})
	admin, err := goadmin.New(goadmin.Config{
		EnableBoard: true,
		Service:     service,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 1 {
		t.Fatalf("expected 1 call, got %d", builder.calls)
	}
	if builder.menuCode != "admin.main" {
		t.Fatalf("expected default menu code, got %q", builder.menuCode)
	}
	if builder.item.Label != "Attribution" || builder.item.Route != "admin.attribution" || builder.item.Icon != "chart-line" {
		t.Fatalf("unexpected default menu item: %+v", builder.item)
	}
	if admin.Board() == nil {
		t.Fatalf("expected board service")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableBoard: false,
		MenuBuilder: builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 0 {
		t.Fatalf("expected 0 calls, got %d", builder.calls)
	}
	if admin.Board() != nil {
		t.Fatalf("expected nil board service when disabled")
	}
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableBoard: true}); err == nil {
		t.Fatalf("expected error for missing service")
	}
}
