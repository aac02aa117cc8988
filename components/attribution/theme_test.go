package attribution

import (
	"strings"
	"testing"
)

func TestThemeRegistrySelectionModes(t *testing.T) {
	variants := DefaultThemeVariants()

	fixed := NewThemeRegistry(SelectionFixed, variants...)
	got, err := fixed.Resolve("meadow")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if got.Name != variants[0].Name {
		t.Fatalf("fixed mode must pin the first variant, got %s", got.Name)
	}

	toggle := NewThemeRegistry(SelectionToggle, variants...)
	got, _ = toggle.Resolve("ledger")
	if got.Name != "ledger" {
		t.Fatalf("toggle mode should honor second variant, got %s", got.Name)
	}
	got, _ = toggle.Resolve("meadow")
	if got.Name != variants[0].Name {
		t.Fatalf("toggle mode must refuse the third variant, got %s", got.Name)
	}

	multi := NewThemeRegistry(SelectionMultiWay, variants...)
	got, _ = multi.Resolve("MEADOW")
	if got.Name != "meadow" {
		t.Fatalf("multiway mode should match case-insensitively, got %s", got.Name)
	}
	got, _ = multi.Resolve("unknown")
	if got.Name != variants[0].Name {
		t.Fatalf("unknown variant should fall back to first, got %s", got.Name)
	}
}

func TestThemeRegistryUnknownModeFallsBackToFixed(t *testing.T) {
	reg := NewThemeRegistry(SelectionMode("carousel"))
	if reg.Mode() != SelectionFixed {
		t.Fatalf("expected fixed fallback, got %s", reg.Mode())
	}
}

func TestResolveForViewer(t *testing.T) {
	reg := NewThemeRegistry(SelectionMultiWay)
	variant := reg.ResolveForViewer(Preferences{ThemeVariant: "ledger"})
	if variant.Name != "ledger" {
		t.Fatalf("expected ledger, got %s", variant.Name)
	}
	variant = reg.ResolveForViewer(Preferences{})
	if variant.Name != "signal" {
		t.Fatalf("expected default variant, got %s", variant.Name)
	}
}

func TestCSSVariablesInline(t *testing.T) {
	variant := ThemeVariant{Tokens: map[string]string{
		"accent":  "#3b82f6",
		"--text":  "#0f172a",
		"  ":      "ignored",
		"surface": "",
	}}
	inline := variant.CSSVariablesInline()
	if !strings.Contains(inline, "--accent: #3b82f6;") {
		t.Fatalf("expected accent variable, got %q", inline)
	}
	if !strings.Contains(inline, "--text: #0f172a;") {
		t.Fatalf("expected prefixed key preserved, got %q", inline)
	}
	if strings.Contains(inline, "ignored") {
		t.Fatalf("blank keys must be dropped, got %q", inline)
	}
	if (ThemeVariant{}).CSSVariablesInline() != "" {
		t.Fatal("empty variant should render no CSS")
	}
}
