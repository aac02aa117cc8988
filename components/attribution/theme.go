package attribution

import (
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// CurveStyle selects how the comparison chart draws its lines.
type CurveStyle string

const (
	CurveSmooth   CurveStyle = "smooth"
	CurveStraight CurveStyle = "straight"
)

// SelectionMode describes how a deployment exposes theme switching. The
// dashboard variants differ only in this and in the variant table itself.
type SelectionMode string

const (
	// SelectionFixed pins the dashboard to its first variant.
	SelectionFixed SelectionMode = "fixed"
	// SelectionToggle flips between exactly two variants.
	SelectionToggle SelectionMode = "toggle"
	// SelectionMultiWay lets viewers pick any registered variant.
	SelectionMultiWay SelectionMode = "multiway"
)

// ThemeVariant is one visual identity: CSS tokens for the page plus the
// echarts theme and curve style used by server-rendered charts.
type ThemeVariant struct {
	Name       string
	ChartTheme string
	Curve      CurveStyle
	Tokens     map[string]string
}

// ThemeRegistry holds the variant table and the selection mode.
type ThemeRegistry struct {
	mode     SelectionMode
	variants []ThemeVariant
}

// NewThemeRegistry builds a registry. With no variants the built-in table is
// used; an unknown mode falls back to fixed.
func NewThemeRegistry(mode SelectionMode, variants ...ThemeVariant) *ThemeRegistry {
	if len(variants) == 0 {
		variants = DefaultThemeVariants()
	}
	switch mode {
	case SelectionFixed, SelectionToggle, SelectionMultiWay:
	default:
		mode = SelectionFixed
	}
	return &ThemeRegistry{mode: mode, variants: variants}
}

// Mode reports the selection mode.
func (r *ThemeRegistry) Mode() SelectionMode { return r.mode }

// Variants returns a copy of the variant table.
func (r *ThemeRegistry) Variants() []ThemeVariant {
	out := make([]ThemeVariant, len(r.variants))
	copy(out, r.variants)
	return out
}

// Resolve picks the variant for the requested name, honoring the selection
// mode: fixed ignores the request, toggle only honors the first two entries.
func (r *ThemeRegistry) Resolve(name string) (ThemeVariant, error) {
	if len(r.variants) == 0 {
		return ThemeVariant{}, fmt.Errorf("attribution: theme registry has no variants")
	}
	switch r.mode {
	case SelectionFixed:
		return r.variants[0], nil
	case SelectionToggle:
		limit := len(r.variants)
		if limit > 2 {
			limit = 2
		}
		for _, v := range r.variants[:limit] {
			if strings.EqualFold(v.Name, name) {
				return v, nil
			}
		}
		return r.variants[0], nil
	default:
		for _, v := range r.variants {
			if strings.EqualFold(v.Name, name) {
				return v, nil
			}
		}
		return r.variants[0], nil
	}
}

// ResolveForViewer selects the variant stored in the viewer's preferences.
func (r *ThemeRegistry) ResolveForViewer(prefs Preferences) ThemeVariant {
	variant, _ := r.Resolve(prefs.ThemeVariant)
	return variant
}

// CSSVariables normalizes token keys into CSS variable names.
func (v ThemeVariant) CSSVariables() map[string]string {
	if len(v.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(v.Tokens))
	for key, value := range v.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string.
func (v ThemeVariant) CSSVariablesInline() string {
	vars := v.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	var builder strings.Builder
	for key, value := range vars {
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

// DefaultThemeVariants returns the built-in variant table.
func DefaultThemeVariants() []ThemeVariant {
	return []ThemeVariant{
		{
			Name:       "signal",
			ChartTheme: string(types.ThemeWesteros),
			Curve:      CurveSmooth,
			Tokens: map[string]string{
				"accent":        "#3b82f6",
				"surface":       "#ffffff",
				"text":          "#0f172a",
				"border-radius": "8px",
			},
		},
		{
			Name:       "ledger",
			ChartTheme: string(types.ThemeChalk),
			Curve:      CurveStraight,
			Tokens: map[string]string{
				"accent":        "#16a34a",
				"surface":       "#0b1120",
				"text":          "#e2e8f0",
				"border-radius": "2px",
			},
		},
		{
			Name:       "meadow",
			ChartTheme: string(types.ThemeWalden),
			Curve:      CurveSmooth,
			Tokens: map[string]string{
				"accent":        "#0d9488",
				"surface":       "#f8fafc",
				"text":          "#134e4a",
				"border-radius": "12px",
			},
		},
	}
}
