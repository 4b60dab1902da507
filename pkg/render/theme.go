package render

import (
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the built-in palette returned by DefaultThemeManifest.
const DefaultThemeName = "dynform"

var (
	ErrThemeNotFound        = errors.New("render: theme not found")
	ErrThemeVariantNotFound = errors.New("render: theme variant not found")
)

// ThemeSelector resolves theme manifests registered in memory. It satisfies
// theme.ThemeSelector so callers can swap in any go-theme provider.
type ThemeSelector struct {
	order     []string
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ThemeSelector)(nil)

// NewThemeSelector registers manifests in order. The first manifest is used
// when Select receives an empty theme name. Nil manifests and manifests
// without a name are skipped; later manifests replace earlier ones with the
// same name.
func NewThemeSelector(manifests ...*theme.Manifest) *ThemeSelector {
	s := &ThemeSelector{manifests: map[string]*theme.Manifest{}}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		name := strings.TrimSpace(manifest.Name)
		if name == "" {
			continue
		}
		if _, exists := s.manifests[name]; !exists {
			s.order = append(s.order, name)
		}
		s.manifests[name] = manifest
	}
	return s
}

// Themes lists the registered theme names in registration order.
func (s *ThemeSelector) Themes() []string {
	return append([]string(nil), s.order...)
}

// Select returns the manifest registered under name, validating variant
// when one is requested.
func (s *ThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	name = strings.TrimSpace(name)
	variant = strings.TrimSpace(variant)
	if name == "" {
		if len(s.order) == 0 {
			return nil, fmt.Errorf("%w: no themes registered", ErrThemeNotFound)
		}
		name = s.order[0]
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrThemeVariantNotFound, variant, name)
		}
	}

	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// ResolveTheme selects name/variant and flattens the selection into a
// renderer configuration. Variant tokens, templates and asset files override
// the manifest's; every token becomes a CSS custom property "--<token>".
func ResolveTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, fmt.Errorf("%w: selector is nil", ErrThemeNotFound)
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return nil, err
	}
	if selection == nil || selection.Manifest == nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	manifest := selection.Manifest
	tokens := maps.Clone(manifest.Tokens)
	partials := maps.Clone(manifest.Templates)
	files := maps.Clone(manifest.Assets.Files)
	prefix := manifest.Assets.Prefix

	if v, ok := manifest.Variants[selection.Variant]; ok && selection.Variant != "" {
		tokens = mergeStrings(tokens, v.Tokens)
		partials = mergeStrings(partials, v.Templates)
		files = mergeStrings(files, v.Assets.Files)
		if strings.TrimSpace(v.Assets.Prefix) != "" {
			prefix = v.Assets.Prefix
		}
	}

	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+strings.TrimPrefix(key, "--")] = value
	}

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: assetResolver(prefix, files),
	}, nil
}

// CSSVarsStyle renders cfg's CSS variables as a sorted :root rule. It returns
// an empty string when cfg is nil or carries no variables.
func CSSVarsStyle(cfg *theme.RendererConfig) string {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

// DefaultThemeManifest is the built-in palette: blue accents, a green
// progress bar, red errors and yellow edit actions, plus a "dark" variant.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent":     "#3b82f6",
			"progress":   "#22c55e",
			"danger":     "#ef4444",
			"edit":       "#eab308",
			"surface":    "#ffffff",
			"text":       "#1f2937",
			"border":     "#d1d5db",
			"muted":      "#f3f4f6",
			"font-stack": "system-ui, sans-serif",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f9fafb",
					"border":  "#374151",
					"muted":   "#1f2937",
				},
			},
		},
	}
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	return func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if strings.HasPrefix(file, "/") || strings.Contains(file, "://") || prefix == "" {
			return file
		}
		return prefix + "/" + strings.TrimLeft(file, "/")
	}
}

func mergeStrings(base, overrides map[string]string) map[string]string {
	if base == nil {
		base = make(map[string]string, len(overrides))
	}
	for key, value := range overrides {
		base[key] = value
	}
	return base
}
