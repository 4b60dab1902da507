package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/render"
)

func acmeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens:  map[string]string{"brand": "#123456", "text": "#000"},
		Templates: map[string]string{
			"forms.input": "themes/acme/input.tmpl",
		},
		Assets: theme.Assets{
			Prefix: "/assets/themes/acme/",
			Files:  map[string]string{"stylesheet": "theme.css"},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"brand": "#654321"},
				Assets: theme.Assets{
					Files: map[string]string{"stylesheet": "theme.dark.css"},
				},
			},
		},
	}
}

func TestResolveTheme_MergesVariantOverrides(t *testing.T) {
	selector := render.NewThemeSelector(acmeManifest())

	cfg, err := render.ResolveTheme(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "acme" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	wantVars := map[string]string{"--brand": "#654321", "--text": "#000"}
	if diff := cmp.Diff(wantVars, cfg.CSSVars); diff != "" {
		t.Fatalf("css vars mismatch (-want +got):\n%s", diff)
	}
	if cfg.Partials["forms.input"] != "themes/acme/input.tmpl" {
		t.Fatalf("partials not propagated: %v", cfg.Partials)
	}
	if got := cfg.AssetURL("stylesheet"); got != "/assets/themes/acme/theme.dark.css" {
		t.Fatalf("unexpected asset url %q", got)
	}
	if got := cfg.AssetURL("missing"); got != "" {
		t.Fatalf("expected empty url for unknown asset, got %q", got)
	}
}

func TestResolveTheme_DoesNotMutateManifest(t *testing.T) {
	manifest := acmeManifest()
	selector := render.NewThemeSelector(manifest)
	if _, err := render.ResolveTheme(selector, "acme", "dark"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if manifest.Tokens["brand"] != "#123456" {
		t.Fatalf("manifest tokens mutated: %v", manifest.Tokens)
	}
}

func TestThemeSelector_Defaults(t *testing.T) {
	selector := render.NewThemeSelector(render.DefaultThemeManifest(), acmeManifest())

	cfg, err := render.ResolveTheme(selector, "", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != render.DefaultThemeName || cfg.Variant != "" {
		t.Fatalf("expected default theme, got %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--accent"] != "#3b82f6" {
		t.Fatalf("expected blue accent, got %q", cfg.CSSVars["--accent"])
	}
	if diff := cmp.Diff([]string{render.DefaultThemeName, "acme"}, selector.Themes()); diff != "" {
		t.Fatalf("themes mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeSelector_Errors(t *testing.T) {
	selector := render.NewThemeSelector(render.DefaultThemeManifest())

	if _, err := render.ResolveTheme(selector, "nope", ""); !errors.Is(err, render.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound, got %v", err)
	}
	if _, err := render.ResolveTheme(selector, render.DefaultThemeName, "sepia"); !errors.Is(err, render.ErrThemeVariantNotFound) {
		t.Fatalf("expected ErrThemeVariantNotFound, got %v", err)
	}
	if _, err := render.NewThemeSelector().Select("", ""); !errors.Is(err, render.ErrThemeNotFound) {
		t.Fatalf("expected ErrThemeNotFound for empty selector, got %v", err)
	}
}

func TestCSSVarsStyle(t *testing.T) {
	if render.CSSVarsStyle(nil) != "" {
		t.Fatalf("expected empty style for nil config")
	}
	style := render.CSSVarsStyle(&theme.RendererConfig{CSSVars: map[string]string{"--b": "2", "--a": "1"}})
	want := ":root {\n  --a: 1;\n  --b: 2;\n}"
	if style != want {
		t.Fatalf("style mismatch\nwant: %q\n got: %q", want, style)
	}
}
