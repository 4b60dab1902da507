package dynform

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

func TestLoadCatalogDefaultsToEmbeddedCatalog(t *testing.T) {
	cat, err := LoadCatalog(context.Background(), CatalogSource{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"userInfo", "addressInfo", "paymentInfo"}, cat.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadCatalogReadsFilesAndDirectories(t *testing.T) {
	dir := t.TempDir()
	doc := "formTypes:\n  - key: contact\n    fields:\n      - name: email\n        required: true\n"
	path := filepath.Join(dir, "contact.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	for _, source := range []CatalogSource{{Path: path}, {Path: dir}} {
		cat, err := LoadCatalog(context.Background(), source)
		if err != nil {
			t.Fatalf("load %s: %v", source.Path, err)
		}
		if diff := cmp.Diff([]string{"contact"}, cat.Keys()); diff != "" {
			t.Fatalf("keys mismatch for %s (-want +got):\n%s", source.Path, diff)
		}
	}

	if _, err := LoadCatalog(context.Background(), CatalogSource{Path: filepath.Join(dir, "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing catalog")
	}
}

func TestNewRegistryRegistersBuiltInRenderers(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if diff := cmp.Diff([]string{"json", "text", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderUsesEngineSnapshot(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	e, err := NewEngine()
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if err := e.UpdateField("firstName", "Ann"); err != nil {
		t.Fatalf("update: %v", err)
	}

	out, err := Render(context.Background(), registry, e, "text", RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "Ann") {
		t.Fatalf("expected draft value in output:\n%s", out)
	}

	if _, err := Render(context.Background(), registry, e, "pdf", RenderOptions{}); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestResolveThemeDefaultsAndVariants(t *testing.T) {
	cfg, err := ResolveTheme("", "dark")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.Theme != "dynform" || cfg.Variant != "dark" {
		t.Fatalf("unexpected selection %q/%q", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--surface"] != "#111827" {
		t.Fatalf("expected dark surface, got %q", cfg.CSSVars["--surface"])
	}
}

func TestEmbeddedFilesystems(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/page.tmpl"); err != nil {
		t.Fatalf("page template: %v", err)
	}
	if _, err := fs.ReadFile(AssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("stylesheet: %v", err)
	}
}
