// Package dynform wires the common pipeline: load a catalog, build an
// engine, pick a renderer and a theme.
package dynform

import (
	"context"
	"fmt"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-dynform/pkg/catalog"
	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/jsonview"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// Snapshot aliases engine.Snapshot for callers that only touch the root
// package.
type Snapshot = engine.Snapshot

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// CatalogSource says where form types come from. OpenAPI wins over Path;
// both empty selects the embedded default catalog.
type CatalogSource struct {
	// Path is a YAML/JSON catalog file or a directory of them.
	Path string
	// OpenAPI is an OpenAPI document whose request bodies become form types.
	OpenAPI string
	// Operations limits an OpenAPI import to these operation ids.
	Operations []string
}

// LoadCatalog resolves source into a validated catalog.
func LoadCatalog(ctx context.Context, source CatalogSource) (*model.Catalog, error) {
	switch {
	case source.OpenAPI != "":
		data, err := os.ReadFile(source.OpenAPI)
		if err != nil {
			return nil, fmt.Errorf("dynform: read openapi %s: %w", source.OpenAPI, err)
		}
		var opts []catalog.OpenAPIOption
		if len(source.Operations) > 0 {
			opts = append(opts, catalog.WithOperations(source.Operations...))
		}
		return catalog.FromOpenAPI(ctx, data, opts...)
	case source.Path != "":
		info, err := os.Stat(source.Path)
		if err != nil {
			return nil, fmt.Errorf("dynform: catalog %s: %w", source.Path, err)
		}
		if info.IsDir() {
			return catalog.LoadFS(os.DirFS(source.Path))
		}
		return catalog.LoadFile(source.Path)
	default:
		return catalog.Default()
	}
}

// NewEngine builds an engine over the embedded default catalog.
func NewEngine(options ...engine.Option) (*engine.Engine, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	return engine.New(cat, options...)
}

// RegistryOption customises NewRegistry.
type RegistryOption func(*registryConfig)

type registryConfig struct {
	vanilla []vanilla.Option
	tui     []tui.RendererOption
	indent  string
}

// WithVanillaOptions forwards options to the HTML renderer.
func WithVanillaOptions(options ...vanilla.Option) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.vanilla = append(cfg.vanilla, options...)
	}
}

// WithTextOptions forwards options to the text renderer.
func WithTextOptions(options ...tui.RendererOption) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.tui = append(cfg.tui, options...)
	}
}

// WithJSONIndent pretty-prints the JSON renderer output.
func WithJSONIndent(indent string) RegistryOption {
	return func(cfg *registryConfig) {
		cfg.indent = indent
	}
}

// NewRegistry registers the built-in renderers: vanilla, json and text.
func NewRegistry(options ...RegistryOption) (*render.Registry, error) {
	cfg := &registryConfig{}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	html, err := vanilla.New(cfg.vanilla...)
	if err != nil {
		return nil, fmt.Errorf("dynform: vanilla renderer: %w", err)
	}
	return render.NewRegistry(html, jsonview.New(cfg.indent), tui.New(cfg.tui...)), nil
}

// ResolveTheme resolves name/variant against the built-in theme manifest
// plus any extra manifests.
func ResolveTheme(name, variant string, extra ...*theme.Manifest) (*theme.RendererConfig, error) {
	manifests := append([]*theme.Manifest{render.DefaultThemeManifest()}, extra...)
	return render.ResolveTheme(render.NewThemeSelector(manifests...), name, variant)
}

// Render renders the engine's current snapshot with the named renderer.
func Render(ctx context.Context, registry *render.Registry, e *engine.Engine, rendererName string, opts RenderOptions) ([]byte, error) {
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, e.Snapshot(), opts)
}
