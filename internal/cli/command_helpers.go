package cli

import (
	"context"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/cobra"

	dynform "github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/internal/config"
	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/model"
	"github.com/goliatone/go-dynform/pkg/render"
	"github.com/goliatone/go-dynform/pkg/renderers/vanilla"
)

// newGroupCommand builds a cobra.Command that groups subcommands.
func newGroupCommand(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	if len(subcommands) > 0 {
		cmd.AddCommand(subcommands...)
	}
	return cmd
}

func loadCatalog(ctx context.Context, cfg config.Config) (*model.Catalog, error) {
	return dynform.LoadCatalog(ctx, dynform.CatalogSource{
		Path:    cfg.Catalog,
		OpenAPI: cfg.OpenAPI,
	})
}

func buildRegistry(cfg config.Config) (*render.Registry, error) {
	var opts []dynform.RegistryOption
	if cfg.TemplatesDir != "" {
		opts = append(opts, dynform.WithVanillaOptions(vanilla.WithTemplatesDir(cfg.TemplatesDir)))
	}
	return dynform.NewRegistry(opts...)
}

func resolveTheme(cfg config.Config) (*theme.RendererConfig, error) {
	return dynform.ResolveTheme(cfg.Theme, cfg.ThemeVariant)
}

func engineOptions(cmd *cobra.Command, cfg config.Config) []engine.Option {
	opts := []engine.Option{engine.WithLogger(LoggerFromContext(cmd.Context()))}
	if cfg.FormType != "" {
		opts = append(opts, engine.WithInitialFormType(cfg.FormType))
	}
	return opts
}
