package cli

import (
	"github.com/spf13/cobra"

	dynform "github.com/goliatone/go-dynform"
	"github.com/goliatone/go-dynform/pkg/engine"
)

// newRenderCommand creates the "render" subcommand that prints the initial
// state of a form type with one renderer.
func newRenderCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the empty form for a form type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg := opts.Config

			catalog, err := loadCatalog(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			e, err := engine.New(catalog, engineOptions(cmd, cfg)...)
			if err != nil {
				return err
			}
			registry, err := buildRegistry(cfg)
			if err != nil {
				return err
			}
			themeCfg, err := resolveTheme(cfg)
			if err != nil {
				return err
			}

			out, err := dynform.Render(cmd.Context(), registry, e, cfg.Renderer, dynform.RenderOptions{Theme: themeCfg})
			if err != nil {
				return err
			}
			logger.Debug("rendered form", "form_type", e.FormType(), "renderer", cfg.Renderer, "bytes", len(out))

			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Renderer, "renderer", "r", "", "Renderer (vanilla, json, text)")

	return cmd
}
