package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/web"
)

// newServeCommand creates the "serve" subcommand that runs the HTTP presentation.
func newServeCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg := opts.Config

			catalog, err := loadCatalog(cmd.Context(), cfg)
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

			srv, err := web.NewServer(catalog, registry,
				web.WithLogger(logger),
				web.WithAddr(cfg.Addr),
				web.WithDefaultRenderer(cfg.Renderer),
				web.WithTheme(themeCfg),
				web.WithInitialFormType(cfg.FormType),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address (default :8080)")
	cmd.Flags().StringVarP(&opts.Renderer, "renderer", "r", "", "Default renderer (vanilla, json, text)")

	return cmd
}
