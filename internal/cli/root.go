// Package cli defines the command-line interface for dynform.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/internal/config"
	"github.com/goliatone/go-dynform/internal/logging"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath   string
	EnvFile      string
	Catalog      string
	OpenAPI      string
	Renderer     string
	Theme        string
	ThemeVariant string
	FormType     string
	TemplatesDir string
	LogLevel     logging.Level

	// Config is resolved in PersistentPreRunE with flag overrides applied.
	Config config.Config

	configDir string
	environ   map[string]string
	driver    tui.PromptDriver
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootCmd := newRootCommand(&Options{LogLevel: logging.LevelInfo}, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dynform",
		Short:         "dynform serves and prompts catalog-driven forms",
		Long:          "dynform loads a catalog of form types and lets you fill, validate, edit and delete records in a browser, a terminal or as JSON.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: opts.ConfigPath,
				ConfigDir:  opts.configDir,
				EnvFile:    opts.EnvFile,
				Environ:    opts.environ,
			})
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, opts, &cfg)
			opts.Config = cfg

			level := logging.ParseLevel(cfg.LogLevel)
			opts.LogLevel = level
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(contextOrBackground(cmd.Context()), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level, "renderer", cfg.Renderer)
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a dynform.yaml configuration file")
	flags.StringVar(&opts.EnvFile, "env-file", "", "Path to a .env file (default .env when present)")
	flags.StringVar(&opts.Catalog, "catalog", "", "Catalog file or directory (default: built-in catalog)")
	flags.StringVar(&opts.OpenAPI, "openapi", "", "OpenAPI document to import form types from")
	flags.StringVar(&opts.Theme, "theme", "", "Theme name")
	flags.StringVar(&opts.ThemeVariant, "theme-variant", "", "Theme variant (e.g. dark)")
	flags.StringVar(&opts.FormType, "form-type", "", "Initially selected form type")
	flags.StringVar(&opts.TemplatesDir, "templates-dir", "", "Directory overriding the built-in HTML templates")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newServeCommand(opts),
		newPromptCommand(opts),
		newRenderCommand(opts),
		newCatalogCommand(opts),
	)

	return cmd
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, opts *Options, cfg *config.Config) {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if changed("catalog") {
		cfg.Catalog = opts.Catalog
	}
	if changed("openapi") {
		cfg.OpenAPI = opts.OpenAPI
	}
	if changed("theme") {
		cfg.Theme = opts.Theme
	}
	if changed("theme-variant") {
		cfg.ThemeVariant = opts.ThemeVariant
	}
	if changed("form-type") {
		cfg.FormType = opts.FormType
	}
	if changed("templates-dir") {
		cfg.TemplatesDir = opts.TemplatesDir
	}
	if changed("renderer") {
		cfg.Renderer = opts.Renderer
	}
	if changed("log-level") {
		cfg.LogLevel = cmd.Flags().Lookup("log-level").Value.String()
	}
	if changed("addr") {
		cfg.Addr = cmd.Flags().Lookup("addr").Value.String()
	}
}

func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
