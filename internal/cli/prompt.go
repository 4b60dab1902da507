package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-dynform/pkg/engine"
	"github.com/goliatone/go-dynform/pkg/renderers/tui"
)

// newPromptCommand creates the "prompt" subcommand that runs the interactive terminal session.
func newPromptCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Fill and manage records interactively in the terminal",
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

			sessionOpts := []tui.SessionOption{
				tui.WithLogger(logger),
				tui.WithOutput(cmd.OutOrStdout()),
			}
			if opts.driver != nil {
				sessionOpts = append(sessionOpts, tui.WithPromptDriver(opts.driver))
			}
			session, err := tui.NewSession(e, sessionOpts...)
			if err != nil {
				return err
			}

			if err := session.Run(cmd.Context()); err != nil {
				if errors.Is(err, tui.ErrAborted) {
					logger.Info("prompt aborted")
					return nil
				}
				return err
			}
			return nil
		},
	}
}
