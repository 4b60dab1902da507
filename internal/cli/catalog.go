package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/catalog"
	"github.com/goliatone/go-dynform/pkg/model"
)

// newCatalogCommand groups catalog inspection and import commands.
func newCatalogCommand(opts *Options) *cobra.Command {
	return newGroupCommand("catalog", "Inspect, validate and import form catalogs",
		newCatalogListCommand(opts),
		newCatalogValidateCommand(opts),
		newCatalogImportCommand(opts),
	)
}

func newCatalogListCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List form types and their fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(cmd.Context(), opts.Config)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "KEY\tTITLE\tFIELDS")
			for _, schema := range cat.Schemas() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", schema.Key, schema.Title, describeFields(schema))
			}
			return w.Flush()
		},
	}
}

func newCatalogValidateCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path...]",
		Short: "Validate catalog files (default: the configured catalog)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			if len(args) == 0 {
				cat, err := loadCatalog(cmd.Context(), opts.Config)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d form types\n", cat.Len())
				return nil
			}

			var failed int
			for _, path := range args {
				cat, err := catalog.LoadFile(path)
				if err != nil {
					failed++
					logger.Error("invalid catalog", "path", path, "error", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d form types)\n", path, cat.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d catalogs invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newCatalogImportCommand(_ *Options) *cobra.Command {
	var (
		operations []string
		output     string
	)

	cmd := &cobra.Command{
		Use:   "import <openapi-file>",
		Short: "Convert an OpenAPI document into a catalog YAML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			cat, err := catalog.FromOpenAPI(cmd.Context(), data, catalog.WithOperations(operations...))
			if err != nil {
				return err
			}

			encoded, err := yaml.Marshal(catalogDocument{FormTypes: cat.Schemas()})
			if err != nil {
				return fmt.Errorf("encode catalog: %w", err)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(encoded)
				return err
			}
			if err := os.WriteFile(output, encoded, 0o644); err != nil {
				return fmt.Errorf("write catalog to %q: %w", output, err)
			}
			logger.Info("imported catalog", "path", output, "form_types", cat.Len())
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&operations, "operation", nil, "Only import these operation ids (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the catalog to this file instead of stdout")

	return cmd
}

type catalogDocument struct {
	FormTypes []model.FormSchema `yaml:"formTypes"`
}

func describeFields(schema model.FormSchema) string {
	parts := make([]string, 0, len(schema.Fields))
	for _, field := range schema.Fields {
		part := field.Name + ":" + string(field.Kind)
		if field.Required {
			part += "*"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
