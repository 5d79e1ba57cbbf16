package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/owl-modules/export"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Write taxonomy, schema, role and class assertion documents",
		Long: `Convert the axioms of an ontology into nested JSON or YAML documents keyed
by subject IRI, without decomposing it first.`,
		Example: `  owlmod convert pizza.owl --output dataset --document-format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "" {
				if _, ok := export.ParseDocumentFormat(format); !ok {
					return fmt.Errorf("unknown document format %q", format)
				}
				a.cfg.Output.DocumentFormat = format
			}
			dir := a.cfg.Output.Dir
			if output != "" {
				dir = output
			}

			s, err := a.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			w := a.newWriter(dir)
			if err := w.WriteDocuments(export.SourcesFromStore(s), a.cfg.ConvertOptions()...); err != nil {
				return err
			}
			return a.writeManifest(w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Dataset directory (default output.dir)")
	cmd.Flags().StringVar(&format, "document-format", "", "Document format (json, yaml)")
	return cmd
}
