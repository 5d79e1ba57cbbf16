package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/owl-modules/export"
	"github.com/geoknoesis/owl-modules/owl"
)

func newDecomposeCmd(a *app) *cobra.Command {
	var (
		output    string
		mode      string
		workers   int
		documents bool
		compress  bool
	)

	cmd := &cobra.Command{
		Use:   "decompose [files...]",
		Short: "Split an ontology into RBox, Taxonomy and Schema layers",
		Long: `Decompose an ontology into three layer graphs and the class assertion graph.

With --documents the taxonomy, schema, role and class assertion documents
are written as well. A manifest with BLAKE3 checksums lists every file.`,
		Example: `  owlmod decompose pizza.owl --output dataset --documents`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("mode") {
				if _, ok := owl.ParseExpandMode(mode); !ok {
					return fmt.Errorf("unknown mode %q", mode)
				}
				a.cfg.Decompose.Mode = mode
			}
			if flags.Changed("workers") {
				a.cfg.Decompose.Workers = workers
			}
			if flags.Changed("compress") {
				a.cfg.Output.Compress = compress
			}
			dir := a.cfg.Output.Dir
			if output != "" {
				dir = output
			}

			ctx := cmd.Context()
			s, err := a.load(ctx, args)
			if err != nil {
				return err
			}

			opts := append(a.coreOptions(), a.cfg.DecomposeOptions()...)
			layers, err := owl.NewDecomposer(s, opts...).Decompose(ctx)
			if err != nil {
				return err
			}
			a.metrics.ObserveLayers(layers)

			w := a.newWriter(dir)
			if err := w.WriteLayers(layers); err != nil {
				return err
			}
			if _, err := w.WriteGraph(w.Layout.AssertionGraph, export.ClassAssertionGraph(s)); err != nil {
				return err
			}
			if documents {
				src := export.SourcesFromLayers(layers, s)
				if err := w.WriteDocuments(src, a.cfg.ConvertOptions()...); err != nil {
					return err
				}
			}
			return a.writeManifest(w)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Dataset directory (default output.dir)")
	cmd.Flags().StringVar(&mode, "mode", "describe", "Treatment of declared objects (expand, describe)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel closures across all layers (0 uses GOMAXPROCS)")
	cmd.Flags().BoolVar(&documents, "documents", false, "Also write the axiom documents")
	cmd.Flags().BoolVar(&compress, "compress", false, "zstd-compress every output file")
	return cmd
}
