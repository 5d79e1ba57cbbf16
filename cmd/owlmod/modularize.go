package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/owl-modules/owl"
	"github.com/geoknoesis/owl-modules/rdf"
	"github.com/geoknoesis/owl-modules/store"
)

func newModularizeCmd(a *app) *cobra.Command {
	var (
		signatureFile string
		iris          []string
		output        string
		format        string
		mode          string
	)

	cmd := &cobra.Command{
		Use:   "modularize [files...]",
		Short: "Extract the closure of a signature",
		Long: `Extract the dependency-closed module of an ontology around a signature.

The signature is read from --signature (one IRI per line) and --iri flags.
The module is written to --output, or to standard output when it is empty or "-".`,
		Example: `  owlmod modularize pizza.owl --iri http://example.org/pizza#Margherita
  owlmod modularize 'ontologies/**/*.nt' --signature terms.txt --output module.jsonld`,
		RunE: func(cmd *cobra.Command, args []string) error {
			signature := append([]string(nil), iris...)
			if signatureFile != "" {
				f, err := os.Open(signatureFile)
				if err != nil {
					return err
				}
				read, err := owl.ReadSignature(f)
				f.Close()
				if err != nil {
					return fmt.Errorf("%s: %w", signatureFile, err)
				}
				signature = append(signature, read...)
			}
			if len(signature) == 0 {
				return fmt.Errorf("empty signature: use --signature or --iri")
			}

			expand, ok := owl.ParseExpandMode(mode)
			if !ok {
				return fmt.Errorf("unknown mode %q", mode)
			}
			outFormat, err := outputFormat(format, output)
			if err != nil {
				return err
			}

			s, err := a.load(cmd.Context(), args)
			if err != nil {
				return err
			}
			opts := append(a.coreOptions(), owl.WithExpandMode(expand))
			module := owl.NewModularizer(s, opts...).Modularize(signature...)
			a.log.WithFields(logrus.Fields{
				"signature": len(signature),
				"triples":   module.Len(),
			}).Info("module extracted")

			return writeGraph(cmd.OutOrStdout(), output, outFormat, module)
		},
	}

	cmd.Flags().StringVar(&signatureFile, "signature", "", "File with one signature IRI per line")
	cmd.Flags().StringSliceVar(&iris, "iri", nil, "Signature IRI (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default standard output)")
	cmd.Flags().StringVar(&format, "format", "", "Output format (ntriples, rdfxml, jsonld); from the output extension when empty")
	cmd.Flags().StringVar(&mode, "mode", "expand", "Treatment of declared objects (expand, describe)")
	return cmd
}

// outputFormat picks the graph syntax for output.
func outputFormat(flag, output string) (rdf.Format, error) {
	if flag == "" {
		if output == "" || output == "-" {
			return rdf.FormatNTriples, nil
		}
		byExt, err := rdf.FormatFromPath(output)
		if err != nil {
			return rdf.FormatNTriples, nil
		}
		flag = string(byExt)
	}
	format, ok := rdf.ParseFormat(flag)
	if !ok || format == rdf.FormatAuto {
		return "", fmt.Errorf("%w: %s", rdf.ErrUnsupportedFormat, flag)
	}
	return format, nil
}

func writeGraph(stdout io.Writer, output string, format rdf.Format, s *store.Store) (err error) {
	out := stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	enc, err := rdf.NewWriter(out, format)
	if err != nil {
		return err
	}
	if err := store.Write(s, enc); err != nil {
		return err
	}
	return enc.Close()
}
