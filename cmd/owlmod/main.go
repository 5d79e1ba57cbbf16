// Package main provides the owlmod binary: ontology modularization,
// decomposition into RBox/Taxonomy/Schema layers and axiom export.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/owl-modules/config"
	"github.com/geoknoesis/owl-modules/export"
	"github.com/geoknoesis/owl-modules/metrics"
	"github.com/geoknoesis/owl-modules/owl"
	"github.com/geoknoesis/owl-modules/rdf"
	"github.com/geoknoesis/owl-modules/store"
)

// Set with -ldflags at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

const appName = "owlmod"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries the state shared by all subcommands.
type app struct {
	configPath  string
	logLevel    string
	metricsFile string
	inputFormat string

	cfg     *config.Config
	log     *logrus.Logger
	metrics *metrics.Collector
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Extract modules and layers from OWL ontologies",
		Long: `owlmod computes dependency-closed fragments of OWL ontologies.

It provides:
- modularize: the closure of a signature of named entities
- decompose: RBox, Taxonomy and Schema layers plus class assertions
- convert: per-axiom JSON or YAML documents for taxonomy, schema and roles`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.finish()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")
	flags.StringVar(&a.inputFormat, "input-format", "", "Input syntax (ntriples, rdfxml, jsonld); detected when empty")

	cmd.AddCommand(
		newModularizeCmd(a),
		newDecomposeCmd(a),
		newConvertCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the configuration, applies global flags and builds the logger
// and metrics collector.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.Default()
	if a.configPath != "" {
		loaded, err := config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.metricsFile != "" {
		cfg.Metrics.Textfile = a.metricsFile
	}
	if a.inputFormat != "" {
		cfg.Input.Format = a.inputFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	logger.SetOutput(cmd.ErrOrStderr())

	a.cfg = cfg
	a.log = logger
	a.metrics = metrics.NewCollector()
	return nil
}

func (a *app) finish() error {
	if a.cfg == nil || a.cfg.Metrics.Textfile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.log.WithField("path", a.cfg.Metrics.Textfile).Debug("metrics written")
	return nil
}

// coreOptions are the options every core component receives.
func (a *app) coreOptions() []owl.Option {
	return []owl.Option{owl.WithLogger(a.log), owl.WithObserver(a.metrics)}
}

// load reads every input pattern into a fresh store. Arguments replace the
// configured input paths.
func (a *app) load(ctx context.Context, args []string) (*store.Store, error) {
	patterns := args
	if len(patterns) == 0 {
		patterns = a.cfg.Input.Paths
	}
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input ontology: pass files or set input.paths")
	}
	format, _ := rdf.ParseFormat(a.cfg.Input.Format)

	s := store.New()
	for _, pattern := range patterns {
		files, err := store.Glob(pattern)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			n, err := store.LoadFileFormat(ctx, s, file, format, a.cfg.ReaderOptions()...)
			if err != nil {
				return nil, err
			}
			a.metrics.ObserveLoad(n)
			a.log.WithFields(logrus.Fields{"path": file, "triples": n}).Info("loaded ontology")
		}
	}
	return s, nil
}

// newWriter returns a dataset writer for dir configured from the output section.
func (a *app) newWriter(dir string) *export.Writer {
	out := a.cfg.Output
	w := export.NewWriter(dir)
	w.Layout = out.Layout
	w.GraphFormat, _ = rdf.ParseFormat(out.GraphFormat)
	w.DocumentFormat, _ = export.ParseDocumentFormat(out.DocumentFormat)
	w.Compress = out.Compress
	w.Tool = appName + " " + Version
	return w
}

func (a *app) writeManifest(w *export.Writer) error {
	manifest, err := w.WriteManifest()
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"dir":    w.Root,
		"files":  len(manifest.Entries),
		"run_id": manifest.RunID,
	}).Info("dataset written")
	return nil
}
