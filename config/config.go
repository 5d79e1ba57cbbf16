// Package config provides configuration loading for owlmod.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/geoknoesis/owl-modules/export"
	"github.com/geoknoesis/owl-modules/owl"
	"github.com/geoknoesis/owl-modules/rdf"
)

// Config is the complete owlmod configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Decompose DecomposeConfig `yaml:"decompose"`
	Convert   ConvertConfig   `yaml:"convert"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// InputConfig selects the ontology documents to load.
type InputConfig struct {
	// Paths are files or doublestar globs. Command line arguments replace them.
	Paths []string `yaml:"paths"`
	// Format forces a syntax. Empty means detect from extension or content.
	Format string `yaml:"format"`
	// BaseIRI resolves relative IRIs in RDF/XML and JSON-LD.
	BaseIRI string `yaml:"base_iri"`
}

// OutputConfig configures the dataset writer.
type OutputConfig struct {
	Dir            string        `yaml:"dir"`
	GraphFormat    string        `yaml:"graph_format"`
	DocumentFormat string        `yaml:"document_format"`
	Compress       bool          `yaml:"compress"`
	Layout         export.Layout `yaml:"layout"`
}

// DecomposeConfig tunes the schema decomposer.
type DecomposeConfig struct {
	// Mode is "describe" (default) or "expand".
	Mode string `yaml:"mode"`
	// Workers bounds per-layer parallelism. Zero uses GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// ConvertConfig tunes the structural value converter.
type ConvertConfig struct {
	StrictCollections bool `yaml:"strict_collections"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus textfile dump.
type MetricsConfig struct {
	// Textfile is written after each run when set.
	Textfile string `yaml:"textfile"`
}

// Default returns a Config with defaults.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:            "dataset",
			GraphFormat:    string(rdf.FormatNTriples),
			DocumentFormat: string(export.DocumentJSON),
			Layout:         export.DefaultLayout(),
		},
		Decompose: DecomposeConfig{
			Mode: owl.DescribeDeclared.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML file over the defaults. Layout paths set to an empty
// string keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	layout := export.DefaultLayout()
	layout.Merge(cfg.Output.Layout)
	cfg.Output.Layout = layout
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate reports every invalid field.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Input.Format != "" {
		if _, ok := rdf.ParseFormat(c.Input.Format); !ok {
			result = multierror.Append(result, fmt.Errorf("input.format: unsupported format %q", c.Input.Format))
		}
	}
	if c.Output.Dir == "" {
		result = multierror.Append(result, fmt.Errorf("output.dir is required"))
	}
	if format, ok := rdf.ParseFormat(c.Output.GraphFormat); !ok || format == rdf.FormatAuto {
		result = multierror.Append(result, fmt.Errorf("output.graph_format: unsupported format %q", c.Output.GraphFormat))
	}
	if _, ok := export.ParseDocumentFormat(c.Output.DocumentFormat); !ok {
		result = multierror.Append(result, fmt.Errorf("output.document_format: unsupported format %q", c.Output.DocumentFormat))
	}
	if _, ok := owl.ParseExpandMode(c.Decompose.Mode); !ok {
		result = multierror.Append(result, fmt.Errorf("decompose.mode: must be expand or describe, got %q", c.Decompose.Mode))
	}
	if c.Decompose.Workers < 0 {
		result = multierror.Append(result, fmt.Errorf("decompose.workers must not be negative"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		result = multierror.Append(result, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		result = multierror.Append(result, fmt.Errorf("log.format: must be text or json, got %q", c.Log.Format))
	}

	return result.ErrorOrNil()
}

// ReaderOptions returns the rdf options derived from the input section.
func (c *Config) ReaderOptions() []rdf.Option {
	var opts []rdf.Option
	if c.Input.BaseIRI != "" {
		opts = append(opts, rdf.OptBaseIRI(c.Input.BaseIRI))
	}
	return opts
}

// DecomposeOptions returns the decomposer options of the decompose section.
// An empty mode keeps the decomposer default.
func (c *Config) DecomposeOptions() []owl.Option {
	var opts []owl.Option
	if c.Decompose.Mode != "" {
		if mode, ok := owl.ParseExpandMode(c.Decompose.Mode); ok {
			opts = append(opts, owl.WithExpandMode(mode))
		}
	}
	if c.Decompose.Workers > 0 {
		opts = append(opts, owl.WithWorkers(c.Decompose.Workers))
	}
	return opts
}

// ConvertOptions returns the converter options of the convert section.
func (c *Config) ConvertOptions() []owl.Option {
	if c.Convert.StrictCollections {
		return []owl.Option{owl.WithStrictCollections()}
	}
	return nil
}

// Logger builds a logrus logger from the log section.
func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetLevel(level)
	if c.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}
