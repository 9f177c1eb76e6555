// Package config loads rdfctl settings from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Listmode generations accepted by ListmodeConfig.Generation.
const (
	GenerationAuto      = "auto"
	GenerationDimension = "dimension"
	GenerationRDF8      = "rdf8"
)

// Header schemas accepted by HeaderConfig.Schema.
const (
	SchemaAuto = "auto"
	SchemaV7   = "v7"
	SchemaV8   = "v8"
)

type ListmodeConfig struct {
	Generation   string  `yaml:"generation"`
	TOFBinSizePs float64 `yaml:"tofBinSizePs"`
	SkipUnknown  bool    `yaml:"skipUnknown"`
	Mmap         bool    `yaml:"mmap"`
}

type HeaderConfig struct {
	Schema string `yaml:"schema"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

type ExportConfig struct {
	BatchSize int `yaml:"batchSize"`
}

// Config is the full rdfctl configuration.
type Config struct {
	Listmode ListmodeConfig `yaml:"listmode"`
	Header   HeaderConfig   `yaml:"header"`
	Logs     LogConfig      `yaml:"logs"`
	Export   ExportConfig   `yaml:"export"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads path and fills unset values with defaults. A relative log file
// is resolved against the config file's directory.
func Load(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if p := strings.TrimSpace(cfg.Logs.File); p != "" && !filepath.IsAbs(p) {
		cfg.Logs.File = filepath.Clean(filepath.Join(filepath.Dir(path), p))
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listmode.Generation == "" {
		c.Listmode.Generation = GenerationAuto
	}
	if c.Header.Schema == "" {
		c.Header.Schema = SchemaAuto
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Logs.Format == "" {
		c.Logs.Format = "console"
	}
	if c.Logs.MaxSizeMB <= 0 {
		c.Logs.MaxSizeMB = 25
	}
	if c.Logs.MaxAgeDays <= 0 {
		c.Logs.MaxAgeDays = 7
	}
	if c.Logs.MaxBackups <= 0 {
		c.Logs.MaxBackups = 5
	}
	if c.Export.BatchSize <= 0 {
		c.Export.BatchSize = 4096
	}
}

// Validate rejects enumerated settings with unknown values.
func (c Config) Validate() error {
	switch c.Listmode.Generation {
	case GenerationAuto, GenerationDimension, GenerationRDF8:
	default:
		return fmt.Errorf("listmode.generation %q: want auto, dimension or rdf8", c.Listmode.Generation)
	}
	switch c.Header.Schema {
	case SchemaAuto, SchemaV7, SchemaV8:
	default:
		return fmt.Errorf("header.schema %q: want auto, v7 or v8", c.Header.Schema)
	}
	switch c.Logs.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logs.format %q: want console or json", c.Logs.Format)
	}
	if c.Listmode.TOFBinSizePs < 0 {
		return fmt.Errorf("listmode.tofBinSizePs must not be negative")
	}
	return nil
}
