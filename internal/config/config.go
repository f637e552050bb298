// Package config loads the translator configuration from an HCL file.
//
//	log_level   = "debug"
//	listen_addr = ":8080"
//	database    = "topology.db"
//
//	defaults {
//	  max_spout_pending = 1000
//	  workers           = 1
//	  message_timeout   = 30
//	}
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Defaults are the values the property normalizer falls back to when a
// topology does not set them.
type Defaults struct {
	MaxSpoutPending int
	Workers         int
	MessageTimeout  int
}

// Config holds everything the CLI and the HTTP service need.
type Config struct {
	LogLevel          string
	LogFormat         string
	ListenAddr        string
	Database          string
	OutputDir         string
	ReadTimeout       string
	ClassNamespace    string
	ArtifactGroup     string
	ForwardAllGlobals bool
	Strict            bool
	Defaults          Defaults
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:       "info",
		LogFormat:      "text",
		ListenAddr:     ":8080",
		Database:       "topology.db",
		OutputDir:      "workspaces",
		ReadTimeout:    "15s",
		ClassNamespace: "io.streamgraph",
		ArtifactGroup:  "io.streamgraph",
		Defaults: Defaults{
			MaxSpoutPending: 1000,
			Workers:         1,
			MessageTimeout:  30,
		},
	}
}

type fileConfig struct {
	LogLevel          *string       `hcl:"log_level,optional"`
	LogFormat         *string       `hcl:"log_format,optional"`
	ListenAddr        *string       `hcl:"listen_addr,optional"`
	Database          *string       `hcl:"database,optional"`
	OutputDir         *string       `hcl:"output_dir,optional"`
	ReadTimeout       *string       `hcl:"read_timeout,optional"`
	ClassNamespace    *string       `hcl:"class_namespace,optional"`
	ArtifactGroup     *string       `hcl:"artifact_group,optional"`
	ForwardAllGlobals *bool         `hcl:"forward_all_globals,optional"`
	Strict            *bool         `hcl:"strict,optional"`
	Defaults          *defaultsFile `hcl:"defaults,block"`
}

type defaultsFile struct {
	MaxSpoutPending *int `hcl:"max_spout_pending,optional"`
	Workers         *int `hcl:"workers,optional"`
	MessageTimeout  *int `hcl:"message_timeout,optional"`
}

// Load reads an HCL file and applies it over Default. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	hclFile, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, diags)
	}
	var fc fileConfig
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &fc); diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, diags)
	}
	fc.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	setString(&cfg.ListenAddr, fc.ListenAddr)
	setString(&cfg.Database, fc.Database)
	setString(&cfg.OutputDir, fc.OutputDir)
	setString(&cfg.ReadTimeout, fc.ReadTimeout)
	setString(&cfg.ClassNamespace, fc.ClassNamespace)
	setString(&cfg.ArtifactGroup, fc.ArtifactGroup)
	if fc.ForwardAllGlobals != nil {
		cfg.ForwardAllGlobals = *fc.ForwardAllGlobals
	}
	if fc.Strict != nil {
		cfg.Strict = *fc.Strict
	}
	if d := fc.Defaults; d != nil {
		setInt(&cfg.Defaults.MaxSpoutPending, d.MaxSpoutPending)
		setInt(&cfg.Defaults.Workers, d.Workers)
		setInt(&cfg.Defaults.MessageTimeout, d.MessageTimeout)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks the values a file or flag may have broken.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json; got %q", c.LogFormat)
	}
	if c.ClassNamespace == "" {
		return errors.New("class_namespace cannot be empty")
	}
	if c.Defaults.MaxSpoutPending < 0 || c.Defaults.Workers < 0 || c.Defaults.MessageTimeout < 0 {
		return errors.New("defaults cannot be negative")
	}
	return nil
}
