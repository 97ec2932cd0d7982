// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, layered merging,
// environment variable support, and validation.
package configloader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdrefs/pkg/config"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// NoConfig skips every config file; only defaults, environment
	// and CLI flags apply.
	NoConfig bool

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// LookupEnv reads environment variables. Defaults to os.LookupEnv.
	LookupEnv LookupFunc

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (MDREFS_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.mdrefs.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/mdrefs/config.yml)
//  6. System config (/etc/mdrefs/config.yml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{
		Paths: &ConfigPaths{},
	}

	cfg := config.NewConfig()

	if !opts.NoConfig {
		workDir := opts.WorkingDir
		if workDir == "" {
			var err error
			workDir, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("get working directory: %w", err)
			}
		}

		paths, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		paths.Explicit = opts.ExplicitPath
		result.Paths = paths

		layers := []struct {
			path   string
			skip   bool
			source string
		}{
			{path: paths.System, skip: opts.IgnoreSystemConfig, source: "system"},
			{path: paths.User, skip: opts.IgnoreUserConfig, source: "user"},
			{path: paths.Project, skip: opts.IgnoreProjectConfig, source: "project"},
			{path: paths.Explicit, source: "explicit"},
		}

		for _, layer := range layers {
			if layer.skip || layer.path == "" {
				continue
			}
			fileCfg, err := loadConfigFile(layer.path)
			if err != nil {
				return nil, fmt.Errorf("load %s config: %w", layer.source, err)
			}
			applyFile(cfg, fileCfg)
			result.LoadedFrom = append(result.LoadedFrom, layer.path)
		}
	}

	if !opts.IgnoreEnv {
		lookup := opts.LookupEnv
		if lookup == nil {
			lookup = os.LookupEnv
		}
		if err := loadFromLookup(cfg, lookup); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile decodes a YAML config file. Unknown keys are rejected so
// typos surface instead of being silently ignored.
func loadConfigFile(path string) (*fileConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	fileCfg := &fileConfig{}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(fileCfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file.
			return fileCfg, nil
		}
		return nil, &ValidationError{
			FilePath: path,
			Message:  fmt.Sprintf("parse YAML: %v", err),
		}
	}

	return fileCfg, nil
}
