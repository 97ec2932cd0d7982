package configloader

import (
	"slices"

	"github.com/yaklabco/mdrefs/pkg/config"
)

// fileConfig mirrors config.Config for decoding config files. Pointer
// fields distinguish "unset" from an explicit zero value, so a project
// file can turn off a setting a user file turned on.
type fileConfig struct {
	Flavor                 *config.Flavor `yaml:"flavor"`
	MarkdownFileExtensions []string       `yaml:"markdown_file_extensions"`
	ExcludePaths           []string       `yaml:"exclude_paths"`
	Organize               fileOrganize   `yaml:"organize"`
	Backups                fileBackups    `yaml:"backups"`
	Jobs                   *int           `yaml:"jobs"`
}

type fileOrganize struct {
	RemoveUnused *bool `yaml:"remove_unused"`
}

type fileBackups struct {
	Enabled *bool   `yaml:"enabled"`
	Mode    *string `yaml:"mode"`
}

// applyFile overlays the fields set in a config file onto cfg.
// Slices replace the base entirely when present.
func applyFile(cfg *config.Config, file *fileConfig) {
	if file == nil {
		return
	}

	if file.Flavor != nil {
		cfg.Flavor = *file.Flavor
	}
	if file.MarkdownFileExtensions != nil {
		cfg.MarkdownFileExtensions = slices.Clone(file.MarkdownFileExtensions)
	}
	if file.ExcludePaths != nil {
		cfg.ExcludePaths = slices.Clone(file.ExcludePaths)
	}
	if file.Organize.RemoveUnused != nil {
		cfg.Organize.RemoveUnused = *file.Organize.RemoveUnused
	}
	if file.Backups.Enabled != nil {
		cfg.Backups.Enabled = *file.Backups.Enabled
	}
	if file.Backups.Mode != nil {
		cfg.Backups.Mode = *file.Backups.Mode
	}
	if file.Jobs != nil {
		cfg.Jobs = *file.Jobs
	}
}

// merge combines two configurations, with override taking precedence over base.
// It is used for CLI flags, where only set flags carry non-zero values:
//   - Scalar values: override overwrites base if override is non-zero
//   - Booleans: only true overrides
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Flavor != "" {
		result.Flavor = override.Flavor
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Organize.RemoveUnused {
		result.Organize.RemoveUnused = true
	}
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	if override.MarkdownFileExtensions != nil {
		result.MarkdownFileExtensions = slices.Clone(override.MarkdownFileExtensions)
	}
	if override.ExcludePaths != nil {
		result.ExcludePaths = slices.Clone(override.ExcludePaths)
	}

	return result
}
