package config

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Template formats accepted by GenerateTemplate.
const (
	TemplateYAML = "yaml"
	TemplateJSON = "json"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

const yamlTemplate = `# mdrefs configuration
# See: https://github.com/yaklabco/mdrefs

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Extensions (without dot) of files treated as Markdown
markdown_file_extensions:
  - md

# Glob patterns for paths to skip
exclude_paths:
  - "**/.*"
  - "**/node_modules/**"

organize:
  # Drop definitions that no reference link uses
  remove_unused: false

# Backup configuration used with --write
backups:
  enabled: false
  mode: sidecar

# Number of parallel workers (0 = one per CPU)
jobs: 0
`

// GenerateTemplate creates a configuration file template holding the
// default settings.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	switch opts.Format {
	case "", TemplateYAML:
		return []byte(yamlTemplate), nil
	case TemplateJSON:
		data, err := json.MarshalIndent(NewConfig(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown template format %q", opts.Format)
	}
}
