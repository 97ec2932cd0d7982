// Package config defines the configuration types for mdrefs.
// These types are pure data structures; loading and merging live in
// internal/configloader.
package config

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	switch f {
	case FlavorCommonMark, FlavorGFM:
		return true
	default:
		return false
	}
}

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatDiff OutputFormat = "diff"
)

// IsValid returns true if the format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff:
		return true
	default:
		return false
	}
}

// OrganizeConfig controls how definition blocks are organized.
type OrganizeConfig struct {
	// RemoveUnused drops definitions no reference link points to.
	RemoveUnused bool `yaml:"remove_unused" json:"remove_unused"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Mode    string `yaml:"mode" json:"mode"` // "sidecar"
}

// Config is the root configuration structure for mdrefs.
type Config struct {
	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor" json:"flavor"`

	// MarkdownFileExtensions lists the extensions, without dot, of files
	// treated as Markdown.
	MarkdownFileExtensions []string `yaml:"markdown_file_extensions" json:"markdown_file_extensions"`

	// ExcludePaths contains glob patterns for paths to skip.
	ExcludePaths []string `yaml:"exclude_paths" json:"exclude_paths"`

	// Organize configures the organize command.
	Organize OrganizeConfig `yaml:"organize" json:"organize"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `yaml:"backups" json:"backups"`

	// Jobs is the number of parallel workers; 0 means one per CPU.
	Jobs int `yaml:"jobs" json:"jobs"`

	// CLI-level options (not persisted to config files).

	// Write applies changes to files instead of only reporting them.
	Write bool `yaml:"-" json:"-"`

	// Check reports files that would change and fails if there are any.
	Check bool `yaml:"-" json:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" json:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `yaml:"-" json:"-"`
}

// Default values for list settings.
var (
	defaultMarkdownFileExtensions = []string{"md"}
	defaultExcludePaths           = []string{"**/.*", "**/node_modules/**"}
)

// NewConfig returns a Config with the default settings.
func NewConfig() *Config {
	return &Config{
		Flavor:                 FlavorCommonMark,
		MarkdownFileExtensions: append([]string(nil), defaultMarkdownFileExtensions...),
		ExcludePaths:           append([]string(nil), defaultExcludePaths...),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0,
	}
}
