package configloader

import (
	"errors"
	"strconv"
	"strings"

	"github.com/yaklabco/mdrefs/pkg/config"
)

const envVarPrefix = "MDREFS_"

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// envVar binds one MDREFS_* variable to the config field it overrides.
type envVar struct {
	suffix      string
	description string
	apply       func(cfg *config.Config, value string) error
}

func (v envVar) name() string { return envVarPrefix + v.suffix }

// envMappings is sorted by suffix so the first reported error is stable.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = []envVar{
	{"BACKUPS_ENABLED", "Enable backups when writing: true or false", boolSetter(func(c *config.Config, b bool) { c.Backups.Enabled = b })},
	{"BACKUPS_MODE", "Backup mode: sidecar or none", stringSetter(func(c *config.Config, s string) { c.Backups.Mode = s })},
	{"EXCLUDE_PATHS", "Comma-separated glob patterns to skip", listSetter(func(c *config.Config, l []string) { c.ExcludePaths = l })},
	{"FLAVOR", "Markdown flavor: commonmark or gfm", stringSetter(func(c *config.Config, s string) { c.Flavor = config.Flavor(s) })},
	{"FORMAT", "Output format: text, json, or diff", stringSetter(func(c *config.Config, s string) { c.Format = config.OutputFormat(s) })},
	{"JOBS", "Number of parallel workers (0 = auto)", intSetter(func(c *config.Config, n int) { c.Jobs = n })},
	{"MARKDOWN_FILE_EXTENSIONS", "Comma-separated Markdown file extensions", listSetter(func(c *config.Config, l []string) { c.MarkdownFileExtensions = l })},
	{"NO_BACKUPS", "Disable backups: true or false", boolSetter(func(c *config.Config, b bool) { c.NoBackups = b })},
	{"REMOVE_UNUSED", "Drop unused definitions: true or false", boolSetter(func(c *config.Config, b bool) { c.Organize.RemoveUnused = b })},
}

func loadFromLookup(cfg *config.Config, lookup LookupFunc) error {
	if cfg == nil {
		return nil
	}

	for _, v := range envMappings {
		value, ok := lookup(v.name())
		if !ok || value == "" {
			continue
		}
		if err := v.apply(cfg, value); err != nil {
			var vErr *ValidationError
			if errors.As(err, &vErr) {
				vErr.Field = v.name()
				vErr.Value = value
			}
			return err
		}
	}

	return nil
}

func stringSetter(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, value)
		return nil
	}
}

func boolSetter(set func(*config.Config, bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &ValidationError{Message: "invalid boolean (expected true/false/1/0)"}
		}
		set(cfg, b)
		return nil
	}
}

func intSetter(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return &ValidationError{Message: "invalid integer"}
		}
		set(cfg, n)
		return nil
	}
}

func listSetter(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		set(cfg, parseSliceValue(value))
		return nil
	}
}

// parseSliceValue splits a comma-separated list, trimming blanks.
func parseSliceValue(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// EnvVarInfo describes a supported environment variable.
type EnvVarInfo struct {
	Name        string
	Description string
}

// ListEnvVars returns every supported environment variable in name order.
func ListEnvVars() []EnvVarInfo {
	out := make([]EnvVarInfo, 0, len(envMappings))
	for _, v := range envMappings {
		out = append(out, EnvVarInfo{Name: v.name(), Description: v.description})
	}
	return out
}
