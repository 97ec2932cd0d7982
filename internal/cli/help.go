package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/mdrefs/internal/ui/pretty"
)

// flagLine matches the name part of a pflag usage line:
// "  -w, --write" or "      --format string".
var flagLine = regexp.MustCompile(`^(\s*)((?:-[^-\s], )?--[^\s=]+)( [a-zA-Z]+)?(\s{2,}.*)?$`)

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}
{{- end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]
{{- end }}
{{- if gt (len .Aliases) 0 }}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end }}
{{- if .HasExample }}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end }}
{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if (or .IsAvailableCommand (eq .Name "help")) }}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}
{{- end }}{{ end }}
{{- end }}
{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}
{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}
{{- if .HasAvailableSubCommands }}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end }}
`

const helpTemplate = `{{ with (or .Long .Short) }}{{ trimRight . }}

{{ end }}` + usageTemplate

// helpRenderer styles cobra's help and usage output. Color is decided per
// render so the --color flag applies to help as well.
type helpRenderer struct {
	usage *template.Template
	help  *template.Template
}

// installHelp replaces the help and usage functions of root and, through
// inheritance, of every subcommand.
func installHelp(root *cobra.Command) {
	renderer := &helpRenderer{
		usage: template.Must(template.New("usage").Funcs(placeholderFuncs()).Parse(usageTemplate)),
		help:  template.Must(template.New("help").Funcs(placeholderFuncs()).Parse(helpTemplate)),
	}

	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return renderer.render(renderer.usage, cmd, cmd.OutOrStderr())
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := renderer.render(renderer.help, cmd, cmd.OutOrStdout()); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

func (r *helpRenderer) render(tmpl *template.Template, cmd *cobra.Command, out io.Writer) error {
	mode := pretty.ColorAuto
	if flag := cmd.Flag("color"); flag != nil {
		mode = flag.Value.String()
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, out))
	width := pretty.TerminalWidth(out)

	clone, err := tmpl.Clone()
	if err != nil {
		return fmt.Errorf("clone %s template: %w", tmpl.Name(), err)
	}
	clone.Funcs(styledFuncs(styles, width))

	if err := clone.Execute(out, cmd); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	return nil
}

// placeholderFuncs lets the templates parse before styles are known.
func placeholderFuncs() template.FuncMap {
	return styledFuncs(pretty.NewStyles(false), pretty.DefaultTermWidth)
}

func styledFuncs(styles *pretty.Styles, width int) template.FuncMap {
	return template.FuncMap{
		"heading":    styles.SummaryTitle.Render,
		"command":    styles.Bold.Render,
		"subcommand": styles.Label.Render,
		"dim":        styles.Dim.Render,
		"join":       strings.Join,
		"rpad":       rpad,
		"trimRight":  trimTrailingWhitespace,
		"flags": func(set *pflag.FlagSet) string {
			return styleFlagUsages(styles, set.FlagUsagesWrapped(width))
		},
	}
}

// styleFlagUsages colors flag names and dims value types. Wrapped
// continuation lines pass through unchanged.
func styleFlagUsages(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		valueType := m[3]
		if valueType != "" {
			valueType = styles.Dim.Render(valueType)
		}
		lines[i] = m[1] + styles.Kind.Render(m[2]) + valueType + m[4]
	}
	return strings.Join(lines, "\n")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func trimTrailingWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
