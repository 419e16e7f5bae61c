package main

import "strings"

// Shared tail of every usage template: commands, flags, and the help hint.
const usageBody = `
{{if .HasAvailableSubCommands}}Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}  {{rpad .Name .NamePadding }} {{.Short}}
{{end}}{{end}}
{{end}}{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

func usageTemplate(lines ...string) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	for _, l := range lines {
		b.WriteString("  " + l + "\n")
	}
	b.WriteString(usageBody)
	return b.String()
}

var (
	rootUsageTemplate       = usageTemplate("glosst <file>... [flags]", "{{.CommandPath}} [command]")
	subcommandUsageTemplate = usageTemplate("{{.UseLine}}")
	envUsageTemplate        = usageTemplate("{{.CommandPath}} [command]")
)
