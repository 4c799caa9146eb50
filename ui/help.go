package ui

import (
	"fmt"
	"strings"
)

// HelpAddendum describes the environment and template layout. It is printed
// after the flag usage for --help.
func HelpAddendum(color bool, proomptsDir, settingsPath, defaultEditor string) string {
	section := func(s string) string { return paint(color, SectionStyle, s) }

	lines := []string{
		section("Environment Variables:"),
		"    OPENAI_API_KEY",
		"        Required for the openai provider",
		`        $ export OPENAI_API_KEY="sk-..."`,
		"    OPENROUTER_API_KEY, ANTHROPIC_API_KEY",
		"        Required for the openrouter and anthropic providers (ollama needs none)",
		"    PROOMPTER_OPTIONS",
		"        Optional, set to assign default options",
		`        $ export PROOMPTER_OPTIONS="-t code -c -x"`,
		"    PROOMPTER_EDITOR, EDITOR, VISUAL",
		fmt.Sprintf("        Override the default editor (%s)", defaultEditor),
		`        $ export EDITOR="nvim"`,
		"    PROOMPTER_DEBUG",
		"        Set to 1 to write a debug log and telemetry next to the settings file",
		"    OLLAMA_HOST",
		"        Address of the Ollama server",
		"",
		section("Proompt Templates:"),
		fmt.Sprintf("    Proompt templates must reside in %s", proomptsDir),
		"",
		"    my_template.tmpl",
		`    Use this to define a "system" prompt for the dialog.`,
		"",
		"    my_template.prefix.tmpl",
		"    This template is prepended to the user prompt.",
		"",
		"    my_template.postfix.tmpl",
		"    This template is appended to the user prompt.",
		"",
		"    Templates may reference {{.Platform}} and {{.Shell}}.",
		"",
		section("Settings:"),
		fmt.Sprintf("    %s", settingsPath),
	}
	return strings.Join(lines, "\n")
}
