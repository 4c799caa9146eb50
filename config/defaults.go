package config

func DefaultSettings() *Settings {
	return &Settings{
		DefaultProvider: DefaultProvider,
		DefaultStyle:    DefaultStyle,
		DefaultTemplate: DefaultTemplate,
	}
}

func GenerateSettingsTemplate() string {
	return `# proompter configuration
# Location: ~/.config/proompter/settings.toml
# This file uses TOML format: https://toml.io

# Provider used when --provider is not given: openai, openrouter, anthropic, ollama
default_provider = "openai"

# Model used when --model is not given (empty = provider default)
default_model = ""

# Syntax highlight style (see --list-styles)
default_style = "monokai"

# Prompt template used when --template is not given
default_template = "system"

# Directory for per-shell conversation context (empty = ~/.config/proompter/context)
# context_dir = ""

# Per-provider API base URLs (optional)
# [providers.openai]
# base_url = "https://api.openai.com/v1"
#
# [providers.ollama]
# base_url = "http://localhost:11434"
`
}
