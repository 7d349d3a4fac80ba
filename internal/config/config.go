package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure
type Config struct {
	Editor EditorConfig `mapstructure:"editor" yaml:"editor"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Debug  bool         `mapstructure:"debug" yaml:"debug"`
}

// EditorConfig holds buffer settings applied to every opened document
type EditorConfig struct {
	TabWidth    int    `mapstructure:"tab_width" yaml:"tab_width"`
	Indent      string `mapstructure:"indent" yaml:"indent"` // "spaces" or "tabs", used when a file has no indented lines
	IndentWidth int    `mapstructure:"indent_width" yaml:"indent_width"`
}

// UIConfig holds user interface preferences
type UIConfig struct {
	SyntaxTheme string `mapstructure:"syntax_theme" yaml:"syntax_theme"`
	StatusBar   bool   `mapstructure:"status_bar" yaml:"status_bar"`
	Highlight   bool   `mapstructure:"highlight" yaml:"highlight"`
}

// LogConfig holds log file settings
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Path  string `mapstructure:"path" yaml:"path"` // empty selects ~/.config/quill/quill.log
}

// Indent styles accepted by editor.indent.
const (
	IndentSpaces = "spaces"
	IndentTabs   = "tabs"
)

// LoadConfig loads configuration from a YAML file and QUILL_* environment
// variables. An empty path searches ~/.config/quill and the working
// directory; a missing file there is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/quill")
		v.AddConfigPath(".")
	}

	// Environment variable support
	v.SetEnvPrefix("QUILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	v := viper.New()
	applyDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

// ValidateConfig validates the configuration values
func ValidateConfig(cfg *Config) error {
	if cfg.Editor.TabWidth < 1 || cfg.Editor.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", cfg.Editor.TabWidth)
	}
	if cfg.Editor.IndentWidth < 1 || cfg.Editor.IndentWidth > 16 {
		return fmt.Errorf("editor.indent_width must be between 1 and 16, got %d", cfg.Editor.IndentWidth)
	}

	validIndents := []string{IndentSpaces, IndentTabs}
	if !slices.Contains(validIndents, cfg.Editor.Indent) {
		return fmt.Errorf("editor.indent must be one of: %v, got %s", validIndents, cfg.Editor.Indent)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLevels, strings.ToLower(cfg.Log.Level)) {
		return fmt.Errorf("log.level must be one of: %v, got %s", validLevels, cfg.Log.Level)
	}

	if cfg.UI.SyntaxTheme == "" {
		return fmt.Errorf("ui.syntax_theme cannot be empty")
	}

	return nil
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	// Editor defaults
	v.SetDefault("editor.tab_width", 4)
	v.SetDefault("editor.indent", IndentSpaces)
	v.SetDefault("editor.indent_width", 4)

	// UI defaults
	v.SetDefault("ui.syntax_theme", "catppuccin-macchiato")
	v.SetDefault("ui.status_bar", true)
	v.SetDefault("ui.highlight", true)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")

	v.SetDefault("debug", false)
}
