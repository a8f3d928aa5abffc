// Package config maps viper keys to a typed configuration for the bot
// process. File: .logbot.yaml in the working directory or $HOME; any
// key can be overridden via environment (LOGBOT_BOT_TOKEN etc.).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full process configuration.
type Config struct {
	Bot    BotConfig    `mapstructure:"bot"`
	Rules  RulesConfig  `mapstructure:"rules"`
	Upload UploadConfig `mapstructure:"upload"`
	Report ReportConfig `mapstructure:"report"`
	Server ServerConfig `mapstructure:"server"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token string `mapstructure:"token"`
	Debug bool   `mapstructure:"debug"`
}

// RulesConfig locates the YAML rule file.
type RulesConfig struct {
	File string `mapstructure:"file"`
}

// UploadConfig holds upload policy; the engine enforces the byte cap,
// the Telegram adapter enforces the extension allow-list before
// downloading anything.
type UploadConfig struct {
	MaxBytes   int64    `mapstructure:"max_bytes"`
	Extensions []string `mapstructure:"extensions"`
}

// ReportConfig tunes report rendering for chat.
type ReportConfig struct {
	TailLines int `mapstructure:"tail_lines"`
}

// ServerConfig configures the optional HTTP API.
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("rules.file", "config/rules.yaml")
	v.SetDefault("upload.max_bytes", int64(5*1024*1024))
	v.SetDefault("upload.extensions", []string{".log", ".txt"})
	v.SetDefault("report.tail_lines", 20)
	v.SetDefault("server.enabled", true)
	v.SetDefault("server.port", "8080")
	v.SetDefault("bot.debug", false)
}

// Load unmarshals v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// ExtensionAllowed checks a file name against the configured
// allow-list. An empty list allows everything.
func (c *UploadConfig) ExtensionAllowed(name string) bool {
	if len(c.Extensions) == 0 {
		return true
	}
	lower := strings.ToLower(name)
	for _, ext := range c.Extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
