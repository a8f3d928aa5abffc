package rules

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

// Config is the on-disk shape of a rule file.
type Config struct {
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig describes one rule in the YAML rule file.
type RuleConfig struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Tokens   []string `yaml:"tokens"`
}

// DefaultConfig returns the rule file contents shipped with the bot.
func DefaultConfig() Config {
	return Config{
		Rules: []RuleConfig{
			{
				Name:     "Errors",
				Category: string(model.CategoryError),
				Tokens:   []string{"ERROR", "CRITICAL", "FAILED", "EXCEPTION"},
			},
			{
				Name:     "Warnings",
				Category: string(model.CategoryWarning),
				Tokens:   []string{"WARNING"},
			},
			{
				Name:     "Authentication",
				Category: string(model.CategoryAuth),
				Tokens:   []string{"AUTH", "LOGIN", "LOGOUT", "SESSION"},
			},
		},
	}
}

// FromConfig compiles a loaded Config into a Set.
func FromConfig(cfg Config) (*Set, error) {
	if len(cfg.Rules) == 0 {
		return nil, fmt.Errorf("rule config contains no rules")
	}
	compiled := make([]*Rule, 0, len(cfg.Rules))
	for _, rc := range cfg.Rules {
		r, err := NewRule(rc.Name, model.Category(rc.Category), rc.Tokens)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, r)
	}
	return NewSet(compiled...), nil
}

// Load reads and compiles the rule file at path. If the file does not
// exist it is created with the default rules first, so a fresh install
// starts with a file the operator can edit.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if werr := writeDefault(path); werr != nil {
			return nil, fmt.Errorf("create default rule file: %w", werr)
		}
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}
	set, err := FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return set, nil
}

func writeDefault(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
