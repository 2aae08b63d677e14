package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the cmg configuration file (~/.config/cmg/config.yaml).
// Fields are pointers so "not set" is distinguishable from zero values.
type Config struct {
	SpecialTokensPath string `yaml:"special_tokens_path"`

	MaxLen           *int64 `yaml:"max_len"`
	IgnoreLabel      *int64 `yaml:"ignore_label"`
	IncludeHistory   *bool  `yaml:"include_history"`
	GenerationPrompt *bool  `yaml:"generation_prompt"`
	WrapSpecials     *bool  `yaml:"wrap_specials"`
	Workers          *int64 `yaml:"workers"`
	BatchSize        *int64 `yaml:"batch_size"`

	ServerAddress string `yaml:"server_address"`
	LogLevel      string `yaml:"log_level"`
	LogFormat     string `yaml:"log_format"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "cmg", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or fails to parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyCollatorConfig applies config file defaults to the collator flag
// variables when the corresponding CLI flag was not explicitly set.
func applyCollatorConfig(c *cli.Command, cfg Config) {
	if cfg.SpecialTokensPath != "" && !c.IsSet("special-tokens") {
		specialTokensPath = cfg.SpecialTokensPath
	}
	if cfg.MaxLen != nil && !c.IsSet("max-len") {
		maxLen = *cfg.MaxLen
	}
	if cfg.IgnoreLabel != nil && !c.IsSet("ignore-label") {
		ignoreLabelID = *cfg.IgnoreLabel
	}
	if cfg.IncludeHistory != nil && !c.IsSet("history") {
		includeHistory = *cfg.IncludeHistory
	}
	if cfg.GenerationPrompt != nil && !c.IsSet("generation-prompt") {
		generationPrompt = *cfg.GenerationPrompt
	}
	if cfg.WrapSpecials != nil && !c.IsSet("wrap-specials") {
		wrapSpecials = *cfg.WrapSpecials
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		workers = *cfg.Workers
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}
