// Package config loads key-binding overrides and editor options for the
// command-dispatch core from a YAML file, the way the host application
// loads its own settings: mapstructure-tagged structs populated through
// viper, defaults set before the file is read so a partial file only
// overrides what it mentions.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// BindingOverride remaps a single key token to a different motion,
// operator, or mode-entry command name, letting a host remap keys without
// this module needing a scripting layer (explicitly out of scope, §1).
type BindingOverride struct {
	Mode string `mapstructure:"mode"`
	Key  string `mapstructure:"key"`
	Maps string `mapstructure:"maps_to"`
}

// Config holds editor-core options a host may override.
type Config struct {
	// JumplistLimit bounds the jumplist/changelist ring size.
	JumplistLimit int `mapstructure:"jumplist_limit"`
	// HalfPageLines is loaded from the file but not read by the dispatcher:
	// Ctrl-U/Ctrl-D-style motions always move a fixed 10 lines.
	HalfPageLines int `mapstructure:"half_page_lines"`
	// IgnoreCase and SmartCase mirror vi's search case-folding options.
	// Only IgnoreCase reaches the dispatcher's Searcher calls; SmartCase is
	// loaded but not applied.
	IgnoreCase bool `mapstructure:"ignore_case"`
	SmartCase  bool `mapstructure:"smart_case"`

	Bindings []BindingOverride `mapstructure:"bindings"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		JumplistLimit: 100,
		HalfPageLines: 10,
		IgnoreCase:    false,
		SmartCase:     true,
	}
}

// Load reads path (a YAML file) into a Config seeded with Default(),
// tolerating a missing file: a host is expected to ship sensible defaults
// and let the file be optional.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("jumplist_limit", def.JumplistLimit)
	v.SetDefault("half_page_lines", def.HalfPageLines)
	v.SetDefault("ignore_case", def.IgnoreCase)
	v.SetDefault("smart_case", def.SmartCase)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		if os.IsNotExist(err) {
			return def, nil
		}
		return def, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}
