// Package config loads the wrapper configuration from an optional file and
// from CODEXUP_* environment variables. Everything has a default: the
// wrapper runs fine with no configuration at all.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "CODEXUP"

// Config for one run of the wrapper.
type Config struct {
	// Command is the target CLI name on the search path
	Command string `mapstructure:"command"`
	// Repository is the owner/repo slug the releases come from
	Repository string `mapstructure:"repository"`
	// Source selects the release registry: github, gitea or gitlab
	Source string `mapstructure:"source"`
	// BaseURL points the source at a self-hosted instance
	BaseURL string `mapstructure:"base-url"`
	// BrewCask is the Homebrew cask name of the target CLI
	BrewCask string `mapstructure:"brew-cask"`
	// NpmPackage is the npm package name of the target CLI
	NpmPackage string `mapstructure:"npm-package"`
	// SkipUpdate launches the installed version without any check
	SkipUpdate bool `mapstructure:"skip-update"`
	// Verbose enables diagnostic logging
	Verbose bool `mapstructure:"verbose"`

	ProbeTimeout   time.Duration `mapstructure:"probe-timeout"`
	ResolveTimeout time.Duration `mapstructure:"resolve-timeout"`
	StallTimeout   time.Duration `mapstructure:"stall-timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("command", "codex")
	v.SetDefault("repository", "openai/codex")
	v.SetDefault("source", "github")
	v.SetDefault("base-url", "")
	v.SetDefault("brew-cask", "codex")
	v.SetDefault("npm-package", "@openai/codex")
	v.SetDefault("skip-update", false)
	v.SetDefault("verbose", false)
	v.SetDefault("probe-timeout", 5*time.Second)
	v.SetDefault("resolve-timeout", 10*time.Second)
	v.SetDefault("stall-timeout", 30*time.Second)
}

// Load reads the configuration. configFile may be empty, in which case the
// default locations are searched and a missing file is not an error.
func Load(configFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("codexup")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/codexup")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("cannot read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("cannot decode configuration: %w", err)
	}
	if cfg.Command == "" {
		return Config{}, errors.New("command cannot be empty")
	}
	return cfg, nil
}
