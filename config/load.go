package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/meridian-os/sdkforge/errors"
)

// Load reads the sdkforge configuration with the full precedence chain.
// Each call builds a fresh view; Ninja may run many sdkforge processes
// against different project roots, so there is no process-global cache.
func Load() (*Config, error) {
	return LoadWithViper(newViper())
}

// LoadWithViper unmarshals configuration from a prepared viper instance.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from one specific file, on top of the
// defaults only. Used by --config and by the watcher's reloads.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}
	return LoadWithViper(v)
}

// newViper builds a viper instance with defaults, the merged config files,
// and environment binding.
func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix("SDKFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)
	mergeConfigFiles(v)
	return v
}

// findProjectConfig searches for sdkforge.toml by walking up from the
// working directory. Returns "" when no project config exists.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges configuration files in precedence order, lowest
// first: system < user < project. Layers merge at viper's config level so
// SDKFORGE_* environment variables still override every file.
func mergeConfigFiles(v *viper.Viper) {
	var paths []string
	paths = append(paths, filepath.Join("/etc/sdkforge", ProjectConfigName))
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".sdkforge", ProjectConfigName))
	}
	if project := findProjectConfig(); project != "" {
		paths = append(paths, project)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		layer := viper.New()
		layer.SetConfigFile(path)
		layer.SetConfigType("toml")
		if err := layer.ReadInConfig(); err != nil {
			continue
		}
		v.MergeConfigMap(layer.AllSettings())
	}
}
