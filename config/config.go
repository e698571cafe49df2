// Package config loads and persists the sdkforge tool configuration.
//
// Configuration merges, lowest precedence first: built-in defaults, the
// system file, the user file (~/.sdkforge/sdkforge.toml), the nearest
// project sdkforge.toml found by walking up from the working directory, and
// SDKFORGE_* environment variables.
package config

import (
	"path/filepath"
	"sync"

	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/errors"
)

// Config is the sdkforge tool configuration.
type Config struct {
	SDK       SDKConfig       `mapstructure:"sdk" toml:"sdk"`
	Gather    GatherConfig    `mapstructure:"gather" toml:"gather"`
	Toolchain ToolchainConfig `mapstructure:"toolchain" toml:"toolchain"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch"`

	// Memoized host tool lookups, lazily populated by ToolPath.
	toolMu    sync.Mutex
	toolPaths map[string]string
}

// SDKConfig configures SDK metadata generation and verification.
type SDKConfig struct {
	ID              string   `mapstructure:"id" toml:"id"`                             // SDK version, a semver string
	HostArch        string   `mapstructure:"host_arch" toml:"host_arch"`               // e.g. "x64-linux"
	TargetArchs     []string `mapstructure:"target_archs" toml:"target_archs"`         // e.g. ["arm64", "x64"]
	MinimumCategory string   `mapstructure:"minimum_category" toml:"minimum_category"` // lowest category allowed in a published SDK
}

// GatherConfig configures manifest gathering.
type GatherConfig struct {
	Jobs int `mapstructure:"jobs" toml:"jobs"` // concurrent manifest loads, 0 = unlimited
}

// ToolchainConfig locates the prebuilt host tools the wrappers shell out to.
type ToolchainConfig struct {
	Dir       string            `mapstructure:"dir" toml:"dir"`             // directory holding prebuilt binaries
	Overrides map[string]string `mapstructure:"overrides" toml:"overrides"` // tool name -> explicit path
}

// WatchConfig configures --watch re-runs.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"` // quiet period before a re-run
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// ProjectConfigName is the per-project configuration file name.
const ProjectConfigName = "sdkforge.toml"

// MinimumCategory parses the configured minimum category.
func (c *Config) MinimumCategory() (atom.Category, error) {
	return atom.ParseCategory(c.SDK.MinimumCategory)
}

// ToolPath resolves a prebuilt host tool by name. Overrides win; otherwise
// the tool is expected directly under the toolchain directory. Lookups are
// memoized for the life of the Config, which is the life of the process.
func (c *Config) ToolPath(name string) (string, error) {
	c.toolMu.Lock()
	defer c.toolMu.Unlock()

	if c.toolPaths == nil {
		c.toolPaths = make(map[string]string)
	}
	if path, ok := c.toolPaths[name]; ok {
		return path, nil
	}

	var path string
	if override, ok := c.Toolchain.Overrides[name]; ok {
		path = override
	} else {
		if c.Toolchain.Dir == "" {
			return "", errors.Wrapf(errors.ErrToolNotFound,
				"%s: no toolchain.dir configured and no override set", name)
		}
		path = filepath.Join(c.Toolchain.Dir, name)
	}

	c.toolPaths[name] = path
	return path, nil
}
