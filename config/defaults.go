package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// SetDefaults applies the built-in defaults to a viper instance. Every key
// the Config struct knows appears here so that a bare environment still
// produces a usable configuration.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sdk.id", "0.0.0")
	v.SetDefault("sdk.host_arch", defaultHostArch())
	v.SetDefault("sdk.target_archs", []string{"arm64", "x64"})
	v.SetDefault("sdk.minimum_category", "internal")

	v.SetDefault("gather.jobs", runtime.NumCPU())

	v.SetDefault("toolchain.dir", "")
	v.SetDefault("toolchain.overrides", map[string]string{})

	v.SetDefault("watch.debounce_ms", 500)
}

// defaultHostArch maps the running platform onto the build system's
// arch-os naming.
func defaultHostArch() string {
	arch := runtime.GOARCH
	if arch == "amd64" {
		arch = "x64"
	}
	return arch + "-" + runtime.GOOS
}
