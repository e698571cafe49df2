package config

import (
	"github.com/meridian-os/sdkforge/atom"
	"github.com/meridian-os/sdkforge/errors"
)

// Validate checks the configuration for values that can never work. Zero
// values that mean "disabled" or "unset" are allowed; negatives are not.
func (c *Config) Validate() error {
	if c.Gather.Jobs < 0 {
		return errors.Newf("gather.jobs must be >= 0, got %d", c.Gather.Jobs)
	}
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	if c.SDK.MinimumCategory != "" {
		if _, err := atom.ParseCategory(c.SDK.MinimumCategory); err != nil {
			return errors.Wrap(err, "sdk.minimum_category")
		}
	}
	return nil
}
