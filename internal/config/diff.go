package config

import "reflect"

// ConfigDiff describes what changed between two configs. Only the log level
// can be hot-reloaded; everything else needs a restart, so those changes are
// surfaced as flags the caller can warn about.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// ProvidersChanged is true when any provider entry was added, removed,
	// or modified. Requires a restart to take effect.
	ProvidersChanged bool

	// StorageChanged is true when the storage backend configuration changed.
	// Requires a restart to take effect.
	StorageChanged bool

	// PipelineChanged is true when timeouts or retry budgets changed.
	// Requires a restart to take effect.
	PipelineChanged bool
}

// Changed reports whether any tracked field differs between the two configs.
func (d ConfigDiff) Changed() bool {
	return d.LogLevelChanged || d.ProvidersChanged || d.StorageChanged || d.PipelineChanged
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}
	if !reflect.DeepEqual(old.Providers, new.Providers) {
		d.ProvidersChanged = true
	}
	if old.Storage != new.Storage {
		d.StorageChanged = true
	}
	if old.Pipeline != new.Pipeline {
		d.PipelineChanged = true
	}

	return d
}
