package dispatch

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigError lists the problems found in a plugin configuration.
type ConfigError struct {
	Plugin  string
	Missing []string
	Unknown []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing "+strings.Join(e.Missing, ", "))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(e.Unknown, ", "))
	}
	return fmt.Sprintf("plugin %s configuration: %s", e.Plugin, strings.Join(parts, "; "))
}

// CheckConfiguration is the host's default validation: every key of schema
// must be present in cfg and cfg may not carry keys the schema does not know.
// Values are not inspected.
func CheckConfiguration(plugin string, schema, cfg map[string]string) error {
	cerr := &ConfigError{Plugin: plugin}
	for key := range schema {
		if _, ok := cfg[key]; !ok {
			cerr.Missing = append(cerr.Missing, key)
		}
	}
	for key := range cfg {
		if _, ok := schema[key]; !ok {
			cerr.Unknown = append(cerr.Unknown, key)
		}
	}
	if len(cerr.Missing) == 0 && len(cerr.Unknown) == 0 {
		return nil
	}
	sort.Strings(cerr.Missing)
	sort.Strings(cerr.Unknown)
	return cerr
}

// WithDefaults returns cfg with any missing schema key set to its default.
func WithDefaults(schema, cfg map[string]string) map[string]string {
	out := make(map[string]string, len(schema))
	for k, v := range schema {
		out[k] = v
	}
	for k, v := range cfg {
		out[k] = v
	}
	return out
}
