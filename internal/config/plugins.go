package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PluginFile is the optional YAML document that seeds plugin configuration:
//
//	plugins:
//	  kayako:
//	    API_KEY: "..."
//	    SECRET_KEY: "..."
//	    BASE_URL: "https://support.example.com"
type PluginFile struct {
	Plugins map[string]map[string]string `yaml:"plugins"`
}

// LoadPluginFile parses the YAML overlay at path. An empty path yields an empty file.
func LoadPluginFile(path string) (*PluginFile, error) {
	if path == "" {
		return &PluginFile{Plugins: map[string]map[string]string{}}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	var file PluginFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if file.Plugins == nil {
		file.Plugins = map[string]map[string]string{}
	}
	return &file, nil
}

// Plugin returns the configuration for a single plugin, or nil when absent.
func (f *PluginFile) Plugin(name string) map[string]string {
	if f == nil {
		return nil
	}
	return f.Plugins[name]
}
