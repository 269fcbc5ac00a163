package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/lblanes25/tabvalid/internal/verr"
)

// LoadYAML decodes a YAML configuration document, the primary format.
func LoadYAML(data []byte) (*Configuration, error) {
	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, verr.WrapConfigError("", "failed to parse YAML configuration", err)
	}
	return &cfg, nil
}

// LoadTOML decodes a TOML configuration document, kept for
// backward-compatible analytics authored before the YAML format became
// primary.
func LoadTOML(data []byte) (*Configuration, error) {
	var cfg Configuration
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, verr.WrapConfigError("", "failed to parse TOML configuration", err)
	}
	return &cfg, nil
}

// LoadFile reads and decodes a configuration document, choosing the
// format by file extension: .yaml/.yml for YAML, .toml for TOML.
func LoadFile(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, verr.WrapConfigError(path, "failed to read configuration file", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	case ".toml":
		return LoadTOML(data)
	default:
		return nil, verr.NewConfigError(path, fmt.Sprintf("unrecognized configuration extension %q", filepath.Ext(path)))
	}
}
