// Package config loads the ectf configuration file.
//
// The file holds the instance URL and the player's identity cookie, so it
// must be private to its owner. JSON is the default format; files ending
// in .yaml or .yml are read as YAML. Values missing from the file are
// asked for interactively, see Complete.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Rising-Edge-Group/ectf-public/pkg/defaults"
	"github.com/Rising-Edge-Group/ectf-public/pkg/jsonutil"
)

// File keys.
const (
	KeyInstanceURL    = "instance_url"
	KeyIdentityCookie = defaults.IdentityCookie
)

// Config is the resolved configuration of a run.
type Config struct {
	// InstanceURL is the platform instance, e.g. https://echoctf.red
	InstanceURL string

	// IdentityCookie is the value of the _identity-red cookie
	IdentityCookie string

	// Path is the file the values were read from (after ~ expansion)
	Path string

	// Found is false when Path did not exist
	Found bool
}

// DefaultPath returns ~/.echoctf.json.
func DefaultPath() string {
	return filepath.Join("~", defaults.ConfigFileName)
}

// ExpandPath replaces a leading "~" with the current user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: expand %s: %w", path, err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Load reads the configuration at path. A file that does not exist is not
// an error: the returned Config is empty with Found set to false.
func Load(path string) (*Config, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{Path: expanded}

	info, err := os.Stat(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.Found = true

	if err := CheckPermissions(info.Mode()); err != nil {
		return nil, fmt.Errorf("%w: %s", err, expanded)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	values, err := decode(expanded, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, expanded, err)
	}
	if cfg.InstanceURL, err = stringValue(values, KeyInstanceURL); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, expanded, err)
	}
	if cfg.IdentityCookie, err = stringValue(values, KeyIdentityCookie); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, expanded, err)
	}
	return cfg, nil
}

// CheckPermissions accepts a mode only when the owner can read and write
// and group and others have no access at all.
func CheckPermissions(mode fs.FileMode) error {
	perm := mode.Perm()
	if perm&0o600 != 0o600 || perm&0o077 != 0 {
		return fmt.Errorf("%w: mode %04o, want %04o", ErrInsecurePermissions, perm, defaults.ConfigFileMode)
	}
	return nil
}

// IsYAML reports whether path is decoded as YAML.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decode parses data into a generic map. Only the top-level keys matter.
func decode(path string, data []byte) (map[string]any, error) {
	var values map[string]any
	if IsYAML(path) {
		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, err
		}
		return values, nil
	}
	if err := jsonutil.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// stringValue returns values[key]. Absent and null are "".
func stringValue(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T", key, raw)
	}
	return strings.TrimSpace(s), nil
}
