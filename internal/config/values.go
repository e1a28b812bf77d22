package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// ToMap converts the config into a generic nested map so the flatten
// helpers can walk it.
func ToMap(cfg *Config) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ListValues returns every configuration value keyed by its dot-separated
// path, suitable for display.
func ListValues(cfg *Config) (map[string]any, error) {
	m, err := ToMap(cfg)
	if err != nil {
		return nil, err
	}
	return Flatten(m), nil
}

// GetValue returns the value at the given dot-separated key in the config
// file at path. The file is created with defaults if it does not exist.
// Keys not present in the file are unknown, even if a later version of the
// config struct would accept them.
func GetValue(path, key string) (any, error) {
	if _, err := Load(path); err != nil {
		return nil, err
	}
	m, err := readRaw(path)
	if err != nil {
		return nil, err
	}
	flat := Flatten(m)
	val, ok := flat[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key: %s", key)
	}
	return val, nil
}

// SetValue sets the dot-separated key in the config file at path to the
// given value and writes the file back. The raw string is coerced: lists
// split on commas, everything else parses as JSON scalar first and falls
// back to a plain string. The file operates as a raw map, so keys the
// current config struct does not know about survive the round trip.
func SetValue(path, key, raw string) error {
	m, err := readRaw(path)
	if err != nil {
		return err
	}
	flat := Flatten(m)
	flat[key] = coerce(raw, flat[key])
	return saveRaw(path, Unflatten(flat))
}

// readRaw reads the config file at path into a generic map without going
// through the Config struct, so unknown keys are preserved.
func readRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m := make(map[string]any)
	if err := unmarshalByExt(path, data, &m); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return m, nil
}

// saveRaw writes a generic map back to path through a temp file and rename,
// honoring the path's extension.
func saveRaw(path string, m map[string]any) error {
	data, err := marshalByExt(path, m)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// coerce converts a raw string to a config value. A current list value
// means comma-split; otherwise JSON scalars (numbers, booleans) parse as
// themselves and anything else stays a string.
func coerce(raw string, current any) any {
	if _, ok := current.([]any); ok {
		parts := strings.Split(raw, ",")
		list := make([]any, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		return list
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	switch v.(type) {
	case map[string]any, []any:
		return raw
	}
	return v
}
