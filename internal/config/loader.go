package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// configNames are tried in order inside each search directory.
var configNames = []string{"bowls.yaml", "bowls.yml", "bowls.toml"}

// Load loads the bowl configuration.
// Search order: customPath -> ~/.bowls/bowls.{yaml,toml} -> ./configs/bowls.{yaml,toml} -> embedded default.
// Files only need to name the fields they change; everything else keeps its
// default. Values are not normalized here, call Normalize.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(customPath, data)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".bowls"))
	}
	dirs = append(dirs, "configs")

	for _, dir := range dirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			if cfg, err := decode(path, data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultBowlsYAML, &cfg); err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	cfg.Source = "embedded"
	return cfg, nil
}

// decode parses data over the defaults, choosing TOML or YAML by extension.
func decode(path string, data []byte) (Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.Source = path
	return cfg, nil
}

// Encode writes cfg in the given format ("yaml" or "toml").
func Encode(w io.Writer, cfg Config, format string) error {
	switch strings.ToLower(format) {
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("config: failed to encode toml: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("config: failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("config: unknown format %q", format)
	}
}
