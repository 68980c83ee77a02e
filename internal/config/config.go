package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"bzl/internal/paths"
)

// DefaultTTLMinutes is the cache TTL applied when no rc file sets one
// (two weeks).
const DefaultTTLMinutes = 20160

// Config carries the persisted defaults bzl reads from rc files. Flags
// override any of these at invocation time.
type Config struct {
	SSH             string
	SSHDir          string
	Scope           string
	CacheTTLMinutes int
	Kinds           []string
}

// fileConfig mirrors the on-disk rc schema. Pointer fields distinguish
// "unset" from zero values so later files only override what they set.
type fileConfig struct {
	SSH      *string  `yaml:"ssh"`
	SSHDir   *string  `yaml:"ssh_dir"`
	Scope    *string  `yaml:"scope"`
	CacheTTL *int     `yaml:"cache_ttl"`
	Kinds    []string `yaml:"kinds"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Scope:           "//...",
		CacheTTLMinutes: DefaultTTLMinutes,
		Kinds:           []string{"genrule"},
	}
}

// Load reads the rc files in precedence order (home first, workspace
// last) and merges them over the defaults. Missing files are not errors;
// a malformed file is.
func Load(ap paths.AppPaths) (Config, error) {
	cfg := Default()
	for _, path := range ap.RCFiles() {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read rc file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(contents, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.SSH != nil {
		cfg.SSH = *fc.SSH
	}
	if fc.SSHDir != nil {
		cfg.SSHDir = *fc.SSHDir
	}
	if fc.Scope != nil {
		cfg.Scope = *fc.Scope
	}
	if fc.CacheTTL != nil {
		cfg.CacheTTLMinutes = *fc.CacheTTL
	}
	if kinds := cleanKinds(fc.Kinds); len(kinds) > 0 {
		cfg.Kinds = kinds
	}
	return nil
}

// SaveKinds persists the selected rule kinds to the nearest rc file,
// preserving any other fields the file already holds.
func SaveKinds(ap paths.AppPaths, kinds []string) error {
	path := ap.NearestRC()

	doc := map[string]any{}
	if contents, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(contents, &doc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	sorted := append([]string(nil), cleanKinds(kinds)...)
	sort.Strings(sorted)
	doc["kinds"] = sorted

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode rc file: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write rc file: %w", err)
	}
	return nil
}

func cleanKinds(kinds []string) []string {
	var out []string
	for _, k := range kinds {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
