// Package config loads decomment.toml and merges it with command line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// FileName is the config file looked up from the scanned root upwards.
const FileName = "decomment.toml"

// DefaultExtensions is the allow-list used when nothing else is configured.
var DefaultExtensions = []string{".swift"}

// Config is the effective configuration of a run.
type Config struct {
	Path string     `toml:"-"` // file the config came from, empty for defaults
	Scan ScanConfig `toml:"scan"`
	Run  RunConfig  `toml:"run"`
}

// ScanConfig selects the files to process.
type ScanConfig struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
}

// RunConfig controls execution.
type RunConfig struct {
	Jobs  int64 `toml:"jobs"`
	Cache bool  `toml:"cache"`
}

// Overrides are values given on the command line; zero values mean "not set".
type Overrides struct {
	Extensions []string
	Exclude    []string
	Jobs       *int
	Cache      *bool
}

// Default returns the configuration used without a decomment.toml.
func Default() Config {
	return Config{
		Scan: ScanConfig{Extensions: append([]string(nil), DefaultExtensions...)},
	}
}

// Find walks from startDir towards the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses and validates the config file at path. Keys that are absent keep
// their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("scan", "extensions") && len(cfg.Scan.Extensions) == 0 {
		return Config{}, fmt.Errorf("%s: [scan].extensions must not be empty", path)
	}
	if _, err := safecast.Conv[uint](cfg.Run.Jobs); err != nil {
		return Config{}, fmt.Errorf("%s: [run].jobs must not be negative", path)
	}
	cfg.Path = path
	if err := cfg.normalize(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve returns the config for a run rooted at startDir: the explicit file
// when explicitPath is set, otherwise the nearest decomment.toml, otherwise defaults.
func Resolve(startDir, explicitPath string) (Config, error) {
	if explicitPath != "" {
		return Load(explicitPath)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Apply merges command line overrides into cfg.
func (cfg *Config) Apply(o Overrides) error {
	if len(o.Extensions) > 0 {
		cfg.Scan.Extensions = append([]string(nil), o.Extensions...)
	}
	cfg.Scan.Exclude = append(cfg.Scan.Exclude, o.Exclude...)
	if o.Jobs != nil {
		if *o.Jobs < 0 {
			return fmt.Errorf("--jobs must not be negative")
		}
		cfg.Run.Jobs = int64(*o.Jobs)
	}
	if o.Cache != nil {
		cfg.Run.Cache = *o.Cache
	}
	return cfg.normalize()
}

// JobCount returns the worker limit; 0 means "use GOMAXPROCS".
func (cfg *Config) JobCount() int {
	jobs, err := safecast.Conv[int](cfg.Run.Jobs)
	if err != nil {
		return 0
	}
	return jobs
}

func (cfg *Config) normalize() error {
	exts := make([]string, 0, len(cfg.Scan.Extensions))
	seen := make(map[string]struct{}, len(cfg.Scan.Extensions))
	for _, ext := range cfg.Scan.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("empty extension in allow-list")
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = append(exts, DefaultExtensions...)
	}
	cfg.Scan.Extensions = exts

	for _, pattern := range cfg.Scan.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return nil
}
