// Package config loads devsynth settings from defaults, a TOML file, the
// environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces environment overrides, e.g. DEVSYNTH_GENERATE_NUM_TASKS.
const EnvPrefix = "DEVSYNTH_"

// FileName is the config file looked up in the working and home directories.
const FileName = "devsynth.toml"

type Config struct {
	Generate  GenerateConfig  `koanf:"generate"`
	Output    OutputConfig    `koanf:"output"`
	Templates TemplatesConfig `koanf:"templates"`
	Manifest  ManifestConfig  `koanf:"manifest"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Log       LogConfig       `koanf:"log"`
}

type GenerateConfig struct {
	NumTasks int `koanf:"num_tasks"`
	NumQA    int `koanf:"num_qa"`
	// Seed 0 picks a random seed per run.
	Seed    uint64 `koanf:"seed"`
	Profile string `koanf:"profile"`
	Workers int    `koanf:"workers"`
}

type OutputConfig struct {
	Dir string `koanf:"dir"`
}

type TemplatesConfig struct {
	// File replaces the builtin registry when set.
	File string `koanf:"file"`
}

type ManifestConfig struct {
	// DB is the SQLite run manifest path; empty disables the manifest.
	DB string `koanf:"db"`
}

type MetricsConfig struct {
	// File receives a Prometheus text exposition after each run when set.
	File string `koanf:"file"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Defaults are the lowest-precedence layer.
func Defaults() map[string]any {
	return map[string]any{
		"generate.num_tasks": 2000,
		"generate.num_qa":    2000,
		"generate.seed":      0,
		"generate.profile":   "standard",
		"generate.workers":   4,
		"output.dir":         filepath.Join("data", "dataset"),
		"templates.file":     "",
		"manifest.db":        "",
		"metrics.file":       "",
		"log.level":          "info",
		"log.format":         "auto",
	}
}

// LoadOptions selects the file layer and the flag overrides.
type LoadOptions struct {
	// Path is an explicit config file; it must exist. When empty the first
	// of ./devsynth.toml and $HOME/.devsynth.toml that exists is used.
	Path string
	// Overrides are dotted keys set from changed command-line flags.
	Overrides map[string]any
}

// Load builds the layered configuration and validates it.
func Load(opts LoadOptions) (*Config, string, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, "", fmt.Errorf("loading defaults: %w", err)
	}

	source := ""
	if opts.Path != "" {
		if err := k.Load(file.Provider(opts.Path), toml.Parser()); err != nil {
			return nil, "", fmt.Errorf("loading config %s: %w", opts.Path, err)
		}
		source = opts.Path
	} else {
		for _, path := range defaultPaths() {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, "", fmt.Errorf("loading config %s: %w", path, err)
			}
			source = path
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, "", fmt.Errorf("loading environment: %w", err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, "", fmt.Errorf("loading flag overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, "", fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, "", err
	}
	return &cfg, source, nil
}

func defaultPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, "."+FileName))
	}
	return paths
}

// envKey maps DEVSYNTH_GENERATE_NUM_TASKS to generate.num_tasks: the first
// underscore after the prefix separates the section from the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

var (
	validProfiles   = map[string]bool{"standard": true, "compact": true}
	validLogLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true, "disabled": true}
	validLogFormats = map[string]bool{"auto": true, "console": true, "json": true}
)

// Validate reports every invalid setting at once.
func Validate(cfg *Config) error {
	var errs []error
	if cfg.Generate.NumTasks < 0 {
		errs = append(errs, fmt.Errorf("generate.num_tasks must be >= 0, got %d", cfg.Generate.NumTasks))
	}
	if cfg.Generate.NumQA < 0 {
		errs = append(errs, fmt.Errorf("generate.num_qa must be >= 0, got %d", cfg.Generate.NumQA))
	}
	if cfg.Generate.Workers < 1 {
		errs = append(errs, fmt.Errorf("generate.workers must be >= 1, got %d", cfg.Generate.Workers))
	}
	if !validProfiles[cfg.Generate.Profile] {
		errs = append(errs, fmt.Errorf("generate.profile %q is not one of compact, standard", cfg.Generate.Profile))
	}
	if strings.TrimSpace(cfg.Output.Dir) == "" {
		errs = append(errs, errors.New("output.dir is required"))
	}
	if !validLogLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level %q is not a known level", cfg.Log.Level))
	}
	if !validLogFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Errorf("log.format %q is not one of auto, console, json", cfg.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

const sampleConfig = `# devsynth configuration

[generate]
num_tasks = 2000
num_qa = 2000
# 0 picks a random seed; the chosen seed is logged and stored in the manifest.
seed = 0
profile = "standard"
workers = 4

[output]
dir = "data/dataset"

[templates]
# file = "templates.yaml"

[manifest]
# db = ".devsynth/manifest.db"

[metrics]
# file = "devsynth.prom"

[log]
level = "info"
format = "auto"
`

// InitConfig writes a commented sample config to path. It refuses to
// overwrite an existing file.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists at %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
