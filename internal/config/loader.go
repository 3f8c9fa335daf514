package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Loader assembles a Config from defaults, an optional file, and
// environment variables, mirroring pkg/config.Loader's three-tier
// priority order.
type Loader struct {
	k          *koanf.Koanf
	configPath string
	envPrefix  string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigPath sets an explicit config file path (default
// "waternet.yaml"; "" disables the file tier). Load skips the file tier
// silently if no file exists at the path, whether explicit or default.
func WithConfigPath(path string) LoaderOption {
	return func(l *Loader) { l.configPath = path }
}

// WithEnvPrefix overrides the default WATERNET_ environment prefix.
func WithEnvPrefix(prefix string) LoaderOption {
	return func(l *Loader) { l.envPrefix = prefix }
}

// NewLoader returns a Loader with the given options applied.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		k:          koanf.New("."),
		configPath: "waternet.yaml",
		envPrefix:  "WATERNET_",
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load merges defaults, the config file (if present), and environment
// variables, in that order, and returns the resulting Config.
func (l *Loader) Load() (Config, error) {
	defaults := Defaults()
	defaultsMap := map[string]any{
		"network_name":        defaults.NetworkName,
		"max_load_iterations": defaults.MaxLoadIterations,
		"input_dir":           defaults.InputDir,
		"output_dir":          defaults.OutputDir,
		"log.level":           defaults.Log.Level,
		"log.format":          defaults.Log.Format,
		"log.output":          defaults.Log.Output,
	}
	if err := l.k.Load(confmap.Provider(defaultsMap, "."), nil); err != nil {
		return Config{}, fmt.Errorf("config: loading defaults: %w", err)
	}

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err == nil {
			if err := l.k.Load(file.Provider(l.configPath), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("config: loading file %s: %w", l.configPath, err)
			}
		}
	}

	if err := l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
		if rest, ok := strings.CutPrefix(s, "log_"); ok {
			return "log." + rest
		}
		return s
	}), nil); err != nil {
		return Config{}, fmt.Errorf("config: loading env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshalling: %w", err)
	}
	return cfg, nil
}
