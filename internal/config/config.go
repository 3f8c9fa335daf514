// Package config loads the analyzer's configuration with the same
// layered-koanf pattern this codebase's pkg/config uses: defaults, then
// an optional YAML file, then environment variables, each overriding
// the last.
package config

// Config holds every option SPEC_FULL.md recognises. The core (§6)
// limits itself to NetworkName and MaxLoadIterations; Log and the I/O
// directories are the ambient additions a full CLI needs to run.
type Config struct {
	NetworkName       string `koanf:"network_name"`
	MaxLoadIterations int    `koanf:"max_load_iterations"`

	InputDir  string `koanf:"input_dir"`
	OutputDir string `koanf:"output_dir"`

	Log LogConfig `koanf:"log"`
}

// LogConfig is the ambient logging configuration, see internal/applog.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Output string `koanf:"output"`
}

// Defaults returns the baseline configuration, the first tier the
// Loader merges over.
func Defaults() Config {
	return Config{
		NetworkName:       "default",
		MaxLoadIterations: 0, // 0 means "default to edge count", per spec §6
		InputDir:          "./data",
		OutputDir:         "./reports",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
