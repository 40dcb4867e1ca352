package explorer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds user preferences. Nothing here is written by the shell.
type Config struct {
	// From config file (serialized)
	StartDir    string `json:"start_dir,omitempty"`
	HistoryFile string `json:"history_file,omitempty"`
	Color       string `json:"color,omitempty"`
	TimeFormat  string `json:"time_format,omitempty"`

	// Source is the path of the loaded config file, empty if none.
	Source string `json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Color: ColorAuto,
	}
}

// configEnvVar names an explicit config file, which must exist.
const configEnvVar = "FSX_CONFIG"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/fsx/config.json if set, otherwise ~/.config/fsx/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "fsx", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "fsx", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. $FSX_CONFIG if set, else the global user config (optional)
// 3. NO_COLOR in env, which forces [ColorNever].
//
// On error the returned Config is [DefaultConfig] with NO_COLOR applied, so
// callers can warn and carry on.
func LoadConfig(env map[string]string) (Config, error) {
	cfg, err := loadConfig(env)
	if err != nil {
		cfg = DefaultConfig()
	}

	if _, ok := env["NO_COLOR"]; ok {
		cfg.Color = ColorNever
	}

	return cfg, err
}

func loadConfig(env map[string]string) (Config, error) {
	cfg := DefaultConfig()

	path, mustExist := env[configEnvVar], true
	if path == "" {
		path, mustExist = getGlobalConfigPath(env), false
	}

	if path == "" {
		return cfg, nil
	}

	fileCfg, loaded, err := loadConfigFile(path, mustExist)
	if err != nil {
		return Config{}, err
	}

	if !loaded {
		return cfg, nil
	}

	cfg = mergeConfig(cfg, fileCfg)
	cfg.Source = path

	cfg.HistoryFile = expandHome(cfg.HistoryFile, env)
	cfg.StartDir = expandHome(cfg.StartDir, env)

	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// Returns the config, whether file was loaded, and any error.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}

			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.StartDir != "" {
		base.StartDir = overlay.StartDir
	}

	if overlay.HistoryFile != "" {
		base.HistoryFile = overlay.HistoryFile
	}

	if overlay.Color != "" {
		base.Color = overlay.Color
	}

	if overlay.TimeFormat != "" {
		base.TimeFormat = overlay.TimeFormat
	}

	return base
}

func validateConfig(cfg Config) error {
	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorMode, cfg.Color)
	}

	if cfg.StartDir != "" && !filepath.IsAbs(cfg.StartDir) {
		return fmt.Errorf("%w: %s", ErrNotAbsolute, cfg.StartDir)
	}

	return nil
}

// expandHome replaces a leading "~/" with $HOME. Config values only; shell
// arguments are never expanded.
func expandHome(p string, env map[string]string) string {
	home := env["HOME"]
	if home == "" {
		return p
	}

	if p == "~" {
		return home
	}

	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(home, rest)
	}

	return p
}
