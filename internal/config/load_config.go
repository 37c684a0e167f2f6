package config

import (
	"os"
	"path/filepath"
	"strings"

	"dreamcpp/internal/logger"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvSettingsPath = "DREAMCPP_SETTINGS"
	EnvIndexURL     = "DREAMCPP_INDEX_URL"
)

// Defaults returns the settings used when no config.yaml exists.
func Defaults() Settings {
	return Settings{
		Index: IndexSettings{
			URL:        DefaultIndexURL,
			LocalPaths: []string{"~/.dreamcpp/index", "../index"},
			Cache: CacheSettings{
				Enabled: false,
				TTL:     "1h",
			},
		},
		StateFile: "~/.dreamcpp/state.json",
	}
}

// DefaultSettingsPath returns the settings file location: $DREAMCPP_SETTINGS if set,
// otherwise ~/.dreamcpp/config.yaml.
func DefaultSettingsPath() string {
	if p := os.Getenv(EnvSettingsPath); p != "" {
		return p
	}
	return ExpandHome("~/.dreamcpp/config.yaml")
}

// LoadSettings reads the YAML settings file at path on top of Defaults().
// A missing file is not an error; an unreadable or malformed one is.
// Environment overrides are applied last and every path is home-expanded.
func LoadSettings(path string) (Settings, error) {
	settings := Defaults()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Unmarshal over the defaults so absent keys keep their default value
		if err := yaml.Unmarshal(raw, &settings); err != nil {
			return Settings{}, eris.Wrapf(err, "failed to parse settings file %s", path)
		}
		logger.Debug("[DEBUG] Loaded settings from %s\n", path)
	case os.IsNotExist(err):
		logger.Debug("[DEBUG] No settings file at %s, using defaults\n", path)
	default:
		return Settings{}, eris.Wrapf(err, "failed to read settings file %s", path)
	}

	if url := os.Getenv(EnvIndexURL); url != "" {
		logger.Debug("[DEBUG] Index URL overridden by %s: %s\n", EnvIndexURL, url)
		settings.Index.URL = url
	}
	if settings.Index.URL == "" {
		settings.Index.URL = DefaultIndexURL
	}

	for i, p := range settings.Index.LocalPaths {
		settings.Index.LocalPaths[i] = ExpandHome(p)
	}
	settings.StateFile = ExpandHome(settings.StateFile)

	return settings, nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
// Paths are returned unchanged when the home directory cannot be determined.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
