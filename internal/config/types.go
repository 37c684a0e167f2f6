package config

import "time"

// DefaultIndexURL is the remote dependency index consulted when no other URL is configured.
const DefaultIndexURL = "https://raw.githubusercontent.com/frinkifail/dreamcpp/refs/heads/main/index/dcpp%3Acore.toml"

// Settings is the top-level structure of the user-level config.yaml.
// It configures where dependencies are resolved from and where the tool keeps its state.
type Settings struct {
	Index     IndexSettings `yaml:"index"`
	StateFile string        `yaml:"state_file"` // JSON state file, holds the cached index snapshot
}

// IndexSettings describes the dependency index sources.
// - URL: remote index document fetched on every add/sync.
// - LocalPaths: local index directories searched before the remote index.
// - Cache: optional reuse of the last remote index snapshot.
type IndexSettings struct {
	URL        string        `yaml:"url"`
	LocalPaths []string      `yaml:"local_paths"`
	Cache      CacheSettings `yaml:"cache"`
}

// CacheSettings controls the remote index snapshot cache.
// The cache is disabled unless explicitly enabled, so every command re-fetches the index.
type CacheSettings struct {
	Enabled bool   `yaml:"enabled"`
	TTL     string `yaml:"ttl"` // Go duration string, e.g. "1h" or "30m"
}

// TTLDuration parses the configured TTL.
// An empty TTL means one hour; an unparsable TTL disables reuse by returning zero.
func (c CacheSettings) TTLDuration() time.Duration {
	if c.TTL == "" {
		return time.Hour
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d < 0 {
		return 0
	}
	return d
}
