// Package config handles global configuration and cache locations.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexfikl/uvt-scholarly/internal/enrich"
)

// GlobalConfig represents configuration stored in ~/.config/uvts/config.yml.
type GlobalConfig struct {
	// CacheDir overrides the default cache location for downloaded score
	// lists and the registry database.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// Scoring configures candidate scoring; missing values fall back to
	// enrich.DefaultRules.
	Scoring *enrich.Rules `yaml:"scoring,omitempty"`

	// MailTo is included in the User-Agent of DOI resolution requests, as
	// the resolver operators ask of bulk clients.
	MailTo string `yaml:"mailto,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "uvts"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/uvts/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.CacheDir != "" {
		cfg.CacheDir = ExpandTilde(cfg.CacheDir)
	}
	if cfg.Scoring != nil {
		if err := cfg.Scoring.Validate(); err != nil {
			return nil, fmt.Errorf("parsing global config: %w", err)
		}
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// ScoringRules returns the configured scoring rules, or the defaults.
func ScoringRules() enrich.Rules {
	cfg, _ := LoadGlobalConfig()
	if cfg != nil && cfg.Scoring != nil {
		return *cfg.Scoring
	}
	return enrich.DefaultRules()
}

// MailTo returns the configured contact address for resolver requests.
func MailTo() string {
	cfg, _ := LoadGlobalConfig()
	if cfg == nil {
		return ""
	}
	return cfg.MailTo
}

// CacheDir returns the cache directory for downloaded score lists and the
// registry database. Respects the config override, then XDG_CACHE_HOME,
// then ~/.cache/uvts.
func CacheDir() string {
	cfg, _ := LoadGlobalConfig()
	if cfg != nil && cfg.CacheDir != "" {
		return cfg.CacheDir
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return GlobalConfigDir
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, GlobalConfigDir)
}

// RegistryDBPath returns the path of the cached registry database.
func RegistryDBPath() string {
	return filepath.Join(CacheDir(), "uefiscdi.sqlite")
}

// DownloadDir returns the directory score list downloads are cached in.
func DownloadDir() string {
	return filepath.Join(CacheDir(), "uefiscdi")
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
