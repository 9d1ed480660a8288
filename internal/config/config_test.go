package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexfikl/uvt-scholarly/internal/enrich"
	"github.com/alexfikl/uvt-scholarly/internal/uefiscdi"
)

func withConfigFile(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	if content == "" {
		return
	}
	if err := os.MkdirAll(filepath.Join(dir, GlobalConfigDir), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, GlobalConfigDir, GlobalConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadGlobalConfig_Missing(t *testing.T) {
	withConfigFile(t, "")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.CacheDir != "" || cfg.Scoring != nil {
		t.Errorf("missing file should load empty config, got %+v", cfg)
	}
}

func TestLoadGlobalConfig(t *testing.T) {
	withConfigFile(t, `
cache_dir: /tmp/uvts-cache
mailto: someone@example.com
scoring:
  kind: ris
  policy: uniform
  type_weights:
    article: 1
    review: 0.5
`)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.CacheDir != "/tmp/uvts-cache" {
		t.Errorf("CacheDir = %q", cfg.CacheDir)
	}
	if cfg.MailTo != "someone@example.com" {
		t.Errorf("MailTo = %q", cfg.MailTo)
	}

	rules := ScoringRules()
	if rules.Kind != uefiscdi.ScoreRIS || rules.Policy != enrich.PolicyUniform {
		t.Errorf("ScoringRules() = %+v", rules)
	}
	if rules.TypeWeights["review"] != 0.5 {
		t.Errorf("TypeWeights = %v", rules.TypeWeights)
	}
}

func TestLoadGlobalConfig_BadScoring(t *testing.T) {
	withConfigFile(t, "scoring:\n  kind: h-index\n")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("invalid scoring config should fail to load")
	}
}

func TestCacheDir(t *testing.T) {
	withConfigFile(t, "")
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	if got := CacheDir(); got != filepath.Join("/tmp/xdg-cache", GlobalConfigDir) {
		t.Errorf("CacheDir() = %q", got)
	}
	if got := RegistryDBPath(); filepath.Base(got) != "uefiscdi.sqlite" {
		t.Errorf("RegistryDBPath() = %q", got)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := ExpandTilde("~/cache"); got != filepath.Join(home, "cache") {
		t.Errorf("ExpandTilde(~/cache) = %q", got)
	}
	if got := ExpandTilde("/absolute/path"); got != "/absolute/path" {
		t.Errorf("ExpandTilde(/absolute/path) = %q", got)
	}
}
