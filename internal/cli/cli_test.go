package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDirUsesXDGCacheHome(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)

	c.Config.CacheDir = "/tmp/custom-arbor-cache"
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/custom-arbor-cache" {
		t.Errorf("cacheDir() = %q, want the config override", dir)
	}

	c.Config.CacheDir = "/tmp/bad\x00dir"
	if _, err := c.cacheDir(); err == nil {
		t.Error("expected validation error for cache dir with a null byte")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := LoadConfig()
	if cfg.DefaultVersion == "" {
		t.Error("default version empty")
	}
	if cfg.SourceURL == "" {
		t.Error("source url empty")
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := `
default_version = "3_24"
fallback_version = "3_23"
min_life = 3000
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig()
	if cfg.DefaultVersion != "3_24" {
		t.Errorf("DefaultVersion = %q, want 3_24", cfg.DefaultVersion)
	}
	if cfg.FallbackVersion != "3_23" {
		t.Errorf("FallbackVersion = %q, want 3_23", cfg.FallbackVersion)
	}
	if cfg.MinLife != 3000 {
		t.Errorf("MinLife = %v, want 3000", cfg.MinLife)
	}
	if cfg.SourceURL == "" {
		t.Error("SourceURL should keep its default when absent from the file")
	}
}

func TestLoadConfigIgnoresMalformedFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [ valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfig()
	if cfg.DefaultVersion == "" {
		t.Error("malformed config should fall back to defaults")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	for _, name := range []string{"analyze", "nearby", "optimize", "export", "cache"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseProtected(t *testing.T) {
	set, err := parseProtected("1, 2,3")
	if err != nil {
		t.Fatal(err)
	}
	if len(set) != 3 || !set[2] {
		t.Errorf("parseProtected = %v", set)
	}

	if set, err := parseProtected("  "); err != nil || set != nil {
		t.Errorf("blank input should yield nil, got %v, %v", set, err)
	}

	if _, err := parseProtected("1,x"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}
