package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/topicmap/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
source = "topics.yaml"
watch = true

[server]
addr = ":9090"
load_timeout = "3s"

[cache]
backend = "none"

[render]
title = "Handbook"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != "topics.yaml" || !cfg.Watch {
		t.Errorf("source/watch = %q/%v", cfg.Source, cfg.Watch)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.LoadTimeout.Duration != 3*time.Second {
		t.Errorf("LoadTimeout = %v", cfg.Server.LoadTimeout)
	}
	if cfg.Server.ReadTimeout.Duration != 10*time.Second {
		t.Errorf("ReadTimeout default lost: %v", cfg.Server.ReadTimeout)
	}
	if cfg.Render.Title != "Handbook" || cfg.Render.LinkBase != "/topic" {
		t.Errorf("Render = %+v", cfg.Render)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"syntax", "source = ", errors.ErrCodeInvalidFormat},
		{"unknown key", "colour = \"red\"", errors.ErrCodeInvalidInput},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidInput},
		{"redis without url", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidInput},
		{"bad duration", "[server]\nload_timeout = \"soon\"", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TOPICMAP_ADDR", "127.0.0.1:1")
	t.Setenv("TOPICMAP_CACHE_BACKEND", "redis")
	t.Setenv("TOPICMAP_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("TOPICMAP_WATCH", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:1" || cfg.Cache.Backend != CacheRedis || !cfg.Watch {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Cache.RedisURL != "redis://cache:6379/1" {
		t.Errorf("RedisURL = %q", cfg.Cache.RedisURL)
	}
}

func TestEnvBadBool(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TOPICMAP_WATCH", "sometimes")
	if _, err := Load(""); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	if got := DefaultCacheDir(); got != filepath.Join(dir, "topicmap") {
		t.Errorf("DefaultCacheDir() = %q", got)
	}
}
