// Package config loads topicmap settings from a TOML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the config file, TOPICMAP_*
// environment variables. Command-line flags are applied on top by the CLI.
//
// Example file:
//
//	source = "topics.json"
//	watch = true
//
//	[server]
//	addr = ":8080"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/topicmap/pkg/errors"
)

// Cache backends.
const (
	CacheNone  = "none"
	CacheFile  = "file"
	CacheRedis = "redis"
)

const appName = "topicmap"

// Config is the full application configuration.
type Config struct {
	// Source names the tree: a path, an http(s) URL or mongodb://...#name.
	Source string `toml:"source"`
	// Watch reloads a file source when it changes.
	Watch bool `toml:"watch"`

	Server ServerConfig `toml:"server"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	LoadTimeout  Duration `toml:"load_timeout"`
}

// CacheConfig selects and configures the render cache.
type CacheConfig struct {
	Backend  string   `toml:"backend"`
	Dir      string   `toml:"dir"`
	RedisURL string   `toml:"redis_url"`
	Prefix   string   `toml:"prefix"`
	TTL      Duration `toml:"ttl"`
}

// RenderConfig tunes page output.
type RenderConfig struct {
	Title         string `toml:"title"`
	LinkBase      string `toml:"link_base"`
	LeftAlignText bool   `toml:"left_align_text"`
	NoClamp       bool   `toml:"no_clamp"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  Duration{10 * time.Second},
			WriteTimeout: Duration{30 * time.Second},
			LoadTimeout:  Duration{15 * time.Second},
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			Dir:     DefaultCacheDir(),
		},
		Render: RenderConfig{
			Title:    "Topic map",
			LinkBase: "/topic",
		},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path tries DefaultPath and silently skips it when absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		switch {
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		case err != nil:
			return Config{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse config %s", path)
		default:
			if undec := md.Undecoded(); len(undec) > 0 {
				return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q in %s", undec[0].String(), path)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the cross-field constraints.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheNone, CacheFile:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache backend redis requires redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want none, file or redis)", c.Cache.Backend)
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "server addr cannot be empty")
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"TOPICMAP_SOURCE":        &c.Source,
		"TOPICMAP_ADDR":          &c.Server.Addr,
		"TOPICMAP_CACHE_BACKEND": &c.Cache.Backend,
		"TOPICMAP_CACHE_DIR":     &c.Cache.Dir,
		"TOPICMAP_REDIS_URL":     &c.Cache.RedisURL,
		"TOPICMAP_LINK_BASE":     &c.Render.LinkBase,
	}
	for name, dst := range str {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("TOPICMAP_WATCH"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "TOPICMAP_WATCH")
		}
		c.Watch = b
	}
	return nil
}

// DefaultPath returns ~/.config/topicmap/config.toml, honouring
// XDG_CONFIG_HOME. It returns "" when no home directory is known.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// DefaultCacheDir returns ~/.cache/topicmap, honouring XDG_CACHE_HOME.
func DefaultCacheDir() string {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}
