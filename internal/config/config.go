package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/vango-dev/homepage/internal/errors"
	"github.com/vango-dev/homepage/pkg/assets"
	"github.com/vango-dev/homepage/pkg/render"
	"github.com/vango-dev/homepage/pkg/server"
)

const (
	// ConfigFileName is the default configuration file name.
	ConfigFileName = "homepage.yaml"

	// DefaultAddress is the default listen address.
	DefaultAddress = ":8080"

	// DefaultMetricsPath is where metrics are served when enabled.
	DefaultMetricsPath = "/metrics"
)

// Asset sources.
const (
	SourceEmbed = "embed"
	SourceDir   = "dir"
	SourceS3    = "s3"
)

// Environments accepted in env / HOMEPAGE_ENV.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// Config is the complete homepage.yaml configuration.
type Config struct {
	// Env is "production" (default) or "development".
	Env string `yaml:"env"`

	Server  ServerConfig  `yaml:"server"`
	Render  RenderConfig  `yaml:"render"`
	Assets  AssetsConfig  `yaml:"assets"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Dev     DevConfig     `yaml:"dev"`

	// path is where the config was loaded from, empty for defaults.
	path string
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Address           string        `yaml:"address"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	IdleTimeout       time.Duration `yaml:"idleTimeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout"`
}

// RenderConfig configures HTML output.
type RenderConfig struct {
	Pretty bool   `yaml:"pretty"`
	Minify bool   `yaml:"minify"`
	Lang   string `yaml:"lang"`
}

// AssetsConfig selects where /pkg/ files come from.
type AssetsConfig struct {
	// Source is "embed" (default), "dir" or "s3".
	Source    string   `yaml:"source"`
	Dir       string   `yaml:"dir"`
	MinifyCSS bool     `yaml:"minifyCSS"`
	S3        S3Config `yaml:"s3"`
}

// S3Config configures the S3 asset source.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID"`
	SecretAccessKey string `yaml:"secretAccessKey"`
}

// SessionConfig configures live sessions.
type SessionConfig struct {
	EventQueueSize    int           `yaml:"eventQueueSize"`
	ReadTimeout       time.Duration `yaml:"readTimeout"`
	WriteTimeout      time.Duration `yaml:"writeTimeout"`
	HeartbeatInterval time.Duration `yaml:"heartbeatInterval"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Format string `yaml:"format"` // "text" | "json"
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DevConfig configures development helpers.
type DevConfig struct {
	// WatchCSS reloads the stylesheet in open tabs when its file changes.
	// Requires assets.source "dir".
	WatchCSS bool `yaml:"watchCSS"`
}

// New returns a Config with all defaults applied.
func New() *Config {
	cfg := &Config{}
	cfg.Defaults()
	return cfg
}

// Load reads path, applies defaults and environment overrides, and
// validates the result. A missing file is not an error.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := New()
		cfg.ApplyEnv(lookup)
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, apperrors.New("E003").WithDetail(path).Wrap(err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, apperrors.New("E003").WithDetail(path).Wrap(err)
	}
	cfg.path = path
	cfg.ApplyEnv(lookup)
	return cfg, cfg.Validate()
}

// FromReader decodes YAML from r, applies defaults and validates.
// Environment overrides are not applied.
func FromReader(r io.Reader) (*Config, error) {
	cfg, err := decode(r)
	if err != nil {
		return nil, apperrors.New("E003").Wrap(err)
	}
	return cfg, cfg.Validate()
}

func decode(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.Defaults()
	return &cfg, nil
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// Defaults fills unset fields.
func (c *Config) Defaults() {
	if c.Env == "" {
		c.Env = EnvProduction
	}
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}
	if c.Render.Lang == "" {
		c.Render.Lang = "ja"
	}
	if c.Assets.Source == "" {
		c.Assets.Source = SourceEmbed
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
}

// ApplyEnv applies HOMEPAGE_ADDR, HOMEPAGE_LOG_LEVEL and HOMEPAGE_ENV.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("HOMEPAGE_ADDR"); ok && v != "" {
		c.Server.Address = v
	}
	if v, ok := lookup("HOMEPAGE_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup("HOMEPAGE_ENV"); ok && v != "" {
		c.Env = strings.ToLower(v)
	}
}

// IsDev reports whether the development environment is selected.
func (c *Config) IsDev() bool {
	return c.Env == EnvDevelopment
}

// Validate checks the configuration and returns an E003 error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if c.Env != EnvProduction && c.Env != EnvDevelopment {
		add("env must be %q or %q, got %q", EnvProduction, EnvDevelopment, c.Env)
	}
	if c.Server.Address == "" {
		add("server.address must be set")
	}
	for name, d := range map[string]time.Duration{
		"server.readHeaderTimeout":  c.Server.ReadHeaderTimeout,
		"server.readTimeout":        c.Server.ReadTimeout,
		"server.writeTimeout":       c.Server.WriteTimeout,
		"server.idleTimeout":        c.Server.IdleTimeout,
		"server.shutdownTimeout":    c.Server.ShutdownTimeout,
		"session.readTimeout":       c.Session.ReadTimeout,
		"session.writeTimeout":      c.Session.WriteTimeout,
		"session.heartbeatInterval": c.Session.HeartbeatInterval,
	} {
		if d < 0 {
			add("%s must not be negative", name)
		}
	}
	if c.Session.EventQueueSize < 0 {
		add("session.eventQueueSize must not be negative")
	}
	if hb, rt := c.Session.HeartbeatInterval, c.Session.ReadTimeout; hb > 0 && rt > 0 && hb >= rt {
		add("session.heartbeatInterval must be shorter than session.readTimeout")
	}

	switch c.Assets.Source {
	case SourceEmbed:
	case SourceDir:
		if c.Assets.Dir == "" {
			add("assets.dir must be set when assets.source is %q", SourceDir)
		}
	case SourceS3:
		if c.Assets.S3.Bucket == "" || c.Assets.S3.Region == "" {
			add("assets.s3.bucket and assets.s3.region must be set when assets.source is %q", SourceS3)
		}
		if (c.Assets.S3.AccessKeyID == "") != (c.Assets.S3.SecretAccessKey == "") {
			add("assets.s3.accessKeyID and assets.s3.secretAccessKey must be set together")
		}
	default:
		add("assets.source must be one of embed, dir, s3; got %q", c.Assets.Source)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		add("log.level must be debug, info, warn or error; got %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		add("log.format must be text or json; got %q", c.Log.Format)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		add("metrics.path must start with /")
	}
	if c.Dev.WatchCSS && c.Assets.Source != SourceDir {
		add("dev.watchCSS requires assets.source %q", SourceDir)
	}

	if len(errs) == 0 {
		return nil
	}
	sort.Strings(errs)
	return apperrors.New("E003").WithDetail(strings.Join(errs, "; "))
}

// ServerConfig converts the file configuration into the server's.
func (c *Config) ServerConfig(logger *slog.Logger) *server.ServerConfig {
	sc := server.DefaultServerConfig()
	sc.Address = c.Server.Address
	if c.Server.ReadHeaderTimeout > 0 {
		sc.ReadHeaderTimeout = c.Server.ReadHeaderTimeout
	}
	if c.Server.ReadTimeout > 0 {
		sc.ReadTimeout = c.Server.ReadTimeout
	}
	if c.Server.WriteTimeout > 0 {
		sc.WriteTimeout = c.Server.WriteTimeout
	}
	if c.Server.IdleTimeout > 0 {
		sc.IdleTimeout = c.Server.IdleTimeout
	}
	sc.ShutdownTimeout = c.Server.ShutdownTimeout

	sc.SessionConfig = &server.SessionConfig{
		ReadTimeout:       c.Session.ReadTimeout,
		WriteTimeout:      c.Session.WriteTimeout,
		HeartbeatInterval: c.Session.HeartbeatInterval,
		MaxEventQueue:     c.Session.EventQueueSize,
	}
	sc.Render = render.RendererConfig{Pretty: c.Render.Pretty, Minify: c.Render.Minify}
	sc.Lang = c.Render.Lang
	sc.DevMode = c.IsDev()
	sc.Logger = logger
	return sc
}

// AssetStore opens the configured asset source.
func (c *Config) AssetStore() (assets.Store, error) {
	switch c.Assets.Source {
	case SourceDir:
		return assets.NewDirStore(c.Assets.Dir), nil
	case SourceS3:
		return assets.NewS3Store(assets.S3Config{
			Bucket:          c.Assets.S3.Bucket,
			Region:          c.Assets.S3.Region,
			Prefix:          c.Assets.S3.Prefix,
			Endpoint:        c.Assets.S3.Endpoint,
			AccessKeyID:     c.Assets.S3.AccessKeyID,
			SecretAccessKey: c.Assets.S3.SecretAccessKey,
		})
	default:
		return assets.NewEmbedStore(), nil
	}
}
