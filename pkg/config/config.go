package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
)

// AppName names the config and cache directories.
const AppName = "isnad"

// Store kinds.
const (
	StoreMemory   = "memory"
	StoreCSV      = "csv"
	StoreHTTP     = "http"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Cache kinds.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

var (
	storeKinds = []string{StoreMemory, StoreCSV, StoreHTTP, StoreSQLite, StorePostgres, StoreMongo}
	cacheKinds = []string{CacheFile, CacheRedis, CacheNone}
)

// Config is the complete isnad configuration.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
	Render RenderConfig `toml:"render"`
}

// StoreConfig selects the narrator and hadith backend.
type StoreConfig struct {
	Kind string `toml:"kind"`

	// Narrators and Hadiths are CSV file paths, or URLs for kind http.
	Narrators string `toml:"narrators"`
	Hadiths   string `toml:"hadiths"`

	// DSN is the database source for sqlite and postgres.
	DSN string `toml:"dsn"`

	MongoURI string `toml:"mongo_uri"`
	MongoDB  string `toml:"mongo_db"`
}

// CacheConfig selects the diagram cache.
type CacheConfig struct {
	Kind          string        `toml:"kind"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	Prefix        string        `toml:"prefix"`
	TTL           time.Duration `toml:"ttl"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
}

// RenderConfig holds diagram defaults.
type RenderConfig struct {
	Locale      string `toml:"locale"`
	PivotMarker string `toml:"pivot_marker"`
}

// Default returns a configuration backed by the built-in demo data.
func Default() Config {
	c := Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills every empty field with its default.
func (c *Config) SetDefaults() {
	if c.Store.Kind == "" {
		c.Store.Kind = StoreMemory
	}
	if c.Store.Kind == StoreSQLite && c.Store.DSN == "" {
		c.Store.DSN = "isnad.db"
	}
	if c.Store.MongoDB == "" {
		c.Store.MongoDB = AppName
	}

	if c.Cache.Kind == "" {
		c.Cache.Kind = CacheFile
	}
	if c.Cache.Kind == CacheFile && c.Cache.Dir == "" {
		if dir, err := CacheDir(); err == nil {
			c.Cache.Dir = dir
		}
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = AppName + ":"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 24 * time.Hour
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60 * time.Second
	}

	if c.Render.Locale == "" {
		c.Render.Locale = string(isnad.DefaultLocale)
	}
}

// Validate reports unknown kinds and missing backend parameters.
func (c *Config) Validate() error {
	if !slices.Contains(storeKinds, c.Store.Kind) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown store kind %q (must be one of: %s)",
			c.Store.Kind, strings.Join(storeKinds, ", "))
	}
	switch c.Store.Kind {
	case StoreCSV, StoreHTTP:
		if c.Store.Narrators == "" || c.Store.Hadiths == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store %s needs both narrators and hadiths", c.Store.Kind)
		}
		if c.Store.Kind == StoreHTTP && (!isURL(c.Store.Narrators) || !isURL(c.Store.Hadiths)) {
			return errors.New(errors.ErrCodeInvalidInput, "store http needs http(s) URLs")
		}
	case StoreSQLite, StorePostgres:
		if c.Store.DSN == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store %s needs a dsn", c.Store.Kind)
		}
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "store mongo needs mongo_uri")
		}
	}

	if !slices.Contains(cacheKinds, c.Cache.Kind) {
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache kind %q (must be one of: %s)",
			c.Cache.Kind, strings.Join(cacheKinds, ", "))
	}
	if c.Cache.Kind == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache redis needs redis_addr")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl cannot be negative")
	}

	if _, ok := isnad.ParseLocale(c.Render.Locale); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "unsupported locale %q", c.Render.Locale)
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// =============================================================================
// Loading
// =============================================================================

// Load reads the configuration. An empty path uses DefaultPath and
// tolerates a missing file; an explicit path must exist. A .env file in
// the working directory and the process environment are applied on top.
func Load(path string) (Config, error) {
	var c Config
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &c); err != nil {
			if !explicit && stderrors.Is(err, fs.ErrNotExist) {
				c = Config{}
			} else {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
			}
		}
	}

	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read .env")
	}
	if err := c.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Parse decodes TOML text without consulting the environment.
func Parse(data string) (Config, error) {
	var c Config
	if _, err := toml.Decode(data, &c); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	c.SetDefaults()
	return c, c.Validate()
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides fields from ISNAD_* variables.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	strs := map[string]*string{
		"ISNAD_STORE":          &c.Store.Kind,
		"ISNAD_DSN":            &c.Store.DSN,
		"ISNAD_NARRATORS_CSV":  &c.Store.Narrators,
		"ISNAD_HADITHS_CSV":    &c.Store.Hadiths,
		"ISNAD_MONGO_URI":      &c.Store.MongoURI,
		"ISNAD_MONGO_DB":       &c.Store.MongoDB,
		"ISNAD_CACHE":          &c.Cache.Kind,
		"ISNAD_CACHE_DIR":      &c.Cache.Dir,
		"ISNAD_REDIS_ADDR":     &c.Cache.RedisAddr,
		"ISNAD_REDIS_PASSWORD": &c.Cache.RedisPassword,
		"ISNAD_ADDR":           &c.Server.Addr,
		"ISNAD_LOCALE":         &c.Render.Locale,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	if v, ok := lookup("ISNAD_REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "ISNAD_REDIS_DB: %q is not a number", v)
		}
		c.Cache.RedisDB = n
	}
	if v, ok := lookup("ISNAD_CACHE_TTL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "ISNAD_CACHE_TTL: %v", err)
		}
		c.Cache.TTL = d
	}
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns $XDG_CONFIG_HOME/isnad/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/isnad/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
