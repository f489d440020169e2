package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Database drivers understood by OpenDatabase.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// AppConfig holds environment driven configuration values.
// Secrets have no defaults in code and come from config files or the environment.
type AppConfig struct {
	// Database
	DBDriver    string
	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	// Redis record cache; empty RedisHost disables it
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string
	CacheTTLSec   int
	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

// fileConfig mirrors the grouped layout of config/config.yaml. JSON files use
// the same keys since yaml.v3 reads JSON documents as well.
type fileConfig struct {
	Database struct {
		Driver      string `yaml:"Driver"`
		DatabaseURI string `yaml:"DatabaseURI"`
		DBHost      string `yaml:"DBHost"`
		DBPort      string `yaml:"DBPort"`
		DBUser      string `yaml:"DBUser"`
		DBPassword  string `yaml:"DBPassword"`
		DBName      string `yaml:"DBName"`
	} `yaml:"database"`
	Redis struct {
		RedisHost     string `yaml:"RedisHost"`
		RedisPort     int    `yaml:"RedisPort"`
		RedisDB       int    `yaml:"RedisDB"`
		RedisPassword string `yaml:"RedisPassword"`
		CacheTTLSec   int    `yaml:"CacheTTLSec"`
	} `yaml:"redis"`
	Log struct {
		Level      string `yaml:"Level"`
		Path       string `yaml:"Path"`
		MaxSizeMB  int    `yaml:"MaxSizeMB"`
		MaxBackups int    `yaml:"MaxBackups"`
		MaxAgeDays int    `yaml:"MaxAgeDays"`
		Compress   bool   `yaml:"Compress"`
	} `yaml:"log"`
}

// DefaultPaths are tried in order by Load when no explicit path is given.
var DefaultPaths = []string{
	filepath.Join("config", "config.yaml"),
	filepath.Join("config", "config.json"),
}

// Load reads an optional .env file into the environment and then builds the
// configuration with LoadFrom. path may be empty to use DefaultPaths.
func Load(path string) (AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFrom(path)
}

// LoadFrom builds a configuration without caching it.
// Precedence: config file -> defaults -> environment variable overrides.
func LoadFrom(path string) (AppConfig, error) {
	var c AppConfig

	paths := DefaultPaths
	if path != "" {
		paths = []string{path}
	}
	for _, p := range paths {
		err := loadFileConfig(p, &c)
		if err == nil {
			break
		}
		if errors.Is(err, os.ErrNotExist) {
			if path != "" {
				return AppConfig{}, err
			}
			continue
		}
		return AppConfig{}, err
	}

	applyDefaults(&c)

	if err := applyEnvOverrides(&c); err != nil {
		return AppConfig{}, err
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.DatabaseURI == "" {
			c.DatabaseURI = "blogstore.db"
		}
	case DriverMySQL:
	default:
		return AppConfig{}, fmt.Errorf("unsupported database driver %q", c.DBDriver)
	}
	return c, nil
}

// loadFileConfig decodes path into out. Missing files return an error wrapping os.ErrNotExist.
func loadFileConfig(path string, out *AppConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	out.DBDriver = fc.Database.Driver
	out.DatabaseURI = fc.Database.DatabaseURI
	out.DBHost = fc.Database.DBHost
	out.DBPort = fc.Database.DBPort
	out.DBUser = fc.Database.DBUser
	out.DBPassword = fc.Database.DBPassword
	out.DBName = fc.Database.DBName

	out.RedisHost = fc.Redis.RedisHost
	out.RedisPort = fc.Redis.RedisPort
	out.RedisDB = fc.Redis.RedisDB
	out.RedisPassword = fc.Redis.RedisPassword
	out.CacheTTLSec = fc.Redis.CacheTTLSec

	out.LogLevel = fc.Log.Level
	out.LogPath = fc.Log.Path
	out.LogMaxSizeMB = fc.Log.MaxSizeMB
	out.LogMaxBackups = fc.Log.MaxBackups
	out.LogMaxAgeDays = fc.Log.MaxAgeDays
	out.LogCompress = fc.Log.Compress
	return nil
}

// applyDefaults sets sane defaults for zero-value fields.
func applyDefaults(c *AppConfig) {
	if c.DBDriver == "" {
		c.DBDriver = DriverSQLite
	}
	if c.DBHost == "" {
		c.DBHost = "127.0.0.1"
	}
	if c.DBPort == "" {
		c.DBPort = "3306"
	}
	if c.DBUser == "" {
		c.DBUser = "root"
	}
	if c.DBName == "" {
		c.DBName = "blogstore"
	}
	if c.RedisPort == 0 {
		c.RedisPort = 6379
	}
	if c.CacheTTLSec == 0 {
		c.CacheTTLSec = 3600
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogMaxSizeMB == 0 {
		c.LogMaxSizeMB = 100
	}
	if c.LogMaxBackups == 0 {
		c.LogMaxBackups = 3
	}
	if c.LogMaxAgeDays == 0 {
		c.LogMaxAgeDays = 7
	}
}

// applyEnvOverrides maps known environment variables onto config values when present.
func applyEnvOverrides(c *AppConfig) error {
	strs := map[string]*string{
		"DB_DRIVER":      &c.DBDriver,
		"DATABASE_URI":   &c.DatabaseURI,
		"DB_HOST":        &c.DBHost,
		"DB_PORT":        &c.DBPort,
		"DB_USER":        &c.DBUser,
		"DB_PASSWORD":    &c.DBPassword,
		"DB_NAME":        &c.DBName,
		"REDIS_HOST":     &c.RedisHost,
		"REDIS_PASSWORD": &c.RedisPassword,
		"LOG_LEVEL":      &c.LogLevel,
		"LOG_PATH":       &c.LogPath,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	ints := map[string]*int{
		"REDIS_PORT":       &c.RedisPort,
		"REDIS_DB":         &c.RedisDB,
		"CACHE_TTL_SEC":    &c.CacheTTLSec,
		"LOG_MAX_SIZE_MB":  &c.LogMaxSizeMB,
		"LOG_MAX_BACKUPS":  &c.LogMaxBackups,
		"LOG_MAX_AGE_DAYS": &c.LogMaxAgeDays,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer value %s=%s: %w", key, v, err)
		}
		*dst = i
	}

	if v := os.Getenv("LOG_COMPRESS"); v != "" {
		c.LogCompress = v == "true"
	}
	return nil
}

// MySQLDSN builds the MySQL DSN, preferring DatabaseURI when set.
func (c AppConfig) MySQLDSN() string {
	if c.DatabaseURI != "" {
		return c.DatabaseURI
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
