// Package config loads settings from .env, an optional YAML file and the
// environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when RENTAL_CONFIG is not set and the file exists
const DefaultFile = "rental-records.yaml"

type Config struct {
	DataDir       string         `yaml:"data_dir"`
	BackupDir     string         `yaml:"backup_dir"`
	CreateMissing bool           `yaml:"create_missing"`
	Log           LogConfig      `yaml:"log"`
	Database      DatabaseConfig `yaml:"database"`
	S3            S3Config       `yaml:"s3"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	Prefix          string `yaml:"prefix"`
	AccessKeyID     string `yaml:"-"`
	SecretAccessKey string `yaml:"-"`
}

// Enabled reports whether backups can be uploaded
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Default returns the settings used when nothing is configured
func Default() *Config {
	return &Config{
		DataDir:       "data",
		BackupDir:     "backups",
		CreateMissing: true,
		Log:           LogConfig{Level: "info", Format: "text"},
		Database:      DatabaseConfig{Driver: "sqlite", URL: "rental-records.db"},
		S3:            S3Config{Region: "us-east-1"},
	}
}

// Load reads .env, then the YAML file named by RENTAL_CONFIG (or DefaultFile
// when present), then environment overrides
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	path := os.Getenv("RENTAL_CONFIG")
	required := path != ""
	if !required {
		path = DefaultFile
	}
	if err := cfg.loadFile(path, required); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnv("RENTAL_DATA_DIR", c.DataDir)
	c.BackupDir = getEnv("RENTAL_BACKUP_DIR", c.BackupDir)
	c.CreateMissing = getEnvBool("RENTAL_CREATE_MISSING", c.CreateMissing)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Database.Driver = getEnv("DATABASE_DRIVER", c.Database.Driver)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.S3.Bucket = getEnv("BACKUP_S3_BUCKET", c.S3.Bucket)
	c.S3.Region = getEnv("BACKUP_S3_REGION", c.S3.Region)
	c.S3.Endpoint = getEnv("BACKUP_S3_ENDPOINT", c.S3.Endpoint)
	c.S3.Prefix = getEnv("BACKUP_S3_PREFIX", c.S3.Prefix)
	c.S3.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	c.S3.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
}

// ValidateDataPath cleans path and creates the directory. A relative path
// must stay inside the working directory; an absolute path is taken as given.
func ValidateDataPath(path string) (string, error) {
	absPath, err := resolveDataPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(absPath, 0o755); err != nil {
		return "", fmt.Errorf("data path is not writable: %w", err)
	}
	return absPath, nil
}

// CheckDataPath applies the same rules as ValidateDataPath without creating
// anything. A directory that does not exist yet is accepted; a path naming a
// regular file is not.
func CheckDataPath(path string) (string, error) {
	absPath, err := resolveDataPath(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(absPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return absPath, nil
	case err != nil:
		return "", fmt.Errorf("invalid data path: %w", err)
	case !info.IsDir():
		return "", fmt.Errorf("data path %s is not a directory", path)
	}
	return absPath, nil
}

func resolveDataPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("data path is empty")
	}
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("invalid data path: %w", err)
	}

	if !filepath.IsAbs(cleanPath) {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		rel, err := filepath.Rel(wd, absPath)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("data path %s must be within working directory", path)
		}
	}
	return absPath, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
