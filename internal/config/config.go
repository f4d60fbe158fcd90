package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name in a project directory.
const FileName = "cfonb.yaml"

// Config represents the top-level cfonb.yaml configuration.
type Config struct {
	Parse  ParseConfig  `yaml:"parse"`
	Import ImportConfig `yaml:"import"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
	Output OutputConfig `yaml:"output"`
}

// ParseConfig controls field validation.
type ParseConfig struct {
	Strict bool   `yaml:"strict"`
	Format string `yaml:"format"` // cfonb120, cfonb240 or auto
}

// ImportConfig locates the files picked up by `cfonb import`.
type ImportConfig struct {
	Dir          string   `yaml:"dir"`
	ProcessedDir string   `yaml:"processed_dir"`
	Extensions   []string `yaml:"extensions,omitempty"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// OutputConfig selects the default encoding of `cfonb parse`.
type OutputConfig struct {
	Format string `yaml:"format"` // json, yaml, msgpack or csv
}

// Load reads a cfonb.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault reads path, falling back to Default when it does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Parse: ParseConfig{
			Strict: true,
			Format: "auto",
		},
		Import: ImportConfig{
			Dir:          "import",
			ProcessedDir: "import/processed",
			Extensions:   []string{".120", ".240", ".cfonb", ".txt"},
		},
		Store: StoreConfig{
			Path: "cfonb.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// ApplyEnv overlays CFONB_* environment variables, reading envFile first
// when it exists. Variables already set in the environment win over the file.
func (c *Config) ApplyEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if v, ok := os.LookupEnv("CFONB_STRICT"); ok {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing CFONB_STRICT %q: %w", v, err)
		}
		c.Parse.Strict = strict
	}
	if v, ok := os.LookupEnv("CFONB_FORMAT"); ok {
		c.Parse.Format = v
	}
	if v, ok := os.LookupEnv("CFONB_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("CFONB_DB_PATH"); ok {
		c.Store.Path = v
	}
	return nil
}
