package hanap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/poiesic/hanap/ai"
	"github.com/poiesic/hanap/search"
	"github.com/poiesic/hanap/storage"
	"gopkg.in/yaml.v3"
)

// DefaultDatabasePath is where the record store lives when no path is configured.
const DefaultDatabasePath = "./burials_db"

// Config is the file form of the engine settings.
//
//	database: ./burials_db
//	semantic: true
//	similarity_timeout: 2s
//	page_size: 20
//	ai:
//	  embedding_host: http://localhost:11434
//	  embedding_model: embeddinggemma
type Config struct {
	Database          string        `yaml:"database"`
	InMemory          bool          `yaml:"in_memory"`
	Semantic          bool          `yaml:"semantic"`
	SimilarityTimeout time.Duration `yaml:"similarity_timeout"`
	Workers           int           `yaml:"workers"`
	PageSize          int           `yaml:"page_size"`
	LogLevel          string        `yaml:"log_level"`
	AI                ai.Config     `yaml:"ai"`
}

// DefaultConfig returns keyword-only settings for an on-disk store.
func DefaultConfig() *Config {
	return &Config{
		Database:          DefaultDatabasePath,
		SimilarityTimeout: search.DefaultSimilarityTimeout,
		Workers:           search.DefaultWorkers,
		PageSize:          storage.DefaultPageSize,
		LogLevel:          "info",
		AI:                *ai.DefaultConfig(),
	}
}

// LoadConfig reads a YAML configuration file over the defaults. An empty
// path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings, normalizing the AI section when semantic
// ranking is enabled.
func (c *Config) Validate() error {
	if c.Database == "" && !c.InMemory {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}
	if c.PageSize < 0 || c.PageSize > storage.MaxPageSize {
		return fmt.Errorf("%w: page_size must be between 1 and %d", ErrInvalidConfig, storage.MaxPageSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.SimilarityTimeout < 0 {
		return fmt.Errorf("%w: similarity_timeout must be positive", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Semantic {
		if err := c.AI.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Level parses LogLevel. An empty level is info.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// EngineOptions converts the settings into options for NewEngine.
func (c *Config) EngineOptions() []EngineOption {
	opts := []EngineOption{
		WithInMemory(c.InMemory),
		WithPageSize(c.PageSize),
	}
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	if c.SimilarityTimeout > 0 {
		opts = append(opts, WithSimilarityTimeout(c.SimilarityTimeout))
	}
	if c.Semantic {
		aiConfig := c.AI
		opts = append(opts, WithAIConfig(&aiConfig))
	}
	return opts
}
