package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"content-migrator/internal/consolidate"
	"content-migrator/internal/merge"
	"content-migrator/internal/similar"
	"content-migrator/internal/typeorder"
	"content-migrator/internal/uid"
)

// Config is the root of the configuration file.
type Config struct {
	Version   string          `yaml:"version"`
	UID       UIDConfig       `yaml:"uid"`
	TypeOrder TypeOrderConfig `yaml:"typeOrder"`
	Merge     MergeConfig     `yaml:"merge"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
}

// UIDConfig configures uid normalization.
type UIDConfig struct {
	Namespace          string        `yaml:"namespace"`
	RestrictedKeywords StringOrArray `yaml:"restrictedKeywords"`
	ReservedPatterns   StringOrArray `yaml:"reservedPatterns"`
	IdentifierKeys     StringOrArray `yaml:"identifierKeys"`
}

// TypeOrderConfig configures the classifier table of the type-order tracker.
type TypeOrderConfig struct {
	Classifiers []typeorder.Rule `yaml:"classifiers"`
}

// MergeConfig configures the tree merger.
type MergeConfig struct {
	MaxDepth            int     `yaml:"maxDepth"`
	SimilarityThreshold float64 `yaml:"similarityThreshold"` // negative disables near-duplicate uid warnings
}

// OutputConfig configures the schema writer and batch runs.
type OutputConfig struct {
	ChunkSize int `yaml:"chunkSize"` // models per chunk file, 0 writes one chunk
	Workers   int `yaml:"workers"`   // concurrent inputs in batch runs
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and parses a YAML configuration file. An empty path yields Default().
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in default values for optional settings.
func applyDefaults(cfg *Config) {
	if cfg.Version == "" {
		cfg.Version = "1"
	}

	if cfg.UID.Namespace == "" {
		cfg.UID.Namespace = uid.DefaultNamespace
	}

	if cfg.UID.RestrictedKeywords == nil {
		cfg.UID.RestrictedKeywords = slices.Clone(uid.DefaultRestrictedKeywords)
	}

	if cfg.UID.ReservedPatterns == nil {
		cfg.UID.ReservedPatterns = slices.Clone(uid.DefaultReservedPatterns)
	}

	if cfg.UID.IdentifierKeys == nil {
		cfg.UID.IdentifierKeys = slices.Clone(uid.DefaultIdentifierKeys)
	}

	if cfg.TypeOrder.Classifiers == nil {
		cfg.TypeOrder.Classifiers = slices.Clone(typeorder.DefaultRules)
	}

	if cfg.Merge.MaxDepth <= 0 {
		cfg.Merge.MaxDepth = merge.DefaultMaxDepth
	}

	if cfg.Merge.SimilarityThreshold == 0 {
		cfg.Merge.SimilarityThreshold = similar.DefaultThreshold
	}

	if cfg.Output.Workers <= 0 {
		cfg.Output.Workers = consolidate.DefaultBatchWorkers
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// validate checks settings that the builders below do not.
func validate(cfg *Config) error {
	if cfg.Version != "1" {
		return fmt.Errorf("unsupported config version %q", cfg.Version)
	}

	if cfg.Output.ChunkSize < 0 {
		return errors.New("output.chunkSize must not be negative")
	}

	if cfg.Merge.SimilarityThreshold > 1 {
		return fmt.Errorf("merge.similarityThreshold %v must not exceed 1", cfg.Merge.SimilarityThreshold)
	}

	if !slices.Contains(logLevels, cfg.Log.Level) {
		return fmt.Errorf("invalid log level %q: must be one of %v", cfg.Log.Level, logLevels)
	}

	if len(cfg.UID.IdentifierKeys) == 0 {
		return errors.New("uid.identifierKeys must not be empty")
	}

	if _, err := cfg.Normalizer(); err != nil {
		return err
	}

	if _, err := cfg.Classifier(); err != nil {
		return err
	}

	return nil
}

// Normalizer builds the uid normalizer described by the configuration.
func (c *Config) Normalizer() (*uid.Normalizer, error) {
	return uid.New(uid.Options{
		Namespace:          c.UID.Namespace,
		RestrictedKeywords: c.UID.RestrictedKeywords,
		ReservedPatterns:   c.UID.ReservedPatterns,
		IdentifierKeys:     c.UID.IdentifierKeys,
	})
}

// Classifier builds the type-order classifier described by the configuration.
func (c *Config) Classifier() (*typeorder.Classifier, error) {
	return typeorder.NewClassifier(c.TypeOrder.Classifiers)
}

// Engine builds a consolidation engine from the configuration.
func (c *Config) Engine() (*consolidate.Engine, error) {
	norm, err := c.Normalizer()
	if err != nil {
		return nil, err
	}

	classifier, err := c.Classifier()
	if err != nil {
		return nil, err
	}

	return consolidate.New(consolidate.Options{
		Normalizer:          norm,
		Classifier:          classifier,
		MaxDepth:            c.Merge.MaxDepth,
		SimilarityThreshold: c.Merge.SimilarityThreshold,
	}), nil
}

// Marshal serializes a Config to YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
