// Package config loads application configuration from YAML files.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig contains the SQLite database location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// GeminiConfig configures the Gemini completion and embedding models.
type GeminiConfig struct {
	APIKeyEnv       string `yaml:"api_key_env"`
	CompletionModel string `yaml:"completion_model"`
	EmbeddingModel  string `yaml:"embedding_model"`
}

// FeedConfig configures where yearly CVE feeds come from.
type FeedConfig struct {
	BaseURL           string `yaml:"base_url"`
	CacheDir          string `yaml:"cache_dir"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// IngestConfig tunes the ingestion pipeline.
type IngestConfig struct {
	BatchSize int `yaml:"batch_size"`
	ChunkSize int `yaml:"chunk_size"`
}

// QueryConfig tunes the query pipeline.
type QueryConfig struct {
	TopK int `yaml:"top_k"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Database DatabaseConfig `yaml:"database"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	Feeds    FeedConfig     `yaml:"feeds"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Query    QueryConfig    `yaml:"query"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./cveanalyzer.yaml first, then
// ~/.config/cveanalyzer/config.yaml. If neither exists it returns defaults
// without writing anything.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "cveanalyzer.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cveanalyzer", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Gemini.APIKeyEnv == "" {
		cfg.Gemini.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Gemini.CompletionModel == "" {
		cfg.Gemini.CompletionModel = "gemini-2.5-flash"
	}
	if cfg.Gemini.EmbeddingModel == "" {
		cfg.Gemini.EmbeddingModel = "text-embedding-004"
	}
	if cfg.Feeds.BaseURL == "" {
		cfg.Feeds.BaseURL = "https://nvd.nist.gov/feeds/json/cve/1.1"
	}
	if cfg.Feeds.RequestsPerMinute == 0 {
		cfg.Feeds.RequestsPerMinute = 10
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = 64
	}
	if cfg.Ingest.ChunkSize == 0 {
		cfg.Ingest.ChunkSize = 500
	}
	if cfg.Query.TopK == 0 {
		cfg.Query.TopK = 10
	}
}
