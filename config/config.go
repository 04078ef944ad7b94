// Package config loads tracker configuration from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkrasov/folio/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	defaultDataDir = "data"
	defaultListen  = ":8087"
	defaultStart   = "2017-01-01"
)

// Config holds exchange credentials and tracker defaults.
type Config struct {
	APIKey      string
	APISecret   string
	DataDir     string
	QuoteAssets []string
	Start       time.Time
	Listen      string
}

type configTmp struct {
	APIKey      string   `yaml:"api_key"`
	APISecret   string   `yaml:"api_secret"`
	DataDir     string   `yaml:"data_dir,omitempty"`
	QuoteAssets []string `yaml:"quote_assets,omitempty"`
	Start       string   `yaml:"start,omitempty"`
	Listen      string   `yaml:"listen,omitempty"`
}

// Load reads and validates the config at path. Missing or unparsable
// config is fatal for the pipeline, so errors here propagate.
func Load(path string) (Config, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var tmp configTmp
	if err := yaml.Unmarshal(f, &tmp); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	// env wins over file so keys never have to live on disk
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		tmp.APIKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		tmp.APISecret = v
	}

	if tmp.APIKey == "" || tmp.APISecret == "" {
		return Config{}, fmt.Errorf("config %s: api_key and api_secret are required", path)
	}

	cfg := Config{
		APIKey:      tmp.APIKey,
		APISecret:   tmp.APISecret,
		DataDir:     tmp.DataDir,
		QuoteAssets: tmp.QuoteAssets,
		Listen:      tmp.Listen,
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if len(cfg.QuoteAssets) == 0 {
		cfg.QuoteAssets = domain.DefaultQuoteAssets
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}

	if tmp.Start == "" {
		tmp.Start = defaultStart
	}
	cfg.Start, err = time.Parse("2006-01-02", tmp.Start)
	if err != nil {
		return Config{}, fmt.Errorf("incorrect 'start' param in yaml config (correct format is 2006-01-02): %w", err)
	}

	return cfg, nil
}

// Save writes the config back to path, creating parent directories.
func Save(path string, cfg Config) error {
	tmp := configTmp{
		APIKey:      cfg.APIKey,
		APISecret:   cfg.APISecret,
		DataDir:     cfg.DataDir,
		QuoteAssets: cfg.QuoteAssets,
		Listen:      cfg.Listen,
	}
	if !cfg.Start.IsZero() {
		tmp.Start = cfg.Start.Format("2006-01-02")
	}

	data, err := yaml.Marshal(tmp)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o600)
}

// LedgerPath returns the location of the persisted trade ledger.
func (c Config) LedgerPath() string {
	return filepath.Join(c.DataDir, "trade_history.csv")
}

// SymbolCachePath returns the location of the cached symbol universe.
func (c Config) SymbolCachePath() string {
	return filepath.Join(c.DataDir, "symbols.json")
}

// SnapshotDir returns the directory of the WAL-backed snapshot store.
func (c Config) SnapshotDir() string {
	return filepath.Join(c.DataDir, "wal", "snapshots")
}
