// Package config loads the treebank tool configuration from YAML.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cseseniordesign/unl-classics-alpheios-retooling-sub000/morph"
)

// Storage kinds
const (
	StorageDir    = "dir"
	StorageSQLite = "sqlite"
)

type Config struct {
	// CorpusPath is the directory of XML documents or the SQLite database,
	// depending on Storage.
	CorpusPath string `yaml:"corpus_path"`
	Storage    string `yaml:"storage"`

	// Lang is the language of the documents, used for morphology lookups.
	Lang string `yaml:"lang"`

	LogLevel string `yaml:"log_level"`
	Color    bool   `yaml:"color"`

	History HistoryConfig `yaml:"history"`
	Morph   MorphConfig   `yaml:"morph"`
	Server  ServerConfig  `yaml:"server"`
}

type HistoryConfig struct {
	// Limit bounds the undo steps kept per session. 0 keeps all.
	Limit int `yaml:"limit"`
}

// MorphConfig configures the morphology service. An empty URL disables
// lookups.
type MorphConfig struct {
	URL     string        `yaml:"url"`
	Engine  string        `yaml:"engine"`
	Source  string        `yaml:"source"`
	Timeout time.Duration `yaml:"timeout"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`

	// MaxDocumentMB caps the size of uploaded documents.
	MaxDocumentMB int `yaml:"max_document_mb"`
}

// DefaultConfig returns sane defaults.
func DefaultConfig() *Config {
	return &Config{
		CorpusPath: "corpus",
		Storage:    StorageDir,
		Lang:       "grc",
		LogLevel:   "info",
		Color:      true,
		Morph: MorphConfig{
			URL:     "https://morph.alpheios.net/api/v1/analysis/word",
			Engine:  "morpheusgrc",
			Source:  "morpheusgrc",
			Timeout: 10 * time.Second,
		},
		Server: ServerConfig{
			Listen:        ":8080",
			MaxDocumentMB: 20,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.CorpusPath == "" {
		return fmt.Errorf("corpus_path is required")
	}
	switch c.Storage {
	case StorageDir, StorageSQLite:
	default:
		return fmt.Errorf("unsupported storage %q (use %s or %s)", c.Storage, StorageDir, StorageSQLite)
	}
	if c.Lang == "" {
		return fmt.Errorf("lang is required")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit must be >= 0")
	}
	if c.Morph.URL != "" && c.Morph.Timeout <= 0 {
		return fmt.Errorf("morph.timeout must be > 0")
	}
	if c.Server.MaxDocumentMB <= 0 {
		return fmt.Errorf("server.max_document_mb must be > 0")
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	l, err := c.Level()
	if err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// MorphClient returns the client configuration of the morphology service.
func (c *Config) MorphClient(logger *slog.Logger) morph.Config {
	return morph.Config{
		URL:     c.Morph.URL,
		Engine:  c.Morph.Engine,
		Timeout: c.Morph.Timeout,
		Logger:  logger,
	}
}

// MaxDocumentBytes returns the upload cap in bytes.
func (c *Config) MaxDocumentBytes() int64 { return int64(c.Server.MaxDocumentMB) * 1024 * 1024 }
