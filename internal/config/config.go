// Package config loads server configuration from a YAML file. Values from
// the file become flag defaults, so command-line flags and environment
// variables still win.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Scanner ScannerConfig `yaml:"scanner"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Port     int    `yaml:"port"`
	AuthUser string `yaml:"auth_user"`
	AuthPass string `yaml:"auth_pass"`
}

// StorageConfig holds database and file storage paths
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	FilesPath    string `yaml:"files_path"`
}

// ScannerConfig selects and configures the extraction backend
type ScannerConfig struct {
	Type        string `yaml:"type"`
	GeminiKey   string `yaml:"gemini_key"`
	GeminiModel string `yaml:"gemini_model"`
	OllamaURL   string `yaml:"ollama_url"`
	OllamaModel string `yaml:"ollama_model"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
		},
		Storage: StorageConfig{
			DatabasePath: "waybill-tracker.db",
			FilesPath:    "./waybills",
		},
		Scanner: ScannerConfig{
			Type:        "gemini",
			GeminiModel: "gemini-2.5-flash",
			OllamaURL:   "http://localhost:11434",
			OllamaModel: "llava",
		},
	}
}

// Load reads a YAML config file over the defaults. Environment variable
// references in the file (e.g. ${GEMINI_API_KEY}) are expanded before
// parsing, so secrets can stay out of the file itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}
