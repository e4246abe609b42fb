package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file name inside the workspace.
const DefaultFileName = "config.yaml"

// Config holds all mcc configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Agent backend
	Agents AgentsConfig `yaml:"agents"`

	// Durable campaign and brand storage
	Storage StorageConfig `yaml:"storage"`

	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "mcc",
		Version: "1.0.0",

		Agents: AgentsConfig{
			Provider:          ProviderHTTP,
			BaseURL:           "http://localhost:3000/api/agent",
			Model:             "gemini-2.5-flash",
			ImageModel:        "imagen-3.0-generate-002",
			Timeout:           "180s",
			OrchestratorID:    DefaultOrchestratorID,
			GraphicDesignerID: DefaultGraphicDesignerID,
			VideoBriefID:      DefaultVideoBriefID,
		},

		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    "mcc.db",
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "text",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("MCC_AGENT_API_KEY"); key != "" {
		c.Agents.APIKey = key
	}
	// MCC_AGENT_API_KEY wins over the generic Gemini key.
	if key := os.Getenv("GEMINI_API_KEY"); key != "" && c.Agents.APIKey == "" {
		c.Agents.APIKey = key
		if c.Agents.Provider == "" {
			c.Agents.Provider = ProviderGemini
		}
	}
	if url := os.Getenv("MCC_AGENT_BASE_URL"); url != "" {
		c.Agents.BaseURL = url
	}
	if path := os.Getenv("MCC_STORE_PATH"); path != "" {
		c.Storage.Path = path
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Agents.Validate(); err != nil {
		return err
	}
	return c.Storage.Validate()
}
