package config

import (
	"fmt"
	"strings"
	"time"
)

// Agent backends.
const (
	ProviderHTTP   = "http"
	ProviderGemini = "gemini"
)

// ValidProviders lists all supported agent backends.
var ValidProviders = []string{ProviderHTTP, ProviderGemini}

// Stable identifiers of the three generation agents.
const (
	DefaultOrchestratorID    = "69a2883be72641e0c6070afe"
	DefaultGraphicDesignerID = "69a2883b00b22915dd81e1aa"
	DefaultVideoBriefID      = "69a2883bd6fa89687c20afcf"
)

// AgentsConfig configures the agent gateway.
type AgentsConfig struct {
	Provider   string `yaml:"provider"` // http, gemini
	BaseURL    string `yaml:"base_url"`
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`       // gemini text model
	ImageModel string `yaml:"image_model"` // gemini image model for the graphic designer
	Timeout    string `yaml:"timeout"`

	OrchestratorID    string `yaml:"orchestrator_id"`
	GraphicDesignerID string `yaml:"graphic_designer_id"`
	VideoBriefID      string `yaml:"video_brief_id"`
}

// GetTimeout returns the agent call timeout as a duration.
func (a AgentsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return 180 * time.Second
	}
	return d
}

// Validate checks the provider and the settings it needs.
func (a AgentsConfig) Validate() error {
	switch a.Provider {
	case ProviderHTTP:
		if strings.TrimSpace(a.BaseURL) == "" {
			return fmt.Errorf("agents.base_url is required for the %s provider", ProviderHTTP)
		}
	case ProviderGemini:
		if a.APIKey == "" {
			return fmt.Errorf("agent API key not configured (set GEMINI_API_KEY or MCC_AGENT_API_KEY)")
		}
	default:
		return fmt.Errorf("invalid agent provider: %s (valid: %v)", a.Provider, ValidProviders)
	}
	if a.OrchestratorID == "" || a.GraphicDesignerID == "" || a.VideoBriefID == "" {
		return fmt.Errorf("agent identifiers must not be empty")
	}
	return nil
}
