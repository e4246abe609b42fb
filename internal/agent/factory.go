package agent

import (
	"context"
	"fmt"

	"mcc/internal/config"
)

// Options carries the runtime pieces a gateway needs beyond config.
type Options struct {
	ArtifactDir string
	Usage       UsageRecorder
}

// NewGateway builds the configured backend wrapped in a TracingGateway.
func NewGateway(ctx context.Context, cfg config.AgentsConfig, opts Options) (Gateway, *Registry, error) {
	registry := NewRegistry(cfg)

	var base Gateway
	switch cfg.Provider {
	case config.ProviderHTTP, "":
		base = NewHTTPGateway(HTTPConfig{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Timeout: cfg.GetTimeout(),
		})
	case config.ProviderGemini:
		g, err := NewGeminiGateway(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			ImageModel:  cfg.ImageModel,
			ArtifactDir: opts.ArtifactDir,
			Registry:    registry,
		})
		if err != nil {
			return nil, nil, err
		}
		base = g
	default:
		return nil, nil, fmt.Errorf("unsupported agent provider: %s", cfg.Provider)
	}

	return NewTracingGateway(base, registry, opts.Usage), registry, nil
}
