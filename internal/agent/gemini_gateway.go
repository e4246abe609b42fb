package agent

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"mcc/internal/logging"
	"mcc/internal/normalize"
)

// =============================================================================
// GEMINI GATEWAY
// =============================================================================

// genaiModels is the subset of *genai.Models the gateway uses.
type genaiModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// GeminiGateway serves the agent identities locally with Gemini models.
// Each identity is a persona; the graphic designer also renders images,
// which are written under ArtifactDir and reported as artifact files.
type GeminiGateway struct {
	models      genaiModels
	registry    *Registry
	model       string
	imageModel  string
	artifactDir string
}

// GeminiConfig configures a GeminiGateway.
type GeminiConfig struct {
	APIKey      string
	Model       string
	ImageModel  string
	ArtifactDir string
	Registry    *Registry
}

// NewGeminiGateway creates a Gemini-backed gateway.
func NewGeminiGateway(ctx context.Context, cfg GeminiConfig) (*GeminiGateway, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return newGeminiGateway(client.Models, cfg), nil
}

func newGeminiGateway(models genaiModels, cfg GeminiConfig) *GeminiGateway {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "imagen-3.0-generate-002"
	}
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	return &GeminiGateway{
		models:      models,
		registry:    cfg.Registry,
		model:       cfg.Model,
		imageModel:  cfg.ImageModel,
		artifactDir: cfg.ArtifactDir,
	}
}

// Invoke runs the persona bound to agentID.
func (g *GeminiGateway) Invoke(ctx context.Context, prompt, agentID string) (*Response, error) {
	info, err := g.registry.Lookup(agentID)
	if err != nil {
		return nil, err
	}
	if !info.Invocable {
		return nil, fmt.Errorf("%w: %s is not directly invocable", ErrUnknownAgent, info.Name)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: personaFor(info.Role)}}},
		ResponseMIMEType:  "application/json",
	}

	logging.AgentDebug("[Gemini] GenerateContent: model=%s role=%s prompt_len=%d", g.model, info.Role, len(prompt))
	result, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		logging.AgentWarn("[Gemini] GenerateContent failed: role=%s err=%v", info.Role, err)
		return &Response{Success: false, Error: err.Error()}, nil
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return &Response{Success: false, Error: "empty response from model"}, nil
	}

	resp := &Response{
		Success:  true,
		Response: map[string]any{"status": "success", "result": text},
	}

	if info.Role == RoleGraphicDesigner {
		files := g.renderImages(ctx, prompt, text)
		resp.ModuleOutputs = &ModuleOutputs{ArtifactFiles: files}
	}
	return resp, nil
}

// renderImages generates the graphic and writes it to the artifact dir.
// Image failures leave the text result intact and produce no artifacts.
func (g *GeminiGateway) renderImages(ctx context.Context, prompt, designText string) []ArtifactFile {
	imagePrompt := normalize.Of(designText).String("image_prompt", prompt)
	if strings.TrimSpace(imagePrompt) == "" {
		imagePrompt = prompt
	}

	res, err := g.models.GenerateImages(ctx, g.imageModel, imagePrompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
	})
	if err != nil {
		logging.AgentWarn("[Gemini] GenerateImages failed: %v", err)
		return nil
	}

	dir := g.artifactDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logging.AgentWarn("[Gemini] cannot create artifact dir %s: %v", dir, err)
		return nil
	}

	var files []ArtifactFile
	for _, img := range res.GeneratedImages {
		if img == nil || img.Image == nil || len(img.Image.ImageBytes) == 0 {
			continue
		}
		path := filepath.Join(dir, uuid.NewString()+extensionFor(img.Image.MIMEType))
		if err := os.WriteFile(path, img.Image.ImageBytes, 0644); err != nil {
			logging.AgentWarn("[Gemini] write artifact %s: %v", path, err)
			continue
		}
		files = append(files, ArtifactFile{FileURL: "file://" + filepath.ToSlash(path)})
	}
	logging.Agent("[Gemini] rendered %d image(s)", len(files))
	return files
}

func extensionFor(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	return ".png"
}
