package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mcc/internal/logging"
	"mcc/internal/normalize"
)

// maxResponseBytes caps how much of an agent reply is read.
const maxResponseBytes = 8 << 20

// HTTPGateway posts prompts to an agent backend over HTTP.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// HTTPConfig configures an HTTPGateway.
type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type httpRequest struct {
	Message string `json:"message"`
	AgentID string `json:"agent_id"`
}

// NewHTTPGateway creates a gateway for the given backend.
func NewHTTPGateway(cfg HTTPConfig) *HTTPGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 180 * time.Second
	}
	return &HTTPGateway{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Invoke sends {message, agent_id} and decodes the envelope. Transport and
// backend failures are reported as an unsuccessful Response.
func (g *HTTPGateway) Invoke(ctx context.Context, prompt, agentID string) (*Response, error) {
	body, err := json.Marshal(httpRequest{Message: prompt, AgentID: agentID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if g.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	logging.AgentDebug("[HTTP] POST %s agent=%s prompt_len=%d", g.baseURL, agentID, len(prompt))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		logging.AgentWarn("[HTTP] request failed: agent=%s err=%v", agentID, err)
		return &Response{Success: false, Error: fmt.Sprintf("request failed: %v", err)}, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &Response{Success: false, Error: fmt.Sprintf("failed to read response: %v", err)}, nil
	}

	out, decodeErr := decodeEnvelope(data)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Error
		if decodeErr != nil || msg == "" {
			msg = fmt.Sprintf("agent backend returned status %d", resp.StatusCode)
		}
		logging.AgentWarn("[HTTP] agent=%s status=%d: %s", agentID, resp.StatusCode, msg)
		return &Response{Success: false, Error: msg}, nil
	}

	if decodeErr != nil {
		logging.AgentWarn("[HTTP] agent=%s undecodable body (%d bytes): %v", agentID, len(data), decodeErr)
		return &Response{Success: false, Error: fmt.Sprintf("invalid agent response: %v", decodeErr)}, nil
	}
	if !out.Success && out.Error == "" {
		out.Error = "agent reported failure"
	}
	return out, nil
}

// decodeEnvelope reads the reply envelope field by field. Only a body that
// is not a JSON object is an error; a mistyped side field is dropped and
// artifact entries without a string file_url are skipped.
func decodeEnvelope(data []byte) (*Response, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &Response{}, err
	}
	if raw == nil {
		return &Response{}, fmt.Errorf("agent response is null")
	}
	v := normalize.NewView(raw)

	out := &Response{Response: raw["response"]}
	out.Success, _ = raw["success"].(bool)
	out.Error = v.String("error", "")

	if mo, ok := v.Object("module_outputs"); ok {
		var files []ArtifactFile
		for _, f := range mo.Objects("artifact_files") {
			if url, ok := f.Map()["file_url"].(string); ok && url != "" {
				files = append(files, ArtifactFile{FileURL: url})
			}
		}
		out.ModuleOutputs = &ModuleOutputs{ArtifactFiles: files}
	}
	return out, nil
}
