// Package agent is the boundary to the external generative agents.
//
// A Gateway invokes one agent identity with a natural-language prompt and
// returns the backend's envelope. Backend-side failures arrive as
// Response.Success == false with a human-readable Error; a returned Go error
// is reserved for calls that could not be made at all.
package agent

import (
	"context"
	"errors"
)

var (
	// ErrUnknownAgent is returned when an agent id is not in the registry.
	ErrUnknownAgent = errors.New("unknown agent")
	// ErrNoAPIKey is returned when a backend that needs credentials has none.
	ErrNoAPIKey = errors.New("agent API key not configured")
	// ErrAgentPanic wraps a panic recovered from a gateway implementation.
	ErrAgentPanic = errors.New("agent gateway panicked")
)

// Gateway invokes a named agent.
type Gateway interface {
	Invoke(ctx context.Context, prompt, agentID string) (*Response, error)
}

// GatewayFunc adapts a function to the Gateway interface.
type GatewayFunc func(ctx context.Context, prompt, agentID string) (*Response, error)

func (f GatewayFunc) Invoke(ctx context.Context, prompt, agentID string) (*Response, error) {
	return f(ctx, prompt, agentID)
}

// Response is the agent backend envelope.
type Response struct {
	Success bool `json:"success"`
	// Response is free-form: a string, or an object that may carry the
	// actual output under "result".
	Response      any            `json:"response,omitempty"`
	ModuleOutputs *ModuleOutputs `json:"module_outputs,omitempty"`
	Error         string         `json:"error,omitempty"`
}

// ModuleOutputs holds side outputs such as generated files.
type ModuleOutputs struct {
	ArtifactFiles []ArtifactFile `json:"artifact_files,omitempty"`
}

// ArtifactFile is a file produced by an agent.
type ArtifactFile struct {
	FileURL string `json:"file_url"`
}

// Payload resolves the agent output: response.result when it is set,
// otherwise the response itself.
func (r *Response) Payload() any {
	if r == nil {
		return nil
	}
	if m, ok := r.Response.(map[string]any); ok {
		if result, ok := m["result"]; ok && truthy(result) {
			return result
		}
	}
	return r.Response
}

// Artifacts returns the artifact files, never nil-dereferencing.
func (r *Response) Artifacts() []ArtifactFile {
	if r == nil || r.ModuleOutputs == nil {
		return nil
	}
	return r.ModuleOutputs.ArtifactFiles
}

// truthy mirrors the loose "is set" test agent backends use for result.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	}
	return true
}
