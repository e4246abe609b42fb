package agent

import (
	"context"
	"fmt"
	"time"

	"mcc/internal/logging"
)

// UsageRecorder receives one record per agent call.
type UsageRecorder interface {
	Record(agentID string, success bool, latency time.Duration)
}

// TracingGateway wraps any Gateway, logging every call, recording usage and
// turning panics in the wrapped gateway into errors.
type TracingGateway struct {
	underlying Gateway
	registry   *Registry
	usage      UsageRecorder
}

// NewTracingGateway creates a tracing wrapper. usage may be nil.
func NewTracingGateway(underlying Gateway, registry *Registry, usage UsageRecorder) *TracingGateway {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &TracingGateway{underlying: underlying, registry: registry, usage: usage}
}

// Invoke implements Gateway with tracing.
func (tg *TracingGateway) Invoke(ctx context.Context, prompt, agentID string) (resp *Response, err error) {
	name := tg.registry.Name(agentID)
	start := time.Now()
	logging.Agent("Agent call started: agent=%s (%s) prompt_len=%d", name, agentID, len(prompt))

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = fmt.Errorf("%w: %v", ErrAgentPanic, r)
		}

		elapsed := time.Since(start)
		success := err == nil && resp != nil && resp.Success
		switch {
		case err != nil:
			logging.AgentError("Agent call errored: agent=%s duration=%v err=%v", name, elapsed, err)
		case !success:
			logging.AgentWarn("Agent call failed: agent=%s duration=%v error=%q", name, elapsed, errorText(resp))
		default:
			logging.Agent("Agent call completed: agent=%s duration=%v artifacts=%d", name, elapsed, len(resp.Artifacts()))
		}
		if tg.usage != nil {
			tg.usage.Record(agentID, success, elapsed)
		}
	}()

	return tg.underlying.Invoke(ctx, prompt, agentID)
}

func errorText(resp *Response) string {
	if resp == nil {
		return "nil response"
	}
	return resp.Error
}
