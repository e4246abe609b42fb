package campaign

import (
	"context"
	"fmt"
	"sync/atomic"

	"mcc/internal/agent"
	"mcc/internal/logging"
	"mcc/internal/normalize"
	"mcc/internal/state"
	"mcc/internal/types"
)

// =============================================================================
// GENERATION WORKFLOWS
// =============================================================================

// CreateCampaign sends the brief to the orchestrator agent and, on success,
// prepends the new campaign and makes it active.
func (o *Orchestrator) CreateCampaign(ctx context.Context, form types.CampaignFormData) Outcome {
	agentID := o.registry.ID(agent.RoleOrchestrator)
	out := Outcome{Workflow: WorkflowCreate, AgentID: agentID}

	if err := form.Validate(); err != nil {
		out.State = StateSkipped
		out.Err = err
		return o.finish(out)
	}
	if !o.creating.CompareAndSwap(false, true) {
		out.State = StateSkipped
		return o.finish(out)
	}
	defer o.creating.Store(false)
	release := o.activity.Begin(agentID)
	defer release()

	o.state.SetScreen(state.ScreenBuilder)
	o.state.SetStatus("")

	timer := logging.StartTimer(logging.CategoryCampaign, "CreateCampaign")
	defer timer.Stop()

	prompt := BuildCampaignPrompt(form, o.Brand())
	resp, err := o.invoke(ctx, prompt, agentID)
	if msg, failed := failureMessage(resp, err, failCampaign); failed {
		logging.CampaignWarn("Campaign generation failed: %s", msg)
		o.announce(&out, StatusErrorPrefix+msg)
		o.state.SetScreen(state.ScreenBuilder)
		out.State = StateFailed
		out.Err = failureError(err, msg)
		return o.finish(out)
	}

	c := o.builder.Build(form, normalize.Normalize(resp.Payload()))
	o.state.Prepend(c)
	o.state.SetScreen(state.ScreenReview)
	o.announce(&out, StatusCampaignGenerated)
	logging.Campaign("Campaign created: id=%s name=%q blocks=%d", c.ID, c.Name, len(c.ContentBlocks))

	out.State = StateSucceeded
	out.Campaign = &c
	return o.finish(out)
}

// GenerateGraphics asks the graphic designer for artwork and appends the
// returned files to the active campaign. An empty prompt uses the default.
func (o *Orchestrator) GenerateGraphics(ctx context.Context, prompt string) Outcome {
	return o.enrich(ctx, enrichJob{
		workflow:      WorkflowGraphics,
		inFlight:      &o.drawing,
		agentID:       o.registry.ID(agent.RoleGraphicDesigner),
		prompt:        prompt,
		defaultPrompt: DefaultGraphicsPrompt,
		failReason:    failGraphics,
		successStatus: StatusGraphicsGenerated,
		merge: func(c *types.Campaign, resp *agent.Response) {
			added := BuildGraphics(resp.Artifacts(), normalize.Of(resp.Payload()))
			c.Graphics = append(append([]types.GraphicAsset{}, c.Graphics...), added...)
		},
	})
}

// GenerateVideoBrief asks the video agent for a brief and replaces the
// active campaign's brief with it. An empty prompt uses the default.
func (o *Orchestrator) GenerateVideoBrief(ctx context.Context, prompt string) Outcome {
	return o.enrich(ctx, enrichJob{
		workflow:      WorkflowVideo,
		inFlight:      &o.briefing,
		agentID:       o.registry.ID(agent.RoleVideoBrief),
		prompt:        prompt,
		defaultPrompt: DefaultVideoPrompt,
		failReason:    failVideo,
		successStatus: StatusVideoGenerated,
		merge: func(c *types.Campaign, resp *agent.Response) {
			c.VideoBrief = BuildVideoBrief(normalize.Of(resp.Payload()))
		},
	})
}

// enrichJob describes one graphics or video run.
type enrichJob struct {
	workflow      Workflow
	inFlight      *atomic.Bool
	agentID       string
	prompt        string
	defaultPrompt func(name string) string
	failReason    string
	successStatus string
	merge         func(*types.Campaign, *agent.Response)
}

// enrich is the shared shape of the graphics and video workflows. The
// target campaign is fixed when the workflow starts; merge runs against its
// freshest value when the agent answers.
func (o *Orchestrator) enrich(ctx context.Context, job enrichJob) Outcome {
	w, agentID, prompt := job.workflow, job.agentID, job.prompt
	out := Outcome{Workflow: w, AgentID: agentID}

	active, ok := o.state.Active()
	if !ok {
		out.State = StateSkipped
		out.Err = ErrNoActiveCampaign
		return o.finish(out)
	}
	if !job.inFlight.CompareAndSwap(false, true) {
		out.State = StateSkipped
		return o.finish(out)
	}
	defer job.inFlight.Store(false)
	release := o.activity.Begin(agentID)
	defer release()

	o.state.SetStatus("")
	if prompt == "" {
		prompt = job.defaultPrompt(active.Name)
	}

	timer := logging.StartTimer(logging.CategoryCampaign, string(w))
	defer timer.Stop()

	resp, err := o.invoke(ctx, prompt, agentID)
	if msg, failed := failureMessage(resp, err, job.failReason); failed {
		logging.CampaignWarn("%s workflow failed for %s: %s", w, active.ID, msg)
		o.announce(&out, StatusErrorPrefix+msg)
		out.State = StateFailed
		out.Err = failureError(err, msg)
		return o.finish(out)
	}

	updated, err := o.state.Modify(active.ID, func(c *types.Campaign) { job.merge(c, resp) })
	if err != nil {
		// The campaign vanished while the agent was working.
		o.announce(&out, StatusErrorPrefix+err.Error())
		out.State = StateFailed
		out.Err = err
		return o.finish(out)
	}
	o.announce(&out, job.successStatus)
	logging.Campaign("%s workflow merged into %s: graphics=%d video=%t", w, updated.ID, len(updated.Graphics), updated.VideoBrief != nil)

	out.State = StateSucceeded
	out.Campaign = &updated
	return o.finish(out)
}

// announce publishes msg as the console status and records it on out.
// Concurrent workflows share the console status, so each Outcome keeps the
// message its own workflow set.
func (o *Orchestrator) announce(out *Outcome, msg string) {
	o.state.SetStatus(msg)
	out.Status = msg
}

// invoke calls the gateway, converting a panic into an error.
func (o *Orchestrator) invoke(ctx context.Context, prompt, agentID string) (resp *agent.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.CampaignError("Gateway panic for agent %s: %v", agentID, r)
			resp = nil
			err = fmt.Errorf("%w: %v", agent.ErrAgentPanic, r)
		}
	}()
	if o.gateway == nil {
		return nil, fmt.Errorf("no agent gateway configured")
	}
	return o.gateway.Invoke(ctx, prompt, agentID)
}

// failureMessage reports whether the call failed and, if so, the message to
// show after the error prefix.
func failureMessage(resp *agent.Response, err error, fallback string) (string, bool) {
	switch {
	case err != nil:
		if msg := err.Error(); msg != "" {
			return msg, true
		}
		return failUnexpected, true
	case resp == nil:
		return failUnexpected, true
	case !resp.Success:
		if resp.Error != "" {
			return resp.Error, true
		}
		return fallback, true
	}
	return "", false
}

func failureError(err error, msg string) error {
	if err != nil {
		return err
	}
	return fmt.Errorf("agent failure: %s", msg)
}
