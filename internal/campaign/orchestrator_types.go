package campaign

import (
	"errors"
	"strings"

	"mcc/internal/state"
	"mcc/internal/types"
)

// ErrNoActiveCampaign is returned by operations that need a selected campaign.
var ErrNoActiveCampaign = errors.New("no active campaign")

// Workflow names the operation an Outcome reports on.
type Workflow string

const (
	WorkflowCreate   Workflow = "create"
	WorkflowGraphics Workflow = "graphics"
	WorkflowVideo    Workflow = "video"

	// Non-generating operations.
	WorkflowSelect   Workflow = "select"
	WorkflowEdit     Workflow = "edit"
	WorkflowNavigate Workflow = "navigate"
	WorkflowDismiss  Workflow = "dismiss"
	WorkflowBrand    Workflow = "brand"
)

// Generates reports whether w calls an agent.
func (w Workflow) Generates() bool {
	switch w {
	case WorkflowCreate, WorkflowGraphics, WorkflowVideo:
		return true
	}
	return false
}

// State is where a workflow ended up.
type State string

const (
	StateIdle      State = "idle"
	StateInFlight  State = "in_flight"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
	StateSkipped   State = "skipped" // precondition not met or already in flight
)

// Status messages shown after a workflow completes.
const (
	StatusCampaignGenerated = "Campaign generated successfully"
	StatusGraphicsGenerated = "Graphics generated successfully"
	StatusVideoGenerated    = "Video brief generated successfully"
	StatusErrorPrefix       = "Error: "
)

// Fallback failure reasons when the agent reports failure without a message.
const (
	failCampaign   = "Failed to generate campaign"
	failGraphics   = "Failed to generate graphics"
	failVideo      = "Failed to generate video brief"
	failUnexpected = "Unexpected error"
)

// Outcome is the result of one orchestrator call. It carries everything a
// presentation layer needs to render the new state.
type Outcome struct {
	Workflow Workflow
	State    State
	AgentID  string
	Campaign *types.Campaign // affected campaign, nil when none
	Status   string          // status message after the call
	Screen   state.Screen
	Err      error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool {
	return o.State == StateSucceeded
}

// IsError reports whether the status message is an error message.
func (o Outcome) IsError() bool {
	return strings.HasPrefix(o.Status, StatusErrorPrefix)
}
