package campaign

import (
	"fmt"
	"sync"
	"sync/atomic"

	"mcc/internal/agent"
	"mcc/internal/logging"
	"mcc/internal/state"
	"mcc/internal/store"
	"mcc/internal/types"
)

// Orchestrator runs the generation workflows.
//
// Each workflow has its own in-flight flag: a second trigger of the same
// workflow while one is running is skipped, while different workflows run
// independently. Merge steps go through Synchronizer.Modify so they always
// apply to the freshest value of the campaign.
type Orchestrator struct {
	gateway  agent.Gateway
	registry *agent.Registry
	state    *state.Synchronizer
	repo     *store.Repository
	activity *agent.Activity
	builder  *Builder

	brandMu sync.RWMutex
	brand   types.BrandSettings

	creating atomic.Bool
	drawing  atomic.Bool
	briefing atomic.Bool
}

// OrchestratorConfig holds the collaborators. Only Gateway is required.
type OrchestratorConfig struct {
	Gateway    agent.Gateway
	Registry   *agent.Registry
	State      *state.Synchronizer
	Repository *store.Repository
	Activity   *agent.Activity
	Builder    *Builder
}

// NewOrchestrator creates an orchestrator and loads the brand settings.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	if cfg.Registry == nil {
		cfg.Registry = agent.DefaultRegistry()
	}
	if cfg.Repository == nil {
		cfg.Repository = store.NewRepository(nil)
	}
	if cfg.State == nil {
		cfg.State = state.New(cfg.Repository)
	}
	if cfg.Activity == nil {
		cfg.Activity = &agent.Activity{}
	}
	if cfg.Builder == nil {
		cfg.Builder = NewBuilder(nil, nil)
	}

	return &Orchestrator{
		gateway:  cfg.Gateway,
		registry: cfg.Registry,
		state:    cfg.State,
		repo:     cfg.Repository,
		activity: cfg.Activity,
		builder:  cfg.Builder,
		brand:    cfg.Repository.LoadBrandSettings(),
	}
}

// State returns the synchronizer backing the orchestrator.
func (o *Orchestrator) State() *state.Synchronizer { return o.state }

// Activity returns the active-agent indicator.
func (o *Orchestrator) Activity() *agent.Activity { return o.activity }

// Registry returns the agent roster.
func (o *Orchestrator) Registry() *agent.Registry { return o.registry }

// Brand returns the current brand settings.
func (o *Orchestrator) Brand() types.BrandSettings {
	o.brandMu.RLock()
	defer o.brandMu.RUnlock()
	return o.brand
}

// InFlight reports whether a generating workflow is running.
func (o *Orchestrator) InFlight(w Workflow) bool {
	if f := o.flag(w); f != nil {
		return f.Load()
	}
	return false
}

func (o *Orchestrator) flag(w Workflow) *atomic.Bool {
	switch w {
	case WorkflowCreate:
		return &o.creating
	case WorkflowGraphics:
		return &o.drawing
	case WorkflowVideo:
		return &o.briefing
	}
	return nil
}

// =============================================================================
// NON-GENERATING OPERATIONS
// =============================================================================

// SelectCampaign makes id active and switches to the review screen.
func (o *Orchestrator) SelectCampaign(id string) Outcome {
	out := Outcome{Workflow: WorkflowSelect}
	c, err := o.state.Select(id)
	if err != nil {
		out.State = StateFailed
		out.Err = err
		return o.finish(out)
	}
	o.state.SetScreen(state.ScreenReview)
	out.State = StateSucceeded
	out.Campaign = &c
	return o.finish(out)
}

// EditContentBlock replaces the body of block index on the active campaign
// and persists it. Skipped when nothing is active or index is out of range.
func (o *Orchestrator) EditContentBlock(index int, body string) Outcome {
	out := Outcome{Workflow: WorkflowEdit}
	active, ok := o.state.Active()
	if !ok {
		out.State = StateSkipped
		out.Err = ErrNoActiveCampaign
		return o.finish(out)
	}
	if index < 0 || index >= len(active.ContentBlocks) {
		out.State = StateSkipped
		out.Err = fmt.Errorf("content block %d out of range (campaign has %d)", index, len(active.ContentBlocks))
		return o.finish(out)
	}

	updated, err := o.state.Modify(active.ID, func(c *types.Campaign) {
		EditContentBlock(c, index, body)
	})
	if err != nil {
		out.State = StateFailed
		out.Err = err
		return o.finish(out)
	}
	logging.CampaignDebug("Edited block %d of %s (%d words)", index, active.ID, updated.ContentBlocks[index].WordCount)
	out.State = StateSucceeded
	out.Campaign = &updated
	return o.finish(out)
}

// Export serializes the active campaign.
func (o *Orchestrator) Export() (ExportFile, error) {
	active, ok := o.state.Active()
	if !ok {
		return ExportFile{}, ErrNoActiveCampaign
	}
	return ExportCampaign(active)
}

// Navigate switches the presentation screen.
func (o *Orchestrator) Navigate(screen state.Screen) Outcome {
	o.state.SetScreen(screen)
	return o.finish(Outcome{Workflow: WorkflowNavigate, State: StateSucceeded})
}

// DismissStatus clears the status message.
func (o *Orchestrator) DismissStatus() Outcome {
	o.state.SetStatus("")
	return o.finish(Outcome{Workflow: WorkflowDismiss, State: StateSucceeded})
}

// SaveBrandSettings replaces and persists the brand settings. They apply to
// every campaign created afterwards.
func (o *Orchestrator) SaveBrandSettings(settings types.BrandSettings) Outcome {
	o.brandMu.Lock()
	o.brand = settings
	o.brandMu.Unlock()
	o.repo.SaveBrandSettings(settings)
	logging.Campaign("Brand settings saved: brand=%q", settings.BrandName)
	return o.finish(Outcome{Workflow: WorkflowBrand, State: StateSucceeded})
}

// finish fills in the view fields every Outcome carries. Generation
// workflows report only the status they announced themselves.
func (o *Orchestrator) finish(out Outcome) Outcome {
	if !out.Workflow.Generates() {
		out.Status = o.state.Status()
	}
	out.Screen = o.state.Screen()
	return out
}
