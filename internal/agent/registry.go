package agent

import (
	"fmt"

	"mcc/internal/config"
)

// Role identifies what an agent does.
type Role string

const (
	RoleOrchestrator    Role = "orchestrator"
	RoleGraphicDesigner Role = "graphic_designer"
	RoleVideoBrief      Role = "video_brief"
	RoleContentWriter   Role = "content_writer"
	RoleSEOAnalyst      Role = "seo_analyst"
)

// Sub-agents driven by the orchestrator. They are listed in the roster but
// never invoked directly.
const (
	ContentWriterID = "69a28814d6fa89687c20afcd"
	SEOAnalystID    = "69a2881563d7518fcdafa1de"
)

// Info describes one agent identity.
type Info struct {
	ID          string
	Name        string
	Description string
	Role        Role
	Invocable   bool
}

// Registry holds the agent roster.
type Registry struct {
	agents []Info
	byID   map[string]Info
	byRole map[Role]Info
}

// NewRegistry builds the roster from the configured agent identifiers.
func NewRegistry(cfg config.AgentsConfig) *Registry {
	agents := []Info{
		{ID: orDefault(cfg.OrchestratorID, config.DefaultOrchestratorID), Name: "Campaign Orchestrator", Description: "Coordinates content & SEO", Role: RoleOrchestrator, Invocable: true},
		{ID: ContentWriterID, Name: "Content Writer", Description: "Creates platform content", Role: RoleContentWriter},
		{ID: SEOAnalystID, Name: "SEO Analyst", Description: "Keyword & SEO analysis", Role: RoleSEOAnalyst},
		{ID: orDefault(cfg.GraphicDesignerID, config.DefaultGraphicDesignerID), Name: "Graphic Designer", Description: "Visual asset generation", Role: RoleGraphicDesigner, Invocable: true},
		{ID: orDefault(cfg.VideoBriefID, config.DefaultVideoBriefID), Name: "Video Brief", Description: "Video production briefs", Role: RoleVideoBrief, Invocable: true},
	}

	r := &Registry{
		agents: agents,
		byID:   make(map[string]Info, len(agents)),
		byRole: make(map[Role]Info, len(agents)),
	}
	for _, a := range agents {
		r.byID[a.ID] = a
		r.byRole[a.Role] = a
	}
	return r
}

// DefaultRegistry uses the built-in agent identifiers.
func DefaultRegistry() *Registry {
	return NewRegistry(config.DefaultConfig().Agents)
}

// Lookup returns the agent with the given id.
func (r *Registry) Lookup(id string) (Info, error) {
	a, ok := r.byID[id]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	return a, nil
}

// ID returns the identifier of the agent playing role.
func (r *Registry) ID(role Role) string {
	return r.byRole[role].ID
}

// Name returns the display name for id, or id itself when unknown.
func (r *Registry) Name(id string) string {
	if a, ok := r.byID[id]; ok {
		return a.Name
	}
	return id
}

// All returns the roster in display order.
func (r *Registry) All() []Info {
	return append([]Info(nil), r.agents...)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
