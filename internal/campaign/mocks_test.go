package campaign

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mcc/internal/agent"
	"mcc/internal/state"
	"mcc/internal/store"
)

// --- stubGateway ---

// stubCall records one gateway invocation.
type stubCall struct {
	Prompt  string
	AgentID string
}

// stubGateway answers per agent id. A queued script is consumed first,
// then the fallback for that agent is reused.
type stubGateway struct {
	mu        sync.Mutex
	calls     []stubCall
	scripts   map[string][]stubReply
	fallbacks map[string]stubReply

	// gate, when set, blocks every call until it is closed or ctx ends.
	gate chan struct{}
	// entered receives one value per call that reaches the gate.
	entered chan string
}

type stubReply struct {
	resp  *agent.Response
	err   error
	panic any
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		scripts:   make(map[string][]stubReply),
		fallbacks: make(map[string]stubReply),
	}
}

func (s *stubGateway) on(agentID string, resp *agent.Response) *stubGateway {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbacks[agentID] = stubReply{resp: resp}
	return s
}

func (s *stubGateway) queue(agentID string, replies ...stubReply) *stubGateway {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts[agentID] = append(s.scripts[agentID], replies...)
	return s
}

func (s *stubGateway) Invoke(ctx context.Context, prompt, agentID string) (*agent.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, stubCall{Prompt: prompt, AgentID: agentID})
	var reply stubReply
	if queued := s.scripts[agentID]; len(queued) > 0 {
		reply = queued[0]
		s.scripts[agentID] = queued[1:]
	} else if fb, ok := s.fallbacks[agentID]; ok {
		reply = fb
	} else {
		reply = stubReply{resp: &agent.Response{Success: false, Error: "no stub for " + agentID}}
	}
	gate, entered := s.gate, s.entered
	s.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- agentID
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if reply.panic != nil {
		panic(reply.panic)
	}
	return reply.resp, reply.err
}

func (s *stubGateway) Calls() []stubCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]stubCall(nil), s.calls...)
}

// --- fixed id and clock ---

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("c%d", g.n)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testDay = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

// --- harness ---

type harness struct {
	gw   *stubGateway
	mem  *store.MemoryStore
	repo *store.Repository
	sync *state.Synchronizer
	orch *Orchestrator
	reg  *agent.Registry
}

func newHarness() *harness {
	gw := newStubGateway()
	mem := store.NewMemoryStore()
	repo := store.NewRepository(mem)
	st := state.New(repo)
	reg := agent.DefaultRegistry()
	orch := NewOrchestrator(OrchestratorConfig{
		Gateway:    gw,
		Registry:   reg,
		State:      st,
		Repository: repo,
		Activity:   &agent.Activity{},
		Builder:    NewBuilder(&seqIDs{}, fixedClock{testDay}),
	})
	return &harness{gw: gw, mem: mem, repo: repo, sync: st, orch: orch, reg: reg}
}

func (h *harness) orchestratorID() string { return h.reg.ID(agent.RoleOrchestrator) }
func (h *harness) designerID() string     { return h.reg.ID(agent.RoleGraphicDesigner) }
func (h *harness) videoID() string        { return h.reg.ID(agent.RoleVideoBrief) }

func success(response any) *agent.Response {
	return &agent.Response{Success: true, Response: response}
}

func withFiles(resp *agent.Response, urls ...string) *agent.Response {
	files := make([]agent.ArtifactFile, 0, len(urls))
	for _, u := range urls {
		files = append(files, agent.ArtifactFile{FileURL: u})
	}
	resp.ModuleOutputs = &agent.ModuleOutputs{ArtifactFiles: files}
	return resp
}
