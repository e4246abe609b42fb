package agent

import "sync"

// Activity tracks which agents are currently in flight.
//
// Workflows may overlap, so each Begin holds its own slot and Current
// reports the most recently started agent that has not finished yet.
type Activity struct {
	mu     sync.Mutex
	next   uint64
	active []activeSlot
}

type activeSlot struct {
	token   uint64
	agentID string
}

// Begin marks agentID as in flight and returns the func that clears it.
// The release func is safe to call more than once.
func (a *Activity) Begin(agentID string) (release func()) {
	a.mu.Lock()
	a.next++
	token := a.next
	a.active = append(a.active, activeSlot{token: token, agentID: agentID})
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			for i, s := range a.active {
				if s.token == token {
					a.active = append(a.active[:i], a.active[i+1:]...)
					return
				}
			}
		})
	}
}

// Current returns the most recently started in-flight agent, or "".
func (a *Activity) Current() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.active) == 0 {
		return ""
	}
	return a.active[len(a.active)-1].agentID
}

// InFlight returns every in-flight agent id in start order.
func (a *Activity) InFlight() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.active))
	for i, s := range a.active {
		out[i] = s.agentID
	}
	return out
}
