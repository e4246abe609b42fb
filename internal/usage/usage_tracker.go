package usage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"mcc/internal/logging"
)

// FileName is the usage file inside the workspace.
const FileName = "usage.json"

// Tracker manages agent call recording and persistence.
type Tracker struct {
	mu       sync.Mutex
	data     UsageData
	filePath string
	dirty    bool
	now      func() time.Time
}

// NewTracker creates a tracker persisted under the workspace directory.
func NewTracker(workspacePath string) (*Tracker, error) {
	if err := os.MkdirAll(workspacePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace dir: %w", err)
	}

	t := &Tracker{
		filePath: filepath.Join(workspacePath, FileName),
		data:     emptyData(),
		now:      time.Now,
	}

	// A corrupt file starts a fresh tally.
	if err := t.Load(); err != nil {
		logging.UsageWarn("usage file %s unreadable, starting fresh: %v", t.filePath, err)
		t.data = emptyData()
	}

	return t, nil
}

func emptyData() UsageData {
	return UsageData{
		Version:   "1.0",
		Aggregate: AggregatedStats{ByAgent: make(map[string]CallCounts)},
	}
}

// Load reads the usage data from disk.
func (t *Tracker) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var loaded UsageData
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}
	if loaded.Aggregate.ByAgent == nil {
		loaded.Aggregate.ByAgent = make(map[string]CallCounts)
	}
	t.data = loaded
	return nil
}

// Save writes the usage data to disk if anything changed.
func (t *Tracker) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.dirty {
		return nil
	}
	if err := t.saveLocked(); err != nil {
		return err
	}
	t.dirty = false
	return nil
}

func (t *Tracker) saveLocked() error {
	data, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(t.filePath, data, 0644)
}

// Record implements agent.UsageRecorder.
func (t *Tracker) Record(agentID string, success bool, latency time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	at := t.now()
	t.data.Aggregate.Total.Add(success, latency, at)
	entry := t.data.Aggregate.ByAgent[agentID]
	entry.Add(success, latency, at)
	t.data.Aggregate.ByAgent[agentID] = entry
	t.dirty = true

	logging.UsageDebug("recorded call agent=%s success=%v latency=%v", agentID, success, latency)
}

// Stats returns a copy of the aggregated stats.
func (t *Tracker) Stats() AggregatedStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := t.data.Aggregate
	stats.ByAgent = make(map[string]CallCounts, len(t.data.Aggregate.ByAgent))
	for k, v := range t.data.Aggregate.ByAgent {
		stats.ByAgent[k] = v
	}
	return stats
}
