package usage

import "time"

// UsageData represents the root structure stored in persistence.
type UsageData struct {
	Version   string          `json:"version"`
	Aggregate AggregatedStats `json:"aggregate"`
}

// AggregatedStats holds counters per agent plus a project total.
type AggregatedStats struct {
	Total   CallCounts            `json:"total"`
	ByAgent map[string]CallCounts `json:"by_agent"`
}

// CallCounts holds invocation counters.
type CallCounts struct {
	Calls          int64     `json:"calls"`
	Successes      int64     `json:"successes"`
	Failures       int64     `json:"failures"`
	TotalLatencyMs int64     `json:"total_latency_ms"`
	LastCall       time.Time `json:"last_call,omitempty"`
}

// Add records one call.
func (cc *CallCounts) Add(success bool, latency time.Duration, at time.Time) {
	cc.Calls++
	if success {
		cc.Successes++
	} else {
		cc.Failures++
	}
	cc.TotalLatencyMs += latency.Milliseconds()
	if at.After(cc.LastCall) {
		cc.LastCall = at
	}
}

// AvgLatency returns the mean call latency.
func (cc CallCounts) AvgLatency() time.Duration {
	if cc.Calls == 0 {
		return 0
	}
	return time.Duration(cc.TotalLatencyMs/cc.Calls) * time.Millisecond
}
