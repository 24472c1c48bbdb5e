package observability

import (
	"strconv"
	"sync"
	"time"
)

// LookupOutcome classifies the result of one ticket lookup.
type LookupOutcome string

const (
	OutcomeFound     LookupOutcome = "found"
	OutcomeNotFound  LookupOutcome = "not_found"
	OutcomeHTTPError LookupOutcome = "http_error"
	OutcomeError     LookupOutcome = "error"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	lookupCount  map[LookupOutcome]int64
	lookupTime   time.Duration
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests     map[string]int64        `json:"requests"`
	Lookups      map[LookupOutcome]int64 `json:"lookups"`
	LookupMillis int64                   `json:"lookup_millis_total"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		lookupCount:  make(map[LookupOutcome]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordLookup counts a ticket lookup and its API latency.
func (m *Metrics) RecordLookup(outcome LookupOutcome, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupCount[outcome]++
	m.lookupTime += duration
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Requests: map[string]int64{},
		Lookups:  map[LookupOutcome]int64{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range m.requestCount {
		snap.Requests[k] = v
	}
	for k, v := range m.lookupCount {
		snap.Lookups[k] = v
	}
	snap.LookupMillis = m.lookupTime.Milliseconds()
	return snap
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
