// Package metrics collects operation outcomes from the ledger, the risk
// engine and the transfer orchestrator.
package metrics

import (
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	// Operation metrics
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)

	// Error metrics
	RecordError(operation, errType string)

	// Transaction metrics
	RecordTransaction(txType string, amount decimal.Decimal)

	// Risk metrics
	RecordRiskDecision(check, decision string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector
type NoopMetricsCollector struct{}

func (n *NoopMetricsCollector) RecordOperationDuration(string, time.Duration) {}
func (n *NoopMetricsCollector) RecordOperationResult(string, string)          {}
func (n *NoopMetricsCollector) RecordError(string, string)                    {}
func (n *NoopMetricsCollector) RecordTransaction(string, decimal.Decimal)     {}
func (n *NoopMetricsCollector) RecordRiskDecision(string, string)             {}

// CounterCollector keeps in-process counters. It backs the stats endpoint.
type CounterCollector struct {
	mu        sync.Mutex
	results   map[string]int64
	errors    map[string]int64
	decisions map[string]int64
	volume    map[string]decimal.Decimal
	durations map[string]time.Duration
}

// NewCounterCollector returns an empty collector.
func NewCounterCollector() *CounterCollector {
	return &CounterCollector{
		results:   make(map[string]int64),
		errors:    make(map[string]int64),
		decisions: make(map[string]int64),
		volume:    make(map[string]decimal.Decimal),
		durations: make(map[string]time.Duration),
	}
}

func (c *CounterCollector) RecordOperationDuration(operation string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durations[operation] += d
}

func (c *CounterCollector) RecordOperationResult(operation, result string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[operation+":"+result]++
}

func (c *CounterCollector) RecordError(operation, errType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors[operation+":"+errType]++
}

func (c *CounterCollector) RecordTransaction(txType string, amount decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volume[txType] = c.volume[txType].Add(amount)
}

func (c *CounterCollector) RecordRiskDecision(check, decision string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decisions[check+":"+decision]++
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Results   map[string]int64           `json:"results"`
	Errors    map[string]int64           `json:"errors"`
	Decisions map[string]int64           `json:"risk_decisions"`
	Volume    map[string]decimal.Decimal `json:"volume"`
	Durations map[string]string          `json:"durations"`
}

// Snapshot copies the current counters.
func (c *CounterCollector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Snapshot{
		Results:   make(map[string]int64, len(c.results)),
		Errors:    make(map[string]int64, len(c.errors)),
		Decisions: make(map[string]int64, len(c.decisions)),
		Volume:    make(map[string]decimal.Decimal, len(c.volume)),
		Durations: make(map[string]string, len(c.durations)),
	}
	for k, v := range c.results {
		s.Results[k] = v
	}
	for k, v := range c.errors {
		s.Errors[k] = v
	}
	for k, v := range c.decisions {
		s.Decisions[k] = v
	}
	for k, v := range c.volume {
		s.Volume[k] = v
	}
	for k, v := range c.durations {
		s.Durations[k] = v.String()
	}
	return s
}

// Keys returns the sorted result keys, mostly useful in tests and logs.
func (s Snapshot) Keys() []string {
	keys := make([]string, 0, len(s.Results))
	for k := range s.Results {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
