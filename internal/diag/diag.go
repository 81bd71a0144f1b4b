// Package diag collects advisory warnings produced while analyzing a project
// and building its injection graph. Warnings never interrupt a run; callers
// read them out at the end and decide how to surface them.
package diag

import "sync"

// Category classifies what a warning is about.
type Category string

const (
	CategoryTypeResolution Category = "type-resolution"
	CategoryAnonymousClass Category = "anonymous-class"
	CategoryDuplicateClass Category = "duplicate-class"
	CategoryAnalysis       Category = "analysis"
)

// Severity ranks a warning. Everything the engine emits is advisory.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Warning describes a single recoverable problem found during analysis.
type Warning struct {
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	File       string   `json:"file,omitempty"`
	Line       int      `json:"line,omitempty"`
	Suggestion string   `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
}

// Collector accumulates warnings across one pipeline invocation. It is safe
// for concurrent use. Multiple sequential runs in the same process must call
// Reset between runs so counts never leak across invocations.
type Collector struct {
	mu       sync.Mutex
	warnings []Warning
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends a warning. A zero Severity defaults to warning.
func (c *Collector) Add(w Warning) {
	if w.Severity == "" {
		w.Severity = SeverityWarning
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, w)
}

// Warnings returns a copy of all collected warnings in insertion order.
func (c *Collector) Warnings() []Warning {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Warning, len(c.warnings))
	copy(out, c.warnings)
	return out
}

// Count returns the number of collected warnings.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.warnings)
}

// Reset discards all collected warnings.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = nil
}
