package diag

import (
	"sync"
	"testing"
)

func TestCollector_DefaultSeverity(t *testing.T) {
	c := NewCollector()
	c.Add(Warning{Category: CategoryTypeResolution, Message: "parameter skipped"})
	c.Add(Warning{Category: CategoryAnalysis, Message: "fyi", Severity: SeverityInfo})

	got := c.Warnings()
	if len(got) != 2 {
		t.Fatalf("count = %d, want 2", len(got))
	}
	if got[0].Severity != SeverityWarning {
		t.Errorf("severity = %q, want zero value to default to %q", got[0].Severity, SeverityWarning)
	}
	if got[1].Severity != SeverityInfo {
		t.Errorf("severity = %q, want explicit %q preserved", got[1].Severity, SeverityInfo)
	}
}

func TestCollector_InsertionOrder(t *testing.T) {
	c := NewCollector()
	for _, msg := range []string{"first", "second", "third"} {
		c.Add(Warning{Category: CategoryAnalysis, Message: msg})
	}

	got := c.Warnings()
	want := []string{"first", "second", "third"}
	for i, w := range got {
		if w.Message != want[i] {
			t.Errorf("warnings[%d] = %q, want %q", i, w.Message, want[i])
		}
	}
}

func TestCollector_WarningsReturnsCopy(t *testing.T) {
	c := NewCollector()
	c.Add(Warning{Category: CategoryAnalysis, Message: "original"})

	got := c.Warnings()
	got[0].Message = "mutated"

	if c.Warnings()[0].Message != "original" {
		t.Error("mutating the returned slice must not affect the collector")
	}
}

func TestCollector_Reset(t *testing.T) {
	c := NewCollector()
	c.Add(Warning{Category: CategoryDuplicateClass, Message: "dup"})
	c.Reset()

	if c.Count() != 0 {
		t.Errorf("count after reset = %d, want 0", c.Count())
	}

	c.Add(Warning{Category: CategoryAnonymousClass, Message: "after reset"})
	if c.Count() != 1 {
		t.Errorf("count = %d, want 1", c.Count())
	}
}

func TestCollector_ConcurrentAdd(t *testing.T) {
	c := NewCollector()

	var wg sync.WaitGroup
	const workers = 16
	const perWorker = 100
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.Add(Warning{Category: CategoryAnalysis, Message: "parallel"})
			}
		}()
	}
	wg.Wait()

	if c.Count() != workers*perWorker {
		t.Errorf("count = %d, want %d", c.Count(), workers*perWorker)
	}
}
