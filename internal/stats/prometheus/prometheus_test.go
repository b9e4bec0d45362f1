package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNew_DefaultRegistry(t *testing.T) {
	c := New(nil)
	if c == nil {
		t.Fatal("New(nil) returned nil")
	}
	if c.registry == nil {
		t.Error("registry should not be nil")
	}
}

func TestCollector_IncCounter(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.IncCounter("savekit_encodes_total", 5)
	c.IncCounter("savekit_encodes_total", 3)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, m := range metrics {
		if m.GetName() != "savekit_encodes_total" {
			continue
		}
		found = true
		if val := m.GetMetric()[0].GetCounter().GetValue(); val != 8 {
			t.Errorf("counter value = %v, want 8", val)
		}
	}
	if !found {
		t.Error("counter savekit_encodes_total not found in registry")
	}
}

func TestCollector_SetGauge(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.SetGauge("savekit_workspace_files", 42)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, m := range metrics {
		if m.GetName() != "savekit_workspace_files" {
			continue
		}
		found = true
		if val := m.GetMetric()[0].GetGauge().GetValue(); val != 42 {
			t.Errorf("gauge value = %v, want 42", val)
		}
	}
	if !found {
		t.Error("gauge savekit_workspace_files not found in registry")
	}
}

func TestCollector_ObserveHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	c.ObserveHistogram("savekit_compression_ratio", 0.2)
	c.ObserveHistogram("savekit_compression_ratio", 0.4)
	c.ObserveHistogram("savekit_compression_ratio", 0.8)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	found := false
	for _, m := range metrics {
		if m.GetName() != "savekit_compression_ratio" {
			continue
		}
		found = true
		if count := m.GetMetric()[0].GetHistogram().GetSampleCount(); count != 3 {
			t.Errorf("histogram count = %v, want 3", count)
		}
	}
	if !found {
		t.Error("histogram savekit_compression_ratio not found in registry")
	}
}

func TestCollector_ReusesExistingMetric(t *testing.T) {
	reg := prometheus.NewRegistry()

	// Pre-register a counter with the same name.
	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "savekit_decodes_total",
		Help: "savekit_decodes_total",
	})
	reg.MustRegister(existing)
	existing.Add(100)

	c := New(reg)
	c.IncCounter("savekit_decodes_total", 5)

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, m := range metrics {
		if m.GetName() == "savekit_decodes_total" {
			if val := m.GetMetric()[0].GetCounter().GetValue(); val != 105 {
				t.Errorf("counter value = %v, want 105", val)
			}
		}
	}
}

func TestCollector_ConcurrentAccess(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.IncCounter("savekit_chunks_total", 1)
				c.ObserveHistogram("savekit_compression_ratio", float64(j))
			}
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}

	metrics, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, m := range metrics {
		if m.GetName() == "savekit_chunks_total" {
			if val := m.GetMetric()[0].GetCounter().GetValue(); val != 1000 {
				t.Errorf("counter value = %v, want 1000", val)
			}
		}
	}
}
