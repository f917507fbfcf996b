package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewSweepMetricsDisabled(t *testing.T) {
	resetRegistry()

	m := NewSweepMetrics()
	if m != nil {
		t.Fatal("expected nil metrics when registry is not initialized")
	}

	// Nil receiver methods must be safe no-ops.
	m.RecordSweep("success", time.Second)
	m.RecordDeleted(4)
	m.RecordMarked(2)
	m.RecordPruned(5)
	m.SetCatalogSize(10, 8, 12)
}

func TestSweepMetricsRecording(t *testing.T) {
	resetRegistry()
	InitRegistry()
	defer resetRegistry()

	m := NewSweepMetrics()
	if m == nil {
		t.Fatal("expected metrics when registry is initialized")
	}

	m.RecordSweep("success", 100*time.Millisecond)
	m.RecordDeleted(4)
	m.RecordDeleted(3)
	m.RecordMarked(2)
	m.RecordPruned(5)
	m.SetCatalogSize(10, 8, 12)

	if got := testutil.ToFloat64(m.entitiesDeleted); got != 7 {
		t.Errorf("entitiesDeleted = %v, want 7", got)
	}
	if got := testutil.ToFloat64(m.entitiesMarked); got != 2 {
		t.Errorf("entitiesMarked = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.edgesPruned); got != 5 {
		t.Errorf("edgesPruned = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.catalogEntities); got != 10 {
		t.Errorf("catalogEntities = %v, want 10", got)
	}
	if got := testutil.ToFloat64(m.sweeps.WithLabelValues("success")); got != 1 {
		t.Errorf("sweeps{success} = %v, want 1", got)
	}
}

func TestRecordIgnoresNonPositive(t *testing.T) {
	resetRegistry()
	InitRegistry()
	defer resetRegistry()

	m := NewSweepMetrics()
	m.RecordDeleted(0)
	m.RecordDeleted(-1)

	if got := testutil.ToFloat64(m.entitiesDeleted); got != 0 {
		t.Errorf("entitiesDeleted = %v, want 0", got)
	}
}

func TestInitRegistryIdempotent(t *testing.T) {
	resetRegistry()
	InitRegistry()
	first := GetRegistry()
	InitRegistry()
	if GetRegistry() != first {
		t.Error("InitRegistry should not replace an existing registry")
	}
	resetRegistry()
}
