package session

import (
	"sync"
	"testing"
	"time"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	clock := time.Date(2024, 5, 1, 23, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return clock }

	a := r.Open("10.0.0.1:5000", "25", "WITHOUT")
	clock = clock.Add(time.Minute)
	b := r.Open("10.0.0.2:5000", "30", "WITH")
	if a == b || len(a) != 36 {
		t.Fatalf("ids = %q, %q", a, b)
	}

	r.Update(a, "30", "WITH")
	r.Calculated(a)
	r.Calculated(a)
	r.Calculated("")

	got, ok := r.Get(a)
	if !ok || got.Citadel != "30" || got.Mode != "WITH" || got.Calculations != 2 {
		t.Errorf("Get(a) = %+v, %v", got, ok)
	}
	list := r.List()
	if len(list) != 2 || list[0].ID != a || list[1].ID != b {
		t.Errorf("List = %+v", list)
	}
	if n := r.CalculationsToday(); n != 3 {
		t.Errorf("CalculationsToday = %d, want 3", n)
	}

	// next UTC day starts a fresh counter
	clock = clock.Add(2 * time.Hour)
	if n := r.CalculationsToday(); n != 0 {
		t.Errorf("CalculationsToday after midnight = %d, want 0", n)
	}

	r.Close(a)
	if _, ok := r.Get(a); ok || r.Len() != 1 {
		t.Errorf("session %s still open", a)
	}
	// updates to closed sessions are ignored
	r.Update(a, "10", "WITH")
	if r.Len() != 1 {
		t.Error("Update resurrected a closed session")
	}
}

func TestResetDaily(t *testing.T) {
	r := NewRegistry()
	r.Calculated("")
	r.ResetDaily()
	if n := r.CalculationsToday(); n != 0 {
		t.Errorf("CalculationsToday after reset = %d", n)
	}
}

func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := r.Open("", "25", "WITHOUT")
			r.Calculated(id)
			_ = r.List()
			r.Close(id)
		}()
	}
	wg.Wait()
	if r.Len() != 0 || r.CalculationsToday() != 50 {
		t.Errorf("Len = %d, today = %d", r.Len(), r.CalculationsToday())
	}
}
