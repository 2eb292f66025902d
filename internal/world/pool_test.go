package world

import "testing"

func TestPoolReusesOldestDeactivated(t *testing.T) {
	p := NewPool()
	_, a := p.Instantiate(Index{0, 0, 0})
	_, b := p.Instantiate(Index{1, 0, 0})

	if n := p.Deactivate(Index{0, 0, 0}, Index{1, 0, 0}, Index{9, 9, 9}); n != 2 {
		t.Fatalf("deactivated %d, want 2", n)
	}
	if p.Live() != 0 || p.Free() != 2 {
		t.Fatalf("live %d free %d", p.Live(), p.Free())
	}

	_, c := p.Instantiate(Index{5, 0, 5})
	if c != a {
		t.Error("expected oldest deactivated chunk to be reused first")
	}
	_, d := p.Instantiate(Index{6, 0, 6})
	if d != b {
		t.Error("expected second deactivated chunk to be reused next")
	}
	if p.Slots() != 2 {
		t.Errorf("allocated %d slots, want 2", p.Slots())
	}
}

func TestPoolStaleHandleDoesNotResolve(t *testing.T) {
	p := NewPool()
	h, _ := p.Instantiate(Index{0, 0, 0})
	p.Deactivate(Index{0, 0, 0})

	if _, ok := p.Get(Index{0, 0, 0}); ok {
		t.Fatal("deactivated index still resolves")
	}
	if _, ok := p.Resolve(h); ok {
		t.Fatal("stale handle resolves after deactivation")
	}

	// Same slot, new assignment: the old handle must stay stale.
	h2, _ := p.Instantiate(Index{3, 0, 3})
	if _, ok := p.Resolve(h); ok {
		t.Fatal("stale handle resolves to reassigned slot")
	}
	if _, ok := p.Resolve(h2); !ok {
		t.Fatal("current handle does not resolve")
	}
}

func TestPoolInstantiateReplacesRegistration(t *testing.T) {
	p := NewPool()
	h1, _ := p.Instantiate(Index{2, 0, 2})
	h2, _ := p.Instantiate(Index{2, 0, 2})

	if h1 == h2 {
		t.Fatal("re-instantiation returned the same handle")
	}
	if got, _ := p.HandleOf(Index{2, 0, 2}); got != h2 {
		t.Errorf("registry holds %v, want %v", got, h2)
	}
	if p.Live() != 1 {
		t.Errorf("live = %d, want 1", p.Live())
	}
}
