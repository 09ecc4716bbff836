package splash

import "testing"

func fill(c *Collection, n int) []*Splash {
	out := make([]*Splash, n)
	for i := range out {
		out[i] = &Splash{ID: uint64(i + 1)}
		c.Insert(out[i])
	}
	return out
}

func ids(c *Collection) []uint64 {
	var out []uint64
	for _, s := range c.All() {
		out = append(out, s.ID)
	}
	return out
}

func TestCollectionInsertBelowCap(t *testing.T) {
	c := NewCollection(30)
	fill(c, 10)
	if c.Len() != 10 {
		t.Fatalf("Len = %d, want 10", c.Len())
	}
	for i, id := range ids(c) {
		if id != uint64(i+1) {
			t.Fatalf("order broken at %d: %v", i, ids(c))
		}
	}
}

func TestCollectionEvictsOldestAtCap(t *testing.T) {
	c := NewCollection(30)
	fill(c, 30)

	fresh := &Splash{ID: 100}
	evicted := c.Insert(fresh)

	if evicted == nil || evicted.ID != 1 {
		t.Fatalf("evicted %v, want splash 1", evicted)
	}
	if c.Len() != 30 {
		t.Fatalf("Len = %d, want 30", c.Len())
	}
	got := ids(c)
	for i := 0; i < 29; i++ {
		if got[i] != uint64(i+2) {
			t.Fatalf("remainder order broken: %v", got)
		}
	}
	if got[29] != 100 {
		t.Fatalf("new splash should be last, got %v", got)
	}
	if c.Index(fresh) != 29 {
		t.Errorf("Index(fresh) = %d, want 29", c.Index(fresh))
	}
	if c.Index(evicted) != -1 {
		t.Errorf("evicted splash still indexed")
	}
}

func TestCollectionNoEvictionBelowCap(t *testing.T) {
	c := NewCollection(3)
	fill(c, 2)
	if ev := c.Insert(&Splash{}); ev != nil {
		t.Errorf("unexpected eviction of %v", ev)
	}
}

func TestCollectionReset(t *testing.T) {
	c := NewCollection(5)
	fill(c, 4)

	if n := c.Reset(); n != 4 {
		t.Errorf("Reset() = %d, want 4", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len after reset = %d", c.Len())
	}
	for range c.All() {
		t.Fatal("iteration after reset should be empty")
	}

	fill(c, 5)
	if c.Len() != 5 || c.At(0).ID != 1 {
		t.Errorf("collection unusable after reset: %v", ids(c))
	}
}

func TestCollectionAllStopsEarly(t *testing.T) {
	c := NewCollection(5)
	fill(c, 5)
	n := 0
	for i := range c.All() {
		n++
		if i == 1 {
			break
		}
	}
	if n != 2 {
		t.Errorf("visited %d, want 2", n)
	}
}
