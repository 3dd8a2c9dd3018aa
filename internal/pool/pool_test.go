package pool

import (
	"math/rand"
	"testing"
)

func addN(p *Pool[string], n int) []int {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = p.Add("x")
	}
	return ids
}

func TestPoolAddSequential(t *testing.T) {
	var p Pool[string]

	ids := addN(&p, 4)
	for i, id := range ids {
		if id != i {
			t.Errorf("Add() #%d = %d, expected %d", i, id, i)
		}
	}
	if p.UpperBound() != 4 {
		t.Errorf("UpperBound() = %d, expected 4", p.UpperBound())
	}
	if p.Len() != 4 {
		t.Errorf("Len() = %d, expected 4", p.Len())
	}
}

func TestPoolReuseHint(t *testing.T) {
	var p Pool[string]
	addN(&p, 3)

	p.Remove(1)
	if p.UpperBound() != 3 {
		t.Errorf("Removing an inner slot should not change UpperBound, got %d", p.UpperBound())
	}

	if id := p.Add("y"); id != 1 {
		t.Errorf("Add() after Remove(1) = %d, expected 1", id)
	}
	if p.UpperBound() != 3 {
		t.Errorf("UpperBound() = %d, expected 3", p.UpperBound())
	}
}

func TestPoolTrimIsSingleStep(t *testing.T) {
	var p Pool[string]
	addN(&p, 4)

	p.Remove(2)
	p.Remove(3)

	// Slot 2 is free but stays inside the bound
	if p.UpperBound() != 3 {
		t.Errorf("UpperBound() = %d, expected 3 after single-step trim", p.UpperBound())
	}
	if _, ok := p.Get(2); ok {
		t.Error("Slot 2 should be free")
	}

	if id := p.Add("y"); id != 2 {
		t.Errorf("Add() = %d, expected the exposed free slot 2", id)
	}
	if p.UpperBound() != 3 {
		t.Errorf("UpperBound() = %d, expected 3", p.UpperBound())
	}
}

func TestPoolTrimLast(t *testing.T) {
	var p Pool[string]
	addN(&p, 3)

	before := p.UpperBound()
	p.Remove(before - 1)
	if p.UpperBound() != before-1 {
		t.Errorf("UpperBound() = %d, expected %d", p.UpperBound(), before-1)
	}

	// The next add grows the bound again at the same index
	if id := p.Add("y"); id != 2 {
		t.Errorf("Add() = %d, expected 2", id)
	}
	if p.Cap() != 3 {
		t.Errorf("Cap() = %d, expected 3 (slot storage reused)", p.Cap())
	}
}

func TestPoolResumesFromHint(t *testing.T) {
	var p Pool[string]
	addN(&p, 4)

	p.Remove(0)
	p.Remove(2)

	if id := p.Add("a"); id != 2 {
		t.Errorf("Add() = %d, expected 2 (hint points at last removal)", id)
	}
	if id := p.Add("b"); id != 0 {
		t.Errorf("Add() = %d, expected 0 (wraparound scan)", id)
	}
	if id := p.Add("c"); id != 4 {
		t.Errorf("Add() = %d, expected 4 (pool fully packed)", id)
	}
}

func TestPoolWraparound(t *testing.T) {
	var p Pool[string]
	addN(&p, 5)

	p.Remove(1)
	p.Remove(3)

	if id := p.Add("a"); id != 3 {
		t.Errorf("Add() = %d, expected 3", id)
	}
	if id := p.Add("b"); id != 1 {
		t.Errorf("Add() = %d, expected 1 after wrapping", id)
	}
	if p.UpperBound() != 5 {
		t.Errorf("UpperBound() = %d, expected 5", p.UpperBound())
	}
}

func TestPoolEmptyAfterRemovingEverything(t *testing.T) {
	var p Pool[string]
	ids := addN(&p, 3)
	for i := len(ids) - 1; i >= 0; i-- {
		p.Remove(ids[i])
	}

	if p.UpperBound() != 0 {
		t.Errorf("UpperBound() = %d, expected 0", p.UpperBound())
	}
	if p.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", p.Len())
	}
	if id := p.Add("again"); id != 0 {
		t.Errorf("Add() = %d, expected 0", id)
	}
}

func TestPoolForEach(t *testing.T) {
	var p Pool[int]
	for i := 0; i < 5; i++ {
		p.Add(i * 10)
	}
	p.Remove(1)
	p.Remove(3)

	var gotIDs, gotLive, gotVals []int
	p.ForEach(func(v, id, live int) {
		gotVals = append(gotVals, v)
		gotIDs = append(gotIDs, id)
		gotLive = append(gotLive, live)
	})

	expectedIDs := []int{0, 2, 4}
	expectedVals := []int{0, 20, 40}
	if len(gotIDs) != len(expectedIDs) {
		t.Fatalf("ForEach visited %d slots, expected %d", len(gotIDs), len(expectedIDs))
	}
	for i := range expectedIDs {
		if gotIDs[i] != expectedIDs[i] {
			t.Errorf("ForEach id #%d = %d, expected %d", i, gotIDs[i], expectedIDs[i])
		}
		if gotVals[i] != expectedVals[i] {
			t.Errorf("ForEach value #%d = %d, expected %d", i, gotVals[i], expectedVals[i])
		}
		if gotLive[i] != i {
			t.Errorf("ForEach live index #%d = %d, expected %d", i, gotLive[i], i)
		}
	}
}

func TestPoolRemoveFreeSlotPanics(t *testing.T) {
	tests := []struct {
		name string
		id   int
	}{
		{"already removed", 1},
		{"beyond upper bound", 7},
		{"negative", -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p Pool[string]
			addN(&p, 3)
			p.Remove(1)

			defer func() {
				if recover() == nil {
					t.Errorf("Remove(%d) should panic", tc.id)
				}
			}()
			p.Remove(tc.id)
		})
	}
}

// TestPoolRandomOps checks the reuse invariants against a simple model over
// many random add/remove sequences.
func TestPoolRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		var p Pool[int]
		live := make(map[int]int) // id -> value
		maxLive := 0

		for op := 0; op < 500; op++ {
			if len(live) == 0 || rng.Intn(3) != 0 {
				v := rng.Int()
				id := p.Add(v)
				if _, dup := live[id]; dup {
					t.Fatalf("round %d op %d: Add() returned live id %d", round, op, id)
				}
				live[id] = v
			} else {
				// Remove a random live id
				var ids []int
				p.ForEach(func(_ int, id, _ int) { ids = append(ids, id) })
				id := ids[rng.Intn(len(ids))]
				p.Remove(id)
				delete(live, id)
			}
			maxLive = max(maxLive, len(live))

			if p.Len() != len(live) {
				t.Fatalf("round %d op %d: Len() = %d, expected %d", round, op, p.Len(), len(live))
			}
			if p.UpperBound() > p.Cap() {
				t.Fatalf("round %d op %d: UpperBound() %d exceeds Cap() %d", round, op, p.UpperBound(), p.Cap())
			}
			if p.Cap() > maxLive {
				t.Fatalf("round %d op %d: Cap() %d exceeds max concurrent live %d", round, op, p.Cap(), maxLive)
			}
			for id, v := range live {
				if id >= p.UpperBound() {
					t.Fatalf("round %d op %d: live id %d not below UpperBound() %d", round, op, id, p.UpperBound())
				}
				if got, ok := p.Get(id); !ok || got != v {
					t.Fatalf("round %d op %d: Get(%d) = %d, %v, expected %d", round, op, id, got, ok, v)
				}
			}
		}
	}
}

func BenchmarkPoolChurn(b *testing.B) {
	var p Pool[int]
	ids := make([]int, 0, 64)
	for i := 0; i < 64; i++ {
		ids = append(ids, p.Add(i))
	}
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		i := n % len(ids)
		p.Remove(ids[i])
		ids[i] = p.Add(n)
	}
}
