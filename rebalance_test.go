package pma

import "testing"

func TestCompactLeft(t *testing.T) {
	p := mkPMA([]int{0, 1, 0, 3, 0, 5, 0, 0}, []int{1, 3, 5}, 8, 1)
	m := p.compactLeft(0, 8)
	if m != 3 {
		t.Fatalf("compactLeft returned m=%d, want 3", m)
	}
	want := []int{1, 3, 5}
	for i, w := range want {
		if !p.occ.Get(i) || p.storage[i] != w {
			t.Errorf("index %d: got (%v,%v), want (%v,true)", i, p.storage[i], p.occ.Get(i), w)
		}
	}
	for i := 3; i < 8; i++ {
		if p.occ.Get(i) {
			t.Errorf("index %d should be free after compaction", i)
		}
	}
}

func TestSpreadRightUniformStride(t *testing.T) {
	p := mkPMA([]int{1, 3, 5, 0, 0, 0, 0, 0}, []int{0, 1, 2}, 8, 1)
	p.spreadRight(0, 8, 3)
	// gap = 8/3 = 2; expect keys placed at 7, 5, 3 (from the right).
	wantOccupied := map[int]int{7: 5, 5: 3, 3: 1}
	for i := 0; i < 8; i++ {
		want, shouldBeOccupied := wantOccupied[i]
		if p.occ.Get(i) != shouldBeOccupied {
			t.Errorf("index %d occupied=%v, want %v", i, p.occ.Get(i), shouldBeOccupied)
			continue
		}
		if shouldBeOccupied && p.storage[i] != want {
			t.Errorf("index %d = %d, want %d", i, p.storage[i], want)
		}
	}
}

func TestRedistributePreservesSortedOrderAndCount(t *testing.T) {
	p2 := mkPMA([]int{1, 0, 2, 0, 5, 0, 9, 0}, []int{0, 2, 4, 6}, 8, 1)
	p2.redistribute(0, 8)
	prev, hasPrev := 0, false
	count := 0
	for i := 0; i < 8; i++ {
		if !p2.occ.Get(i) {
			continue
		}
		count++
		if hasPrev && p2.storage[i] < prev {
			t.Errorf("order broken at index %d: %d < %d", i, p2.storage[i], prev)
		}
		prev, hasPrev = p2.storage[i], true
	}
	if count != 4 {
		t.Errorf("redistribute changed live count to %d, want 4", count)
	}
}

func TestRebalanceUpGrowsOnSaturatedRoot(t *testing.T) {
	p := New[int, uint]()
	for _, x := range []int{1, 2, 3, 4} {
		p.Insert(x)
	}
	if p.cap <= InitialCapacity {
		t.Fatalf("capacity did not grow past InitialCapacity: %d", p.cap)
	}
	if err := p.checkInvariants(); err != nil {
		t.Errorf("invariants broken after inserts: %v", err)
	}
}
