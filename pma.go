// Package pma implements a Packed-Memory Array: a contiguous,
// sparsely-populated array that keeps a dynamic multiset of ordered keys in
// sorted order with controlled gaps, so that insertions move few elements
// on average and ascending scans are cache-oblivious. It is single-writer
// and single-threaded; see the package-level doc on PMA for the full
// contract.
package pma

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// PMA is a dynamic ordered multiset of keys of type T backed by a packed
// array. S is the unsigned integer type used for capacities, indices and
// counts; pick a type wide enough that Capacity() can never overflow it,
// the same discipline other ordered container types apply to their own
// size parameter.
//
// A PMA is single-writer: no method may be called concurrently with any
// other method on the same PMA from a different goroutine. There is no
// internal locking.
type PMA[T cmp.Ordered, S constraints.Unsigned] struct {
	storage []T
	occ     bitset
	cap     S // C: current capacity, a power of two
	seg     S // S: segment size, a power of two dividing cap
	height  S // H: number of implicit tree levels; root height is H-1
	n       S // n: live key count
}

// New returns an empty PMA with capacity InitialCapacity.
func New[T cmp.Ordered, S constraints.Unsigned]() *PMA[T, S] {
	seg, height := computeShape(S(InitialCapacity))
	return &PMA[T, S]{
		storage: safeMake[T](InitialCapacity),
		occ:     newBitset(InitialCapacity),
		cap:     S(InitialCapacity),
		seg:     seg,
		height:  height,
	}
}

// Size returns the number of live keys.
func (p *PMA[T, S]) Size() S {
	return p.n
}

// Capacity returns the current backing capacity C.
func (p *PMA[T, S]) Capacity() S {
	return p.cap
}

// At returns the key stored at index i and true if that slot is occupied,
// or the zero value and false if it is free. It panics with
// PreconditionViolationError if i is out of range; it exists for debugging
// and inspection and is not required by any other operation's correctness.
func (p *PMA[T, S]) At(i S) (key T, ok bool) {
	if i >= p.cap {
		panic(&PreconditionViolationError{Msg: "At: index out of range"})
	}
	if !p.occ.Get(int(i)) {
		return key, false
	}
	return p.storage[i], true
}

// Insert adds x to the multiset. Duplicates are allowed and are placed
// immediately after the existing run of equal keys.
func (p *PMA[T, S]) Insert(x T) {
	for {
		seg := p.segmentOf(x)
		pos := p.positionWithin(seg, x)

		if pos < seg+p.seg && !p.occ.Get(int(pos)) {
			p.storage[pos] = x
			p.occ.Up(int(pos))
			p.n++
			p.afterInsert(seg)
			return
		}

		if q, ok := p.nearestFree(seg, pos); ok {
			p.shiftAndPlace(pos, q, x)
			p.n++
			p.afterInsert(seg)
			return
		}

		// Neither slot was free, so the segment must be entirely full
		// (density 1.0): create room first, then retry from scratch since
		// the rebalance may have changed the array's shape entirely (a
		// resize changes cap/seg/height). If the segment turns out not to
		// be full, nearestFree or positionWithin has a bug elsewhere and
		// rebalanceUp would silently redistribute without making room,
		// spinning this loop forever. Panic instead of spinning.
		if p.windowSize(seg, p.seg) != p.seg {
			panic(&PreconditionViolationError{Msg: "Insert: nearestFree reported no free slot in a non-full segment"})
		}
		p.rebalanceUp(seg, true)
	}
}

// afterInsert evaluates the leaf density of the segment an insert just
// touched and starts a rebalance if it has reached its upper threshold.
func (p *PMA[T, S]) afterInsert(seg S) {
	density := float64(p.windowSize(seg, p.seg)) / float64(p.seg)
	if density >= p.upperDensityThreshold(0) {
		p.rebalanceUp(seg, true)
	}
}

// nearestFree searches segment seg (whose bounds are [seg, seg+p.seg)) for
// the slot closest to pos that is free, preferring the shorter distance and,
// on a tie, the slot to the right. pos itself may be one past the segment
// (when every live key in the segment is <= x); the search still finds the
// nearest free slot to that conceptual position, if any exists. The
// farthest a free slot can be from pos is p.seg (pos at segEnd, the free
// slot at seg itself), so d must range up to and including p.seg, not just
// up to p.seg-1.
func (p *PMA[T, S]) nearestFree(seg, pos S) (S, bool) {
	segEnd := seg + p.seg
	for d := S(0); d <= p.seg; d++ {
		right := pos + d
		if right < segEnd && !p.occ.Get(int(right)) {
			return right, true
		}
		if d > 0 && pos >= seg+d {
			left := pos - d
			if left >= seg && !p.occ.Get(int(left)) {
				return left, true
			}
		}
	}
	return 0, false
}

// shiftAndPlace makes room for x at the insertion point pos by shifting the
// contiguous run of keys between pos and the free slot q by one slot toward
// q, then writes x. If q is at or after pos the run [pos, q) moves right by
// one, opening pos; otherwise the run (q, pos) moves left by one, opening
// pos-1, and x lands there instead so order is preserved.
func (p *PMA[T, S]) shiftAndPlace(pos, q S, x T) {
	if q >= pos {
		for i := q; i > pos; i-- {
			p.storage[i] = p.storage[i-1]
		}
		p.storage[pos] = x
	} else {
		for i := q; i < pos-1; i++ {
			p.storage[i] = p.storage[i+1]
		}
		p.storage[pos-1] = x
	}
	p.occ.Up(int(q))
}

// findSlot returns the index of an occupied slot holding x, or ok=false if
// no live key equals x. It uses the Locator to find the candidate segment
// and then scans it directly, since positionWithin locates an insertion
// point rather than an exact match.
func (p *PMA[T, S]) findSlot(x T) (S, bool) {
	seg := p.segmentOf(x)
	end := seg + p.seg
	for i := seg; i < end; i++ {
		if p.occ.Get(int(i)) && p.storage[i] == x {
			return i, true
		}
	}
	return 0, false
}

// Erase removes one occurrence of x, returning NotFoundError if none exists.
func (p *PMA[T, S]) Erase(x T) error {
	slot, found := p.findSlot(x)
	if !found {
		return &NotFoundError{Key: x}
	}

	var zero T
	seg := alignedWindowStart(slot, p.seg)
	p.storage[slot] = zero
	p.occ.Down(int(slot))
	p.n--

	density := float64(p.windowSize(seg, p.seg)) / float64(p.seg)
	if density < p.lowerDensityThreshold(0) {
		p.rebalanceUp(seg, false)
	}
	return nil
}

// Predecessor returns the largest live key <= x, or NotFoundError if none
// exists.
func (p *PMA[T, S]) Predecessor(x T) (T, error) {
	var found T
	ok := false
	for i := S(0); i < p.cap; i++ {
		if !p.occ.Get(int(i)) {
			continue
		}
		k := p.storage[i]
		if k > x {
			break
		}
		found, ok = k, true
	}
	if !ok {
		return found, &NotFoundError{Key: x}
	}
	return found, nil
}

// Scan calls emit for every live key k with lo <= k <= hi, in ascending
// order, stopping early if emit returns false, the same closure-as-iterator
// contract an in-order tree traversal exposes.
func (p *PMA[T, S]) Scan(lo, hi T, emit func(T) bool) {
	for i := S(0); i < p.cap; i++ {
		if !p.occ.Get(int(i)) {
			continue
		}
		k := p.storage[i]
		if k < lo {
			continue
		}
		if k > hi {
			return
		}
		if !emit(k) {
			return
		}
	}
}
