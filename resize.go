package pma

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// computeShape picks a segment size and level count for a given capacity.
// Both cap and the returned seg are powers of two, so numSegments=cap/seg
// is automatically a power of two too and the level-count formula
// H=log2(numSegments)+1 needs no further rounding. The segment size is
// chosen as the power of two nearest to log2(cap) (ties broken toward the
// larger power, the same right-leaning tie-break nearestFree uses),
// following the classic choice of segment size in the Theta(log n) range.
func computeShape[S constraints.Unsigned](cap S) (seg, height S) {
	if cap <= 1 {
		return 1, 1
	}
	target := S(bits.Len64(uint64(cap)) - 1) // floor(log2(cap))
	seg = nearestPowerOfTwo(target)
	if seg > cap {
		seg = cap
	}
	if seg == 0 {
		seg = 1
	}
	numSegments := cap / seg
	height = S(bits.Len64(uint64(numSegments))-1) + 1
	return seg, height
}

// nearestPowerOfTwo returns the power of two closest to v (v>=1), breaking
// ties toward the larger of the two candidates.
func nearestPowerOfTwo[S constraints.Unsigned](v S) S {
	if v <= 1 {
		return 1
	}
	lo := S(1) << S(bits.Len64(uint64(v))-1)
	hi := lo << 1
	if v-lo < hi-v {
		return lo
	}
	return hi
}

// growResize doubles the capacity; it is invoked when the root window
// fails its upper threshold on insert.
func (p *PMA[T, S]) growResize() {
	p.resizeTo(p.cap * S(ScaleFactor))
}

// shrinkResize halves the capacity, floored at InitialCapacity; it is
// invoked when the root window fails its lower threshold on erase. A PMA
// already at the floor is left untouched, which is the only place the
// density invariant is allowed to relax.
func (p *PMA[T, S]) shrinkResize() {
	newCap := p.cap / S(ScaleFactor)
	if newCap < S(InitialCapacity) {
		newCap = S(InitialCapacity)
	}
	if newCap == p.cap {
		return
	}
	p.resizeTo(newCap)
}

// resizeTo allocates a new backing store and bitmap of the given capacity,
// copies the live keys into it compacted at the head, recomputes the
// segment size and level count, and spreads the keys evenly across the
// whole new array. The new storage is built in full before any field of p
// is mutated, so an allocation failure (surfaced by safeMake as a panicked
// AllocationFailureError) leaves p entirely unchanged.
func (p *PMA[T, S]) resizeTo(newCap S) {
	newSeg, newHeight := computeShape(newCap)
	newStorage := safeMake[T](int(newCap))
	newOcc := newBitset(int(newCap))

	i := 0
	for idx := S(0); idx < p.cap; idx++ {
		if p.occ.Get(int(idx)) {
			newStorage[i] = p.storage[idx]
			newOcc.Up(i)
			i++
		}
	}

	p.storage = newStorage
	p.occ = newOcc
	p.cap = newCap
	p.seg = newSeg
	p.height = newHeight
	p.spreadRight(0, p.cap, S(i))
}
