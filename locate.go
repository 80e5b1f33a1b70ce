package pma

// segmentOf returns the starting index of the segment x belongs to:
// scanning segments left to right, x belongs to the leftmost segment whose
// largest live key is >= x, or to the last non-empty segment if x exceeds
// every live key (an empty PMA falls back to segment 0). Empty segments are
// skipped entirely, so a run of gaps between populated segments never
// influences the result.
func (p *PMA[T, S]) segmentOf(x T) S {
	numSegments := p.cap / p.seg
	var lastNonEmpty S
	for i := S(0); i < numSegments; i++ {
		start := i * p.seg
		maxKey, ok := p.segmentMax(start)
		if !ok {
			continue
		}
		lastNonEmpty = start
		if maxKey >= x {
			return start
		}
	}
	return lastNonEmpty
}

// segmentMax returns the key of the rightmost occupied slot in the segment
// starting at start, or ok=false if the segment holds no live keys.
func (p *PMA[T, S]) segmentMax(start S) (key T, ok bool) {
	end := start + p.seg
	for i := end; i > start; i-- {
		if p.occ.Get(int(i - 1)) {
			return p.storage[i-1], true
		}
	}
	return key, false
}

// positionWithin returns the index inside segment seg where x should be
// written to preserve order: for the run of live keys k0<=k1<=... at
// indices i0<i1<... in the segment, the smallest ij with kj>x, or one past
// the last occupied index if no such key exists (which may fall one slot
// past the end of the segment when it is entirely full of keys <= x). The
// returned position may already be occupied, or even out of the segment's
// bounds in that saturated-tail case; both are handled by the caller.
func (p *PMA[T, S]) positionWithin(seg S, x T) S {
	end := seg + p.seg
	lastOccupied := seg
	sawAny := false
	for i := seg; i < end; i++ {
		if p.occ.Get(int(i)) {
			if p.storage[i] > x {
				return i
			}
			lastOccupied = i
			sawAny = true
		}
	}
	if sawAny {
		return lastOccupied + 1
	}
	return seg
}
