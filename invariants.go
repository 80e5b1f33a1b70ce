package pma

import "fmt"

// checkInvariants walks the whole PMA and returns an error describing the
// first broken invariant: sorted order, counter agreement, and density
// bounds at every height. It is exercised only from tests.
func (p *PMA[T, S]) checkInvariants() error {
	var prev T
	hasPrev := false
	count := S(0)
	for i := S(0); i < p.cap; i++ {
		if !p.occ.Get(int(i)) {
			continue
		}
		k := p.storage[i]
		if hasPrev && k < prev {
			return fmt.Errorf("sorted order violated at index %d: %v < %v", i, k, prev)
		}
		prev, hasPrev = k, true
		count++
	}
	if count != p.n {
		return fmt.Errorf("count mismatch: bitmap has %d set bits, n=%d", count, p.n)
	}

	const eps = 1e-9
	for h := S(0); h < p.height; h++ {
		length := p.windowCapacity(h)
		for start := S(0); start < p.cap; start += length {
			density := float64(p.windowSize(start, length)) / float64(length)
			lo, hi := p.lowerDensityThreshold(h), p.upperDensityThreshold(h)
			if density > hi+eps {
				return fmt.Errorf("window [%d,%d) at height %d density %.4f exceeds upper threshold %.4f", start, start+length, h, density, hi)
			}
			// The lower bound may relax at the root while the PMA is
			// globally near-empty and already floored at InitialCapacity
			if density < lo-eps && !(h == p.height-1 && p.cap == S(InitialCapacity)) {
				return fmt.Errorf("window [%d,%d) at height %d density %.4f below lower threshold %.4f", start, start+length, h, density, lo)
			}
		}
	}
	return nil
}
