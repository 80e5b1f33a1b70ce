package pma

// rebalanceUp ascends the implicit tree starting from the leaf window that
// contains seg, widening one level at a time, until it finds a window that
// satisfies its height-specific threshold: growing selects the upper
// threshold (used after an insert saturates a segment), !growing selects
// the lower threshold (used after an erase empties one out). If the root
// itself is still out of threshold, it hands off to Resize instead of
// redistributing.
func (p *PMA[T, S]) rebalanceUp(seg S, growing bool) {
	for h := S(0); h < p.height; h++ {
		length := p.windowCapacity(h)
		start := alignedWindowStart(seg, length)
		density := float64(p.windowSize(start, length)) / float64(length)

		var violated bool
		if growing {
			violated = density >= p.upperDensityThreshold(h)
		} else {
			violated = density < p.lowerDensityThreshold(h)
		}
		if !violated {
			p.redistribute(start, length)
			return
		}
		if h == p.height-1 {
			if growing {
				p.growResize()
			} else {
				p.shrinkResize()
			}
			return
		}
	}
}

// redistribute evenly respaces the live keys of the window [w, w+l) across
// it in two O(l) passes: compact all live keys to the head in order, then
// spread them out with a uniform stride.
func (p *PMA[T, S]) redistribute(w, l S) {
	m := p.compactLeft(w, l)
	p.spreadRight(w, l, m)
}

// compactLeft moves every live key in [w, w+l) down to the next free slot
// at the window's head, preserving order, and returns the number of live
// keys moved. After it returns, [w, w+m) holds the keys in sorted order and
// [w+m, w+l) is entirely free.
func (p *PMA[T, S]) compactLeft(w, l S) S {
	next := w
	end := w + l
	var zero T
	for i := w; i < end; i++ {
		if !p.occ.Get(int(i)) {
			continue
		}
		if next != i {
			p.storage[next] = p.storage[i]
			p.occ.Up(int(next))
			p.storage[i] = zero
			p.occ.Down(int(i))
		}
		next++
	}
	return next - w
}

// spreadRight distributes the m keys compacted at the head of [w, w+l)
// evenly across the whole window with stride gap = l/m, walking from the
// right so that every destination slot is either untouched or already
// vacated by an earlier step in this same pass.
func (p *PMA[T, S]) spreadRight(w, l, m S) {
	if m == 0 {
		return
	}
	gap := l / m
	var zero T
	for i := S(0); i < m; i++ {
		src := w + m - 1 - i
		dst := w + l - 1 - i*gap
		if dst == src {
			continue
		}
		p.storage[dst] = p.storage[src]
		p.occ.Up(int(dst))
		p.storage[src] = zero
		p.occ.Down(int(src))
	}
}
