package pma

import "golang.org/x/exp/constraints"

// windowSize counts the occupied slots in [start, start+length). start must
// be aligned to length and length must be a power-of-two multiple of the
// segment size not exceeding the capacity; this is what makes the enclosing
// window in rebalanceUp always the unique aligned window containing the
// segment that triggered it. Any other window panics with
// PreconditionViolationError.
func (p *PMA[T, S]) windowSize(start, length S) S {
	if length == 0 || length&(length-1) != 0 || length%p.seg != 0 || start%length != 0 || start+length > p.cap {
		panic(&PreconditionViolationError{Msg: "windowSize: window misaligned or out of range"})
	}
	return S(p.occ.count(int(start), int(length)))
}

// alignedWindowStart returns the start of the unique window of the given
// capacity (a power of two) that contains index i, computed by masking
// rather than by any ad-hoc arithmetic walk.
func alignedWindowStart[S constraints.Unsigned](i, capacity S) S {
	return i &^ (capacity - 1)
}
