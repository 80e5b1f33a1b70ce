package pma

import "golang.org/x/exp/constraints"

// Stable ABI constants for the density model. Ordering
// LeafLowerDensity < RootLowerDensity < RootUpperDensity < LeafUpperDensity
// must be preserved by any implementer who overrides these.
const (
	InitialCapacity  = 4
	ScaleFactor      = 2
	LeafLowerDensity = 0.1
	RootLowerDensity = 0.2
	RootUpperDensity = 0.5
	LeafUpperDensity = 1.0
)

// upperDensityThreshold and lowerDensityThreshold are pure, total functions
// of a window's height h and the tree's level count H (0 <= h < H, leaf at
// h=0, root at h=H-1). They are kept as free functions, not methods, so
// they can be exercised directly without constructing a PMA.
func upperDensityThreshold[S constraints.Unsigned](h, H S) float64 {
	hh, HH := float64(h), float64(H)
	return RootUpperDensity + (LeafUpperDensity-RootUpperDensity)*(HH-hh)/HH
}

func lowerDensityThreshold[S constraints.Unsigned](h, H S) float64 {
	hh, HH := float64(h), float64(H)
	return RootLowerDensity - (RootLowerDensity-LeafLowerDensity)*(HH-hh)/HH
}

func (p *PMA[T, S]) upperDensityThreshold(h S) float64 {
	return upperDensityThreshold(h, p.height)
}

func (p *PMA[T, S]) lowerDensityThreshold(h S) float64 {
	return lowerDensityThreshold(h, p.height)
}

// windowCapacity returns S << h, the number of slots in a window of height
// h. Height 0 is a segment; height H-1 is the whole array.
func (p *PMA[T, S]) windowCapacity(h S) S {
	return p.seg << h
}
