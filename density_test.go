package pma

import "testing"

func TestDensityThresholdEndpoints(t *testing.T) {
	const H = 4
	if got := upperDensityThreshold[uint](0, H); got != LeafUpperDensity {
		t.Errorf("upperDensityThreshold(0, %d) = %v, want %v", H, got, LeafUpperDensity)
	}
	if got := lowerDensityThreshold[uint](0, H); got != LeafLowerDensity {
		t.Errorf("lowerDensityThreshold(0, %d) = %v, want %v", H, got, LeafLowerDensity)
	}
}

func TestDensityThresholdMonotone(t *testing.T) {
	const H = 6
	for h := uint(0); h < H-1; h++ {
		if upperDensityThreshold[uint](h, H) < upperDensityThreshold[uint](h+1, H) {
			t.Errorf("upper threshold not monotone non-increasing: t[%d]=%v < t[%d]=%v", h, upperDensityThreshold[uint](h, H), h+1, upperDensityThreshold[uint](h+1, H))
		}
		if lowerDensityThreshold[uint](h, H) > lowerDensityThreshold[uint](h+1, H) {
			t.Errorf("lower threshold not monotone non-decreasing: p[%d]=%v > p[%d]=%v", h, lowerDensityThreshold[uint](h, H), h+1, lowerDensityThreshold[uint](h+1, H))
		}
	}
	for h := uint(0); h < H; h++ {
		if lowerDensityThreshold[uint](h, H) >= upperDensityThreshold[uint](h, H) {
			t.Errorf("height %d: lower threshold %v not below upper threshold %v", h, lowerDensityThreshold[uint](h, H), upperDensityThreshold[uint](h, H))
		}
	}
}

func TestWindowCapacity(t *testing.T) {
	p := New[int, uint]()
	for h := uint(0); h < p.height; h++ {
		want := p.seg << h
		if got := p.windowCapacity(h); got != want {
			t.Errorf("windowCapacity(%d) = %d, want %d", h, got, want)
		}
	}
}
