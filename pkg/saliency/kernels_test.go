package saliency

import (
	"math"
	"testing"
)

func TestBinomialKernel5(t *testing.T) {
	k := binomialKernel5()
	checkShape(t, k, 5, 5)

	data := k.DataFloat32()
	var sum float64
	for _, v := range data {
		sum += float64(v)
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("kernel should sum to 1, got %g", sum)
	}

	if got := data[0]; math.Abs(float64(got)-1.0/256) > 1e-7 {
		t.Errorf("corner weight: want 1/256, got %g", got)
	}
	if got := data[2*5+2]; math.Abs(float64(got)-36.0/256) > 1e-7 {
		t.Errorf("center weight: want 36/256, got %g", got)
	}

	// Symmetric under 180-degree rotation
	for i := range data {
		if data[i] != data[len(data)-1-i] {
			t.Fatalf("kernel not symmetric at index %d", i)
		}
	}
}

func TestGaborKernelSizeAndPhase(t *testing.T) {
	k := gaborKernel(1, 0, 10, 0.5, math.Pi/2)
	checkShape(t, k, 13, 13)

	data := k.DataFloat32()
	// psi = pi/2 makes the carrier a sine, so the kernel is antisymmetric
	// under 180-degree rotation and vanishes at its center.
	if center := data[6*13+6]; math.Abs(float64(center)) > 1e-6 {
		t.Errorf("center should be ~0 for psi=pi/2, got %g", center)
	}
	for i := range data {
		if d := math.Abs(float64(data[i] + data[len(data)-1-i])); d > 1e-6 {
			t.Fatalf("kernel not antisymmetric at index %d (residual %g)", i, d)
		}
	}
}

func TestGaborKernelSizeScalesWithSigma(t *testing.T) {
	k := gaborKernel(2, 0, 10, 0.5, math.Pi/2)
	checkShape(t, k, 21, 21)
}

func TestDoGKernel(t *testing.T) {
	p := NewDoGParams()
	// Odd extents put the kernel center on a sample, where both Gaussians
	// evaluate to their full gains.
	k := dogKernel(9, 11, p)
	checkShape(t, k, 9, 11)

	data := k.DataFloat32()
	sigmaO := p.ExciteSigmaPct / 100 * 11
	sigmaI := p.InhibitSigmaPct / 100 * 11
	k1 := p.ExciteGain * p.ExciteGain / (2 * math.Pi * sigmaO * sigmaO)
	k2 := p.InhibitGain * p.InhibitGain / (2 * math.Pi * sigmaI * sigmaI)
	if k1 <= k2 {
		t.Fatalf("expected excitatory gain to dominate at center (k1=%g k2=%g)", k1, k2)
	}

	center := data[4*11+5]
	if math.Abs(float64(center)-(k1-k2)) > 1e-5 {
		t.Errorf("center sample: want %g, got %g", k1-k2, center)
	}
	if max := maxValue(k); max != center {
		t.Errorf("peak should sit at the kernel center: max %g, center %g", max, center)
	}
	if corner := data[0]; corner >= 0 {
		t.Errorf("far field should be inhibitory, corner = %g", corner)
	}

	// Radially symmetric about the map center
	for i := range data {
		if data[i] != data[len(data)-1-i] {
			t.Fatalf("kernel not symmetric at index %d", i)
		}
	}
}

func TestDoGKernelEvenExtents(t *testing.T) {
	// Even extents center the kernel on a half-integer grid point: the
	// narrow excitatory Gaussian can decay below the inhibitory one before
	// the nearest sample, so no positive peak is guaranteed, but symmetry
	// about the map center must hold.
	k := dogKernel(8, 10, NewDoGParams())
	checkShape(t, k, 8, 10)

	data := k.DataFloat32()
	for i := range data {
		if data[i] != data[len(data)-1-i] {
			t.Fatalf("kernel not symmetric at index %d", i)
		}
	}
}
