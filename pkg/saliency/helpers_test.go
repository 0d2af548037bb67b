package saliency

import (
	"math"
	"testing"
)

func matOf(t *testing.T, rows, cols int, values ...float32) Mat {
	t.Helper()
	if len(values) != rows*cols {
		t.Fatalf("matOf: want %d values, got %d", rows*cols, len(values))
	}
	return NewMatFromFloat32(values, rows, cols)
}

func constMat(rows, cols int, v float32) Mat {
	m := NewMatWithSize(rows, cols)
	data := m.DataFloat32()
	for i := range data {
		data[i] = v
	}
	return m
}

func checkShape(t *testing.T, m Mat, rows, cols int) {
	t.Helper()
	if m.Rows() != rows || m.Cols() != cols {
		t.Errorf("shape mismatch: want %dx%d, got %dx%d", rows, cols, m.Rows(), m.Cols())
	}
}

func maxAbsDiff(a, b Mat) float64 {
	ad, bd := a.DataFloat32(), b.DataFloat32()
	var max float64
	for i := range ad {
		d := math.Abs(float64(ad[i]) - float64(bd[i]))
		if d > max {
			max = d
		}
	}
	return max
}

func checkAllClose(t *testing.T, got, want Mat, tol float64) {
	t.Helper()
	if !sameShape(got, want) {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", got.Rows(), got.Cols(), want.Rows(), want.Cols())
	}
	if d := maxAbsDiff(got, want); d > tol {
		t.Errorf("values differ by up to %g (tolerance %g)", d, tol)
	}
}

func checkConstValue(t *testing.T, m Mat, want float32, tol float64) {
	t.Helper()
	data := m.DataFloat32()
	for i, v := range data {
		if math.Abs(float64(v)-float64(want)) > tol {
			t.Errorf("element %d: want %g, got %g", i, want, v)
			return
		}
	}
}
