//go:build !purego && !js

package saliency

import (
	"image"

	"gocv.io/x/gocv"
)

// Mat wraps gocv.Mat for the native OpenCV backend.
type Mat struct {
	m gocv.Mat
}

func NewMat() Mat { return Mat{m: gocv.NewMat()} }

func NewMatWithSize(rows, cols int) Mat {
	mat := Mat{m: gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32F)}
	data := mat.DataFloat32()
	for i := range data {
		data[i] = 0
	}
	return mat
}

func (mat Mat) Rows() int   { return mat.m.Rows() }
func (mat Mat) Cols() int   { return mat.m.Cols() }
func (mat Mat) Empty() bool { return mat.m.Empty() }
func (mat Mat) Clone() Mat  { return Mat{m: mat.m.Clone()} }
func (mat *Mat) Close()     { mat.m.Close() }

func (mat Mat) DataFloat32() []float32 {
	data, _ := mat.m.DataPtrFloat32()
	return data
}

// --- Native backend primitives ---

// convolveWrap computes a true 2D convolution with periodic boundary
// handling. Filter2D correlates, so the kernel is flipped first.
func convolveWrap(src Mat, dst *Mat, kernel Mat) {
	flipped := gocv.NewMat()
	defer flipped.Close()
	gocv.Flip(kernel.m, &flipped, -1)
	gocv.Filter2D(src.m, &dst.m, gocv.MatTypeCV32F, flipped, image.Pt(-1, -1), 0, gocv.BorderWrap)
}

func resizeLinear(src Mat, dst *Mat, rows, cols int) {
	gocv.Resize(src.m, &dst.m, image.Pt(cols, rows), 0, 0, gocv.InterpolationLinear)
}

func maxValue(m Mat) float32 {
	_, max, _, _ := gocv.MinMaxLoc(m.m)
	return max
}

func imWriteMat(path string, m Mat) {
	gocv.IMWrite(path, m.m)
}
