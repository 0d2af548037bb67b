//go:build purego || js

package saliency

import "math"

// Mat is a pure Go 2D float32 matrix.
type Mat struct {
	data []float32
	rows int
	cols int
}

func NewMat() Mat { return Mat{} }

func NewMatWithSize(rows, cols int) Mat {
	return Mat{
		data: make([]float32, rows*cols),
		rows: rows,
		cols: cols,
	}
}

func (m Mat) Rows() int   { return m.rows }
func (m Mat) Cols() int   { return m.cols }
func (m Mat) Empty() bool { return m.data == nil || m.rows == 0 || m.cols == 0 }

func (m Mat) Clone() Mat {
	out := NewMatWithSize(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

func (m *Mat) Close() {
	m.data = nil
	m.rows = 0
	m.cols = 0
}

// DataFloat32 returns the backing float32 slice in row-major order.
func (m Mat) DataFloat32() []float32 {
	return m.data
}

// --- Pure Go backend primitives ---

// convolveWrap computes a true 2D convolution (kernel flipped, "same" output
// size) with periodic boundary handling.
func convolveWrap(src Mat, dst *Mat, kernel Mat) {
	rows, cols := src.rows, src.cols
	kRows, kCols := kernel.rows, kernel.cols
	offY := (kRows - 1) / 2
	offX := (kCols - 1) / 2

	if dst.rows != rows || dst.cols != cols || dst.data == nil {
		*dst = NewMatWithSize(rows, cols)
	}

	srcData := src.data
	kData := kernel.data
	dstData := dst.data

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var sum float32
			for j := 0; j < kRows; j++ {
				sy := wrapIndex(y+offY-j, rows)
				srcRow := sy * cols
				kRow := j * kCols
				for i := 0; i < kCols; i++ {
					sx := wrapIndex(x+offX-i, cols)
					sum += srcData[srcRow+sx] * kData[kRow+i]
				}
			}
			dstData[y*cols+x] = sum
		}
	}
}

func wrapIndex(idx, size int) int {
	idx %= size
	if idx < 0 {
		idx += size
	}
	return idx
}

// resizeLinear resamples src to (rows, cols) with bilinear interpolation,
// pixel-center aligned (matching OpenCV INTER_LINEAR).
func resizeLinear(src Mat, dst *Mat, rows, cols int) {
	if dst.rows != rows || dst.cols != cols || dst.data == nil {
		*dst = NewMatWithSize(rows, cols)
	}
	if rows == src.rows && cols == src.cols {
		copy(dst.data, src.data)
		return
	}

	scaleY := float64(src.rows) / float64(rows)
	scaleX := float64(src.cols) / float64(cols)
	srcData := src.data
	dstData := dst.data

	for y := 0; y < rows; y++ {
		fy := (float64(y)+0.5)*scaleY - 0.5
		y0 := int(math.Floor(fy))
		wy := float32(fy - float64(y0))
		if y0 < 0 {
			y0 = 0
			wy = 0
		}
		y1 := y0 + 1
		if y1 > src.rows-1 {
			y1 = src.rows - 1
		}
		row0 := y0 * src.cols
		row1 := y1 * src.cols

		for x := 0; x < cols; x++ {
			fx := (float64(x)+0.5)*scaleX - 0.5
			x0 := int(math.Floor(fx))
			wx := float32(fx - float64(x0))
			if x0 < 0 {
				x0 = 0
				wx = 0
			}
			x1 := x0 + 1
			if x1 > src.cols-1 {
				x1 = src.cols - 1
			}

			top := srcData[row0+x0] + wx*(srcData[row0+x1]-srcData[row0+x0])
			bot := srcData[row1+x0] + wx*(srcData[row1+x1]-srcData[row1+x0])
			dstData[y*cols+x] = top + wy*(bot-top)
		}
	}
}

// maxValue returns the largest element of the mat.
func maxValue(m Mat) float32 {
	data := m.data
	if len(data) == 0 {
		return 0
	}
	max := data[0]
	for _, v := range data[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func imWriteMat(_ string, _ Mat) {
	// No-op in pure Go build (debug image saving not supported)
}
