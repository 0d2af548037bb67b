package saliency

// Shared elementwise helpers. These go through DataFloat32 so the same code
// serves both Mat backends.

// NewMatFromFloat32 builds a mat from row-major values. The slice is copied.
func NewMatFromFloat32(values []float32, rows, cols int) Mat {
	m := NewMatWithSize(rows, cols)
	copy(m.DataFloat32(), values)
	return m
}

func sameShape(a, b Mat) bool {
	return a.Rows() == b.Rows() && a.Cols() == b.Cols()
}

// subMats returns a - b.
func subMats(a, b Mat) Mat {
	out := NewMatWithSize(a.Rows(), a.Cols())
	ad, bd, od := a.DataFloat32(), b.DataFloat32(), out.DataFloat32()
	for i := range od {
		od[i] = ad[i] - bd[i]
	}
	return out
}

// absDiffMats returns |a - b|.
func absDiffMats(a, b Mat) Mat {
	out := NewMatWithSize(a.Rows(), a.Cols())
	ad, bd, od := a.DataFloat32(), b.DataFloat32(), out.DataFloat32()
	for i := range od {
		d := ad[i] - bd[i]
		if d < 0 {
			d = -d
		}
		od[i] = d
	}
	return out
}

func addInPlace(dst, src Mat) {
	dd, sd := dst.DataFloat32(), src.DataFloat32()
	for i := range dd {
		dd[i] += sd[i]
	}
}

func scaleInPlace(m Mat, s float32) {
	data := m.DataFloat32()
	for i := range data {
		data[i] *= s
	}
}

// shuntUpdate applies one lateral-inhibition update step: dst += conv - cte,
// then negative entries are zeroed.
func shuntUpdate(dst, conv Mat, cte float32) {
	dd, cd := dst.DataFloat32(), conv.DataFloat32()
	for i := range dd {
		v := dd[i] + cd[i] - cte
		if v < 0 {
			v = 0
		}
		dd[i] = v
	}
}
