package saliency

import "math"

// Kernel generators. These are backend-independent so both Mat backends
// filter with bit-identical kernels.

// binomialKernel5 returns the normalized 5x5 binomial blur kernel used by the
// Gaussian pyramid.
func binomialKernel5() Mat {
	weights := [5]float32{1, 4, 6, 4, 1}
	k := NewMatWithSize(5, 5)
	data := k.DataFloat32()
	for j := 0; j < 5; j++ {
		for i := 0; i < 5; i++ {
			data[j*5+i] = weights[j] * weights[i] / 256.0
		}
	}
	return k
}

// gaborKernel builds an oriented Gabor kernel of size 8*sigma+5. The grid
// orientation matches OpenCV getGaborKernel, so convolving with it reproduces
// the reference filter output.
func gaborKernel(sigma, theta, lambda, gamma, psi float64) Mat {
	size := int(8*sigma) + 5
	half := (size - 1) / 2
	sinT, cosT := math.Sincos(theta)

	k := NewMatWithSize(size, size)
	data := k.DataFloat32()
	for j := 0; j < size; j++ {
		y := float64(half - j)
		for i := 0; i < size; i++ {
			x := float64(half - i)
			xr := x*cosT + y*sinT
			yr := -x*sinT + y*cosT
			g := math.Exp(-(xr*xr+gamma*gamma*yr*yr)/(2*sigma*sigma)) *
				math.Cos(2*math.Pi*xr/lambda+psi)
			data[j*size+i] = float32(g)
		}
	}
	return k
}

// dogKernel builds the radially symmetric Difference-of-Gaussians kernel for
// a map of the given shape, centered on the map center. Standard deviations
// are expressed as percentages of the map's column count.
func dogKernel(rows, cols int, p DoGParams) Mat {
	cy := float64(rows-1) / 2
	cx := float64(cols-1) / 2
	sigmaO := p.ExciteSigmaPct / 100 * float64(cols)
	sigmaI := p.InhibitSigmaPct / 100 * float64(cols)
	k1 := p.ExciteGain * p.ExciteGain / (2 * math.Pi * sigmaO * sigmaO)
	k2 := p.InhibitGain * p.InhibitGain / (2 * math.Pi * sigmaI * sigmaI)

	k := NewMatWithSize(rows, cols)
	data := k.DataFloat32()
	for j := 0; j < rows; j++ {
		dy := float64(j) - cy
		for i := 0; i < cols; i++ {
			dx := float64(i) - cx
			r2 := dx*dx + dy*dy
			h := k1*math.Exp(-r2/(2*sigmaO*sigmaO)) - k2*math.Exp(-r2/(2*sigmaI*sigmaI))
			data[j*cols+i] = float32(h)
		}
	}
	return k
}
