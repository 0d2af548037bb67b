package saliency

import (
	"math"

	"github.com/pkg/errors"
)

// Pyramid is an ordered multiscale decomposition, finest level first. For a
// Gaussian pyramid, level i+1 has ceil((rows_i+1)/2) x ceil((cols_i+1)/2) the
// extent of level i; an orientation pyramid holds one band-pass image of the
// matching resolution per level.
type Pyramid []Mat

// GaborParams configures the oriented band-pass filter of the orientation
// pyramid.
type GaborParams struct {
	Sigma  float64 // standard deviation of the Gaussian envelope
	Lambda float64 // sine wavelength
	Gamma  float64 // aspect ratio
	Psi    float64 // phase shift
}

func halvedExtent(n int) int {
	return (n + 2) / 2 // ceil((n+1)/2)
}

// validatePyramidInput walks the level size recurrence and rejects inputs
// whose extent collapses below 2 pixels before the requested depth. The
// recurrence plateaus at 2, so keep min(rows, cols) at or above 1<<levels to
// get genuine halvings all the way down.
func validatePyramidInput(img Mat, levels int) error {
	if levels < 1 {
		return errors.Wrapf(ErrInvalidParameter, "pyramid levels must be positive, got %d", levels)
	}
	if img.Empty() {
		return errors.Wrap(ErrInvalidInputShape, "pyramid input is empty")
	}
	rows, cols := img.Rows(), img.Cols()
	for i := 0; i < levels; i++ {
		rows = halvedExtent(rows)
		cols = halvedExtent(cols)
		if rows < 2 || cols < 2 {
			return errors.Wrapf(ErrInvalidInputShape,
				"%dx%d input collapses to %dx%d at pyramid level %d of %d",
				img.Rows(), img.Cols(), rows, cols, i+1, levels)
		}
	}
	return nil
}

// GaussianPyramid builds an n-level Gaussian pyramid: each level is the
// previous one blurred with the 5x5 binomial kernel (periodic boundary) and
// resampled to ceil((extent+1)/2) per axis. Level 0 is the first downsampled
// image; the input itself is not part of the pyramid.
func GaussianPyramid(img Mat, n int) (Pyramid, error) {
	if err := validatePyramidInput(img, n); err != nil {
		return nil, err
	}

	kernel := binomialKernel5()
	defer kernel.Close()

	pyr := make(Pyramid, 0, n)
	cur := img
	for i := 0; i < n; i++ {
		blurred := NewMat()
		convolveWrap(cur, &blurred, kernel)
		down := NewMat()
		resizeLinear(blurred, &down, halvedExtent(cur.Rows()), halvedExtent(cur.Cols()))
		blurred.Close()
		pyr = append(pyr, down)
		cur = down
	}
	return pyr, nil
}

// GaussianPyramidBatch applies GaussianPyramid independently to each input,
// returning one pyramid per input in input order.
func GaussianPyramidBatch(imgs []Mat, n int) ([]Pyramid, error) {
	out := make([]Pyramid, 0, len(imgs))
	for i, img := range imgs {
		pyr, err := GaussianPyramid(img, n)
		if err != nil {
			for _, built := range out {
				closeMats(built)
			}
			return nil, errors.Wrapf(err, "batch input %d", i)
		}
		out = append(out, pyr)
	}
	return out, nil
}

// OrientationPyramid builds L oriented band-pass images of the input, finest
// first. Each level is the residual between the downsampled image at that
// level and the blurred (not yet downsampled) image one level deeper,
// convolved with a Gabor kernel tuned to the given orientation in degrees.
// Level i matches the extent of Gaussian pyramid level i.
func OrientationPyramid(img Mat, degrees float64, levels int, gp GaborParams) (Pyramid, error) {
	if gp.Sigma <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "gabor sigma must be positive, got %g", gp.Sigma)
	}
	if gp.Lambda <= 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "gabor lambda must be positive, got %g", gp.Lambda)
	}
	// The construction downsamples levels+1 times.
	if err := validatePyramidInput(img, levels+1); err != nil {
		return nil, err
	}

	blurKernel := binomialKernel5()
	defer blurKernel.Close()
	theta := degrees * math.Pi / 180
	gabor := gaborKernel(gp.Sigma, theta, gp.Lambda, gp.Gamma, gp.Psi)
	defer gabor.Close()

	blurred := make([]Mat, levels+1)
	downsampled := make([]Mat, levels+1)
	cur := img
	for i := 0; i <= levels; i++ {
		b := NewMat()
		convolveWrap(cur, &b, blurKernel)
		d := NewMat()
		resizeLinear(b, &d, halvedExtent(cur.Rows()), halvedExtent(cur.Cols()))
		blurred[i] = b
		downsampled[i] = d
		cur = d
	}

	pyr := make(Pyramid, levels)
	for i := 0; i < levels; i++ {
		// Same extent by construction: downsampled[i] feeds the blur that
		// produces blurred[i+1].
		residual := subMats(downsampled[i], blurred[i+1])
		band := NewMat()
		convolveWrap(residual, &band, gabor)
		residual.Close()
		pyr[i] = band
	}

	for i := range blurred {
		blurred[i].Close()
		downsampled[i].Close()
	}
	return pyr, nil
}
