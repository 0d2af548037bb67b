package saliency

import "github.com/pkg/errors"

// DoGParams configures the Difference-of-Gaussians kernel and the shunting
// inhibition term of the iterative normalization operator.
type DoGParams struct {
	ExciteGain      float64 // multiplier of the narrow excitatory Gaussian
	InhibitGain     float64 // multiplier of the broad inhibitory Gaussian
	ExciteSigmaPct  float64 // excitatory sigma, percent of the map's column count
	InhibitSigmaPct float64 // inhibitory sigma, percent of the map's column count
	InhibitTerm     float64 // constant inhibition subtracted each iteration
}

// NewDoGParams returns the parameter values of the published model.
func NewDoGParams() DoGParams {
	return DoGParams{
		ExciteGain:      0.5,
		InhibitGain:     1.5,
		ExciteSigmaPct:  2.0,
		InhibitSigmaPct: 25.0,
		InhibitTerm:     0.02,
	}
}

func (p DoGParams) validate() error {
	if p.ExciteSigmaPct <= 0 || p.InhibitSigmaPct <= 0 {
		return errors.Wrapf(ErrInvalidParameter,
			"DoG sigmas must be positive, got %g%% / %g%%", p.ExciteSigmaPct, p.InhibitSigmaPct)
	}
	return nil
}

// isDegenerate reports whether a map has collapsed: no strictly positive
// entries remain, so further lateral-inhibition iterations cannot recover any
// structure.
func isDegenerate(m Mat) bool {
	return maxValue(m) <= 0
}

// IterativeNormalize normalizes a map through iterated lateral inhibition:
// the map is scaled by its maximum, then repeatedly convolved with a
// Difference-of-Gaussians kernel (periodic boundary), updated by the shunting
// inhibition rule, rectified and rescaled. Maps with a single dominant peak
// survive this competition; maps with many comparable peaks are suppressed.
//
// With loop == 0 the result is the input scaled by its own maximum. A map
// that collapses to all zeros terminates early and is returned as-is. The
// input is never modified.
func IterativeNormalize(m Mat, p DoGParams, loop int) (Mat, error) {
	if loop < 0 {
		return Mat{}, errors.Wrapf(ErrInvalidParameter, "iteration count must be non-negative, got %d", loop)
	}
	if err := p.validate(); err != nil {
		return Mat{}, err
	}
	if m.Empty() {
		return Mat{}, errors.Wrap(ErrInvalidInputShape, "normalize input is empty")
	}

	max := maxValue(m)
	if max <= 0 {
		// Degenerate input: nothing to normalize against.
		return NewMatWithSize(m.Rows(), m.Cols()), nil
	}

	filtered := m.Clone()
	scaleInPlace(filtered, 1/max)
	if loop == 0 {
		return filtered, nil
	}

	kernel := dogKernel(m.Rows(), m.Cols(), p)
	defer kernel.Close()

	conv := NewMat()
	defer conv.Close()
	for i := 0; i < loop; i++ {
		convolveWrap(filtered, &conv, kernel)
		shuntUpdate(filtered, conv, float32(p.InhibitTerm))
		if isDegenerate(filtered) {
			break
		}
		scaleInPlace(filtered, 1/maxValue(filtered))
	}
	return filtered, nil
}
