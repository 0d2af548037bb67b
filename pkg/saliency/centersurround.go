package saliency

import "github.com/pkg/errors"

// validateCenterDelta checks the (center, delta) sets against a pyramid depth.
// Every referenced level must exist in the pyramid as built; out-of-range
// pairs are an error, never silently clamped.
func validateCenterDelta(depth int, centers, deltas []int) error {
	if len(centers) == 0 {
		return errors.Wrap(ErrInvalidParameter, "center set is empty")
	}
	if len(deltas) == 0 {
		return errors.Wrap(ErrInvalidParameter, "delta set is empty")
	}
	for _, c := range centers {
		if c < 1 {
			return errors.Wrapf(ErrInvalidParameter, "center level %d is not positive", c)
		}
		for _, d := range deltas {
			if d < 1 {
				return errors.Wrapf(ErrInvalidParameter, "delta %d is not positive", d)
			}
			if c+d > depth {
				return errors.Wrapf(ErrInvalidPyramidDepth,
					"center %d with delta %d references level %d, pyramid has %d", c, d, c+d, depth)
			}
		}
	}
	return nil
}

// CenterSurroundFeatureMaps computes one feature map per (center, delta)
// pair: the surround level resized to the center level's extent, subtracted
// from the center level, absolute value. Output order is center-outer,
// delta-inner, following the order of the given sets.
func CenterSurroundFeatureMaps(pyr Pyramid, centers, deltas []int) ([]Mat, error) {
	if err := validateCenterDelta(len(pyr), centers, deltas); err != nil {
		return nil, err
	}

	out := make([]Mat, 0, len(centers)*len(deltas))
	for _, c := range centers {
		center := pyr[c-1]
		for _, d := range deltas {
			surround := NewMat()
			resizeLinear(pyr[c+d-1], &surround, center.Rows(), center.Cols())
			out = append(out, absDiffMats(center, surround))
			surround.Close()
		}
	}
	return out, nil
}

// CenterSurroundColorFeatureMaps computes double-opponency feature maps for
// an opponent channel pair (a vs b). The center term is a-b while the
// surround term is resize(b)-resize(a): polarity reverses at the surround
// scale, encoding double color opponency.
func CenterSurroundColorFeatureMaps(a, b Pyramid, centers, deltas []int) ([]Mat, error) {
	if len(a) != len(b) {
		return nil, errors.Wrapf(ErrInvalidPyramidDepth,
			"opponent pyramids differ in depth: %d vs %d", len(a), len(b))
	}
	if err := validateCenterDelta(len(a), centers, deltas); err != nil {
		return nil, err
	}

	out := make([]Mat, 0, len(centers)*len(deltas))
	for _, c := range centers {
		centerDiff := subMats(a[c-1], b[c-1])
		for _, d := range deltas {
			rows, cols := a[c-1].Rows(), a[c-1].Cols()
			surroundA := NewMat()
			resizeLinear(a[c+d-1], &surroundA, rows, cols)
			surroundB := NewMat()
			resizeLinear(b[c+d-1], &surroundB, rows, cols)
			surroundDiff := subMats(surroundB, surroundA)
			out = append(out, absDiffMats(centerDiff, surroundDiff))
			surroundA.Close()
			surroundB.Close()
			surroundDiff.Close()
		}
		centerDiff.Close()
	}
	return out, nil
}
