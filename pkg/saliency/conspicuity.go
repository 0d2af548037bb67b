package saliency

import (
	"sync"

	"github.com/pkg/errors"
)

// ConspicuityMap combines a set of feature maps into one per-modality
// conspicuity map: every map is resized to the extent of the last (coarsest)
// entry, normalized independently through the iterative DoG operator, summed,
// and the sum is normalized once more. Normalizing before the sum suppresses
// maps that are uniformly noisy while preserving maps with one strong
// localized response.
func ConspicuityMap(maps []Mat, p DoGParams, loops int) (Mat, error) {
	if len(maps) == 0 {
		return Mat{}, errors.Wrap(ErrInvalidParameter, "conspicuity input is empty")
	}

	target := maps[len(maps)-1]
	rows, cols := target.Rows(), target.Cols()

	// Per-map normalization is independent; fan it out.
	normalized := make([]Mat, len(maps))
	errs := make([]error, len(maps))
	var wg sync.WaitGroup
	for i, m := range maps {
		wg.Add(1)
		go func(i int, m Mat) {
			defer wg.Done()
			resized := m
			if !sameShape(m, target) {
				r := NewMat()
				resizeLinear(m, &r, rows, cols)
				resized = r
				defer r.Close()
			}
			normalized[i], errs[i] = IterativeNormalize(resized, p, loops)
		}(i, m)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return Mat{}, err
		}
	}

	sum := NewMatWithSize(rows, cols)
	for i := range normalized {
		addInPlace(sum, normalized[i])
		normalized[i].Close()
	}
	defer sum.Close()

	return IterativeNormalize(sum, p, loops)
}
