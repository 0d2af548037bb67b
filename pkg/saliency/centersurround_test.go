package saliency

import (
	"testing"

	"github.com/pkg/errors"
)

// constPyramid builds a pyramid of constant levels so center-surround
// differences have exact expected values.
func constPyramid(values []float32, shapes [][2]int) Pyramid {
	pyr := make(Pyramid, len(values))
	for i, v := range values {
		pyr[i] = constMat(shapes[i][0], shapes[i][1], v)
	}
	return pyr
}

var testShapes = [][2]int{{8, 8}, {5, 5}, {3, 3}, {2, 2}}

func TestCenterSurroundFeatureMaps(t *testing.T) {
	pyr := constPyramid([]float32{5, 3, 2, 1}, testShapes)
	defer closeMats(pyr)

	maps, err := CenterSurroundFeatureMaps(pyr, []int{1, 2}, []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeMats(maps)

	if len(maps) != 4 {
		t.Fatalf("want 4 feature maps, got %d", len(maps))
	}

	// Center-outer, delta-inner ordering, each at its center's extent
	checkShape(t, maps[0], 8, 8)
	checkShape(t, maps[1], 8, 8)
	checkShape(t, maps[2], 5, 5)
	checkShape(t, maps[3], 5, 5)

	checkConstValue(t, maps[0], 2, 1e-5) // |5-3|
	checkConstValue(t, maps[1], 3, 1e-5) // |5-2|
	checkConstValue(t, maps[2], 1, 1e-5) // |3-2|
	checkConstValue(t, maps[3], 2, 1e-5) // |3-1|
}

func TestCenterSurroundAbsoluteValue(t *testing.T) {
	// Surround brighter than center still yields a positive response.
	pyr := constPyramid([]float32{1, 6}, [][2]int{{4, 4}, {2, 2}})
	defer closeMats(pyr)

	maps, err := CenterSurroundFeatureMaps(pyr, []int{1}, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeMats(maps)

	checkConstValue(t, maps[0], 5, 1e-5)
}

func TestCenterSurroundDepthError(t *testing.T) {
	pyr := constPyramid([]float32{5, 3, 2, 1}, testShapes)
	defer closeMats(pyr)

	if _, err := CenterSurroundFeatureMaps(pyr, []int{2}, []int{3}); !errors.Is(err, ErrInvalidPyramidDepth) {
		t.Errorf("out-of-range pair: want ErrInvalidPyramidDepth, got %v", err)
	}
}

func TestCenterSurroundParameterErrors(t *testing.T) {
	pyr := constPyramid([]float32{5, 3}, [][2]int{{4, 4}, {2, 2}})
	defer closeMats(pyr)

	if _, err := CenterSurroundFeatureMaps(pyr, nil, []int{1}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty centers: want ErrInvalidParameter, got %v", err)
	}
	if _, err := CenterSurroundFeatureMaps(pyr, []int{1}, nil); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("empty deltas: want ErrInvalidParameter, got %v", err)
	}
	if _, err := CenterSurroundFeatureMaps(pyr, []int{0}, []int{1}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("zero center: want ErrInvalidParameter, got %v", err)
	}
}

func TestCenterSurroundColorPolarity(t *testing.T) {
	a := constPyramid([]float32{4, 1}, [][2]int{{4, 4}, {2, 2}})
	b := constPyramid([]float32{1, 2}, [][2]int{{4, 4}, {2, 2}})
	defer closeMats(a)
	defer closeMats(b)

	maps, err := CenterSurroundColorFeatureMaps(a, b, []int{1}, []int{1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeMats(maps)

	if len(maps) != 1 {
		t.Fatalf("want 1 feature map, got %d", len(maps))
	}
	// Center term a-b = 3, surround term b-a = 1 (polarity reversed at the
	// surround scale): |3 - 1| = 2.
	checkConstValue(t, maps[0], 2, 1e-5)
}

func TestCenterSurroundColorDepthMismatch(t *testing.T) {
	a := constPyramid([]float32{4, 1}, [][2]int{{4, 4}, {2, 2}})
	b := constPyramid([]float32{1}, [][2]int{{4, 4}})
	defer closeMats(a)
	defer closeMats(b)

	if _, err := CenterSurroundColorFeatureMaps(a, b, []int{1}, []int{1}); !errors.Is(err, ErrInvalidPyramidDepth) {
		t.Errorf("want ErrInvalidPyramidDepth, got %v", err)
	}
}
