//go:build !purego && !js

package main

import (
	"fmt"

	"gocv.io/x/gocv"

	sal "saliency/pkg/saliency"
)

func loadRGBImage(path string) (sal.RGBImage, int, int, error) {
	src := gocv.IMRead(path, gocv.IMReadColor)
	if src.Empty() {
		return sal.RGBImage{}, 0, 0, fmt.Errorf("could not load image: %s", path)
	}
	defer src.Close()

	w, h := src.Cols(), src.Rows()

	floatMat := gocv.NewMat()
	defer floatMat.Close()
	src.ConvertTo(&floatMat, gocv.MatTypeCV32FC3)

	// IMRead yields BGR channel order
	planes := gocv.Split(floatMat)
	defer func() {
		for i := range planes {
			planes[i].Close()
		}
	}()
	if len(planes) != 3 {
		return sal.RGBImage{}, 0, 0, fmt.Errorf("expected 3 channels, got %d", len(planes))
	}

	toMat := func(plane gocv.Mat) sal.Mat {
		data, _ := plane.DataPtrFloat32()
		return sal.NewMatFromFloat32(data, h, w)
	}

	return sal.RGBImage{
		R: toMat(planes[2]),
		G: toMat(planes[1]),
		B: toMat(planes[0]),
	}, w, h, nil
}
