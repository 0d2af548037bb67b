//go:build purego || js

package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	sal "saliency/pkg/saliency"
)

func loadRGBImage(path string) (sal.RGBImage, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return sal.RGBImage{}, 0, 0, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return sal.RGBImage{}, 0, 0, fmt.Errorf("decoding image: %w", err)
	}

	return decodedToRGBImage(img)
}

func decodedToRGBImage(img image.Image) (sal.RGBImage, int, int, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return sal.RGBImage{}, 0, 0, fmt.Errorf("image has no pixels")
	}

	rp := make([]float32, w*h)
	gp := make([]float32, w*h)
	bp := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			idx := y*w + x
			rp[idx] = float32(r >> 8)
			gp[idx] = float32(g >> 8)
			bp[idx] = float32(b >> 8)
		}
	}

	return sal.RGBImage{
		R: sal.NewMatFromFloat32(rp, h, w),
		G: sal.NewMatFromFloat32(gp, h, w),
		B: sal.NewMatFromFloat32(bp, h, w),
	}, w, h, nil
}
