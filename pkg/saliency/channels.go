package saliency

import "github.com/pkg/errors"

// RGBImage holds the three color planes of an input image as float32 mats.
// Any finite positive value scale works; 0-255 is typical.
type RGBImage struct {
	R, G, B Mat
}

func (img RGBImage) valid() bool {
	return !img.R.Empty() && sameShape(img.R, img.G) && sameShape(img.R, img.B)
}

// Channels holds the intensity channel and the four broadly-tuned opponent
// color channels extracted from an RGB image.
type Channels struct {
	Intensity Mat
	Red       Mat
	Green     Mat
	Blue      Mat
	Yellow    Mat
}

// OpponentChannels converts an RGB image into the intensity channel and the
// rectified opponent channels R', G', B', Y'. Regions darker than a tenth of
// the intensity maximum are masked out so near-zero pixels do not blow up
// under the channel normalization.
func OpponentChannels(img RGBImage) (Channels, error) {
	if !img.valid() {
		return Channels{}, errors.Wrap(ErrInvalidInputShape, "opponent channels: RGB planes must be non-empty and share a shape")
	}

	rows, cols := img.R.Rows(), img.R.Cols()
	n := rows * cols
	rt := img.R.DataFloat32()
	gt := img.G.DataFloat32()
	bt := img.B.DataFloat32()

	intensity := NewMatWithSize(rows, cols)
	id := intensity.DataFloat32()
	for i := 0; i < n; i++ {
		id[i] = (rt[i] + gt[i] + bt[i]) / 3
	}

	maxI := maxValue(intensity)
	maskThreshold := 0.1 * maxI
	eps := 0.01 * maxI

	red := NewMatWithSize(rows, cols)
	green := NewMatWithSize(rows, cols)
	blue := NewMatWithSize(rows, cols)
	yellow := NewMatWithSize(rows, cols)
	rd := red.DataFloat32()
	gd := green.DataFloat32()
	bd := blue.DataFloat32()
	yd := yellow.DataFloat32()

	for i := 0; i < n; i++ {
		var r, g, b float32
		if id[i] > maskThreshold {
			r = rt[i] / (id[i] + eps)
			g = gt[i] / (id[i] + eps)
			b = bt[i] / (id[i] + eps)
		}

		rd[i] = relu(r - (g+b)/2)
		gd[i] = relu(g - (r+b)/2)
		bd[i] = relu(b - (g+r)/2)

		rg := r - g
		if rg < 0 {
			rg = -rg
		}
		yd[i] = relu((r+g)/2 - rg/2 - b)
	}

	return Channels{
		Intensity: intensity,
		Red:       red,
		Green:     green,
		Blue:      blue,
		Yellow:    yellow,
	}, nil
}

func relu(v float32) float32 {
	if v < 0 {
		return 0
	}
	return v
}
