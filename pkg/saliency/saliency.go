package saliency

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Params configures one saliency computation. All configuration is per call;
// the pipeline keeps no state between calls.
//
// The Gaussian pyramids are built to depth max(Centers)+max(Deltas). The
// level size recurrence plateaus at 2 pixels, so inputs should keep their
// smaller dimension at or above 1<<depth for the coarse levels to carry any
// structure.
type Params struct {
	Loops   int   // DoG iteration cap per normalization
	Centers []int // 1-based pyramid levels used as centers
	Deltas  []int // level offsets defining surrounds
	Gabor   GaborParams
	DoG     DoGParams

	// Trace, when non-nil, receives a progress message as each stage
	// completes. It never affects control flow or results.
	Trace func(stage string)

	// SaveIntermediatePath, when set to an existing directory, receives dumps
	// of the conspicuity and saliency maps (native backend only).
	SaveIntermediatePath string
}

// NewParams returns the parameter values of the published model.
func NewParams() Params {
	return Params{
		Loops:   1,
		Centers: []int{2, 3, 4},
		Deltas:  []int{3, 4},
		Gabor:   GaborParams{Sigma: 1, Lambda: 10, Gamma: 0.5, Psi: math.Pi / 2},
		DoG:     NewDoGParams(),
	}
}

func (p Params) trace(stage string) {
	if p.Trace != nil {
		p.Trace(stage)
	}
}

func (p Params) validate() error {
	if p.Loops < 1 {
		return errors.Wrapf(ErrInvalidParameter, "loop count must be positive, got %d", p.Loops)
	}
	if len(p.Centers) == 0 {
		return errors.Wrap(ErrInvalidParameter, "center set is empty")
	}
	if len(p.Deltas) == 0 {
		return errors.Wrap(ErrInvalidParameter, "delta set is empty")
	}
	return p.DoG.validate()
}

// orientationAngles are the fixed orientation channels of the model, and the
// order in which their feature maps concatenate.
var orientationAngles = [4]float64{0, 45, 90, 135}

// Compute runs the full Itti-Koch-Niebur pipeline on an RGB image and
// returns the saliency map, a single map at the extent of the coarsest
// center level with values in [0, 1].
func Compute(ctx context.Context, img RGBImage, p Params) (Mat, error) {
	if err := p.validate(); err != nil {
		return Mat{}, err
	}
	depth := maxInt(p.Centers) + maxInt(p.Deltas)

	channels, err := OpponentChannels(img)
	if err != nil {
		return Mat{}, err
	}
	defer closeChannels(&channels)
	p.trace("opponent channels: done")

	// The five Gaussian pyramids and four orientation pyramids are mutually
	// independent; build them concurrently.
	var (
		wg        sync.WaitGroup
		gauss     []Pyramid
		gaussErr  error
		orient    [4]Pyramid
		orientErr [4]error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		gauss, gaussErr = GaussianPyramidBatch([]Mat{
			channels.Intensity, channels.Red, channels.Green, channels.Blue, channels.Yellow,
		}, depth)
	}()
	for k, degrees := range orientationAngles {
		wg.Add(1)
		go func(k int, degrees float64) {
			defer wg.Done()
			orient[k], orientErr[k] = OrientationPyramid(channels.Intensity, degrees, depth, p.Gabor)
		}(k, degrees)
	}
	wg.Wait()
	// Cleanup is installed before the error checks: a failure in one builder
	// must still release the pyramids the others finished.
	defer func() {
		for _, pyr := range gauss {
			closeMats(pyr)
		}
		for _, pyr := range orient {
			closeMats(pyr)
		}
	}()
	if gaussErr != nil {
		return Mat{}, gaussErr
	}
	for _, err := range orientErr {
		if err != nil {
			return Mat{}, err
		}
	}
	p.trace("pyramids: done")
	if err := cancelled(ctx); err != nil {
		return Mat{}, err
	}

	intensityPyr, redPyr, greenPyr, bluePyr, yellowPyr := gauss[0], gauss[1], gauss[2], gauss[3], gauss[4]

	csdIntensity, err := CenterSurroundFeatureMaps(intensityPyr, p.Centers, p.Deltas)
	if err != nil {
		return Mat{}, err
	}
	defer closeMats(csdIntensity)

	csdRG, err := CenterSurroundColorFeatureMaps(redPyr, greenPyr, p.Centers, p.Deltas)
	if err != nil {
		return Mat{}, err
	}
	csdBY, err := CenterSurroundColorFeatureMaps(bluePyr, yellowPyr, p.Centers, p.Deltas)
	if err != nil {
		closeMats(csdRG)
		return Mat{}, err
	}
	csdColor := append(csdRG, csdBY...)
	defer closeMats(csdColor)

	csdOrient := make([]Mat, 0, 4*len(p.Centers)*len(p.Deltas))
	for _, pyr := range orient {
		maps, err := CenterSurroundFeatureMaps(pyr, p.Centers, p.Deltas)
		if err != nil {
			return Mat{}, err
		}
		csdOrient = append(csdOrient, maps...)
	}
	defer closeMats(csdOrient)
	p.trace("center-surround differences: done")
	if err := cancelled(ctx); err != nil {
		return Mat{}, err
	}

	conspIntensity, err := ConspicuityMap(csdIntensity, p.DoG, p.Loops)
	if err != nil {
		return Mat{}, err
	}
	defer conspIntensity.Close()
	conspColor, err := ConspicuityMap(csdColor, p.DoG, p.Loops)
	if err != nil {
		return Mat{}, err
	}
	defer conspColor.Close()
	conspOrient, err := ConspicuityMap(csdOrient, p.DoG, p.Loops)
	if err != nil {
		return Mat{}, err
	}
	defer conspOrient.Close()
	p.trace("conspicuity maps: done")

	maybeSaveImage(conspIntensity, p.SaveIntermediatePath, "conspicuity-intensity.tif")
	maybeSaveImage(conspColor, p.SaveIntermediatePath, "conspicuity-color.tif")
	maybeSaveImage(conspOrient, p.SaveIntermediatePath, "conspicuity-orientation.tif")

	if !sameShape(conspIntensity, conspColor) || !sameShape(conspIntensity, conspOrient) {
		return Mat{}, errors.Wrapf(ErrInvalidInputShape,
			"conspicuity maps disagree in shape: %dx%d, %dx%d, %dx%d",
			conspIntensity.Rows(), conspIntensity.Cols(),
			conspColor.Rows(), conspColor.Cols(),
			conspOrient.Rows(), conspOrient.Cols())
	}

	salMap := conspIntensity.Clone()
	addInPlace(salMap, conspColor)
	addInPlace(salMap, conspOrient)
	scaleInPlace(salMap, 1.0/3.0)
	p.trace("saliency map: done")

	maybeSaveImage(salMap, p.SaveIntermediatePath, "saliency.tif")
	return salMap, nil
}

func cancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

func maxInt(values []int) int {
	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

func closeMats(ms []Mat) {
	for i := range ms {
		ms[i].Close()
	}
}

func closeChannels(ch *Channels) {
	ch.Intensity.Close()
	ch.Red.Close()
	ch.Green.Close()
	ch.Blue.Close()
	ch.Yellow.Close()
}

func maybeSaveImage(m Mat, savePath, filename string) {
	if savePath == "" {
		return
	}
	if _, err := os.Stat(savePath); os.IsNotExist(err) {
		return
	}
	imWriteMat(filepath.Join(savePath, filename), m)
}
