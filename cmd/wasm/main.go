//go:build js && wasm

package main

import (
	"bytes"
	"context"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"syscall/js"

	sal "saliency/pkg/saliency"
)

var (
	lastMap      sal.Mat
	lastAnalysis *sal.MapAnalysis
)

func main() {
	js.Global().Set("computeSaliency", js.FuncOf(computeSaliency))
	js.Global().Set("renderOverlay", js.FuncOf(renderOverlay))
	select {} // block forever
}

func computeSaliency(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("usage: computeSaliency(fileBytes, options)")
	}

	// Extract file bytes
	jsBytes := args[0]
	length := jsBytes.Get("length").Int()
	fileBytes := make([]byte, length)
	js.CopyBytesToGo(fileBytes, jsBytes)

	params := sal.NewParams()
	if len(args) >= 2 && args[1].Type() == js.TypeObject {
		loopsVal := args[1].Get("loops")
		if loopsVal.Type() == js.TypeNumber {
			params.Loops = loopsVal.Int()
		}
	}

	decoded, _, err := image.Decode(bytes.NewReader(fileBytes))
	if err != nil {
		return errorResult("image decode error: " + err.Error())
	}

	rgb, width, height := toRGBImage(decoded)
	defer rgb.R.Close()
	defer rgb.G.Close()
	defer rgb.B.Close()

	salMap, err := sal.Compute(context.Background(), rgb, params)
	if err != nil {
		return errorResult("saliency error: " + err.Error())
	}

	analysis := sal.AnalyzeZones(salMap)
	lastMap.Close()
	lastMap = salMap
	lastAnalysis = analysis

	jsResult := map[string]interface{}{
		"width":        width,
		"height":       height,
		"mapWidth":     salMap.Cols(),
		"mapHeight":    salMap.Rows(),
		"peakValue":    analysis.PeakValue,
		"peakX":        analysis.PeakX,
		"peakY":        analysis.PeakY,
		"meanSaliency": analysis.MeanSaliency,
		"mostSalient":  analysis.MostSalient,
	}

	jsZones := make([]interface{}, len(sal.ZoneOrder))
	for i, pos := range sal.ZoneOrder {
		z := analysis.Zones[pos]
		jsZones[i] = map[string]interface{}{
			"label": z.Label,
			"mean":  z.MeanSaliency,
			"peak":  z.PeakSaliency,
		}
	}
	jsResult["zones"] = jsZones

	// Flattened map values so callers can draw their own heatmap
	data := salMap.DataFloat32()
	jsValues := make([]interface{}, len(data))
	for i, v := range data {
		jsValues[i] = float64(v)
	}
	jsResult["values"] = jsValues

	return js.ValueOf(jsResult)
}

func renderOverlay(this js.Value, args []js.Value) interface{} {
	if lastAnalysis == nil || lastMap.Empty() {
		return js.Null()
	}

	jpegBytes, err := sal.RenderSaliencyOverlayBytes(lastMap, lastAnalysis)
	if err != nil {
		return js.Null()
	}

	// Create Uint8Array and copy bytes
	uint8Array := js.Global().Get("Uint8Array").New(len(jpegBytes))
	js.CopyBytesToJS(uint8Array, jpegBytes)
	return uint8Array
}

func toRGBImage(img image.Image) (sal.RGBImage, int, int) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

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
	}, w, h
}

func errorResult(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{
		"error": msg,
	})
}
