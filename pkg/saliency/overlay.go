package saliency

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderSaliencyOverlay writes an annotated heatmap of the saliency map as a
// JPG file: the map upscaled to a fixed display width, the 3x3 zone grid with
// per-zone statistics, and a marker at the global peak.
func RenderSaliencyOverlay(salMap Mat, analysis *MapAnalysis, outputPath string) error {
	img, err := renderSaliencyImage(salMap, analysis)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create overlay file: %w", err)
	}
	defer f.Close()

	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// RenderSaliencyOverlayBytes renders the annotated heatmap and returns it as
// JPEG bytes.
func RenderSaliencyOverlayBytes(salMap Mat, analysis *MapAnalysis) ([]byte, error) {
	img, err := renderSaliencyImage(salMap, analysis)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderSaliencyImage(salMap Mat, analysis *MapAnalysis) (*image.RGBA, error) {
	if salMap.Empty() {
		return nil, fmt.Errorf("no saliency map to render")
	}
	if analysis == nil {
		analysis = AnalyzeZones(salMap)
	}

	const targetWidth = 800
	scale := float64(targetWidth) / float64(salMap.Cols())
	imgW := targetWidth
	imgH := int(float64(salMap.Rows()) * scale)
	if imgH < 100 {
		imgH = 100
	}

	// Reserve space for summary text at bottom
	summaryH := 60
	totalH := imgH + summaryH

	img := image.NewRGBA(image.Rect(0, 0, imgW, totalH))

	upscaled := NewMat()
	resizeLinear(salMap, &upscaled, imgH, imgW)
	defer upscaled.Close()
	data := upscaled.DataFloat32()

	norm := float32(analysis.PeakValue)
	if norm <= 0 {
		norm = 1
	}

	for y := 0; y < totalH; y++ {
		for x := 0; x < imgW; x++ {
			if y < imgH {
				img.Set(x, y, heatColor(data[y*imgW+x]/norm))
			} else {
				img.Set(x, y, color.RGBA{0, 0, 0, 255})
			}
		}
	}

	// Zone grid lines
	xLo := int(float64(imgW) * zoneEdgeFraction)
	xHi := int(float64(imgW) * (1.0 - zoneEdgeFraction))
	yLo := int(float64(imgH) * zoneEdgeFraction)
	yHi := int(float64(imgH) * (1.0 - zoneEdgeFraction))

	gridColor := color.RGBA{255, 255, 255, 180}
	for x := 0; x < imgW; x++ {
		img.Set(x, yLo, gridColor)
		img.Set(x, yHi, gridColor)
	}
	for y := 0; y < imgH; y++ {
		img.Set(xLo, y, gridColor)
		img.Set(xHi, y, gridColor)
	}

	xBounds := [3][2]int{{0, xLo}, {xLo, xHi}, {xHi, imgW}}
	yBounds := [3][2]int{{0, yLo}, {yLo, yHi}, {yHi, imgH}}

	face := basicfont.Face7x13
	textColor := color.RGBA{255, 255, 255, 255}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			zone := analysis.Zones[zoneGrid[row][col]]
			cx := (xBounds[col][0] + xBounds[col][1]) / 2
			cy := (yBounds[row][0] + yBounds[row][1]) / 2

			drawCenteredText(img, face, zone.Label, cx, cy-6, textColor)
			drawCenteredText(img, face, fmt.Sprintf("mean %.3f", zone.MeanSaliency), cx, cy+10, textColor)
		}
	}

	// Mark the global peak and point at it from the map center.
	peakX := int(float64(analysis.PeakX) * scale)
	peakY := int(float64(analysis.PeakY) * scale)
	markerColor := color.RGBA{80, 255, 120, 255}
	drawCircle(img, peakX, peakY, 12, markerColor)
	drawLine(img, imgW/2, imgH/2, peakX, peakY, markerColor)
	drawArrowHead(img, imgW/2, imgH/2, peakX, peakY, markerColor)

	// Summary text at bottom
	summaryColor := color.RGBA{220, 220, 220, 255}
	summaryY := imgH + 15
	peakStr := fmt.Sprintf("Peak: %.3f at (%d, %d)  [map %dx%d]",
		analysis.PeakValue, analysis.PeakX, analysis.PeakY, salMap.Cols(), salMap.Rows())
	zoneStr := fmt.Sprintf("Most salient zone: %s   Mean saliency: %.4f",
		analysis.MostSalient, analysis.MeanSaliency)

	drawText(img, face, peakStr, 10, summaryY, summaryColor)
	drawText(img, face, zoneStr, 10, summaryY+18, summaryColor)

	return img, nil
}

// heatColor maps a normalized saliency value to a black-red-yellow-white
// gradient.
func heatColor(v float32) color.RGBA {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	t := float64(v)

	var r, g, b uint8
	switch {
	case t <= 0.4:
		r = uint8(t / 0.4 * 200)
		b = 30
	case t <= 0.75:
		s := (t - 0.4) / 0.35
		r = uint8(200 + s*55)
		g = uint8(s * 200)
		b = uint8(30 - s*30)
	default:
		s := (t - 0.75) / 0.25
		r = 255
		g = uint8(200 + s*55)
		b = uint8(s * 180)
	}
	return color.RGBA{r, g, b, 255}
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCenteredText draws a string centered at (cx, cy).
func drawCenteredText(img *image.RGBA, face font.Face, s string, cx, cy int, c color.RGBA) {
	advance := font.MeasureString(face, s)
	x := cx - advance.Round()/2
	drawText(img, face, s, x, cy, c)
}

// drawCircle draws a circle outline using midpoint algorithm.
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	x := radius
	y := 0
	err := 0

	for x >= y {
		img.Set(cx+x, cy+y, c)
		img.Set(cx+y, cy+x, c)
		img.Set(cx-y, cy+x, c)
		img.Set(cx-x, cy+y, c)
		img.Set(cx-x, cy-y, c)
		img.Set(cx-y, cy-x, c)
		img.Set(cx+y, cy-x, c)
		img.Set(cx+x, cy-y, c)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := intAbs(x1 - x0)
	dy := -intAbs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		// Draw thicker line (3px)
		img.Set(x0+1, y0, c)
		img.Set(x0, y0+1, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawArrowHead draws a simple arrowhead at the end of a line.
func drawArrowHead(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := float64(x1 - x0)
	dy := float64(y1 - y0)
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1 {
		return
	}
	// Normalize
	dx /= length
	dy /= length

	// Arrow head size
	sz := 15.0
	// Two wing points perpendicular to the line direction
	px := float64(x1) - dx*sz
	py := float64(y1) - dy*sz

	wx1 := int(px + dy*sz*0.4)
	wy1 := int(py - dx*sz*0.4)
	wx2 := int(px - dy*sz*0.4)
	wy2 := int(py + dx*sz*0.4)

	drawLine(img, x1, y1, wx1, wy1, c)
	drawLine(img, x1, y1, wx2, wy2, c)
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
