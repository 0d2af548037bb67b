package saliency

const zoneEdgeFraction = 0.25

// ZonePosition identifies a zone in the 3x3 analysis grid.
type ZonePosition int

const (
	ZoneTopLeft ZonePosition = iota
	ZoneTop
	ZoneTopRight
	ZoneLeft
	ZoneCenter
	ZoneRight
	ZoneBottomLeft
	ZoneBottom
	ZoneBottomRight
)

var zoneLabels = map[ZonePosition]string{
	ZoneTopLeft:     "TL",
	ZoneTop:         "T",
	ZoneTopRight:    "TR",
	ZoneLeft:        "L",
	ZoneCenter:      "Center",
	ZoneRight:       "R",
	ZoneBottomLeft:  "BL",
	ZoneBottom:      "B",
	ZoneBottomRight: "BR",
}

var zoneGrid = [3][3]ZonePosition{
	{ZoneTopLeft, ZoneTop, ZoneTopRight},
	{ZoneLeft, ZoneCenter, ZoneRight},
	{ZoneBottomLeft, ZoneBottom, ZoneBottomRight},
}

// ZoneOrder lists the zones row by row, for stable iteration.
var ZoneOrder = []ZonePosition{
	ZoneTopLeft, ZoneTop, ZoneTopRight,
	ZoneLeft, ZoneCenter, ZoneRight,
	ZoneBottomLeft, ZoneBottom, ZoneBottomRight,
}

// ZoneData holds per-zone saliency statistics.
type ZoneData struct {
	Label        string
	MeanSaliency float64
	PeakSaliency float64
	PixelCount   int
}

// MapAnalysis summarizes where a saliency map concentrates its mass.
type MapAnalysis struct {
	Zones        map[ZonePosition]ZoneData
	MostSalient  string // label of the zone with the highest mean saliency
	PeakX, PeakY int    // coordinates of the global maximum, map pixels
	PeakValue    float64
	MeanSaliency float64
}

// AnalyzeZones divides a saliency map into a 3x3 grid and computes per-zone
// mean and peak saliency, the most salient zone, and the global peak
// location.
func AnalyzeZones(salMap Mat) *MapAnalysis {
	if salMap.Empty() {
		return nil
	}

	rows, cols := salMap.Rows(), salMap.Cols()
	xLo := float64(cols) * zoneEdgeFraction
	xHi := float64(cols) * (1.0 - zoneEdgeFraction)
	yLo := float64(rows) * zoneEdgeFraction
	yHi := float64(rows) * (1.0 - zoneEdgeFraction)

	sums := make(map[ZonePosition]float64)
	peaks := make(map[ZonePosition]float64)
	counts := make(map[ZonePosition]int)

	data := salMap.DataFloat32()
	var total float64
	peakValue := float64(data[0])
	peakX, peakY := 0, 0

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := float64(data[y*cols+x])
			pos := classifyZone(float64(x), float64(y), xLo, xHi, yLo, yHi)
			sums[pos] += v
			counts[pos]++
			if v > peaks[pos] {
				peaks[pos] = v
			}
			if v > peakValue {
				peakValue = v
				peakX, peakY = x, y
			}
			total += v
		}
	}

	zones := make(map[ZonePosition]ZoneData, len(ZoneOrder))
	mostSalient := ZoneCenter
	bestMean := -1.0
	for _, pos := range ZoneOrder {
		zd := ZoneData{
			Label:        zoneLabels[pos],
			PeakSaliency: peaks[pos],
			PixelCount:   counts[pos],
		}
		if counts[pos] > 0 {
			zd.MeanSaliency = sums[pos] / float64(counts[pos])
		}
		zones[pos] = zd
		if zd.MeanSaliency > bestMean {
			bestMean = zd.MeanSaliency
			mostSalient = pos
		}
	}

	return &MapAnalysis{
		Zones:        zones,
		MostSalient:  zoneLabels[mostSalient],
		PeakX:        peakX,
		PeakY:        peakY,
		PeakValue:    peakValue,
		MeanSaliency: total / float64(rows*cols),
	}
}

func classifyZone(x, y, xLo, xHi, yLo, yHi float64) ZonePosition {
	var col, row int
	if x < xLo {
		col = 0
	} else if x < xHi {
		col = 1
	} else {
		col = 2
	}
	if y < yLo {
		row = 0
	} else if y < yHi {
		row = 1
	} else {
		row = 2
	}
	return zoneGrid[row][col]
}
