package report

import "math"

// PieSlice is one wedge of a pie chart
// Angles are in degrees, measured clockwise from twelve o'clock
type PieSlice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
}

// PieChart computes slice angles from labeled values
// Non-positive values are dropped. An empty or all-zero input yields nil.
func PieChart(labels []string, values []float64) []PieSlice {
	total := 0.0
	for _, v := range values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return nil
	}

	var slices []PieSlice
	angle := 0.0
	for i, v := range values {
		if v <= 0 {
			continue
		}
		sweep := v / total * 360
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		slices = append(slices, PieSlice{
			Label:      label,
			Value:      v,
			Percentage: round2(v / total * 100),
			StartAngle: round2(angle),
			EndAngle:   round2(angle + sweep),
		})
		angle += sweep
	}
	// Close the circle exactly despite accumulated rounding
	slices[len(slices)-1].EndAngle = 360
	return slices
}

// Bar is one column of a bar chart
type Bar struct {
	Label  string  `json:"label"`
	Value  float64 `json:"value"`
	Height float64 `json:"height"` // 0..maxHeight
}

// BarChart scales values into column heights within maxHeight
// Negative values clamp to zero height
func BarChart(labels []string, values []float64, maxHeight float64) []Bar {
	if len(values) == 0 || maxHeight <= 0 {
		return nil
	}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	bars := make([]Bar, 0, len(values))
	for i, v := range values {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		height := 0.0
		if peak > 0 && v > 0 {
			height = round2(v / peak * maxHeight)
		}
		bars = append(bars, Bar{Label: label, Value: v, Height: height})
	}
	return bars
}

// LinePoint is one vertex of a line chart polyline
type LinePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineChart maps a series into viewport coordinates
// X spreads points evenly across the width, Y is zero at the bottom
// and grows upward toward the series maximum
func LineChart(values []float64, width, height float64) []LinePoint {
	if len(values) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	span := maxV - minV

	step := 0.0
	if len(values) > 1 {
		step = width / float64(len(values)-1)
	}

	points := make([]LinePoint, 0, len(values))
	for i, v := range values {
		y := height / 2
		if span > 0 {
			y = (v - minV) / span * height
		}
		points = append(points, LinePoint{
			X: round2(float64(i) * step),
			Y: round2(y),
		})
	}
	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
