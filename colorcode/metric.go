package colorcode

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Metric measures how far apart two colors are. Smaller is closer.
type Metric interface {
	Distance(a, b Color) float64
}

// RGBMetric is the Euclidean distance between 8-bit RGB triples.
type RGBMetric struct{}

func (RGBMetric) Distance(a, b Color) float64 {
	dr := float64(a.rgb.R) - float64(b.rgb.R)
	dg := float64(a.rgb.G) - float64(b.rgb.G)
	db := float64(a.rgb.B) - float64(b.rgb.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// LabMetric is the Euclidean distance in CIE L*a*b* space.
type LabMetric struct{}

func (LabMetric) Distance(a, b Color) float64 {
	return a.colorful().DistanceLab(b.colorful())
}

// CIEDE2000Metric is the CIEDE2000 color difference.
type CIEDE2000Metric struct{}

func (CIEDE2000Metric) Distance(a, b Color) float64 {
	return a.colorful().DistanceCIEDE2000(b.colorful())
}

// MetricByName maps a configuration value to a Metric. The empty string
// selects RGBMetric.
func MetricByName(name string) (Metric, error) {
	switch name {
	case "", "rgb":
		return RGBMetric{}, nil
	case "lab":
		return LabMetric{}, nil
	case "ciede2000":
		return CIEDE2000Metric{}, nil
	default:
		return nil, fmt.Errorf("unknown color metric %q", name)
	}
}

func (c Color) colorful() colorful.Color {
	r, g, b := c.normalized()
	return colorful.Color{R: r, G: g, B: b}
}
