package colorcode

import "math"

// TextThreshold is the luminosity above which dark text is used.
const TextThreshold = 0.5

// Luminosity returns the relative luminance of c in [0,1].
func (c Color) Luminosity() float64 {
	r, g, b := c.normalized()
	return 0.2126*linearize(r) + 0.7152*linearize(g) + 0.0722*linearize(b)
}

// Luminosity parses hex and returns its relative luminance.
func Luminosity(hex string) (float64, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return 0, err
	}
	return c.Luminosity(), nil
}

// TextColor returns "black" or "white", whichever reads better on c.
func TextColor(c Color) string {
	if c.Luminosity() > TextThreshold {
		return "black"
	}
	return "white"
}

// ContrastRatio returns the WCAG contrast ratio between a and b, from 1
// (identical) to 21 (black on white).
func ContrastRatio(a, b Color) float64 {
	l1, l2 := a.Luminosity(), b.Luminosity()
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}
