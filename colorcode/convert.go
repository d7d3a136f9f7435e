package colorcode

import (
	"fmt"
	"math"
)

// HSL holds hue in degrees [0,360) and saturation/lightness in [0,1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// CMYK holds the subtractive components, each in [0,1].
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Code is the display record produced for a color.
type Code struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	RGB  string `json:"rgb"`
	CMYK string `json:"cmyk"`
	HSL  string `json:"hsl"`
}

// HSL converts the color to hue, saturation and lightness.
func (c Color) HSL() HSL {
	r, g, b := c.normalized()
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	hsl := HSL{L: (max + min) / 2}
	if delta == 0 {
		return hsl
	}

	if hsl.L > 0.5 {
		hsl.S = delta / (2 - max - min)
	} else {
		hsl.S = delta / (max + min)
	}

	switch max {
	case r:
		hsl.H = (g - b) / delta
		if g < b {
			hsl.H += 6
		}
	case g:
		hsl.H = (b-r)/delta + 2
	default:
		hsl.H = (r-g)/delta + 4
	}
	hsl.H *= 60
	if hsl.H >= 360 {
		hsl.H -= 360
	}
	return hsl
}

// CMYK converts the color to cyan, magenta, yellow and key.
func (c Color) CMYK() CMYK {
	r, g, b := c.normalized()
	k := 1 - math.Max(r, math.Max(g, b))
	if k == 1 {
		return CMYK{K: 1}
	}
	return CMYK{
		C: (1 - r - k) / (1 - k),
		M: (1 - g - k) / (1 - k),
		Y: (1 - b - k) / (1 - k),
		K: k,
	}
}

// Converter turns hex input into display records using a name table.
type Converter struct {
	Names *NameTable
}

// NewConverter returns a Converter labelling colors from names. A nil
// table selects DefaultNames.
func NewConverter(names *NameTable) *Converter {
	if names == nil {
		names = DefaultNames()
	}
	return &Converter{Names: names}
}

// Convert parses hex and returns its display record.
func (cv *Converter) Convert(hex string) (Code, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return Code{}, err
	}
	return cv.Code(c), nil
}

// Code formats c for display.
func (cv *Converter) Code(c Color) Code {
	rgb := c.RGB()
	hsl := c.HSL()
	cmyk := c.CMYK()

	hue := math.Round(hsl.H)
	if hue == 360 {
		hue = 0
	}

	return Code{
		Name: "~ " + cv.Names.Nearest(c).Name,
		Hex:  c.Hex(),
		RGB:  fmt.Sprintf("%d, %d, %d", rgb.R, rgb.G, rgb.B),
		CMYK: fmt.Sprintf("%.0f, %.0f, %.0f, %.0f",
			percent(cmyk.C), percent(cmyk.M), percent(cmyk.Y), percent(cmyk.K)),
		HSL: fmt.Sprintf("%.0f, %.0f, %.0f", hue, percent(hsl.S), percent(hsl.L)),
	}
}

// Convert converts hex using the default name table.
func Convert(hex string) (Code, error) {
	return defaultConverter().Convert(hex)
}

func defaultConverter() *Converter {
	return &Converter{Names: DefaultNames()}
}

func percent(f float64) float64 {
	v := math.Round(f * 100)
	if v == 0 {
		// avoid printing "-0"
		return 0
	}
	return v
}
