package models

import "github.com/color-tools/api/colorcode"

// ColorCodeResponse is a converted color with its foreground hint
type ColorCodeResponse struct {
	colorcode.Code
	Luminosity float64 `json:"luminosity"`
	TextColor  string  `json:"textColor"`
}

// ColorNameResponse is the nearest named color for a requested hex
type ColorNameResponse struct {
	Input string `json:"input"`
	colorcode.Match
}

// ContrastResponse reports the WCAG contrast between two colors
type ContrastResponse struct {
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
	Ratio      float64 `json:"ratio"`
	AA         bool    `json:"aa"`
	AAA        bool    `json:"aaa"`
}

// WCAG minimum ratios for normal-size text
const (
	ContrastAA  = 4.5
	ContrastAAA = 7.0
)

func NewColorCodeResponse(code colorcode.Code, c colorcode.Color) ColorCodeResponse {
	return ColorCodeResponse{
		Code:       code,
		Luminosity: c.Luminosity(),
		TextColor:  colorcode.TextColor(c),
	}
}
