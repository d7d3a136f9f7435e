// Package colorcode converts hex color codes into RGB, HSL and CMYK
// representations, labels them with the nearest named color and
// computes relative luminance for text contrast decisions.
package colorcode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned for any input that is not a 3 or 6
// digit hex color, with or without a leading '#'.
var ErrInvalidColorFormat = errors.New("invalid hex color code")

var hexPattern = regexp.MustCompile(`^#?([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// RGB is a color as three 8-bit channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Color is an immutable sRGB color. The zero value is black.
type Color struct {
	rgb RGB
}

// FromRGB builds a Color from channel values.
func FromRGB(r, g, b uint8) Color {
	return Color{rgb: RGB{R: r, G: g, B: b}}
}

// NormalizeHex validates s and returns it as six lowercase hex digits
// without the '#' prefix.
func NormalizeHex(s string) (string, error) {
	m := hexPattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	digits := strings.ToLower(m[1])
	if len(digits) == 3 {
		digits = string([]byte{
			digits[0], digits[0],
			digits[1], digits[1],
			digits[2], digits[2],
		})
	}
	return digits, nil
}

// ParseHex parses "#RGB", "#RRGGBB" or the same forms without '#'.
func ParseHex(s string) (Color, error) {
	digits, err := NormalizeHex(s)
	if err != nil {
		return Color{}, err
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		// unreachable after the pattern match
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidColorFormat, s)
	}
	return FromRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

// MustParseHex is like ParseHex but panics on invalid input. It is meant
// for package-level tables of known colors.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// RGB returns the channel values.
func (c Color) RGB() RGB {
	return c.rgb
}

// Hex returns six lowercase hex digits without a '#' prefix.
func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.rgb.R, c.rgb.G, c.rgb.B)
}

// String returns the color as "#rrggbb".
func (c Color) String() string {
	return "#" + c.Hex()
}

// normalized returns the channels scaled to [0,1].
func (c Color) normalized() (r, g, b float64) {
	return float64(c.rgb.R) / 255, float64(c.rgb.G) / 255, float64(c.rgb.B) / 255
}
