package models

import (
	"fmt"
	"time"

	"github.com/color-tools/api/colorcode"
)

// DailyColor is the color of the day and the named color it was matched
// to. Hex and NameHex are six lowercase digits without '#'.
type DailyColor struct {
	ID        int       `json:"id"`
	Date      time.Time `json:"date"`
	Hex       string    `json:"hex"`
	ColorName string    `json:"color_name"`
	NameHex   string    `json:"name_hex"`
	Distance  float64   `json:"distance"`
	CreatedAt time.Time `json:"created_at"`
}

func NewDailyColor(date time.Time, c colorcode.Color, match colorcode.Match) DailyColor {
	return DailyColor{
		Date:      date,
		Hex:       c.Hex(),
		ColorName: match.Name,
		NameHex:   match.Hex,
		Distance:  match.Distance,
	}
}

// Color parses Hex. A malformed value yields black.
func (dc DailyColor) Color() colorcode.Color {
	c, err := colorcode.ParseHex(dc.Hex)
	if err != nil {
		return colorcode.Color{}
	}
	return c
}

// DailyColorResponse is the simplified response for API endpoints
type DailyColorResponse struct {
	Date      string  `json:"date"`
	ColorName string  `json:"color_name"`
	RGB       string  `json:"rgb"`
	Hex       string  `json:"hex"`
	NameHex   string  `json:"nameHex"`
	Distance  float64 `json:"distance"`
	Exact     bool    `json:"exact"`
	TextColor string  `json:"textColor"`
}

func NewDailyColorResponse(dc DailyColor) DailyColorResponse {
	c := dc.Color()
	rgb := c.RGB()
	return DailyColorResponse{
		Date:      dc.Date.Format("2006-01-02"),
		ColorName: dc.ColorName,
		RGB:       fmt.Sprintf("rgb(%d,%d,%d)", rgb.R, rgb.G, rgb.B),
		Hex:       c.String(),
		NameHex:   "#" + dc.NameHex,
		Distance:  dc.Distance,
		Exact:     dc.NameHex == c.Hex(),
		TextColor: colorcode.TextColor(c),
	}
}
