package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/color-tools/api/colorcode"
	"github.com/google/uuid"
)

const (
	MaxPaletteColors   = 32
	MaxPaletteNameSize = 100
)

// Palette is a named, ordered list of colors saved by a user. Colors are
// stored as six lowercase hex digits.
type Palette struct {
	PaletteID string    `json:"paletteId" db:"palette_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Colors    []string  `json:"colors" db:"colors"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CreatePaletteRequest represents the request to save a palette
type CreatePaletteRequest struct {
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// PaletteResponse expands every palette color into its display codes
type PaletteResponse struct {
	PaletteID string              `json:"paletteId"`
	Name      string              `json:"name"`
	Colors    []ColorCodeResponse `json:"colors"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// NewPalette validates req and returns a palette owned by userID
func NewPalette(userID string, req CreatePaletteRequest) (Palette, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return Palette{}, errors.New("palette name is required")
	}
	if len(name) > MaxPaletteNameSize {
		return Palette{}, fmt.Errorf("palette name is longer than %d bytes", MaxPaletteNameSize)
	}
	if len(req.Colors) == 0 {
		return Palette{}, errors.New("palette needs at least one color")
	}
	if len(req.Colors) > MaxPaletteColors {
		return Palette{}, fmt.Errorf("palette has %d colors, limit is %d", len(req.Colors), MaxPaletteColors)
	}

	colors := make([]string, len(req.Colors))
	for i, hex := range req.Colors {
		normalized, err := colorcode.NormalizeHex(hex)
		if err != nil {
			return Palette{}, fmt.Errorf("color %d: %w", i, err)
		}
		colors[i] = normalized
	}

	now := time.Now()
	return Palette{
		PaletteID: uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Colors:    colors,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// NewPaletteResponse converts each stored color with cv
func NewPaletteResponse(p Palette, cv *colorcode.Converter) (PaletteResponse, error) {
	resp := PaletteResponse{
		PaletteID: p.PaletteID,
		Name:      p.Name,
		Colors:    make([]ColorCodeResponse, 0, len(p.Colors)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, hex := range p.Colors {
		c, err := colorcode.ParseHex(hex)
		if err != nil {
			return PaletteResponse{}, err
		}
		resp.Colors = append(resp.Colors, NewColorCodeResponse(cv.Code(c), c))
	}
	return resp, nil
}
