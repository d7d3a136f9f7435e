package models

import (
	"strings"

	"github.com/color-tools/api/textkit"
	"github.com/color-tools/api/units"
	"github.com/google/uuid"
)

// UnitConversionRequest asks to express Value, given in From, in every
// other unit of Category
type UnitConversionRequest struct {
	Category string  `json:"category"`
	From     string  `json:"from"`
	Value    float64 `json:"value"`
}

type UnitConversionResponse struct {
	Category string         `json:"category"`
	From     string         `json:"from"`
	Value    float64        `json:"value"`
	Results  []units.Result `json:"results"`
}

// UUIDFormats lists common spellings of one UUID
type UUIDFormats struct {
	Standard  string `json:"standard"`
	Uppercase string `json:"uppercase"`
	NoDashes  string `json:"noDashes"`
	Braces    string `json:"braces"`
	URN       string `json:"urn"`
}

func NewUUIDFormats(id uuid.UUID) UUIDFormats {
	s := id.String()
	return UUIDFormats{
		Standard:  s,
		Uppercase: strings.ToUpper(s),
		NoDashes:  strings.ReplaceAll(s, "-", ""),
		Braces:    "{" + s + "}",
		URN:       id.URN(),
	}
}

type TextCaseRequest struct {
	Text string `json:"text"`
	Case string `json:"case"`
}

type TextCaseResponse struct {
	Case   string `json:"case"`
	Result string `json:"result"`
}

type TextStatsRequest struct {
	Text string `json:"text"`
}

type TextDiffRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// TextDiffResponse carries the line chunks in order plus the number of
// added and removed lines
type TextDiffResponse struct {
	Chunks  []textkit.Chunk `json:"chunks"`
	Added   int             `json:"added"`
	Removed int             `json:"removed"`
}

func NewTextDiffResponse(chunks []textkit.Chunk) TextDiffResponse {
	resp := TextDiffResponse{Chunks: chunks}
	for _, c := range chunks {
		switch {
		case c.Added:
			resp.Added += c.Count
		case c.Removed:
			resp.Removed += c.Count
		}
	}
	return resp
}

type LoremResponse struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Text  string `json:"text"`
}
