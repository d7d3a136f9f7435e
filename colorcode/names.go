package colorcode

import (
	"fmt"
	"image/color"
	"os"
	"sort"
	"strings"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/gamut"
	"github.com/muesli/gamut/palette"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// NamedColor is one entry of a name table.
type NamedColor struct {
	Name  string
	Color Color
}

// Match is the result of a nearest-name lookup.
type Match struct {
	Name     string  `json:"name"`
	Hex      string  `json:"hex"`
	Distance float64 `json:"distance"`
	Exact    bool    `json:"exact"`
}

// NameTable is an immutable set of named colors searched by nearest
// neighbour. Entries are kept sorted by name so lookups are
// deterministic: among equidistant entries the first name wins.
type NameTable struct {
	entries []NamedColor
	metric  Metric
}

// NewNameTable builds a table from a name to color mapping. Duplicate
// names keep the last color given. A nil metric selects RGBMetric.
func NewNameTable(colors map[string]Color, metric Metric) *NameTable {
	if metric == nil {
		metric = RGBMetric{}
	}
	entries := make([]NamedColor, 0, len(colors))
	for name, c := range colors {
		entries = append(entries, NamedColor{Name: name, Color: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return &NameTable{entries: entries, metric: metric}
}

// Len reports the number of entries.
func (t *NameTable) Len() int {
	return len(t.entries)
}

// Metric returns the distance function used by Nearest.
func (t *NameTable) Metric() Metric {
	return t.metric
}

// WithMetric returns a table sharing t's entries but measuring with m.
func (t *NameTable) WithMetric(m Metric) *NameTable {
	if m == nil {
		m = RGBMetric{}
	}
	return &NameTable{entries: t.entries, metric: m}
}

// Lookup returns the color registered under name.
func (t *NameTable) Lookup(name string) (Color, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Name >= name
	})
	if i < len(t.entries) && t.entries[i].Name == name {
		return t.entries[i].Color, true
	}
	return Color{}, false
}

// Nearest returns the entry closest to c. An empty table yields the
// zero Match.
func (t *NameTable) Nearest(c Color) Match {
	var best Match
	found := false
	for _, e := range t.entries {
		d := t.metric.Distance(c, e.Color)
		if !found || d < best.Distance {
			best = Match{Name: e.Name, Hex: e.Color.Hex(), Distance: d}
			found = true
		}
	}
	best.Exact = found && best.Hex == c.Hex()
	return best
}

// Extend returns a new table holding t's entries plus extra. Entries in
// extra replace same-named entries of t.
func (t *NameTable) Extend(extra map[string]Color) *NameTable {
	merged := make(map[string]Color, len(t.entries)+len(extra))
	for _, e := range t.entries {
		merged[e.Name] = e.Color
	}
	for name, c := range extra {
		merged[name] = c
	}
	return NewNameTable(merged, t.metric)
}

// DefaultNames returns the process-wide table: the encyclopedia color
// list of gamut merged with the CSS named colors, all lowercased. CSS
// entries replace same-named encyclopedia entries. It is built on first
// use and never modified.
var DefaultNames = sync.OnceValue(func() *NameTable {
	colors := make(map[string]Color, 2048)
	addPalette(colors, palette.Wikipedia.Colors())
	for name, rgba := range colornames.Map {
		colors[name] = fromRGBA(rgba)
	}
	return NewNameTable(colors, RGBMetric{})
})

// addPalette lowercases the names of cc into colors. A name listed with
// more than one color keeps the lowest hex value.
func addPalette(colors map[string]Color, cc gamut.Colors) {
	for _, gc := range cc {
		cf, ok := colorful.MakeColor(gc.Color)
		if !ok {
			continue
		}
		name := strings.ToLower(gc.Name)
		c := FromRGB(cf.RGB255())
		if prev, seen := colors[name]; seen && prev.Hex() < c.Hex() {
			continue
		}
		colors[name] = c
	}
}

func fromRGBA(c color.RGBA) Color {
	return FromRGB(c.R, c.G, c.B)
}

type namesFileEntry struct {
	Name string `yaml:"name"`
	Hex  string `yaml:"hex"`
}

// ParseNames decodes a YAML list of {name, hex} entries.
func ParseNames(data []byte) (map[string]Color, error) {
	var entries []namesFileEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("error parsing named colors: %w", err)
	}

	colors := make(map[string]Color, len(entries))
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("named color %d has no name", i)
		}
		c, err := ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("named color %q: %w", e.Name, err)
		}
		colors[e.Name] = c
	}
	return colors, nil
}

// LoadNamesFile reads extra named colors from a YAML file.
func LoadNamesFile(path string) (map[string]Color, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading named colors file: %w", err)
	}
	return ParseNames(data)
}
