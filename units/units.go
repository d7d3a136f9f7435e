// Package units converts measurements between units of the same
// category using a static table of linear formulas.
package units

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownCategory = errors.New("unknown unit category")
	ErrUnknownUnit     = errors.New("unknown unit")
)

// Unit converts to and from its category's base unit.
type Unit struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	toBase   func(float64) float64
	fromBase func(float64) float64
}

// ToBase converts v from this unit into the category's base unit.
func (u Unit) ToBase(v float64) float64 { return u.toBase(v) }

// FromBase converts v from the category's base unit into this unit.
func (u Unit) FromBase(v float64) float64 { return u.fromBase(v) }

// Category is an ordered group of mutually convertible units. The first
// unit is the base.
type Category struct {
	Key   string `json:"key"`
	Units []Unit `json:"units"`
}

// Result is one converted value.
type Result struct {
	Unit  string  `json:"unit"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func scaled(key, name string, factor float64) Unit {
	return Unit{
		Key:      key,
		Name:     name,
		toBase:   func(v float64) float64 { return v * factor },
		fromBase: func(v float64) float64 { return v / factor },
	}
}

var categories = []Category{
	{
		Key: "length",
		Units: []Unit{
			scaled("meter", "Meter (m)", 1),
			scaled("kilometer", "Kilometer (km)", 1000),
			scaled("centimeter", "Centimeter (cm)", 0.01),
			scaled("millimeter", "Millimeter (mm)", 0.001),
			scaled("mile", "Mile (mi)", 1609.344),
			scaled("yard", "Yard (yd)", 0.9144),
			scaled("foot", "Foot (ft)", 0.3048),
			scaled("inch", "Inch (in)", 0.0254),
		},
	},
	{
		Key: "temperature",
		Units: []Unit{
			scaled("celsius", "Celsius (°C)", 1),
			{
				Key:      "fahrenheit",
				Name:     "Fahrenheit (°F)",
				toBase:   func(v float64) float64 { return (v - 32) * 5 / 9 },
				fromBase: func(v float64) float64 { return v*9/5 + 32 },
			},
			{
				Key:      "kelvin",
				Name:     "Kelvin (K)",
				toBase:   func(v float64) float64 { return v - 273.15 },
				fromBase: func(v float64) float64 { return v + 273.15 },
			},
		},
	},
	{
		Key: "weight",
		Units: []Unit{
			scaled("kilogram", "Kilogram (kg)", 1),
			scaled("gram", "Gram (g)", 0.001),
			scaled("milligram", "Milligram (mg)", 0.000001),
			scaled("ton", "Metric Ton (t)", 1000),
			scaled("pound", "Pound (lb)", 0.453592),
			scaled("ounce", "Ounce (oz)", 0.0283495),
		},
	},
	{
		Key: "area",
		Units: []Unit{
			scaled("squareMeter", "Square Meter (m²)", 1),
			scaled("squareKilometer", "Square Kilometer (km²)", 1000000),
			scaled("squareCentimeter", "Square Centimeter (cm²)", 0.0001),
			scaled("squareMile", "Square Mile (mi²)", 2589988.110336),
			scaled("squareYard", "Square Yard (yd²)", 0.836127),
			scaled("squareFoot", "Square Foot (ft²)", 0.092903),
			scaled("acre", "Acre (ac)", 4046.86),
			scaled("hectare", "Hectare (ha)", 10000),
		},
	},
	{
		Key: "volume",
		Units: []Unit{
			scaled("liter", "Liter (L)", 1),
			scaled("milliliter", "Milliliter (mL)", 0.001),
			scaled("cubicMeter", "Cubic Meter (m³)", 1000),
			scaled("cubicCentimeter", "Cubic Centimeter (cm³)", 0.001),
			scaled("gallon", "Gallon (gal)", 3.78541),
			scaled("quart", "Quart (qt)", 0.946353),
			scaled("pint", "Pint (pt)", 0.473176),
			scaled("cup", "Cup (cup)", 0.236588),
			scaled("fluidOunce", "Fluid Ounce (fl oz)", 0.0295735),
		},
	},
}

// Categories returns every category in display order. The returned slice
// must not be modified.
func Categories() []Category {
	return categories
}

// Lookup finds a category by key.
func Lookup(category string) (Category, error) {
	for _, c := range categories {
		if c.Key == category {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
}

// Unit finds a unit of c by key.
func (c Category) Unit(key string) (Unit, error) {
	for _, u := range c.Units {
		if u.Key == key {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w: %q in %s", ErrUnknownUnit, key, c.Key)
}

// Convert expresses value, given in unit from, in every other unit of
// the category, in table order.
func Convert(category, from string, value float64) ([]Result, error) {
	c, err := Lookup(category)
	if err != nil {
		return nil, err
	}
	src, err := c.Unit(from)
	if err != nil {
		return nil, err
	}

	base := src.ToBase(value)
	results := make([]Result, 0, len(c.Units)-1)
	for _, u := range c.Units {
		if u.Key == from {
			continue
		}
		results = append(results, Result{Unit: u.Key, Name: u.Name, Value: u.FromBase(base)})
	}
	return results, nil
}

// ConvertTo expresses value, given in unit from, in unit to.
func ConvertTo(category, from, to string, value float64) (float64, error) {
	c, err := Lookup(category)
	if err != nil {
		return 0, err
	}
	src, err := c.Unit(from)
	if err != nil {
		return 0, err
	}
	dst, err := c.Unit(to)
	if err != nil {
		return 0, err
	}
	return dst.FromBase(src.ToBase(value)), nil
}
