package units

import (
	"errors"
	"math"
	"testing"
)

func TestConvertTo(t *testing.T) {
	tests := []struct {
		category, from, to string
		in, want           float64
	}{
		{"length", "kilometer", "meter", 1.5, 1500},
		{"length", "mile", "kilometer", 1, 1.609344},
		{"length", "foot", "inch", 1, 12},
		{"temperature", "celsius", "fahrenheit", 100, 212},
		{"temperature", "fahrenheit", "celsius", 32, 0},
		{"temperature", "kelvin", "celsius", 0, -273.15},
		{"temperature", "fahrenheit", "kelvin", 212, 373.15},
		{"weight", "ton", "gram", 1, 1000000},
		{"weight", "pound", "kilogram", 10, 4.53592},
		{"area", "hectare", "squareMeter", 2, 20000},
		{"volume", "cubicMeter", "liter", 1, 1000},
		{"volume", "liter", "milliliter", 0.25, 250},
	}
	for _, tt := range tests {
		got, err := ConvertTo(tt.category, tt.from, tt.to, tt.in)
		if err != nil {
			t.Errorf("ConvertTo(%s, %s, %s, %v): %v", tt.category, tt.from, tt.to, tt.in, err)
			continue
		}
		if math.Abs(got-tt.want) > 1e-9*math.Max(1, math.Abs(tt.want)) {
			t.Errorf("ConvertTo(%s, %s, %s, %v) = %v, want %v", tt.category, tt.from, tt.to, tt.in, got, tt.want)
		}
	}
}

func TestConvertListsOtherUnits(t *testing.T) {
	results, err := Convert("temperature", "celsius", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Unit != "fahrenheit" || results[0].Value != 32 {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Unit != "kelvin" || results[1].Value != 273.15 {
		t.Errorf("results[1] = %+v", results[1])
	}
}

func TestRoundTripEveryUnit(t *testing.T) {
	for _, c := range Categories() {
		for _, u := range c.Units {
			for _, v := range []float64{-40, 0, 1, 123.456} {
				got := u.FromBase(u.ToBase(v))
				if math.Abs(got-v) > 1e-9*math.Max(1, math.Abs(v)) {
					t.Errorf("%s/%s round trip of %v = %v", c.Key, u.Key, v, got)
				}
			}
		}
	}
}

func TestConvertErrors(t *testing.T) {
	if _, err := Convert("speed", "knot", 1); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("unknown category: err = %v", err)
	}
	if _, err := Convert("length", "parsec", 1); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("unknown unit: err = %v", err)
	}
	if _, err := ConvertTo("length", "meter", "gram", 1); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("cross-category unit: err = %v", err)
	}
}
