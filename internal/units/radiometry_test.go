package units

import (
	"math"
	"testing"
)

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		unit string
		want bool
	}{
		{"natural is valid", Natural, true},
		{"db is valid", DB, true},
		{"empty string is invalid", "", false},
		{"uppercase is invalid", "DB", false},
		{"unknown unit is invalid", "sigma0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValid(tt.unit); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.unit, got, tt.want)
			}
		})
	}
}

func TestNaturalToDB(t *testing.T) {
	tests := []struct {
		name    string
		natural float64
		want    float64
	}{
		{"unity is 0 dB", 1, 0},
		{"10 is 10 dB", 10, 10},
		{"100 is 20 dB", 100, 20},
		{"0.1 is -10 dB", 0.1, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NaturalToDB(tt.natural)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NaturalToDB(%v) = %v, want %v", tt.natural, got, tt.want)
			}
		})
	}
}

func TestNaturalToDBZero(t *testing.T) {
	if got := NaturalToDB(0); !math.IsInf(got, -1) {
		t.Errorf("NaturalToDB(0) = %v, want -Inf", got)
	}
}

func TestDBToNatural(t *testing.T) {
	tests := []struct {
		name string
		db   float64
		want float64
	}{
		{"0 dB is unity", 0, 1},
		{"10 dB is 10", 10, 10},
		{"-10 dB is 0.1", -10, 0.1},
		{"3 dB is roughly double", 3, 1.9952623149688795},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DBToNatural(tt.db)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DBToNatural(%v) = %v, want %v", tt.db, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, natural := range []float64{0.001, 0.5, 1, 42, 1e6} {
		got := DBToNatural(NaturalToDB(natural))
		if math.Abs(got-natural)/natural > 1e-12 {
			t.Errorf("round trip of %v gave %v", natural, got)
		}
	}
}

func TestConvertBackscatter(t *testing.T) {
	tests := []struct {
		name    string
		natural float64
		target  string
		want    float64
	}{
		{"to db", 100, DB, 20},
		{"to natural is identity", 100, Natural, 100},
		{"unknown unit falls back to natural", 100, "linear", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertBackscatter(tt.natural, tt.target)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertBackscatter(%v, %q) = %v, want %v", tt.natural, tt.target, got, tt.want)
			}
		})
	}
}
