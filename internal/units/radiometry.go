// Package units provides shared constants and validation for SAR
// backscatter units
package units

import "math"

// Unit constants
const (
	Natural = "natural"
	DB      = "db"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Natural, DB}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "natural, db"
}

// NaturalToDB converts a backscatter value from natural (linear power) units
// to decibels
func NaturalToDB(natural float64) float64 {
	return math.Log10(natural) * 10
}

// DBToNatural converts a backscatter value from decibels to natural (linear
// power) units
func DBToNatural(db float64) float64 {
	return math.Pow(10, db/10)
}

// ConvertBackscatter converts a backscatter value stored in natural units to
// the target units. Processing chains store backscatter in natural units.
func ConvertBackscatter(natural float64, targetUnits string) float64 {
	switch targetUnits {
	case DB:
		return NaturalToDB(natural)
	case Natural:
		return natural // no conversion needed
	default:
		return natural // default to natural if unknown unit
	}
}
