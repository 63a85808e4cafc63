package texture

import "fmt"

// Property identifies one of the supported per-window texture reductions.
// The set is closed: every recognised property has a dedicated reducer, so a
// Property value obtained from ParseProperty can never hit an unsupported
// branch at compute time.
type Property int

const (
	// Dissimilarity is the co-occurrence-weighted mean absolute level
	// difference: sum over the matrix of P(i,j) * |i-j|.
	Dissimilarity Property = iota
	// Homogeneity is the inverse-difference-weighted sum:
	// sum of P(i,j) / (1 + (i-j)^2). Lies in [0, 1].
	Homogeneity
	// Entropy is the natural-log Shannon entropy of the co-occurrence
	// matrix treated as a flat discrete distribution. Zero-probability
	// cells contribute zero.
	Entropy
)

// propertyNames maps each Property to its wire/config name.
var propertyNames = map[Property]string{
	Dissimilarity: "dissimilarity",
	Homogeneity:   "homogeneity",
	Entropy:       "entropy",
}

// String returns the canonical lowercase name of the property.
func (p Property) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

// Valid reports whether p is one of the recognised properties.
func (p Property) Valid() bool {
	_, ok := propertyNames[p]
	return ok
}

// ParseProperty converts a property name into its Property value. Unknown
// names return an error wrapping ErrUnsupportedProperty.
func ParseProperty(name string) (Property, error) {
	for p, n := range propertyNames {
		if n == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (valid: entropy, dissimilarity, homogeneity)", ErrUnsupportedProperty, name)
}
