// conversion.go: fixed conversion and classification tables
package network

import "github.com/mkarvonen/neutron-go/internal/datastore"

// cpsToDose maps detector type to a CPS to µSv/h conversion factor. Rough
// estimates per detector technology; process-wide constants, never mutated.
var cpsToDose = map[string]float64{
	datastore.TypeHe3Tube:        0.0064,
	datastore.TypeBoronLined:     0.0042,
	datastore.TypeScintillator:   0.0055,
	datastore.TypeFissionChamber: 0.0075,
	datastore.TypeActivationFoil: 0.0045,
}

// defaultConversionFactor applies to readings of detectors whose stored type
// is not in the conversion table. Registration rejects unknown types, so
// this only protects conversion for rows written by older schema versions.
const defaultConversionFactor = 0.005

// ConversionFactor returns the CPS to µSv/h factor for a detector type.
func ConversionFactor(detectorType string) float64 {
	if factor, ok := cpsToDose[detectorType]; ok {
		return factor
	}
	return defaultConversionFactor
}

// RecognizedType reports whether detectorType is in the conversion table.
func RecognizedType(detectorType string) bool {
	_, ok := cpsToDose[detectorType]
	return ok
}

// RecognizedTypes returns the recognized detector types in stable order.
func RecognizedTypes() []string {
	return []string{
		datastore.TypeHe3Tube,
		datastore.TypeBoronLined,
		datastore.TypeScintillator,
		datastore.TypeFissionChamber,
		datastore.TypeActivationFoil,
	}
}

// Dose rate classification labels.
const (
	LevelNormal   = "normal"
	LevelElevated = "elevated"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// DoseLevel classifies a dose rate in µSv/h into an alert level band.
// Band upper bounds are exclusive: [0,1) normal, [1,10) elevated,
// [10,100) high, [100,∞) critical.
func DoseLevel(doseUSvH float64) string {
	switch {
	case doseUSvH < 1:
		return LevelNormal
	case doseUSvH < 10:
		return LevelElevated
	case doseUSvH < 100:
		return LevelHigh
	default:
		return LevelCritical
	}
}
