// model.go this code defines the data model for the application
package datastore

import "time"

// Detector types recognized by the dose conversion table.
const (
	TypeHe3Tube        = "he3_tube"
	TypeBoronLined     = "boron_lined"
	TypeScintillator   = "scintillator"
	TypeFissionChamber = "fission_chamber"
	TypeActivationFoil = "activation_foil"
)

// Detector operating statuses. Status is informational: it is set at
// registration and no operation transitions it afterwards.
const (
	StatusOnline      = "online"
	StatusOffline     = "offline"
	StatusCalibrating = "calibrating"
)

// TimestampLayout is the storage format for timestamps. Values are always
// rendered in UTC at fixed width so lexicographic order on the column equals
// chronological order and range queries can compare strings directly.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTimestamp renders t in the storage timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp back into a time.Time.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// Detector represents one registered detector unit. The ID is an 8-character
// random token assigned at registration and immutable afterwards.
type Detector struct {
	ID              string `gorm:"primaryKey"`
	Name            string
	Location        string
	Type            string
	Sensitivity     float64
	BaselineCPS     float64 `gorm:"column:baseline_cps"`
	Status          string
	LastCalibration string
	AlertThreshold  float64
}

// TableName overrides the table name for Detector
func (Detector) TableName() string {
	return "detectors"
}

// Reading represents a single observation from a detector. Readings are
// append-only; the alert flag is computed against the threshold stored at
// insertion time and never re-evaluated.
type Reading struct {
	ID             uint    `gorm:"primaryKey"`
	DetectorID     string  `gorm:"index:idx_readings_detector"`
	CPS            float64 `gorm:"column:cps"`
	DoseUSvH       float64 `gorm:"column:dose_usv_h"`
	Timestamp      string  `gorm:"index:idx_readings_timestamp"`
	AlertTriggered bool
}

// TableName overrides the table name for Reading
func (Reading) TableName() string {
	return "readings"
}
