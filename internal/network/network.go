// Package network implements the detector network manager: registration,
// reading ingestion, calibration, status aggregation and anomaly scanning
// layered on top of the datastore. It is the sole client of the datastore
// and carries no state besides the store handle.
package network

import (
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/datastore"
	"github.com/mkarvonen/neutron-go/internal/errors"
	"github.com/mkarvonen/neutron-go/internal/export"
	"github.com/mkarvonen/neutron-go/internal/logging"
)

const (
	// defaultAlertThreshold is the per-detector alert level in CPS assigned
	// at registration.
	defaultAlertThreshold = 100.0

	// anomalyMultiplier is the fixed baseline multiple above which a
	// detector's latest reading counts as an anomaly.
	anomalyMultiplier = 3.0

	// calibrationWindowHours is the trailing window Calibrate averages over.
	calibrationWindowHours = 24
)

// Manager orchestrates all detector network operations.
type Manager struct {
	ds  datastore.Interface
	log *slog.Logger
	now func() time.Time
}

// New creates a manager on top of an opened datastore.
func New(ds datastore.Interface) *Manager {
	return &Manager{
		ds:  ds,
		log: logging.ForService("network"),
		now: time.Now,
	}
}

// WithClock overrides the manager's time source. Used by tests to pin
// timestamps; returns the manager for chaining.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Open creates the datastore from settings, opens it and returns a manager
// together with a close function for the storage handle.
func Open(settings *conf.Settings) (*Manager, func() error, error) {
	ds, err := datastore.New(settings)
	if err != nil {
		return nil, nil, err
	}
	if err := ds.Open(); err != nil {
		return nil, nil, err
	}
	return New(ds), ds.Close, nil
}

// Register creates a new detector unit and returns its identifier. The
// detector starts online with baseline 0, the default alert threshold and
// last calibration set to now. Name, location and type must be non-empty
// and the type must be one of the recognized detector types; unknown types
// are rejected here rather than silently defaulted, since the default
// conversion factor only protects reading-time conversion.
func (m *Manager) Register(name, location, detectorType string, sensitivity float64) (string, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	detectorType = strings.TrimSpace(detectorType)

	if name == "" {
		return "", validationError("detector name must not be empty", "name", name)
	}
	if location == "" {
		return "", validationError("detector location must not be empty", "location", location)
	}
	if detectorType == "" {
		return "", validationError("detector type must not be empty", "type", detectorType)
	}
	if !RecognizedType(detectorType) {
		return "", errors.Newf("unknown detector type %q, recognized types: %s",
			detectorType, strings.Join(RecognizedTypes(), ", ")).
			Component("network").
			Category(errors.CategoryValidation).
			Context("type", detectorType).
			Build()
	}

	detector := datastore.Detector{
		ID:              newDetectorID(),
		Name:            name,
		Location:        location,
		Type:            detectorType,
		Sensitivity:     sensitivity,
		BaselineCPS:     0,
		Status:          datastore.StatusOnline,
		LastCalibration: datastore.FormatTimestamp(m.now()),
		AlertThreshold:  defaultAlertThreshold,
	}

	err := m.ds.SaveDetector(&detector)
	if err != nil && datastore.IsConstraintViolation(err) {
		// The 8-char token collided with an existing detector; one retry
		// with a fresh token is enough given the source rarity.
		detector.ID = newDetectorID()
		err = m.ds.SaveDetector(&detector)
	}
	if err != nil {
		return "", err
	}

	m.log.Info("detector registered",
		"detector_id", detector.ID,
		"name", name,
		"location", location,
		"type", detectorType)
	return detector.ID, nil
}

// newDetectorID returns a short random detector identifier: the first eight
// characters of a v4 UUID. Uniqueness rests on source rarity only.
func newDetectorID() string {
	return uuid.NewString()[:8]
}

// RecordReading ingests one observation timestamped with the current time.
func (m *Manager) RecordReading(detectorID string, cps float64) (datastore.Reading, error) {
	return m.RecordReadingAt(detectorID, cps, m.now())
}

// RecordReadingAt ingests one observation with a caller-supplied timestamp.
// The dose rate is derived from the detector's type-specific conversion
// factor and the alert flag is evaluated against the threshold stored at
// insertion time; neither is re-evaluated later.
func (m *Manager) RecordReadingAt(detectorID string, cps float64, at time.Time) (datastore.Reading, error) {
	detector, err := m.ds.GetDetector(detectorID)
	if err != nil {
		return datastore.Reading{}, err
	}

	reading := datastore.Reading{
		DetectorID:     detectorID,
		CPS:            cps,
		DoseUSvH:       cps * ConversionFactor(detector.Type),
		Timestamp:      datastore.FormatTimestamp(at),
		AlertTriggered: cps > detector.AlertThreshold,
	}
	if err := m.ds.SaveReading(&reading); err != nil {
		return datastore.Reading{}, err
	}

	if reading.AlertTriggered {
		m.log.Warn("alert threshold exceeded",
			"detector_id", detectorID,
			"cps", cps,
			"threshold", detector.AlertThreshold)
	}
	return reading, nil
}

// Dose returns the sum of per-reading dose rates over the trailing window
// of the given number of hours. Zero when no readings match.
//
// Known approximation: this is a raw sum of µSv/h sample values, not a
// time-weighted integral, and it is not divided by the sample count. It is
// only dimensionally a dose if each reading represents one hour of
// exposure. The behaviour is preserved as-is for compatibility with
// existing consumers and should be read as a monitoring figure, not a
// metrological one.
func (m *Manager) Dose(detectorID string, hours int) (float64, error) {
	since := datastore.FormatTimestamp(m.now().Add(-time.Duration(hours) * time.Hour))
	return m.ds.SumDose(detectorID, since)
}

// SetThreshold updates the alert threshold of a detector. The value is
// stored as given; negative thresholds are accepted and compared as-is at
// ingestion time.
func (m *Manager) SetThreshold(detectorID string, alertCPS float64) error {
	if err := m.ds.UpdateDetector(detectorID, map[string]any{
		"alert_threshold": alertCPS,
	}); err != nil {
		return err
	}
	m.log.Info("alert threshold updated", "detector_id", detectorID, "threshold", alertCPS)
	return nil
}

// FleetEntry is one detector's row in the fleet report.
type FleetEntry struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	CPS       float64 `json:"cps"`
	DoseUSvH  float64 `json:"dose_usv_h"`
	DoseLevel string  `json:"dose_level"`
	Timestamp string  `json:"timestamp"`
}

// FleetStatus reports every detector together with its most recent reading.
// A detector with no stored readings is omitted entirely, not listed with
// empty reading fields.
func (m *Manager) FleetStatus() ([]FleetEntry, error) {
	detectors, err := m.ds.AllDetectors()
	if err != nil {
		return nil, err
	}

	entries := make([]FleetEntry, 0, len(detectors))
	for i := range detectors {
		latest, err := m.ds.LatestReading(detectors[i].ID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			continue
		}
		entries = append(entries, FleetEntry{
			ID:        detectors[i].ID,
			Name:      detectors[i].Name,
			Location:  detectors[i].Location,
			Type:      detectors[i].Type,
			Status:    detectors[i].Status,
			CPS:       latest.CPS,
			DoseUSvH:  latest.DoseUSvH,
			DoseLevel: DoseLevel(latest.DoseUSvH),
			Timestamp: latest.Timestamp,
		})
	}
	return entries, nil
}

// Anomaly flags a detector whose latest reading exceeds three times its
// stored baseline.
type Anomaly struct {
	DetectorID  string  `json:"detector_id"`
	BaselineCPS float64 `json:"baseline_cps"`
	CurrentCPS  float64 `json:"current_cps"`
	Multiplier  float64 `json:"multiplier"`
	Timestamp   string  `json:"timestamp"`
}

// AnomalyScan compares each detector's latest reading against three times
// its baseline. Detectors without readings are skipped. With a zero
// baseline any positive reading qualifies; the multiplier is reported as 0
// in that case since no finite ratio exists.
func (m *Manager) AnomalyScan() ([]Anomaly, error) {
	detectors, err := m.ds.AllDetectors()
	if err != nil {
		return nil, err
	}

	anomalies := make([]Anomaly, 0)
	for i := range detectors {
		latest, err := m.ds.LatestReading(detectors[i].ID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			continue
		}
		if latest.CPS <= detectors[i].BaselineCPS*anomalyMultiplier {
			continue
		}

		multiplier := 0.0
		if detectors[i].BaselineCPS > 0 {
			multiplier = math.Round(latest.CPS/detectors[i].BaselineCPS*100) / 100
		}
		anomalies = append(anomalies, Anomaly{
			DetectorID:  detectors[i].ID,
			BaselineCPS: detectors[i].BaselineCPS,
			CurrentCPS:  latest.CPS,
			Multiplier:  multiplier,
			Timestamp:   latest.Timestamp,
		})
	}
	return anomalies, nil
}

// SpectrumPoint is one (timestamp, cps) sample in a detector's history.
type SpectrumPoint struct {
	Timestamp string  `json:"timestamp"`
	CPS       float64 `json:"cps"`
}

// Spectrum returns the detector's readings in the trailing window of the
// given number of hours, in ascending chronological order.
func (m *Manager) Spectrum(detectorID string, hours int) ([]SpectrumPoint, error) {
	since := datastore.FormatTimestamp(m.now().Add(-time.Duration(hours) * time.Hour))
	readings, err := m.ds.GetReadings(detectorID, since)
	if err != nil {
		return nil, err
	}

	points := make([]SpectrumPoint, 0, len(readings))
	for i := range readings {
		points = append(points, SpectrumPoint{
			Timestamp: readings[i].Timestamp,
			CPS:       readings[i].CPS,
		})
	}
	return points, nil
}

// Calibrate resets the detector's baseline to the arithmetic mean of its
// CPS values over the trailing 24 hours and stamps last calibration. With
// no readings in the window the baseline is left untouched and 0 is
// returned. The detector status is deliberately not transitioned to
// "calibrating": status is informational and only ever set at registration.
func (m *Manager) Calibrate(detectorID string) (float64, error) {
	points, err := m.Spectrum(detectorID, calibrationWindowHours)
	if err != nil {
		return 0, err
	}
	if len(points) == 0 {
		return 0, nil
	}

	var sum float64
	for i := range points {
		sum += points[i].CPS
	}
	baseline := sum / float64(len(points))

	if err := m.ds.UpdateDetector(detectorID, map[string]any{
		"baseline_cps":     baseline,
		"last_calibration": datastore.FormatTimestamp(m.now()),
	}); err != nil {
		return 0, err
	}

	m.log.Info("detector calibrated",
		"detector_id", detectorID,
		"baseline_cps", baseline,
		"samples", len(points))
	return baseline, nil
}

// Export writes the detector's full reading history as an NDF artifact to
// outputPath. Fails with a not-found error when the detector is unknown.
func (m *Manager) Export(detectorID, outputPath string) error {
	detector, err := m.ds.GetDetector(detectorID)
	if err != nil {
		return err
	}
	readings, err := m.ds.GetReadings(detectorID, "")
	if err != nil {
		return err
	}
	if err := export.WriteNDF(outputPath, &detector, readings); err != nil {
		return err
	}

	m.log.Info("detector history exported",
		"detector_id", detectorID,
		"path", outputPath,
		"readings", len(readings))
	return nil
}

// validationError creates a validation error with field context
func validationError(message, field string, value any) error {
	return errors.Newf("%s", message).
		Component("network").
		Category(errors.CategoryValidation).
		Context("field", field).
		Context("value", value).
		Build()
}
