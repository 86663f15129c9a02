// readings.go: time-series queries over the readings table
package datastore

import (
	"gorm.io/gorm"

	"github.com/mkarvonen/neutron-go/internal/errors"
)

// SaveReading appends a new reading record. The write is committed before
// the call returns; there is no buffering layer.
func (ds *DataStore) SaveReading(reading *Reading) error {
	if err := ds.DB.Create(reading).Error; err != nil {
		return dbError(err, "save_reading", "detector_id", reading.DetectorID)
	}
	return nil
}

// GetReadings returns the readings of a detector ordered by timestamp
// ascending. A non-empty since value bounds the query to timestamps at or
// after it; timestamps compare as strings (see TimestampLayout).
func (ds *DataStore) GetReadings(detectorID, since string) ([]Reading, error) {
	query := ds.DB.Where("detector_id = ?", detectorID)
	if since != "" {
		query = query.Where("timestamp >= ?", since)
	}

	var readings []Reading
	if err := query.Order("timestamp ASC").Find(&readings).Error; err != nil {
		return nil, dbError(err, "get_readings", "detector_id", detectorID)
	}
	return readings, nil
}

// LatestReading returns the most recent reading of a detector, or nil when
// the detector has no readings at all. The nil result is a normal empty
// value, not an error.
func (ds *DataStore) LatestReading(detectorID string) (*Reading, error) {
	var reading Reading
	err := ds.DB.Where("detector_id = ?", detectorID).
		Order("timestamp DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, dbError(err, "latest_reading", "detector_id", detectorID)
	}
	return &reading, nil
}

// SumDose returns the sum of dose_usv_h over the readings of a detector
// with timestamp at or after since. Zero when no rows match.
func (ds *DataStore) SumDose(detectorID, since string) (float64, error) {
	var total float64
	err := ds.DB.Model(&Reading{}).
		Select("COALESCE(SUM(dose_usv_h), 0)").
		Where("detector_id = ? AND timestamp >= ?", detectorID, since).
		Scan(&total).Error
	if err != nil {
		return 0, dbError(err, "sum_dose", "detector_id", detectorID)
	}
	return total, nil
}
