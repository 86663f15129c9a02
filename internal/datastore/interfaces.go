// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"gorm.io/gorm"

	"github.com/mkarvonen/neutron-go/internal/conf"
	"github.com/mkarvonen/neutron-go/internal/errors"
)

// Interface abstracts the underlying database implementation and defines the
// operations available to the network manager.
type Interface interface {
	Open() error
	Close() error

	SaveDetector(detector *Detector) error
	GetDetector(id string) (Detector, error)
	UpdateDetector(id string, fields map[string]any) error
	AllDetectors() ([]Detector, error)

	SaveReading(reading *Reading) error
	GetReadings(detectorID, since string) ([]Reading, error)
	LatestReading(detectorID string) (*Reading, error)
	SumDose(detectorID, since string) (float64, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB *gorm.DB // GORM database instance
}

// New creates a new datastore instance based on the provided settings.
func New(settings *conf.Settings) (Interface, error) {
	switch {
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{Settings: settings}, nil
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{Settings: settings}, nil
	default:
		return nil, errors.Newf("no database output enabled in settings").
			Component("datastore").
			Category(errors.CategoryConfiguration).
			Build()
	}
}

// Close closes the underlying database connection.
func (ds *DataStore) Close() error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Component("datastore").
			Category(errors.CategoryDatabase).
			Build()
	}

	sqlDB, err := ds.DB.DB()
	if err != nil {
		return dbError(err, "close")
	}
	return sqlDB.Close()
}

// SaveDetector inserts a new detector record.
func (ds *DataStore) SaveDetector(detector *Detector) error {
	if err := ds.DB.Create(detector).Error; err != nil {
		return dbError(err, "save_detector", "detector_id", detector.ID)
	}
	return nil
}

// GetDetector retrieves a detector by its identifier. Returns a not-found
// error when no record matches.
func (ds *DataStore) GetDetector(id string) (Detector, error) {
	var detector Detector
	if err := ds.DB.Where("id = ?", id).First(&detector).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Detector{}, notFoundError("detector", id)
		}
		return Detector{}, dbError(err, "get_detector", "detector_id", id)
	}
	return detector, nil
}

// UpdateDetector updates mutable fields (status, baseline, threshold, last
// calibration) of a detector by identifier. The fields map is keyed by
// column name.
func (ds *DataStore) UpdateDetector(id string, fields map[string]any) error {
	if _, err := ds.GetDetector(id); err != nil {
		return err
	}
	if err := ds.DB.Model(&Detector{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return dbError(err, "update_detector", "detector_id", id)
	}
	return nil
}

// AllDetectors returns every registered detector.
func (ds *DataStore) AllDetectors() ([]Detector, error) {
	var detectors []Detector
	if err := ds.DB.Find(&detectors).Error; err != nil {
		return nil, dbError(err, "all_detectors")
	}
	return detectors, nil
}
