// datastore_test.go: Tests for detector and reading storage operations
package datastore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mkarvonen/neutron-go/internal/errors"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DataStore {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&Detector{}, &Reading{})
	require.NoError(t, err)

	return &DataStore{DB: db}
}

func testDetector(id string) *Detector {
	return &Detector{
		ID:              id,
		Name:            "Reactor Hall North",
		Location:        "Building 7",
		Type:            TypeHe3Tube,
		Sensitivity:     1.0,
		BaselineCPS:     12.5,
		Status:          StatusOnline,
		LastCalibration: FormatTimestamp(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		AlertThreshold:  100,
	}
}

func TestSaveAndGetDetector(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)

	want := testDetector("a1b2c3d4")
	require.NoError(t, ds.SaveDetector(want))

	got, err := ds.GetDetector("a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, *want, got)
}

func TestGetDetectorNotFound(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)

	_, err := ds.GetDetector("missing1")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestSaveDetectorDuplicateID(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)

	require.NoError(t, ds.SaveDetector(testDetector("a1b2c3d4")))
	err := ds.SaveDetector(testDetector("a1b2c3d4"))
	require.Error(t, err)
	assert.True(t, IsConstraintViolation(err))
}

func TestUpdateDetector(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)
	require.NoError(t, ds.SaveDetector(testDetector("a1b2c3d4")))

	t.Run("updates mutable fields", func(t *testing.T) {
		err := ds.UpdateDetector("a1b2c3d4", map[string]any{
			"alert_threshold": 250.0,
			"baseline_cps":    20.0,
		})
		require.NoError(t, err)

		got, err := ds.GetDetector("a1b2c3d4")
		require.NoError(t, err)
		assert.InDelta(t, 250.0, got.AlertThreshold, 1e-9)
		assert.InDelta(t, 20.0, got.BaselineCPS, 1e-9)
	})

	t.Run("idempotent with unchanged values", func(t *testing.T) {
		err := ds.UpdateDetector("a1b2c3d4", map[string]any{"alert_threshold": 250.0})
		require.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := ds.UpdateDetector("missing1", map[string]any{"alert_threshold": 1.0})
		require.Error(t, err)
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestGetReadingsOrderingAndWindow(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)
	require.NoError(t, ds.SaveDetector(testDetector("a1b2c3d4")))

	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	// Inserted deliberately out of chronological order.
	offsets := []time.Duration{2 * time.Hour, 0, time.Hour}
	for _, off := range offsets {
		require.NoError(t, ds.SaveReading(&Reading{
			DetectorID: "a1b2c3d4",
			CPS:        10,
			DoseUSvH:   0.064,
			Timestamp:  FormatTimestamp(base.Add(off)),
		}))
	}

	t.Run("ascending order", func(t *testing.T) {
		readings, err := ds.GetReadings("a1b2c3d4", "")
		require.NoError(t, err)
		require.Len(t, readings, 3)
		for i := 1; i < len(readings); i++ {
			assert.Less(t, readings[i-1].Timestamp, readings[i].Timestamp)
		}
	})

	t.Run("since bound is inclusive", func(t *testing.T) {
		readings, err := ds.GetReadings("a1b2c3d4", FormatTimestamp(base.Add(time.Hour)))
		require.NoError(t, err)
		require.Len(t, readings, 2)
		assert.Equal(t, FormatTimestamp(base.Add(time.Hour)), readings[0].Timestamp)
	})

	t.Run("other detector is empty", func(t *testing.T) {
		readings, err := ds.GetReadings("other000", "")
		require.NoError(t, err)
		assert.Empty(t, readings)
	})
}

func TestLatestReading(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)
	require.NoError(t, ds.SaveDetector(testDetector("a1b2c3d4")))

	t.Run("nil without readings", func(t *testing.T) {
		latest, err := ds.LatestReading("a1b2c3d4")
		require.NoError(t, err)
		assert.Nil(t, latest)
	})

	t.Run("returns most recent", func(t *testing.T) {
		base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
		for i, cps := range []float64{10, 30, 20} {
			require.NoError(t, ds.SaveReading(&Reading{
				DetectorID: "a1b2c3d4",
				CPS:        cps,
				Timestamp:  FormatTimestamp(base.Add(time.Duration(i) * time.Minute)),
			}))
		}

		latest, err := ds.LatestReading("a1b2c3d4")
		require.NoError(t, err)
		require.NotNil(t, latest)
		assert.InDelta(t, 20.0, latest.CPS, 1e-9)
	})
}

func TestSumDose(t *testing.T) {
	t.Parallel()
	ds := setupTestDB(t)
	require.NoError(t, ds.SaveDetector(testDetector("a1b2c3d4")))

	base := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	t.Run("zero without readings", func(t *testing.T) {
		total, err := ds.SumDose("a1b2c3d4", FormatTimestamp(base))
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("sums only the window", func(t *testing.T) {
		doses := []float64{0.1, 0.2, 0.4}
		for i, dose := range doses {
			require.NoError(t, ds.SaveReading(&Reading{
				DetectorID: "a1b2c3d4",
				DoseUSvH:   dose,
				Timestamp:  FormatTimestamp(base.Add(time.Duration(i) * time.Hour)),
			}))
		}

		total, err := ds.SumDose("a1b2c3d4", FormatTimestamp(base.Add(time.Hour)))
		require.NoError(t, err)
		assert.InDelta(t, 0.6, total, 1e-9)
	})
}

func TestTimestampFormat(t *testing.T) {
	t.Parallel()

	t.Run("lexicographic equals chronological", func(t *testing.T) {
		earlier := time.Date(2025, 6, 2, 9, 59, 59, 999999999, time.UTC)
		later := earlier.Add(time.Nanosecond)
		assert.Less(t, FormatTimestamp(earlier), FormatTimestamp(later))
	})

	t.Run("fixed width", func(t *testing.T) {
		a := FormatTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
		b := FormatTimestamp(time.Date(2025, 12, 31, 23, 59, 59, 123456789, time.UTC))
		assert.Len(t, b, len(a))
	})

	t.Run("round trip", func(t *testing.T) {
		orig := time.Date(2025, 6, 2, 10, 30, 0, 500000000, time.UTC)
		parsed, err := ParseTimestamp(FormatTimestamp(orig))
		require.NoError(t, err)
		assert.True(t, parsed.Equal(orig))
	})

	t.Run("non-UTC input normalized", func(t *testing.T) {
		loc := time.FixedZone("EET", 2*60*60)
		local := time.Date(2025, 6, 2, 12, 0, 0, 0, loc)
		assert.Equal(t, FormatTimestamp(local.UTC()), FormatTimestamp(local))
	})
}
