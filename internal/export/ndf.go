// Package export writes detector history in NDF (Neutron Data Format): a
// comma separated artifact with a detector header block followed by a blank
// separator row and the reading table.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mkarvonen/neutron-go/internal/datastore"
	"github.com/mkarvonen/neutron-go/internal/errors"
)

// WriteNDF writes the NDF artifact for one detector. Layout, in order:
// header row (Detector, Location, Type, Baseline_CPS), detector values,
// blank row, reading table header (Timestamp, CPS, Dose_uSv_h), then one
// row per reading in ascending timestamp order. Field order is fixed;
// downstream consumers parse by position.
func WriteNDF(outputPath string, detector *datastore.Detector, readings []datastore.Reading) error {
	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fileError(fmt.Errorf("creating export directory %s: %w", dir, err), outputPath)
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fileError(fmt.Errorf("creating export file: %w", err), outputPath)
	}
	defer f.Close()

	records := [][]string{
		{"Detector", "Location", "Type", "Baseline_CPS"},
		{detector.Name, detector.Location, detector.Type, formatFloat(detector.BaselineCPS)},
		{},
		{"Timestamp", "CPS", "Dose_uSv_h"},
	}
	for i := range readings {
		records = append(records, []string{
			readings[i].Timestamp,
			formatFloat(readings[i].CPS),
			formatFloat(readings[i].DoseUSvH),
		})
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fileError(fmt.Errorf("writing export file: %w", err), outputPath)
	}
	if err := f.Close(); err != nil {
		return fileError(fmt.Errorf("closing export file: %w", err), outputPath)
	}
	return nil
}

// formatFloat renders a float with the shortest representation that
// round-trips, matching how values appear elsewhere in the CLI output.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fileError(err error, path string) error {
	return errors.New(err).
		Component("export").
		Category(errors.CategoryFileIO).
		Context("path", path).
		Build()
}
