// Package rowfile reads scraped row batches from disk. Page rendering and
// DOM selection happen in an external scraping harness; it hands over its
// output as a CSV file, one table row per line, raw cell text preserved.
package rowfile

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Yuxuan-Wu/weather-training-data/internal/domain"
)

// ReadBatch loads one scraped batch. Rows may have differing column counts;
// short rows are kept and their missing trailing cells read as absent.
func ReadBatch(path string) ([]domain.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open row batch: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read row batch %s: %w", path, err)
	}

	rows := make([]domain.RawRow, len(records))
	for i, rec := range records {
		rows[i] = domain.RawRow(rec)
	}
	return rows, nil
}
