// Package exporters serializes attendance data for external
// consumption.
package exporters

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ExportSubdir is the folder created under the export directory for
// attendance CSV files.
const ExportSubdir = "AttendanceExports"

// CSVExporter writes tabular data to CSV files under a fixed export
// directory. Fields containing commas, quotes or line breaks are
// quoted per RFC 4180, so a value like "Smith, John" never splits a
// row.
type CSVExporter struct {
	Dir string
}

func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{Dir: dir}
}

func (e *CSVExporter) ensureDir() (string, error) {
	exportDir := filepath.Join(e.Dir, ExportSubdir)
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return exportDir, nil
}

// Export writes the header row followed by the data rows to
// <Dir>/AttendanceExports/<fileName>.csv and returns the file's
// absolute path.
func (e *CSVExporter) Export(fileName string, headers []string, rows [][]string) (string, error) {
	exportDir, err := e.ensureDir()
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(exportDir, fileName+".csv")
	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("failed to write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush export file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return "", fmt.Errorf("failed to sync export file: %w", err)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return outputPath, nil
	}
	return absPath, nil
}
