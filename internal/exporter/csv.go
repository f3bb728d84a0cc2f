package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cbpmetrics/internal/config"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	paths  *config.Paths
	bom    bool
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer. With bom set, files start with a
// UTF-8 BOM so Excel detects the encoding.
func NewCSVWriter(paths *config.Paths, bom bool, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{paths: paths, bom: bom, logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool
}

// WriteTable writes t to <name>.csv in the reports directory and returns the
// file path
func (w *CSVWriter) WriteTable(t Table) (string, error) {
	records := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		records = append(records, formatRecord(row))
	}

	name := t.Name + ".csv"
	err := w.WriteCSV(name, WriteOptions{
		Headers:   t.Headers,
		Records:   records,
		BOMPrefix: w.bom,
	})
	return w.resolvePath(name), err
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Info("writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return file.Close()
}

// resolvePath places relative paths in the reports directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.paths == nil {
		return filePath
	}
	return w.paths.ReportPath(filePath)
}
