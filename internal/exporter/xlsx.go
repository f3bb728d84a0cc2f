package exporter

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"cbpmetrics/internal/config"
)

// XLSXWriter writes result tables into a workbook, one sheet per table
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a new workbook writer
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// WriteWorkbook writes tables to name in the reports directory and returns the
// file path. Numbers are stored as numeric cells; undefined ratios are left
// empty.
func (w *XLSXWriter) WriteWorkbook(name string, tables ...Table) (string, error) {
	if len(tables) == 0 {
		return "", fmt.Errorf("no tables to write")
	}

	path := name
	if !filepath.IsAbs(path) && w.paths != nil {
		path = w.paths.ReportPath(name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for i, t := range tables {
		sheet := sheetName(t.Name, i)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return "", fmt.Errorf("failed to name sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return "", fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, t, headerStyle); err != nil {
			return "", fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("workbook written",
		slog.String("path", path),
		slog.Int("sheets", len(tables)))
	return path, nil
}

func writeSheet(f *excelize.File, sheet string, t Table, headerStyle int) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	if len(t.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			if fv, ok := v.(float64); ok && (math.IsNaN(fv) || math.IsInf(fv, 0)) {
				continue
			}
			cells[c] = v
		}

		ref, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, ref, &cells); err != nil {
			return err
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// sheetName keeps names within the 31 character limit of Excel
func sheetName(name string, i int) string {
	if name == "" {
		name = fmt.Sprintf("Sheet%d", i+1)
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}
