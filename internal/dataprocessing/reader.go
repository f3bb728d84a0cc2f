package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"cbpmetrics/internal/config"
	apperrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/regional"
)

// Columns names the CBP columns holding each field of an observation
type Columns struct {
	Geography string
	Industry  string
	Value     string
}

// ColumnsFrom returns the column names configured in cfg
func ColumnsFrom(cfg config.AnalysisConfig) Columns {
	return Columns{
		Geography: cfg.GeographyColumn,
		Industry:  cfg.IndustryColumn,
		Value:     cfg.ValueColumn,
	}
}

// Reader loads CBP extracts into industry tables
type Reader struct {
	cols   Columns
	logger *slog.Logger
}

// NewReader creates a reader for the given columns
func NewReader(cols Columns, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		cols:   cols,
		logger: logger.With(slog.String("component", "cbp_reader")),
	}
}

// ReadFile reads a .csv or .xlsx extract, chosen by extension
func (r *Reader) ReadFile(path string) (regional.IndustryTable, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return regional.IndustryTable{}, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
		}
		defer f.Close()

		table, err := r.ReadCSV(f)
		if err != nil {
			return regional.IndustryTable{}, withFile(err, path)
		}
		return table, nil
	case ".xlsx", ".xlsm":
		table, err := r.ReadXLSX(path, "")
		if err != nil {
			return regional.IndustryTable{}, withFile(err, path)
		}
		return table, nil
	default:
		return regional.IndustryTable{}, apperrors.NewParsingError(
			fmt.Sprintf("unsupported file type %q", filepath.Ext(path)), nil).WithContext("file", path)
	}
}

// ReadCSV reads a CSV extract whose first record is the header
func (r *Reader) ReadCSV(in io.Reader) (regional.IndustryTable, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return regional.IndustryTable{}, apperrors.NewParsingError("malformed CSV", err)
	}
	return r.parse(records)
}

// ReadXLSX reads one sheet of a workbook. An empty sheet name selects the
// first sheet.
func (r *Reader) ReadXLSX(path, sheet string) (regional.IndustryTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return regional.IndustryTable{}, apperrors.NewStorageError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return regional.IndustryTable{}, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}

	r.logger.Debug("workbook sheet loaded",
		slog.String("sheet", sheet),
		slog.Int("rows", len(rows)))

	return r.parse(rows)
}

// parse converts header-led records into a table. Rows without any content
// are skipped; a row with a missing or non-numeric value is rejected.
func (r *Reader) parse(records [][]string) (regional.IndustryTable, error) {
	if len(records) == 0 {
		return regional.IndustryTable{}, apperrors.NewParsingError("extract has no header row", nil)
	}

	geoIdx, indIdx, valIdx, err := r.locate(records[0])
	if err != nil {
		return regional.IndustryTable{}, err
	}

	rows := make([]regional.IndustryValue, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if blank(rec) {
			continue
		}

		geo := cell(rec, geoIdx)
		industry := cell(rec, indIdx)
		raw := cell(rec, valIdx)
		if geo == "" || industry == "" {
			return regional.IndustryTable{}, apperrors.NewParsingError(
				fmt.Sprintf("row %d: missing geography or industry", line), nil).WithContext("row", line)
		}

		value, err := parseValue(raw)
		if err != nil {
			return regional.IndustryTable{}, apperrors.NewParsingError(
				fmt.Sprintf("row %d: invalid %s value %q", line, r.cols.Value, raw), err).
				WithContext("row", line).
				WithContext("column", r.cols.Value)
		}

		rows = append(rows, regional.IndustryValue{Geography: geo, Industry: industry, Value: value})
	}

	r.logger.Info("CBP extract parsed",
		slog.Int("rows", len(rows)),
		slog.String("value_column", r.cols.Value))

	return regional.NewIndustryTable(rows), nil
}

// locate finds the configured columns in header, ignoring case and spacing
func (r *Reader) locate(header []string) (geo, industry, value int, err error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := index[strings.ToLower(name)]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}

	geo = find(r.cols.Geography)
	industry = find(r.cols.Industry)
	value = find(r.cols.Value)
	if len(missing) > 0 {
		return 0, 0, 0, apperrors.NewParsingError(
			fmt.Sprintf("missing columns: %s", strings.Join(missing, ", ")), nil).
			WithContext("columns", missing)
	}
	return geo, industry, value, nil
}

func parseValue(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("empty cell")
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("value is not a finite number")
	}
	return v, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func withFile(err error, path string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		appErr.WithContext("file", path)
	}
	return err
}
