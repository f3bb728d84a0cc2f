// Package exporter writes regional results as report files.
//
// Results are first laid out as Tables (LocationQuotientTable,
// ShiftShareTables, SpecializationTable, GeoQuotientTable). CSVWriter writes
// one CSV file per table, optionally prefixed with a UTF-8 BOM for Excel.
// XLSXWriter writes several tables into one workbook with a sheet each.
// Undefined ratios are written as empty cells in both formats.
package exporter
