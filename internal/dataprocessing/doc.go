// Package dataprocessing reads County Business Patterns extracts into
// regional.IndustryTable values.
//
// CSV files and XLSX workbooks are supported. Column names are configurable
// and matched without regard to case; the defaults are those of the Census
// CBP files (county, NAICS2012, EMP). Industry codes are kept as text so
// leading zeros and sector ranges such as "31-33" survive.
package dataprocessing
