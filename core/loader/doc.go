// Package loader reads tabular source files into raw header + rows form.
//
// It supports .xlsx/.xlsm workbooks (excelize), legacy .xls workbooks
// (extrame/xls) and CSV files with byte-order-mark sniffing for UTF-8,
// UTF-16 and Latin-1 input. Worksheets are selected by name with a
// fall-back to the first sheet; the fallback and any row-width repairs
// are reported as warnings so nothing is adjusted silently.
//
// The loader knows nothing about attendance semantics. It hands a
// RawTable to the schema resolver and normalizer, which own all meaning.
package loader
