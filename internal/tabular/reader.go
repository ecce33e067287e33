// Package tabular reads exported spreadsheet files into rows of named
// string fields. The back office labels its exports ".csv" but serves
// genuine xlsx workbooks, so the reader tries the spreadsheet format
// first and falls back to plain CSV.
package tabular

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one record keyed by the header of its column.
type Row map[string]string

// ReadFile loads every data row of the first sheet of a file. The first
// non-empty row is treated as the header. A missing file is logged and
// returned as an empty sequence; only unreadable content is an error.
func ReadFile(path string, logger *slog.Logger) ([]Row, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("export file not found, treating as empty",
			slog.String("file", filepath.Base(path)))
		return nil, nil
	}

	records, err := readExcel(path)
	if err != nil {
		records, err = readCSV(path)
		if err != nil {
			return nil, fmt.Errorf("read export %s: %w", filepath.Base(path), err)
		}
	}

	return mapRows(records), nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

// mapRows pairs each data row with the header row. Cells beyond the
// header width are dropped; short rows leave the remaining fields empty.
func mapRows(records [][]string) []Row {
	var headers []string
	start := -1
	for i, record := range records {
		if rowHasContent(record) {
			headers = make([]string, len(record))
			for j, h := range record {
				headers[j] = strings.TrimSpace(h)
			}
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	var rows []Row
	for _, record := range records[start:] {
		if !rowHasContent(record) {
			continue
		}
		row := make(Row, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(record) {
				row[header] = record[j]
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func rowHasContent(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}
