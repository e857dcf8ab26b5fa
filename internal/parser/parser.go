package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vedanttarate/gesture-detection/internal/types"

	"github.com/xuri/excelize/v2"
)

// ParseCSV tokenizes raw CSV text into a table. The first line becomes the
// headers; every following line becomes one data row. Lines are split on
// CRLF, LF, or CR, and a single trailing empty line (a trailing newline) is
// dropped while interior empty lines are kept. Quoted fields may contain
// commas; a doubled quote inside a quoted field is a literal quote. Fields
// are trimmed of surrounding whitespace. Embedded newlines inside quotes are
// not supported since input is split by line first.
func ParseCSV(text string) *types.Table {
	lines := splitLines(text)
	if len(lines) == 0 {
		return &types.Table{Headers: []string{}, Rows: [][]string{}}
	}

	headers := parseLine(lines[0])
	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, parseLine(line))
	}

	return &types.Table{Headers: headers, Rows: rows}
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func parseLine(line string) []string {
	var fields []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(c)
		}
	}
	fields = append(fields, strings.TrimSpace(cur.String()))

	return fields
}

// ReadFile loads a table from a CSV or XLSX file.
func ReadFile(path string) (*types.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".csv":
		return readCSVFile(path)
	case ".xlsx":
		return readXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

func readCSVFile(path string) (*types.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCSV(string(data)), nil
}

func readXLSXFile(path string) (*types.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &types.Table{Headers: []string{}, Rows: [][]string{}}, nil
	}

	return &types.Table{Headers: rows[0], Rows: rows[1:]}, nil
}
