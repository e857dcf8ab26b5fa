// Package payload builds the JSON row objects sent to the prediction
// service from the current table and selection.
package payload

import (
	"regexp"
	"strconv"

	"github.com/vedanttarate/gesture-detection/internal/types"
)

var (
	intPattern   = regexp.MustCompile(`^-?\d+$`)
	floatPattern = regexp.MustCompile(`^-?\d+\.\d+$`)
)

// Coerce converts raw cell text to the JSON value submitted for it: an empty
// cell becomes null, an integer literal becomes an int, a decimal literal
// becomes a float, and everything else stays a string. Scientific notation,
// leading '+', and locale decimal separators are deliberately not handled.
func Coerce(cell string) any {
	if cell == "" {
		return nil
	}
	if intPattern.MatchString(cell) {
		if n, err := strconv.Atoi(cell); err == nil {
			return n
		}
		return cell
	}
	if floatPattern.MatchString(cell) {
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return f
		}
	}
	return cell
}

// Build produces one payload row per index, in the given order, keyed by
// header name. Cells a short row is missing are treated as empty and so
// coerce to null.
func Build(t *types.Table, indices []int) []map[string]any {
	rows := make([]map[string]any, 0, len(indices))
	for _, idx := range indices {
		row := make(map[string]any, len(t.Headers))
		for col, header := range t.Headers {
			row[header] = Coerce(t.Cell(idx, col))
		}
		rows = append(rows, row)
	}
	return rows
}
