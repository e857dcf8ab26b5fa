package ui

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vedanttarate/gesture-detection/internal/gestures"
	"github.com/vedanttarate/gesture-detection/internal/predict"
)

// resultEntry is one rendered prediction line: the 1-based row number of the
// submitted CSV row and its label text.
type resultEntry struct {
	RowNumber int
	Text      string
}

// buildResultEntries pairs the i-th result with the i-th selected index
// (indices are the 0-based selection at send time, ascending). Pairing stops
// at the shorter sequence: excess results are ignored, and a response
// shorter than the submission produces a warning.
func buildResultEntries(indices []int, results []predict.Result) ([]resultEntry, string) {
	n := len(indices)
	if len(results) < n {
		n = len(results)
	}

	entries := make([]resultEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, resultEntry{
			RowNumber: indices[i] + 1,
			Text:      labelForResult(results[i]),
		})
	}

	var warning string
	if len(results) < len(indices) {
		warning = fmt.Sprintf("Warning: received %d prediction(s) for %d submitted row(s)",
			len(results), len(indices))
	}
	return entries, warning
}

// labelForResult turns one result into display text: numeric predictions go
// through the gesture label table, a result without a prediction field is
// shown as its raw JSON, and a confidence is appended as a percentage.
func labelForResult(r predict.Result) string {
	var text string
	switch {
	case r.HasPrediction:
		text = stringifyPrediction(r.Prediction)
	default:
		text = rawText(r.Raw)
	}

	label := text
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		label = gestures.Label(int(f))
	}

	if r.Confidence != nil {
		label = fmt.Sprintf("%s (confidence: %.1f%%)", label, *r.Confidence*100)
	}
	return label
}

func stringifyPrediction(v any) string {
	switch n := v.(type) {
	case string:
		return n
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(n)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	}
}

// rawText renders a raw JSON value for display, unquoting bare strings.
func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// statusLine is the human-readable selection summary shown under the table.
// The empty-table case is handled by the table view's empty-state indicator,
// not here.
func statusLine(rowCount int, indices []int) string {
	if len(indices) == 0 {
		return fmt.Sprintf("No rows selected. Press space or click a row to select (%d rows loaded)", rowCount)
	}

	nums := make([]string, len(indices))
	for i, idx := range indices {
		nums[i] = strconv.Itoa(idx + 1)
	}
	return fmt.Sprintf("%d selected: row(s) %s", len(indices), strings.Join(nums, ", "))
}
