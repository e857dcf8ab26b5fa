package parser

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		headers []string
		rows    [][]string
	}{
		{
			name:    "Simple",
			input:   "x,y\n1,2\n3,4",
			headers: []string{"x", "y"},
			rows:    [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:    "Trailing newline dropped",
			input:   "a,b\n1,2\n",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1", "2"}},
		},
		{
			name:    "Interior empty line kept",
			input:   "a,b\n1,2\n\n3,4",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1", "2"}, {""}, {"3", "4"}},
		},
		{
			name:    "CRLF line endings",
			input:   "a,b\r\n1,2\r\n3,4\r\n",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:    "CR line endings",
			input:   "a,b\r1,2\r3,4",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1", "2"}, {"3", "4"}},
		},
		{
			name:    "Quoted comma and escaped quote",
			input:   `a,"b,c","d""e"`,
			headers: []string{"a", "b,c", `d"e`},
			rows:    [][]string{},
		},
		{
			name:    "Fields trimmed",
			input:   " a , b \n 1 ,2 ",
			headers: []string{"a", "b"},
			rows:    [][]string{{"1", "2"}},
		},
		{
			name:    "Short row kept short",
			input:   "a,b,c\n1,2",
			headers: []string{"a", "b", "c"},
			rows:    [][]string{{"1", "2"}},
		},
		{
			name:    "Empty input",
			input:   "",
			headers: []string{},
			rows:    [][]string{},
		},
		{
			name:    "Header only",
			input:   "a,b\n",
			headers: []string{"a", "b"},
			rows:    [][]string{},
		},
		{
			name:    "Empty quoted field",
			input:   `a,"",c`,
			headers: []string{"a", "", "c"},
			rows:    [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSV(tt.input)
			if !reflect.DeepEqual(got.Headers, tt.headers) {
				t.Errorf("Headers = %q; want %q", got.Headers, tt.headers)
			}
			if len(got.Rows) != len(tt.rows) {
				t.Fatalf("got %d rows; want %d", len(got.Rows), len(tt.rows))
			}
			for i := range tt.rows {
				if !reflect.DeepEqual(got.Rows[i], tt.rows[i]) {
					t.Errorf("Rows[%d] = %q; want %q", i, got.Rows[i], tt.rows[i])
				}
			}
		})
	}
}

func TestParseCSVHeaderRoundTrip(t *testing.T) {
	// Parsing then re-rendering the header row must reproduce the original
	// fields in order.
	inputs := [][]string{
		{"x", "y", "z"},
		{"acc_x", "acc_y", "acc_z", "rot_w"},
		{"single"},
	}

	for _, headers := range inputs {
		text := ""
		for i, h := range headers {
			if i > 0 {
				text += ","
			}
			text += h
		}
		text += "\n1,2,3,4\n"

		got := ParseCSV(text)
		if !reflect.DeepEqual(got.Headers, headers) {
			t.Errorf("round trip of %q produced %q", headers, got.Headers)
		}
	}
}

func TestReadFileCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,2\n3,4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !reflect.DeepEqual(table.Headers, []string{"x", "y"}) {
		t.Errorf("Headers = %q", table.Headers)
	}
	if len(table.Rows) != 2 || table.Rows[1][0] != "3" {
		t.Errorf("Rows = %q", table.Rows)
	}
}

func TestReadFileXLSX(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "x")
	f.SetCellValue(sheet, "B1", "y")
	f.SetCellValue(sheet, "A2", 1)
	f.SetCellValue(sheet, "B2", 2)
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	table, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !reflect.DeepEqual(table.Headers, []string{"x", "y"}) {
		t.Errorf("Headers = %q", table.Headers)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "1" {
		t.Errorf("Rows = %q", table.Rows)
	}
}

func TestReadFileUnsupported(t *testing.T) {
	if _, err := ReadFile("data.txt"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
