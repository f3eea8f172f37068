package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"MerchantReports/internal/model"
)

// Record is one data row keyed by header text.
type Record map[string]string

// Get returns the trimmed value of the first non-empty field among keys.
func (r Record) Get(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r[k]); v != "" {
			return v
		}
	}
	return ""
}

// Table is the header-keyed content of one worksheet.
type Table struct {
	Sheet   string
	Headers []string
	Records []Record
}

// ReadFile reads the first sheet of the workbook at path.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewParseError("unable to read file", err)
	}
	return ReadFirstSheet(filepath.Base(path), data)
}

// ReadFirstSheet parses the first worksheet of data. The format is chosen from
// the file extension of name; unknown extensions are tried as xlsx.
func ReadFirstSheet(name string, data []byte) (*Table, error) {
	var (
		sheetName string
		rows      [][]string
		err       error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xls":
		sheetName, rows, err = xlsRows(data)
	case ".csv":
		sheetName, rows, err = csvRows(data)
	default:
		sheetName, rows, err = xlsxRows(data, "")
	}
	if err != nil {
		return nil, model.NewParseError(model.MsgUnreadableFile, err)
	}
	return buildTable(sheetName, rows)
}

// ReadSheet parses the named worksheet of an xlsx workbook.
func ReadSheet(data []byte, sheetName string) (*Table, error) {
	name, rows, err := xlsxRows(data, sheetName)
	if err != nil {
		return nil, model.NewParseError(model.MsgUnreadableFile, err)
	}
	return buildTable(name, rows)
}

func xlsxRows(data []byte, sheetName string) (string, [][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", nil, err
	}
	defer xl.Close()

	if sheetName == "" {
		sheetName = xl.GetSheetName(0)
	}
	// Raw values keep date serials numeric instead of applying the cell format.
	rows, err := xl.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", nil, err
	}
	return sheetName, rows, nil
}

func xlsRows(data []byte) (string, [][]string, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return "", nil, err
	}
	if book == nil {
		return "", nil, errors.New("no Workbook stream in xls container")
	}
	if book.NumSheets() == 0 {
		return "", nil, nil
	}
	ws := book.GetSheet(0)
	if ws == nil {
		return "", nil, nil
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		row := xlsRow(ws, i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		// LastCol is one past the last used cell; rows without a ROW record report 0.
		vals := make([]string, 0, row.LastCol())
		for j := 0; j < row.LastCol() || row.Col(j) != ""; j++ {
			vals = append(vals, row.Col(j))
		}
		rows = append(rows, vals)
	}
	return ws.Name, rows, nil
}

// xlsRow returns nil for rows the sheet never wrote. WorkSheet.Row
// dereferences the map entry without checking it.
func xlsRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

func csvRows(data []byte) (string, [][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return "", nil, err
	}
	return "Sheet1", rows, nil
}

// buildTable uses the first non-blank row as the header. Blank rows are dropped.
func buildTable(sheetName string, rows [][]string) (*Table, error) {
	t := &Table{Sheet: sheetName}
	headerAt := -1
	for i, row := range rows {
		if !blank(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil, model.NewParseError(model.MsgEmptyFile, nil)
	}

	for _, h := range rows[headerAt] {
		t.Headers = append(t.Headers, strings.TrimSpace(h))
	}
	for _, row := range rows[headerAt+1:] {
		if blank(row) {
			continue
		}
		rec := make(Record, len(t.Headers))
		for j, h := range t.Headers {
			if h == "" || j >= len(row) {
				continue
			}
			if _, dup := rec[h]; dup {
				continue
			}
			rec[h] = strings.TrimSpace(row[j])
		}
		t.Records = append(t.Records, rec)
	}
	if len(t.Records) == 0 {
		return nil, model.NewParseError(model.MsgEmptyFile, nil)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
