// Package excel decodes spreadsheet bytes (.xlsx via excelize, legacy .xls
// via extrame/xls) into a Sheet of stringified cells, and implements the
// emptiness scan used by the upload checker. Only the first worksheet is
// ever read.
package excel

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"tabular/internal/fault"
	"tabular/pkg/records"
)

// AcceptedExtensions lists the spreadsheet extensions the checker accepts.
// Anything else is rejected before any parsing is attempted.
var AcceptedExtensions = []string{".xls", ".xlsx"}

// Accepted reports whether filename carries an accepted spreadsheet
// extension (case-insensitive).
func Accepted(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, a := range AcceptedExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// Sheet holds the first worksheet of a workbook with every cell rendered to
// its string form. Absent cells are empty strings; row lengths may vary.
type Sheet struct {
	Rows [][]string
}

// Open decodes raw according to the extension of filename. A workbook with
// zero worksheets, or bytes that are not a valid container, yield a
// ParseError.
func Open(filename string, raw []byte) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return openXLSX(raw)
	case ".xls":
		return openXLS(raw)
	default:
		return nil, fault.New(fault.ParseError, "unsupported spreadsheet extension %q", filepath.Ext(filename))
	}
}

func openXLSX(raw []byte) (*Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fault.Wrap(fault.ParseError, err, "open xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fault.New(fault.ParseError, "workbook has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fault.Wrap(fault.ParseError, err, "read worksheet %q", sheets[0])
	}
	return &Sheet{Rows: rows}, nil
}

func openXLS(raw []byte) (*Sheet, error) {
	wb, err := xls.OpenReader(bytes.NewReader(raw), "utf-8")
	if err != nil {
		return nil, fault.Wrap(fault.ParseError, err, "open xls workbook")
	}
	if wb.NumSheets() == 0 {
		return nil, fault.New(fault.ParseError, "workbook has no worksheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fault.New(fault.ParseError, "workbook has no worksheets")
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return &Sheet{Rows: rows}, nil
}

// Records converts the sheet into an observed header plus named-field
// records. The first non-empty row is the header; a cell that renders to
// the empty string is an empty field, not a missing row.
func (s *Sheet) Records() ([]string, []records.Record, error) {
	start := -1
	for i, row := range s.Rows {
		if !blankRow(row) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, nil, fault.New(fault.ParseError, "worksheet has no header row")
	}

	header := make([]string, len(s.Rows[start]))
	for i, c := range s.Rows[start] {
		header[i] = strings.TrimSpace(c)
	}

	var recs []records.Record
	for _, row := range s.Rows[start+1:] {
		if blankRow(row) {
			continue
		}
		rec := make(records.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = strings.TrimSpace(row[i])
			} else {
				rec[name] = ""
			}
		}
		recs = append(recs, rec)
	}
	return header, recs, nil
}

// blankRow reports whether every cell in row is empty after trimming.
func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
