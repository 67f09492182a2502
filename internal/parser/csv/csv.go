// Package csv decodes raw CSV bytes into named-field records. Inputs come
// from file uploads, so the decoder is lenient: undecodable bytes are
// replaced rather than rejected, quoting is lazy, and ragged rows are
// padded or truncated to the header width instead of aborting the parse.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"tabular/internal/fault"
	"tabular/pkg/records"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// Parse decodes raw into an observed header plus one record per data row.
// The first line is the header; every field is trimmed of surrounding
// whitespace; rows with no non-blank field are skipped. Undecodable byte
// sequences are replaced with U+FFFD rather than failing the parse.
func Parse(raw []byte) ([]string, []records.Record, error) {
	if len(raw) == 0 {
		return nil, nil, fault.New(fault.ParseError, "CSV file is empty")
	}

	clean, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), raw)
	if err != nil {
		return nil, nil, fault.Wrap(fault.ParseError, err, "decode CSV bytes")
	}

	r := stdcsv.NewReader(bytes.NewReader(clean))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	var header []string
	var recs []records.Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fault.Wrap(fault.ParseError, err, "read CSV row")
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		if header == nil {
			row[0] = strings.TrimPrefix(row[0], utf8BOM)
			header = row
			continue
		}
		if blankRow(row) {
			continue
		}
		rec := make(records.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		recs = append(recs, rec)
	}

	if header == nil {
		return nil, nil, fault.New(fault.ParseError, "CSV has no header row")
	}
	return header, recs, nil
}

// blankRow reports whether every field of row is empty after trimming.
func blankRow(row []string) bool {
	for _, f := range row {
		if f != "" {
			return false
		}
	}
	return true
}
