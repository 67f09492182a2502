package excel

import "strings"

// ReferenceHeader is the fixed 20-label template header of the inspection
// report format. Position 18 is a genuine blank placeholder in the template
// and must stay empty for a header to match.
var ReferenceHeader = []string{
	"検査種別(部位)", "御指摘内容", "立会", "顧客", "製品", "編成", "処置",
	"不良ｺｰﾄﾞ", "不良分類", "修正分類", "切粉寸法", "個数", "多数粉フラグ",
	"配電盤フラグ", "作業組", "実際の作業組", "運送情報", "",
	"要約", "カウント",
}

// MatchesReferenceHeader reports whether row equals ReferenceHeader by
// exact positional string comparison after trimming each cell. Length must
// match exactly; the blank placeholder is compared like any other cell.
func MatchesReferenceHeader(row []string) bool {
	if len(row) != len(ReferenceHeader) {
		return false
	}
	for i, c := range row {
		if strings.TrimSpace(c) != ReferenceHeader[i] {
			return false
		}
	}
	return true
}

// IsEmpty reports whether the sheet contains no data. When skipHeader is
// true the scan starts after the header row, or after one additional row
// when the header matches ReferenceHeader (template files carry a second
// preamble row). When skipHeader is false every cell is scanned, header
// included.
//
// The scan is row-major, top-to-bottom, left-to-right; the first cell that
// is neither empty nor whitespace-only marks the sheet non-empty and
// terminates the scan.
func IsEmpty(s *Sheet, skipHeader bool) bool {
	start := 0
	if skipHeader && len(s.Rows) > 0 {
		start = 1
		if MatchesReferenceHeader(s.Rows[0]) {
			start = 2
		}
	}
	for _, row := range s.Rows[min(start, len(s.Rows)):] {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}
	return true
}
