package sheets

import (
	"context"
	"fmt"
	"strings"
)

// UnnamedPrefix is how an export names columns with a blank header cell.
const UnnamedPrefix = "Unnamed"

// Ref points at one tab of a spreadsheet. TabName wins over TabID when set.
type Ref struct {
	SpreadsheetID string
	TabID         int64
	TabName       string
}

func (r Ref) String() string {
	if r.TabName != "" {
		return fmt.Sprintf("%s!%s", r.SpreadsheetID, r.TabName)
	}
	return fmt.Sprintf("%s#gid=%d", r.SpreadsheetID, r.TabID)
}

// Source fetches the cell values of one spreadsheet tab.
type Source interface {
	Fetch(ctx context.Context, ref Ref) (*Table, error)
}

// Table is a header row plus data rows, every row as wide as the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable builds a table from raw rows where the first row is the header.
// Blank header cells become "Unnamed: <index>" and ragged rows are padded.
func NewTable(raw [][]string) *Table {
	if len(raw) == 0 {
		return &Table{}
	}
	width := 0
	for _, row := range raw {
		width = max(width, len(row))
	}
	header := make([]string, width)
	for i := range header {
		if i < len(raw[0]) {
			header[i] = strings.TrimSpace(raw[0][i])
		}
		if header[i] == "" {
			header[i] = fmt.Sprintf("%s: %d", UnnamedPrefix, i)
		}
	}
	rows := make([][]string, 0, len(raw)-1)
	for _, r := range raw[1:] {
		row := make([]string, width)
		copy(row, r)
		rows = append(rows, row)
	}
	return &Table{Header: header, Rows: rows}
}

// Column returns the index of the named column or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// ColumnsWithPrefix returns the indexes of all columns whose header starts
// with prefix, in column order.
func (t *Table) ColumnsWithPrefix(prefix string) []int {
	var idx []int
	for i, h := range t.Header {
		if strings.HasPrefix(h, prefix) {
			idx = append(idx, i)
		}
	}
	return idx
}

func stringify(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			out[i][j] = fmt.Sprint(v)
		}
	}
	return out
}
