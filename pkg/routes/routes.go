package routes

import (
	"context"
	"math"
	"strconv"
	"strings"

	"bouldern/pkg/gyms"
	"bouldern/pkg/sheets"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const (
	ColumnSection = "Section"
	ColumnColor   = "Farbe"
	ColumnSend    = "Send"
	ColumnWall    = "wall"

	SentValue = "Yes"
)

// Row is one route of the gym sheet with its resolved wall position.
type Row struct {
	Section string
	Wall    int
	Color   string
	Sent    bool
	X       float64
	Y       float64
}

// Loader reads a gym's sheet and resolves every route to a wall position.
type Loader struct {
	Source sheets.Source
	Gyms   gyms.Provider
}

func NewLoader(source sheets.Source, provider gyms.Provider) *Loader {
	return &Loader{Source: source, Gyms: provider}
}

// Load returns the routes of a gym in sheet order.
func (l *Loader) Load(ctx context.Context, gymName string) ([]Row, error) {
	gym, err := l.Gyms.Gym(gymName)
	if err != nil {
		return nil, err
	}
	ref := sheets.Ref{SpreadsheetID: gym.SheetID, TabID: gym.SheetTabID, TabName: gym.SheetTabName}
	table, err := l.Source.Fetch(ctx, ref)
	if err != nil {
		return nil, &FetchError{Sheet: ref.String(), Err: err}
	}
	merged, err := MergeColumns(table, sheets.UnnamedPrefix, ColumnWall)
	if err != nil {
		return nil, err
	}
	rows, err := Resolve(gym, merged)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"gym": gymName, "sheet": ref.String(), "routes": len(rows)}).Info("loaded gym data")
	return rows, nil
}

// sheetRow is the spreadsheet row number of a data row; the header is row 1.
func sheetRow(i int) int {
	return i + 2
}

func isBlank(row []string) bool {
	return lo.EveryBy(row, func(cell string) bool { return strings.TrimSpace(cell) == "" })
}

// MergeColumns folds every column whose header starts with prefix into one
// column called name. Exactly one of the folded cells must be filled per row.
// Blank rows are kept and get an empty value.
func MergeColumns(t *sheets.Table, prefix, name string) (*sheets.Table, error) {
	group := t.ColumnsWithPrefix(prefix)
	if len(group) == 0 && t.Column(name) >= 0 {
		return t, nil
	}

	keep := make([]int, 0, len(t.Header))
	for i := range t.Header {
		if !lo.Contains(group, i) {
			keep = append(keep, i)
		}
	}

	out := &sheets.Table{
		Header: append(lo.Map(keep, func(i int, _ int) string { return t.Header[i] }), name),
		Rows:   make([][]string, 0, len(t.Rows)),
	}
	for n, row := range t.Rows {
		value := ""
		if !isBlank(row) {
			var filled []int
			for _, i := range group {
				if strings.TrimSpace(row[i]) != "" {
					filled = append(filled, i)
				}
			}
			switch len(filled) {
			case 0:
				return nil, &MissingWallColumnError{Row: sheetRow(n)}
			case 1:
				value = strings.TrimSpace(row[filled[0]])
			default:
				return nil, &AmbiguousWallColumnError{
					Row:     sheetRow(n),
					Columns: lo.Map(filled, func(i int, _ int) string { return t.Header[i] }),
				}
			}
		}
		merged := lo.Map(keep, func(i int, _ int) string { return row[i] })
		out.Rows = append(out.Rows, append(merged, value))
	}
	return out, nil
}

// Resolve turns a merged table into routes placed on the gym's walls.
func Resolve(gym gyms.Gym, t *sheets.Table) ([]Row, error) {
	cols := map[string]int{}
	for _, name := range []string{ColumnSection, ColumnWall, ColumnColor, ColumnSend} {
		idx := t.Column(name)
		if idx < 0 {
			return nil, &MissingColumnError{Column: name}
		}
		cols[name] = idx
	}

	rows := make([]Row, 0, len(t.Rows))
	for n, cells := range t.Rows {
		if isBlank(cells) {
			continue
		}
		row := Row{
			Section: strings.TrimSpace(cells[cols[ColumnSection]]),
			Color:   strings.TrimSpace(cells[cols[ColumnColor]]),
			Sent:    strings.TrimSpace(cells[cols[ColumnSend]]) == SentValue,
		}
		wall, err := parseWall(sheetRow(n), cells[cols[ColumnWall]])
		if err != nil {
			return nil, err
		}
		row.Wall = wall

		section, ok := gym.Sections[row.Section]
		if !ok {
			return nil, &UnknownSectionError{Row: sheetRow(n), Section: row.Section}
		}
		if wall < 1 || wall > len(section.Walls) {
			return nil, &WallIndexOutOfRangeError{
				Row:     sheetRow(n),
				Section: row.Section,
				Wall:    wall,
				Walls:   len(section.Walls),
			}
		}
		p := section.Walls[wall-1]
		row.X, row.Y = p.X(), p.Y()

		log.WithFields(log.Fields{
			"row":     sheetRow(n),
			"section": row.Section,
			"wall":    row.Wall,
			"color":   row.Color,
			"sent":    row.Sent,
		}).Debug("resolved route")
		rows = append(rows, row)
	}
	return rows, nil
}

// parseWall accepts whole numbers, also when exported as "2.0".
func parseWall(row int, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, &MissingWallColumnError{Row: row}
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, &InvalidWallValueError{Row: row, Value: value}
	}
	return int(f), nil
}
