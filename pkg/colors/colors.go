package colors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrColorResolution = errors.New("color resolution failed")

// UnknownColorError is returned when a label has no entry in the table.
type UnknownColorError struct {
	Label string
}

func (e *UnknownColorError) Error() string {
	return fmt.Sprintf("unknown color %q", e.Label)
}

func (e *UnknownColorError) Is(target error) bool {
	return target == ErrColorResolution
}

// Entry is the render color of a label and the calendar color id used
// when the label is the most recent update.
type Entry struct {
	Hex        string
	CalendarID string
}

// Render returns the fill color for the entry.
func (e Entry) Render() drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(e.Hex, "#"))
}

// Table maps color labels to entries. It is not modified after creation.
type Table struct {
	entries map[string]Entry
}

func NewTable(entries map[string]Entry) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for label, e := range entries {
		t.entries[label] = e
	}
	return t
}

func (t *Table) Resolve(label string) (Entry, error) {
	e, ok := t.entries[label]
	if !ok {
		return Entry{}, &UnknownColorError{Label: label}
	}
	return e, nil
}

// Len returns the number of known labels.
func (t *Table) Len() int {
	return len(t.entries)
}

// Default holds the hold colors used in the gym sheets. Calendar ids are
// the Google Calendar event color ids closest to each hold color.
var Default = NewTable(map[string]Entry{
	"Gelb":     {Hex: "#f6d32d", CalendarID: "5"},
	"Orange":   {Hex: "#ff7800", CalendarID: "6"},
	"Rot":      {Hex: "#e01b24", CalendarID: "11"},
	"Pink":     {Hex: "#f66151", CalendarID: "4"},
	"Lila":     {Hex: "#9141ac", CalendarID: "3"},
	"Blau":     {Hex: "#1c71d8", CalendarID: "9"},
	"Hellblau": {Hex: "#99c1f1", CalendarID: "1"},
	"Türkis":   {Hex: "#2ec27e", CalendarID: "7"},
	"Grün":     {Hex: "#26a269", CalendarID: "10"},
	"Mint":     {Hex: "#8ff0a4", CalendarID: "2"},
	"Braun":    {Hex: "#865e3c", CalendarID: "6"},
	"Grau":     {Hex: "#9a9996", CalendarID: "8"},
	"Schwarz":  {Hex: "#000000", CalendarID: "8"},
	"Weiß":     {Hex: "#ffffff", CalendarID: "1"},
})
