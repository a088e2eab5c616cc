package routes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDataLoad is matched by every error the loader returns.
var ErrDataLoad = errors.New("gym data load failed")

// ErrSheetFetch is matched when the spreadsheet source itself failed, as
// opposed to the sheet holding bad data.
var ErrSheetFetch = errors.New("gym sheet fetch failed")

type loadError struct{}

func (loadError) Is(target error) bool { return target == ErrDataLoad }

// FetchError wraps a failure of the spreadsheet source.
type FetchError struct {
	Sheet string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetching %s: %v", ErrDataLoad, e.Sheet, e.Err)
}

func (e *FetchError) Is(target error) bool {
	return target == ErrDataLoad || target == ErrSheetFetch
}

func (e *FetchError) Unwrap() error { return e.Err }

// AmbiguousWallColumnError means a row has more than one wall value among
// the unnamed columns.
type AmbiguousWallColumnError struct {
	loadError
	Row     int
	Columns []string
}

func (e *AmbiguousWallColumnError) Error() string {
	return fmt.Sprintf("row %d: multiple wall values in columns %s", e.Row, strings.Join(e.Columns, ", "))
}

type MissingWallColumnError struct {
	loadError
	Row int
}

func (e *MissingWallColumnError) Error() string {
	return fmt.Sprintf("row %d: no wall value", e.Row)
}

type UnknownSectionError struct {
	loadError
	Row     int
	Section string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("row %d: unknown section %q", e.Row, e.Section)
}

type WallIndexOutOfRangeError struct {
	loadError
	Row     int
	Section string
	Wall    int
	Walls   int
}

func (e *WallIndexOutOfRangeError) Error() string {
	return fmt.Sprintf("row %d: wall %d out of range for section %q with %d walls", e.Row, e.Wall, e.Section, e.Walls)
}

type InvalidWallValueError struct {
	loadError
	Row   int
	Value string
}

func (e *InvalidWallValueError) Error() string {
	return fmt.Sprintf("row %d: wall value %q is not a whole number", e.Row, e.Value)
}

type MissingColumnError struct {
	loadError
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}
