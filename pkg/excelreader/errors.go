package excelreader

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound indicates the input file does not exist.
var ErrSourceNotFound = errors.New("source not found")

// ErrPackageCorrupt indicates the input is not a readable zip container.
var ErrPackageCorrupt = errors.New("package corrupt")

// ReadError describes a failure that ended a read early. It is reported to
// the diagnostic logger, never returned from the entity readers.
type ReadError struct {
	SheetIndex int
	Component  string // "package", "workbook", "worksheet"
	Err        error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error in sheet %d (%s): %v", e.SheetIndex, e.Component, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError.
func NewReadError(sheetIndex int, component string, err error) *ReadError {
	return &ReadError{
		SheetIndex: sheetIndex,
		Component:  component,
		Err:        err,
	}
}
