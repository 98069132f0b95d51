package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Cell type tags ("t" attribute values).
const (
	CellTypeSharedString = "s"
	CellTypeBool         = "b"
	CellTypeError        = "e"
	CellTypeInlineString = "inlineStr"
	CellTypeString       = "str"
	CellTypeNumber       = "n"
	CellTypeDate         = "d"
)

// RawCell is a cell as written in the worksheet part.
type RawCell struct {
	// Pos is the 0-based position of the cell within its row element.
	Pos int
	// Ref is the cell reference, e.g. "C7"; empty when the file omits it.
	Ref string
	// Type is the type tag; empty means numeric.
	Type string
	// Value is the raw value text.
	Value string
}

// RefColumn returns the 0-based column named by the cell reference.
func (c RawCell) RefColumn() (int, bool) {
	if c.Ref == "" {
		return 0, false
	}
	col, _, err := excelize.CellNameToCoordinates(c.Ref)
	if err != nil {
		return 0, false
	}
	return col - 1, true
}

// DecodeCell turns a raw cell into text. It returns false for error cells
// and for cells without value text.
func DecodeCell(c RawCell, sst SharedStrings) (string, bool) {
	if c.Value == "" {
		return "", false
	}

	switch c.Type {
	case CellTypeSharedString:
		if i, err := strconv.Atoi(strings.TrimSpace(c.Value)); err == nil {
			if s, ok := sst.Lookup(i); ok {
				return s, true
			}
		}
		return c.Value, true
	case CellTypeBool:
		if c.Value == "1" {
			return "TRUE", true
		}
		return "FALSE", true
	case CellTypeError:
		return "", false
	}
	return c.Value, true
}
