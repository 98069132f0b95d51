package parser

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// Row is one <row> of a worksheet.
type Row struct {
	// Num is the row's "r" attribute, or its 1-based document position when absent.
	Num int
	// Cells are the row's cells in document order.
	Cells []RawCell
}

// SheetReader scans a worksheet part one row at a time.
type SheetReader struct {
	rc   io.ReadCloser
	dec  *xml.Decoder
	rows int
}

// OpenSheet opens the worksheet part at partPath for scanning.
func OpenSheet(p *Package, partPath string) (*SheetReader, error) {
	rc, err := p.OpenPart(partPath)
	if err != nil {
		return nil, err
	}
	return &SheetReader{rc: rc, dec: xml.NewDecoder(rc)}, nil
}

// Close releases the part stream. It is safe to call more than once.
func (s *SheetReader) Close() error {
	if s.rc == nil {
		return nil
	}
	err := s.rc.Close()
	s.rc = nil
	return err
}

// Next returns the next row, or io.EOF when the sheet is exhausted.
func (s *SheetReader) Next() (Row, error) {
	for {
		token, err := s.dec.Token()
		if err != nil {
			return Row{}, err
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "row" {
			s.rows++
			return s.parseRow(se)
		}
	}
}

// ReadAll drains the remaining rows.
func (s *SheetReader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		row, err := s.Next()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

func (s *SheetReader) parseRow(start xml.StartElement) (Row, error) {
	row := Row{Num: s.rows}
	for _, attr := range start.Attr {
		if attr.Name.Local == "r" {
			if n, err := strconv.Atoi(attr.Value); err == nil {
				row.Num = n
			}
		}
	}

	depth := 1
	for depth > 0 {
		token, err := s.dec.Token()
		if err != nil {
			return Row{}, unexpectedEOF(err)
		}
		switch x := token.(type) {
		case xml.StartElement:
			if x.Name.Local == "c" && depth == 1 {
				cell, err := s.parseCell(x, len(row.Cells))
				if err != nil {
					return Row{}, err
				}
				row.Cells = append(row.Cells, cell)
				continue
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}

	return row, nil
}

// parseCell reads a <c> element. The value is the text of its first <v>;
// inline strings without a <v> take the text of <is>.
func (s *SheetReader) parseCell(start xml.StartElement, pos int) (RawCell, error) {
	cell := RawCell{Pos: pos}
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "r":
			cell.Ref = attr.Value
		case "t":
			cell.Type = attr.Value
		}
	}

	var (
		value    strings.Builder
		inline   strings.Builder
		hasValue bool
		inValue  bool
		inText   bool
		inInline bool
		phonetic int
	)
	depth := 1
	for depth > 0 {
		token, err := s.dec.Token()
		if err != nil {
			return RawCell{}, unexpectedEOF(err)
		}
		switch x := token.(type) {
		case xml.StartElement:
			depth++
			switch x.Name.Local {
			case "v":
				inValue = !hasValue
			case "is":
				inInline = true
			case "rPh":
				phonetic++
			case "t":
				inText = inInline && phonetic == 0
			}
		case xml.CharData:
			switch {
			case inValue:
				value.Write(x)
			case inText:
				inline.Write(x)
			}
		case xml.EndElement:
			depth--
			switch x.Name.Local {
			case "v":
				if inValue {
					hasValue = true
				}
				inValue = false
			case "is":
				inInline = false
			case "rPh":
				phonetic--
			case "t":
				inText = false
			}
		}
	}

	if hasValue {
		cell.Value = value.String()
	} else {
		cell.Value = inline.String()
	}
	return cell, nil
}

func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
