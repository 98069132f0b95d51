package binding

import "fmt"

// Header is the text naming one worksheet column.
type Header struct {
	// Column is the 0-based column the header applies to.
	Column int
	// Text is the header text.
	Text string
}

// Binding maps a column to the field it populates. Unbound columns are
// absent from the map.
type Binding[T any] map[int]*Field[T]

// Bind resolves each header to a field. A mapping entry for the header
// text is tried first, then the header text itself as a field name; if
// neither names a field the column stays unbound.
func Bind[T any](headers []Header, schema *Schema[T], mapping *ColumnMapping) Binding[T] {
	b := make(Binding[T], len(headers))
	for _, h := range headers {
		var field *Field[T]
		if name, ok := mapping.Lookup(h.Text); ok {
			field, _ = schema.Lookup(name)
		}
		if field == nil {
			field, _ = schema.Lookup(h.Text)
		}
		if field != nil {
			b[h.Column] = field
		}
	}
	return b
}

// SyntheticName is the header text used for a column without a header row.
func SyntheticName(column int) string {
	return fmt.Sprintf("Column%d", column)
}

// SyntheticHeaders names each column "Column{n}".
func SyntheticHeaders(columns []int) []Header {
	headers := make([]Header, len(columns))
	for i, col := range columns {
		headers[i] = Header{Column: col, Text: SyntheticName(col)}
	}
	return headers
}
