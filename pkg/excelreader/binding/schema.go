// Package binding maps worksheet columns onto entity fields.
package binding

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/houssem11957/excelreader-go/pkg/excelreader/coerce"
)

// ErrDuplicateField indicates two fields whose names fold to the same key.
var ErrDuplicateField = errors.New("duplicate field")

// Field is a named, settable slot on an entity of type T.
type Field[T any] struct {
	// Name is matched case-insensitively against headers and mappings.
	Name string
	// Kind is the semantic type the cell text is coerced to.
	Kind coerce.Kind

	set func(*T, any)
}

// Set stores a value produced by coerce.Coerce for the field's kind.
func (f *Field[T]) Set(entity *T, v any) {
	f.set(entity, v)
}

// Schema is the field table of an entity type.
type Schema[T any] struct {
	fields []*Field[T]
	byKey  map[string]*Field[T]
}

// NewSchema builds a schema from field descriptors.
func NewSchema[T any](fields ...Field[T]) (*Schema[T], error) {
	s := &Schema[T]{byKey: make(map[string]*Field[T], len(fields))}
	for i := range fields {
		f := fields[i]
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		if f.set == nil || f.Kind == coerce.KindInvalid {
			return nil, fmt.Errorf("field %q has no setter", f.Name)
		}
		key := normalize(f.Name)
		if _, ok := s.byKey[key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		s.fields = append(s.fields, &f)
		s.byKey[key] = &f
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema[T any](fields ...Field[T]) *Schema[T] {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Lookup finds a field by name, ignoring case.
func (s *Schema[T]) Lookup(name string) (*Field[T], bool) {
	f, ok := s.byKey[normalize(name)]
	return f, ok
}

// Fields returns the fields in declaration order.
func (s *Schema[T]) Fields() []*Field[T] {
	return s.fields
}

var folder = cases.Fold()

// normalize folds a name for case-insensitive comparison.
func normalize(name string) string {
	return folder.String(name)
}

func typed[T, V any](name string, kind coerce.Kind, set func(*T, V)) Field[T] {
	f := Field[T]{Name: name, Kind: kind}
	if set != nil {
		f.set = func(e *T, v any) { set(e, v.(V)) }
	}
	return f
}

// String declares a text field.
func String[T any](name string, set func(*T, string)) Field[T] {
	return typed(name, coerce.KindString, set)
}

// Int declares an int field.
func Int[T any](name string, set func(*T, int)) Field[T] {
	return typed(name, coerce.KindInt, set)
}

// Int8 declares an int8 field.
func Int8[T any](name string, set func(*T, int8)) Field[T] {
	return typed(name, coerce.KindInt8, set)
}

// Int16 declares an int16 field.
func Int16[T any](name string, set func(*T, int16)) Field[T] {
	return typed(name, coerce.KindInt16, set)
}

// Int32 declares an int32 field.
func Int32[T any](name string, set func(*T, int32)) Field[T] {
	return typed(name, coerce.KindInt32, set)
}

// Int64 declares an int64 field.
func Int64[T any](name string, set func(*T, int64)) Field[T] {
	return typed(name, coerce.KindInt64, set)
}

// Uint8 declares a byte field.
func Uint8[T any](name string, set func(*T, uint8)) Field[T] {
	return typed(name, coerce.KindUint8, set)
}

// Float32 declares a float32 field.
func Float32[T any](name string, set func(*T, float32)) Field[T] {
	return typed(name, coerce.KindFloat32, set)
}

// Float64 declares a float64 field.
func Float64[T any](name string, set func(*T, float64)) Field[T] {
	return typed(name, coerce.KindFloat64, set)
}

// Decimal declares a decimal field.
func Decimal[T any](name string, set func(*T, decimal.Decimal)) Field[T] {
	return typed(name, coerce.KindDecimal, set)
}

// Bool declares a boolean field.
func Bool[T any](name string, set func(*T, bool)) Field[T] {
	return typed(name, coerce.KindBool, set)
}

// Time declares a date/time field.
func Time[T any](name string, set func(*T, time.Time)) Field[T] {
	return typed(name, coerce.KindTime, set)
}

// UUID declares an identifier field.
func UUID[T any](name string, set func(*T, uuid.UUID)) Field[T] {
	return typed(name, coerce.KindUUID, set)
}
