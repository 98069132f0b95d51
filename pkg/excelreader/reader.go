package excelreader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/houssem11957/excelreader-go/pkg/excelreader/binding"
	"github.com/houssem11957/excelreader-go/pkg/excelreader/coerce"
	"github.com/houssem11957/excelreader-go/pkg/excelreader/parser"
)

type opener func() (*parser.Package, error)

// ReadFile reads the entities of one sheet of the workbook at path.
// The only error returned is ErrSourceNotFound; any other failure ends the
// read early and returns the entities gathered so far.
func ReadFile[T any](path string, schema *binding.Schema[T], opts Options) ([]T, error) {
	seq, err := FileEntities(path, schema, opts)
	if err != nil {
		return nil, err
	}
	return collect(seq), nil
}

// FileEntities is the lazy form of ReadFile. Every iteration reopens the
// file and starts from the first row.
func FileEntities[T any](path string, schema *binding.Schema[T], opts Options) (iter.Seq[T], error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}
	return entities(func() (*parser.Package, error) { return parser.OpenFile(path) }, schema, opts), nil
}

// Read reads the entities of one sheet from a workbook stream. Readers that
// also provide ReadAt and Size (such as *bytes.Reader) and regular files
// are used in place; other streams are buffered.
func Read[T any](r io.Reader, schema *binding.Schema[T], opts Options) []T {
	switch src := r.(type) {
	case sizedReaderAt:
		return collect(Entities[T](src, src.Size(), schema, opts))
	case *os.File:
		if info, err := src.Stat(); err == nil && info.Mode().IsRegular() {
			return collect(Entities[T](src, info.Size(), schema, opts))
		}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		reportFailure(opts.logger(), NewReadError(opts.SheetIndex, "package", fmt.Errorf("%w: %v", ErrPackageCorrupt, err)))
		return []T{}
	}
	return collect(Entities[T](bytes.NewReader(data), int64(len(data)), schema, opts))
}

// Entities returns a restartable lazy sequence of the entities of one sheet.
// Each iteration runs the whole read from scratch; stopping early releases
// the package.
func Entities[T any](r io.ReaderAt, size int64, schema *binding.Schema[T], opts Options) iter.Seq[T] {
	return entities(func() (*parser.Package, error) { return parser.Open(r, size) }, schema, opts)
}

type sizedReaderAt interface {
	io.ReaderAt
	Size() int64
}

func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	return nil
}

func collect[T any](seq iter.Seq[T]) []T {
	result := slices.Collect(seq)
	if result == nil {
		return []T{}
	}
	return result
}

func entities[T any](open opener, schema *binding.Schema[T], opts Options) iter.Seq[T] {
	return func(yield func(T) bool) {
		a := &assembler[T]{
			schema:  schema,
			opts:    opts,
			culture: opts.Culture,
			log:     opts.logger(),
		}
		a.run(open, yield)
	}
}

// assembler carries one read from package to entities.
type assembler[T any] struct {
	schema  *binding.Schema[T]
	opts    Options
	culture coerce.Culture
	log     logrus.FieldLogger
	sst     parser.SharedStrings
	binding binding.Binding[T]
	sheet   int
}

func (a *assembler[T]) run(open opener, yield func(T) bool) {
	a.sheet = a.opts.SheetIndex
	if a.schema == nil {
		return
	}

	pkg, err := open()
	if err != nil {
		a.fail("package", fmt.Errorf("%w: %v", ErrPackageCorrupt, err))
		return
	}
	defer pkg.Close()

	a.sst, err = parser.LoadSharedStrings(pkg)
	if err != nil {
		a.log.WithError(err).WithField("shared_strings", len(a.sst)).Debug("shared strings partially parsed")
	}

	sheets, err := parser.ListSheets(pkg)
	if err != nil {
		a.fail("workbook", err)
		return
	}
	ref, ok := a.selectSheet(sheets)
	if !ok {
		return
	}
	a.sheet = ref.Index

	sr, err := parser.OpenSheet(pkg, ref.Path)
	if errors.Is(err, parser.ErrPartNotFound) {
		return
	}
	if err != nil {
		a.fail("worksheet", err)
		return
	}
	defer sr.Close()

	first, err := sr.Next()
	if err == io.EOF {
		return
	}
	if err != nil {
		a.fail("worksheet", err)
		return
	}

	if a.opts.ShouldReadHeader() {
		a.binding = binding.Bind(a.headerNames(first), a.schema, a.opts.Mapping)
	} else {
		a.binding = binding.Bind(binding.SyntheticHeaders(a.columns(first)), a.schema, a.opts.Mapping)
		if !a.emit(first, yield) {
			return
		}
	}

	for {
		row, err := sr.Next()
		if err == io.EOF {
			return
		}
		if err != nil {
			a.fail("worksheet", err)
			return
		}
		if !a.emit(row, yield) {
			return
		}
	}
}

func (a *assembler[T]) selectSheet(sheets []parser.SheetRef) (parser.SheetRef, bool) {
	if a.opts.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s.Name, a.opts.SheetName) {
				return s, true
			}
		}
		return parser.SheetRef{}, false
	}
	if a.opts.SheetIndex < 0 || a.opts.SheetIndex >= len(sheets) {
		return parser.SheetRef{}, false
	}
	return sheets[a.opts.SheetIndex], true
}

// headerNames decodes the header row; cells without text are named as in
// header-less mode.
func (a *assembler[T]) headerNames(row parser.Row) []binding.Header {
	headers := make([]binding.Header, 0, len(row.Cells))
	for _, c := range row.Cells {
		col := a.column(c)
		text, ok := parser.DecodeCell(c, a.sst)
		if !ok {
			text = binding.SyntheticName(col)
		}
		headers = append(headers, binding.Header{Column: col, Text: text})
	}
	return headers
}

func (a *assembler[T]) columns(row parser.Row) []int {
	cols := make([]int, len(row.Cells))
	for i, c := range row.Cells {
		cols[i] = a.column(c)
	}
	return cols
}

func (a *assembler[T]) column(c parser.RawCell) int {
	if a.opts.Addressing == AddressByReference {
		if col, ok := c.RefColumn(); ok {
			return col
		}
	}
	return c.Pos
}

// emit assembles one row and hands it to yield. It reports whether the
// caller wants more rows.
func (a *assembler[T]) emit(row parser.Row, yield func(T) bool) bool {
	entity, ok := a.assemble(row)
	if !ok {
		return true
	}
	return yield(entity)
}

// assemble builds the entity for a row. It reports false when no field
// was set or the row failed.
func (a *assembler[T]) assemble(row parser.Row) (entity T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.WithFields(logrus.Fields{
				"sheet_index": a.sheet,
				"row":         row.Num,
			}).Debugf("row skipped: %v", r)
			var zero T
			entity, ok = zero, false
		}
	}()

	for _, c := range row.Cells {
		field, bound := a.binding[a.column(c)]
		if !bound {
			continue
		}
		text, decoded := parser.DecodeCell(c, a.sst)
		if !decoded {
			continue
		}
		v, coerced := coerce.Coerce(text, field.Kind, a.culture)
		if !coerced {
			continue
		}
		field.Set(&entity, v)
		ok = true
	}
	return entity, ok
}

func (a *assembler[T]) fail(component string, err error) {
	reportFailure(a.log, NewReadError(a.sheet, component, err))
}

func reportFailure(log logrus.FieldLogger, err *ReadError) {
	log.WithFields(logrus.Fields{
		"sheet_index": err.SheetIndex,
		"component":   err.Component,
	}).WithError(err.Err).Warn("spreadsheet read aborted")
}
