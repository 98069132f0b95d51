// Package excelreader projects spreadsheet rows onto typed entities.
package excelreader

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/houssem11957/excelreader-go/pkg/excelreader/binding"
	"github.com/houssem11957/excelreader-go/pkg/excelreader/coerce"
)

// Addressing selects how a cell's column is determined.
type Addressing int

const (
	// AddressByPosition uses the cell's position within its row element,
	// assuming rows are dense.
	AddressByPosition Addressing = iota
	// AddressByReference uses the cell's "r" reference (e.g. "C7"), so rows
	// that omit empty cells stay aligned. Cells without a usable reference
	// fall back to their position.
	AddressByReference
)

// Options configures a read.
type Options struct {
	// SheetIndex is the 0-based index among resolvable sheets.
	SheetIndex int
	// SheetName selects a sheet by name, ignoring case. If set, SheetIndex is ignored.
	SheetName string
	// HasHeader specifies whether the first row holds column names.
	// If nil, defaults to true.
	HasHeader *bool
	// Mapping overrides header -> field binding.
	Mapping *binding.ColumnMapping
	// Culture controls number and date parsing. The zero value is invariant.
	Culture coerce.Culture
	// Addressing controls column alignment.
	Addressing Addressing
	// Logger receives diagnostics. If nil, diagnostics are discarded.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default read options.
func DefaultOptions() Options {
	return Options{
		Culture: coerce.Invariant(),
	}
}

// ShouldReadHeader returns whether the first row is consumed as a header.
func (o Options) ShouldReadHeader() bool {
	if o.HasHeader != nil {
		return *o.HasHeader
	}
	return true
}

// WithHeader returns a copy of o with HasHeader set.
func (o Options) WithHeader(hasHeader bool) Options {
	o.HasHeader = &hasHeader
	return o
}

var discard = &logrus.Logger{
	Out:       io.Discard,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.PanicLevel,
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return discard
}
