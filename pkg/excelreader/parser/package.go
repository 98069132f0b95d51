// Package parser reads the parts of an OOXML spreadsheet package.
package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPartNotFound indicates the package has no part with the requested name.
var ErrPartNotFound = errors.New("part not found")

// Package is an opened spreadsheet container. Close releases the
// underlying file when the package was opened from a path.
type Package struct {
	zr     *zip.Reader
	closer io.Closer
	parts  map[string]*zip.File
}

// Open opens a package from an in-memory or file-backed reader.
func Open(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, err
	}
	return newPackage(zr, nil), nil
}

// OpenFile opens the package stored at path.
func OpenFile(path string) (*Package, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	return newPackage(&rc.Reader, rc), nil
}

func newPackage(zr *zip.Reader, closer io.Closer) *Package {
	p := &Package{
		zr:     zr,
		closer: closer,
		parts:  make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		// part names are case-insensitive
		p.parts[partKey(f.Name)] = f
	}
	return p
}

func partKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, "/"))
}

// Close releases the package. It is safe to call more than once.
func (p *Package) Close() error {
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}

// Parts returns the names of all parts in archive order.
func (p *Package) Parts() []string {
	names := make([]string, 0, len(p.zr.File))
	for _, f := range p.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// HasPart reports whether the named part exists.
func (p *Package) HasPart(name string) bool {
	_, ok := p.parts[partKey(name)]
	return ok
}

// OpenPart opens the named part for streaming. The caller must close it.
func (p *Package) OpenPart(name string) (io.ReadCloser, error) {
	f, ok := p.parts[partKey(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return f.Open()
}

// ReadPart returns the full contents of the named part.
func (p *Package) ReadPart(name string) ([]byte, error) {
	rc, err := p.OpenPart(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
