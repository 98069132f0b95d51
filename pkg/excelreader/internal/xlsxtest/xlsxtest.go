// Package xlsxtest builds minimal spreadsheet packages for tests.
package xlsxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// Sheet is a worksheet to place in a generated package.
type Sheet struct {
	Name string
	// Target is the relationship target; defaults to "worksheets/sheetN.xml".
	Target string
	// Rows is the inner XML of <sheetData>.
	Rows string
}

// Book describes a generated package.
type Book struct {
	Sheets []Sheet
	// SharedStrings are written as plain <si><t> items. Nil omits the part.
	SharedStrings []string
	// Extra parts are written verbatim, overriding generated ones.
	Extra map[string]string
	// OmitWorkbook and OmitRels drop the corresponding parts.
	OmitWorkbook bool
	OmitRels     bool
}

// Parts renders the book into part name -> content.
func (b Book) Parts() map[string]string {
	parts := map[string]string{}

	var sheets, rels strings.Builder
	for i, s := range b.Sheets {
		target := s.Target
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		fmt.Fprintf(&sheets, `<sheet name=%q sheetId="%d" r:id="rId%d"/>`, s.Name, i+1, i+1)
		fmt.Fprintf(&rels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/worksheet" Target=%q/>`, i+1, target)
		parts[partName(target)] = Worksheet(s.Rows)
	}
	if !b.OmitWorkbook {
		parts["xl/workbook.xml"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<workbook xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" ` +
			`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` +
			`<sheets>` + sheets.String() + `</sheets></workbook>`
	}
	if !b.OmitRels {
		parts["xl/_rels/workbook.xml.rels"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			rels.String() + `</Relationships>`
	}
	if b.SharedStrings != nil {
		var sst strings.Builder
		for _, s := range b.SharedStrings {
			fmt.Fprintf(&sst, "<si><t>%s</t></si>", escape(s))
		}
		parts["xl/sharedStrings.xml"] = fmt.Sprintf(
			`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
				`<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">%s</sst>`,
			len(b.SharedStrings), len(b.SharedStrings), sst.String())
	}
	for name, content := range b.Extra {
		parts[name] = content
	}
	return parts
}

// Bytes zips the book.
func (b Book) Bytes(t testing.TB) []byte {
	t.Helper()
	return Zip(t, b.Parts())
}

// WriteFile zips the book into a file under t.TempDir and returns its path.
func (b Book) WriteFile(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := os.WriteFile(path, b.Bytes(t), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

// Worksheet wraps row XML into a worksheet part.
func Worksheet(rows string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<worksheet xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">` +
		`<sheetData>` + rows + `</sheetData></worksheet>`
}

// Zip writes parts into a zip archive in name order.
func Zip(t testing.TB, parts map[string]string) []byte {
	t.Helper()
	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func partName(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, "xl/") {
		return target
	}
	return "xl/" + target
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
