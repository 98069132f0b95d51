package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"path"
	"strings"
)

// Conventional part locations inside the container.
const (
	WorkbookPart      = "xl/workbook.xml"
	WorkbookRelsPart  = "xl/_rels/workbook.xml.rels"
	SharedStringsPart = "xl/sharedStrings.xml"

	sheetPartsDir = "xl"
)

// SheetRef is a sheet whose part could be located.
type SheetRef struct {
	// Index is the 0-based position among resolvable sheets.
	Index int
	// Name is the sheet's display name.
	Name string
	// Path is the worksheet part name, e.g. "xl/worksheets/sheet1.xml".
	Path string
}

type workbookSheet struct {
	name string
	rID  string
}

// ListSheets resolves the ordered list of sheet parts. A missing workbook
// or relationships part yields an empty list; sheets whose relationship id
// cannot be resolved are dropped.
func ListSheets(p *Package) ([]SheetRef, error) {
	workbookXML, err := p.ReadPart(WorkbookPart)
	if errors.Is(err, ErrPartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sheets, err := parseWorkbookSheets(workbookXML)
	if err != nil {
		return nil, err
	}

	relsXML, err := p.ReadPart(WorkbookRelsPart)
	if errors.Is(err, ErrPartNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rels, err := parseWorkbookRels(relsXML)
	if err != nil {
		return nil, err
	}

	var refs []SheetRef
	for _, s := range sheets {
		target, ok := rels[s.rID]
		if s.rID == "" || !ok {
			continue
		}
		refs = append(refs, SheetRef{
			Index: len(refs),
			Name:  s.name,
			Path:  resolveTarget(target),
		})
	}
	return refs, nil
}

// parseWorkbookSheets returns the sheet entries in document order.
func parseWorkbookSheets(data []byte) ([]workbookSheet, error) {
	var result []workbookSheet
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		var s workbookSheet
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "name":
				s.name = attr.Value
			case "id":
				// un-prefixed id wins over r:id
				if s.rID == "" || attr.Name.Space == "" {
					s.rID = attr.Value
				}
			}
		}
		result = append(result, s)
	}

	return result, nil
}

// parseWorkbookRels maps relationship ids to their targets.
func parseWorkbookRels(data []byte) (map[string]string, error) {
	result := make(map[string]string) // rId -> target
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		var rID, target string
		for _, attr := range se.Attr {
			switch attr.Name.Local {
			case "Id":
				rID = attr.Value
			case "Target":
				target = attr.Value
			}
		}
		if rID != "" && target != "" {
			result[rID] = target
		}
	}

	return result, nil
}

// resolveTarget turns a workbook relationship target into a part name.
// Relative targets are resolved against the "xl" directory.
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	if strings.HasPrefix(target, sheetPartsDir+"/") {
		return path.Clean(target)
	}
	return path.Join(sheetPartsDir, target)
}
