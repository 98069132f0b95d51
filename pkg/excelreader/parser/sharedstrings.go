package parser

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// SharedStrings is the shared-string table, indexed in document order.
type SharedStrings []string

// Lookup returns the text at index i.
func (s SharedStrings) Lookup(i int) (string, bool) {
	if i < 0 || i >= len(s) {
		return "", false
	}
	return s[i], true
}

// LoadSharedStrings parses the shared-string part. A missing part yields an
// empty table. On a malformed part the items parsed so far are returned
// together with the error.
func LoadSharedStrings(p *Package) (SharedStrings, error) {
	rc, err := p.OpenPart(SharedStringsPart)
	if errors.Is(err, ErrPartNotFound) {
		return SharedStrings{}, nil
	}
	if err != nil {
		return SharedStrings{}, err
	}
	defer rc.Close()
	return parseSharedStrings(rc)
}

// parseSharedStrings reads every <si> item. The text of an item is the
// concatenation of its <t> elements; phonetic runs (<rPh>) are skipped.
func parseSharedStrings(r io.Reader) (SharedStrings, error) {
	strs := SharedStrings{}
	decoder := xml.NewDecoder(r)

	var (
		item     strings.Builder
		inItem   bool
		inText   bool
		phonetic int
	)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return strs, err
		}

		switch x := token.(type) {
		case xml.StartElement:
			switch x.Name.Local {
			case "si":
				inItem = true
				item.Reset()
			case "rPh":
				phonetic++
			case "t":
				inText = inItem && phonetic == 0
			}
		case xml.CharData:
			if inText {
				item.Write(x)
			}
		case xml.EndElement:
			switch x.Name.Local {
			case "si":
				strs = append(strs, item.String())
				inItem = false
			case "rPh":
				phonetic--
			case "t":
				inText = false
			}
		}
	}

	return strs, nil
}
