package excelreader

import (
	"fmt"
	"path/filepath"

	"github.com/houssem11957/excelreader-go/pkg/excelreader/models"
	"github.com/houssem11957/excelreader-go/pkg/excelreader/parser"
)

// ListSheets returns the resolvable sheets of the workbook at path, in the
// order SheetIndex counts them.
func ListSheets(path string) (*models.WorkbookInfo, error) {
	if err := checkSource(path); err != nil {
		return nil, err
	}
	pkg, err := parser.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackageCorrupt, err)
	}
	defer pkg.Close()

	refs, err := parser.ListSheets(pkg)
	if err != nil {
		return nil, NewReadError(0, "workbook", err)
	}

	info := &models.WorkbookInfo{
		BookName: filepath.Base(path),
		Sheets:   make([]models.SheetInfo, 0, len(refs)),
	}
	for _, ref := range refs {
		info.Sheets = append(info.Sheets, models.SheetInfo{
			Index: ref.Index,
			Name:  ref.Name,
			Path:  ref.Path,
		})
	}
	return info, nil
}
