// Package models defines the sample entity and listing DTOs.
package models

// SheetInfo describes one resolvable sheet of a workbook.
type SheetInfo struct {
	// Index is the 0-based index accepted by Options.SheetIndex.
	Index int `json:"index"`
	// Name is the sheet's display name.
	Name string `json:"name"`
	// Path is the worksheet part inside the package.
	Path string `json:"path"`
}

// WorkbookInfo lists the sheets of a workbook file.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets are the resolvable sheets in workbook order.
	Sheets []SheetInfo `json:"sheets"`
}
