package excelreader

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/houssem11957/excelreader-go/pkg/excelreader/binding"
	"github.com/houssem11957/excelreader-go/pkg/excelreader/internal/xlsxtest"
)

type record struct {
	ID     int
	Name   string
	Born   time.Time
	Active bool
	Score  float64
	Amount decimal.Decimal
}

var recordSchema = binding.MustSchema(
	binding.Int("Id", func(r *record, v int) { r.ID = v }),
	binding.String("Name", func(r *record, v string) { r.Name = v }),
	binding.Time("Born", func(r *record, v time.Time) { r.Born = v }),
	binding.Bool("Active", func(r *record, v bool) { r.Active = v }),
	binding.Float64("Score", func(r *record, v float64) { r.Score = v }),
	binding.Decimal("Amount", func(r *record, v decimal.Decimal) { r.Amount = v }),
)

func readBook(t *testing.T, b xlsxtest.Book, opts Options) []record {
	t.Helper()
	return Read(bytes.NewReader(b.Bytes(t)), recordSchema, opts)
}

func headerRow(cells ...string) string {
	var sb strings.Builder
	sb.WriteString(`<row r="1">`)
	for _, c := range cells {
		sb.WriteString(`<c t="s"><v>`)
		sb.WriteString(c)
		sb.WriteString(`</v></c>`)
	}
	sb.WriteString(`</row>`)
	return sb.String()
}

func TestReadSharedStringsAndTypes(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Id", "Name", "Born", "Active", "Alice", "Bob"},
		Sheets: []xlsxtest.Sheet{{
			Name: "People",
			Rows: headerRow("0", "1", "2", "3") +
				`<row r="2"><c><v>1</v></c><c t="s"><v>4</v></c><c><v>44197</v></c><c t="b"><v>1</v></c></row>` +
				`<row r="3"><c><v>2.9</v></c><c t="s"><v>5</v></c><c><v>1990-05-17</v></c><c t="b"><v>0</v></c></row>`,
		}},
	}

	got := readBook(t, book, DefaultOptions())
	require.Len(t, got, 2)

	assert.Equal(t, record{ID: 1, Name: "Alice", Born: time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), Active: true}, got[0])
	assert.Equal(t, 2, got[1].ID)
	assert.Equal(t, "Bob", got[1].Name)
	assert.Equal(t, time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC), got[1].Born)
	assert.False(t, got[1].Active)
}

func TestReadHeaderRowIsNotData(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Name"},
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: headerRow("0") + `<row r="2"><c t="inlineStr"><is><t>Carol</t></is></c></row>`,
		}},
	}

	got := readBook(t, book, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, "Carol", got[0].Name)

	// without a header the header text becomes data, but nothing binds to Column0
	got = readBook(t, book, DefaultOptions().WithHeader(false))
	assert.Empty(t, got)
}

func TestReadWithMapping(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"myId", "Name of the Person", "Unknown", "Dave", "ignored"},
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: headerRow("0", "1", "2") +
				`<row r="2"><c><v>7</v></c><c t="s"><v>3</v></c><c t="s"><v>4</v></c></row>`,
		}},
	}

	opts := DefaultOptions()
	opts.Mapping = binding.NewColumnMapping().Add("MYID", "id").Add("name of the person", "Name")

	got := readBook(t, book, opts)
	require.Len(t, got, 1)
	assert.Equal(t, record{ID: 7, Name: "Dave"}, got[0])
}

func TestReadHeaderlessWithSyntheticMapping(t *testing.T) {
	book := xlsxtest.Book{
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: `<row><c><v>10</v></c><c><v>1.5</v></c></row>` +
				`<row><c><v>11</v></c><c><v>2.5</v></c></row>`,
		}},
	}

	opts := DefaultOptions().WithHeader(false)
	opts.Mapping = binding.MappingFromMap(map[string]string{"Column0": "Id", "column1": "Score"})

	got := readBook(t, book, opts)
	assert.Equal(t, []record{{ID: 10, Score: 1.5}, {ID: 11, Score: 2.5}}, got)
}

func TestReadDropsRowsWithoutData(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Id", "Active", "Notes"},
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: headerRow("0", "1", "2") +
				`<row r="2"><c><v>abc</v></c><c t="e"><v>#N/A</v></c><c><v>5</v></c></row>` +
				`<row r="3"><c/><c t="b"><v>1</v></c><c><v>6</v></c></row>` +
				`<row r="4"></row>`,
		}},
	}

	got := readBook(t, book, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, record{Active: true}, got[0])
}

func TestReadSheetSelection(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Id"},
		Sheets: []xlsxtest.Sheet{
			{Name: "First", Rows: headerRow("0") + `<row><c><v>1</v></c></row>`},
			{Name: "Second", Rows: headerRow("0") + `<row><c><v>2</v></c></row>`},
		},
	}

	opts := DefaultOptions()
	opts.SheetIndex = 1
	assert.Equal(t, []record{{ID: 2}}, readBook(t, book, opts))

	opts.SheetIndex = 2
	got := readBook(t, book, opts)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	opts.SheetIndex = -1
	assert.Empty(t, readBook(t, book, opts))

	opts = DefaultOptions()
	opts.SheetName = "first"
	assert.Equal(t, []record{{ID: 1}}, readBook(t, book, opts))

	opts.SheetName = "Missing"
	assert.Empty(t, readBook(t, book, opts))
}

func TestReadWithoutSharedStrings(t *testing.T) {
	book := xlsxtest.Book{
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: `<row><c t="inlineStr"><is><t>Id</t></is></c><c t="inlineStr"><is><t>Name</t></is></c></row>` +
				`<row><c><v>3</v></c><c t="s"><v>0</v></c></row>` +
				`<row><c><v>4</v></c><c t="str"><v>Eve</v></c></row>`,
		}},
	}

	got := readBook(t, book, DefaultOptions())
	assert.Equal(t, []record{{ID: 3, Name: "0"}, {ID: 4, Name: "Eve"}}, got)
}

func TestReadSharedStringRoundTrip(t *testing.T) {
	text := "  keeps  its spacing "
	book := xlsxtest.Book{
		SharedStrings: []string{"Name", text},
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: headerRow("0") + `<row><c t="s"><v>1</v></c></row>`,
		}},
	}

	got := readBook(t, book, DefaultOptions())
	require.Len(t, got, 1)
	assert.Equal(t, text, got[0].Name)
}

func TestReadAddressing(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Id", "Name", "Score", "Frank"},
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: `<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>` +
				`<row r="2"><c r="A2"><v>8</v></c><c r="C2"><v>9.5</v></c></row>`,
		}},
	}

	// dense positional addressing shifts the score into the name column
	got := readBook(t, book, DefaultOptions())
	assert.Equal(t, []record{{ID: 8, Name: "9.5"}}, got)

	opts := DefaultOptions()
	opts.Addressing = AddressByReference
	got = readBook(t, book, opts)
	assert.Equal(t, []record{{ID: 8, Score: 9.5}}, got)
}

func TestReadCorruptPackage(t *testing.T) {
	logger, hook := test.NewNullLogger()
	opts := DefaultOptions()
	opts.Logger = logger

	got := Read(strings.NewReader("not a zip"), recordSchema, opts)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "package", entry.Data["component"])
	assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), ErrPackageCorrupt)
}

func TestReadTruncatedSheetKeepsRows(t *testing.T) {
	logger, hook := test.NewNullLogger()
	opts := DefaultOptions()
	opts.Logger = logger

	book := xlsxtest.Book{
		SharedStrings: []string{"Id"},
		Sheets:        []xlsxtest.Sheet{{Name: "One"}},
		Extra: map[string]string{
			"xl/worksheets/sheet1.xml": `<worksheet><sheetData>` + headerRow("0") +
				`<row><c><v>1</v></c></row><row><c><v>2</v></c></row><row><c><v>3`,
		},
	}

	got := readBook(t, book, opts)
	assert.Equal(t, []record{{ID: 1}, {ID: 2}}, got)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "worksheet", hook.LastEntry().Data["component"])
}

func TestReadRecoversRowPanic(t *testing.T) {
	type item struct{ N int }
	schema := binding.MustSchema(binding.Int("N", func(i *item, v int) {
		if v == 2 {
			panic("boom")
		}
		i.N = v
	}))

	book := xlsxtest.Book{
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: `<row><c><v>1</v></c></row><row><c><v>2</v></c></row><row><c><v>3</v></c></row>`,
		}},
	}
	opts := DefaultOptions().WithHeader(false)
	opts.Mapping = binding.NewColumnMapping().Add("Column0", "N")

	got := Read(bytes.NewReader(book.Bytes(t)), schema, opts)
	assert.Equal(t, []item{{1}, {3}}, got)
}

func TestReadBufferedStream(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Id"},
		Sheets:        []xlsxtest.Sheet{{Name: "One", Rows: headerRow("0") + `<row><c><v>5</v></c></row>`}},
	}
	r := iotest.OneByteReader(bytes.NewReader(book.Bytes(t)))
	assert.Equal(t, []record{{ID: 5}}, Read(r, recordSchema, DefaultOptions()))
}

func TestReadOpenFile(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Id"},
		Sheets:        []xlsxtest.Sheet{{Name: "One", Rows: headerRow("0") + `<row><c><v>6</v></c></row>`}},
	}
	f, err := os.Open(book.WriteFile(t))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []record{{ID: 6}}, Read(f, recordSchema, DefaultOptions()))
}

func TestEntitiesRestartAndStop(t *testing.T) {
	book := xlsxtest.Book{
		SharedStrings: []string{"Id"},
		Sheets: []xlsxtest.Sheet{{
			Name: "One",
			Rows: headerRow("0") + `<row><c><v>1</v></c></row><row><c><v>2</v></c></row><row><c><v>3</v></c></row>`,
		}},
	}
	data := book.Bytes(t)
	seq := Entities(bytes.NewReader(data), int64(len(data)), recordSchema, DefaultOptions())

	var first []int
	for r := range seq {
		first = append(first, r.ID)
		if r.ID == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, first)

	var second []int
	for r := range seq {
		second = append(second, r.ID)
	}
	assert.Equal(t, []int{1, 2, 3}, second)
}

func TestReadFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "id")
	f.SetCellValue(sheetName, "B1", "NAME")
	f.SetCellValue(sheetName, "C1", "Amount")
	f.SetCellValue(sheetName, "D1", "Active")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", "Grace")
	f.SetCellValue(sheetName, "C2", 12.75)
	f.SetCellValue(sheetName, "D2", true)

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	got, err := ReadFile(tmpFile, recordSchema, DefaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].ID)
	assert.Equal(t, "Grace", got[0].Name)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("12.75")))
	assert.True(t, got[0].Active)
}

func TestReadFileNotFound(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"), recordSchema, DefaultOptions())
	assert.ErrorIs(t, err, ErrSourceNotFound)

	_, err = FileEntities(t.TempDir(), recordSchema, DefaultOptions())
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestListSheets(t *testing.T) {
	book := xlsxtest.Book{Sheets: []xlsxtest.Sheet{{Name: "A"}, {Name: "B", Target: "/xl/worksheets/other.xml"}}}
	path := book.WriteFile(t)

	info, err := ListSheets(path)
	require.NoError(t, err)
	assert.Equal(t, "book.xlsx", info.BookName)
	require.Len(t, info.Sheets, 2)
	assert.Equal(t, "xl/worksheets/other.xml", info.Sheets[1].Path)
	assert.Equal(t, 1, info.Sheets[1].Index)

	_, err = ListSheets(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestReadError(t *testing.T) {
	err := NewReadError(2, "workbook", ErrPackageCorrupt)
	assert.Equal(t, "read error in sheet 2 (workbook): package corrupt", err.Error())
	assert.ErrorIs(t, err, ErrPackageCorrupt)
}
