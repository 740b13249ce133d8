package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, build func(f *excelize.File)) *strings.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return strings.NewReader(buf.String())
}

func TestDecode_XLSXTypedCells(t *testing.T) {
	r := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "key"))
		require.NoError(t, f.SetCellValue("Sheet1", "B1", "value"))
		require.NoError(t, f.SetCellValue("Sheet1", "C1", "flag"))
		require.NoError(t, f.SetCellValue("Sheet1", "A2", "timeout"))
		require.NoError(t, f.SetCellValue("Sheet1", "B2", 30))
		require.NoError(t, f.SetCellValue("Sheet1", "C2", true))
	})

	doc, err := Decode("config.xlsx", r)
	require.NoError(t, err)
	require.Len(t, doc.Sheets, 1)

	sh := doc.Sheets[0]
	assert.Equal(t, "Sheet1", sh.Name)
	assert.Equal(t, []string{"key", "value", "flag"}, sh.Headers)
	require.Len(t, sh.Rows, 1)

	row := sh.Rows[0]
	assert.Equal(t, 2, row.Number)
	assert.Equal(t, StringCell("timeout"), row.Get("key"))
	assert.Equal(t, NumberCell(30), row.Get("value"))
	assert.Equal(t, BoolCell(true), row.Get("flag"))
}

func TestDecode_BlankRowsKeepNumbering(t *testing.T) {
	r := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "key"))
		require.NoError(t, f.SetCellValue("Sheet1", "B1", "value"))
		// Row 2 left blank on purpose.
		require.NoError(t, f.SetCellValue("Sheet1", "A3", "host"))
		require.NoError(t, f.SetCellValue("Sheet1", "B3", "db.internal"))
	})

	doc, err := Decode("config.xlsx", r)
	require.NoError(t, err)

	rows := doc.Sheets[0].Rows
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Number, "blank rows must not shift row numbers")
	assert.Equal(t, "host", rows[0].Get("key").Str)
}

func TestDecode_MultipleSheets(t *testing.T) {
	r := workbookBytes(t, func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "name"))
		require.NoError(t, f.SetCellValue("Sheet1", "A2", "Alice"))
		_, err := f.NewSheet("People")
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue("People", "A1", "city"))
		require.NoError(t, f.SetCellValue("People", "A2", "Oslo"))
	})

	doc, err := Decode("data.xlsx", r)
	require.NoError(t, err)
	require.Len(t, doc.Sheets, 2)
	assert.Equal(t, "Sheet1", doc.Sheets[0].Name)
	assert.Equal(t, "People", doc.Sheets[1].Name)
}

func TestDecode_NoHeaders(t *testing.T) {
	r := workbookBytes(t, func(f *excelize.File) {
		// Nothing written: the workbook has a Sheet1 with no cells.
	})

	_, err := Decode("empty.xlsx", r)
	assert.ErrorIs(t, err, ErrNoHeaders)
}

func TestDecode_CSV(t *testing.T) {
	csv := "key,value,required\ntoken,,yes\napi_url,https://api.example.com,\n"

	doc, err := Decode("settings.csv", strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, doc.Sheets, 1)

	sh := doc.Sheets[0]
	assert.Equal(t, "settings", sh.Name)
	assert.Equal(t, []string{"key", "value", "required"}, sh.Headers)
	require.Len(t, sh.Rows, 2)

	assert.Equal(t, 2, sh.Rows[0].Number)
	assert.True(t, sh.Rows[0].Get("value").IsEmpty())
	assert.Equal(t, "yes", sh.Rows[0].Get("required").Str)
	assert.Equal(t, "https://api.example.com", sh.Rows[1].Get("value").Str)
}

func TestDecode_CSVExtraColumns(t *testing.T) {
	csv := "key,value\na,1,stray\n"

	doc, err := Decode("ragged.csv", strings.NewReader(csv))
	require.NoError(t, err)

	row := doc.Sheets[0].Rows[0]
	assert.Equal(t, "stray", row.Get("col_2").Str)
}

func TestDecode_UnsupportedExtension(t *testing.T) {
	_, err := Decode("data.xls", strings.NewReader("x"))
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestCell_String(t *testing.T) {
	assert.Equal(t, "30", NumberCell(30).String())
	assert.Equal(t, "2.5", NumberCell(2.5).String())
	assert.Equal(t, "true", BoolCell(true).String())
	assert.Equal(t, "", Cell{}.String())
}
