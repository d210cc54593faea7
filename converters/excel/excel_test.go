package excel

import (
	"bytes"
	"testing"

	"github.com/darianmavgo/mkfixture/converters/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, sheets map[string][][]interface{}, order ...string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func scan(t *testing.T, e *ExcelConverter, table string) [][]string {
	t.Helper()
	var rows [][]string
	require.NoError(t, e.ScanRows(table, func(row []string) error {
		rows = append(rows, row)
		return nil
	}))
	return rows
}

func TestExcelSingleSheet(t *testing.T) {
	buf := workbook(t, map[string][][]interface{}{
		"People": {
			{"id", "name", "score"},
			{"1", "Alice", "3.5"},
			{"2", "Bob"},
		},
	}, "People")

	e, err := NewExcelConverterWithConfig(buf, &common.ConversionConfig{TableName: "people"})
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{"people"}, e.GetTableNames())
	assert.Equal(t, []string{"id", "name", "score"}, e.GetHeaders("people"))
	assert.Equal(t, [][]string{
		{"1", "Alice", "3.5"},
		{"2", "Bob", ""},
	}, scan(t, e, "people"))
}

func TestExcelMultipleSheets(t *testing.T) {
	buf := workbook(t, map[string][][]interface{}{
		"Orders":     {{"id"}, {"1"}},
		"Line Items": {{"sku", "qty"}, {"A1", "2"}},
	}, "Orders", "Line Items")

	e, err := NewExcelConverterWithConfig(buf, &common.ConversionConfig{TableName: "shop"})
	require.NoError(t, err)
	defer e.Close()

	assert.Equal(t, []string{"shop_orders", "shop_line_items"}, e.GetTableNames())
	assert.Equal(t, []string{"sku", "qty"}, e.GetHeaders("shop_line_items"))
	assert.Equal(t, [][]string{{"A1", "2"}}, scan(t, e, "shop_line_items"))
	assert.Empty(t, scan(t, e, "missing"))
}

func TestExcelInvalidStream(t *testing.T) {
	_, err := NewExcelConverter(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}
