package excel

import (
	"fmt"
	"io"

	"github.com/darianmavgo/mkfixture/converters"
	"github.com/darianmavgo/mkfixture/converters/common"

	"github.com/xuri/excelize/v2"
)

const (
	XLSTB = "tb0"
)

func init() {
	converters.Register("excel", &excelDriver{}, ".xlsx")
}

type excelDriver struct{}

func (d *excelDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewExcelConverterWithConfig(source, config)
}

// ExcelConverter reads one table per worksheet. The first row of a sheet is its header.
type ExcelConverter struct {
	tableNames []string
	headers    map[string][]string // map tableName to headers
	sheetMap   map[string]string   // map tableName to sheetName
	file       *excelize.File
}

// Ensure ExcelConverter implements RowProvider
var _ common.RowProvider = (*ExcelConverter)(nil)

// Ensure ExcelConverter implements io.Closer
var _ io.Closer = (*ExcelConverter)(nil)

// NewExcelConverter creates a new ExcelConverter from an io.Reader
func NewExcelConverter(r io.Reader) (*ExcelConverter, error) {
	return NewExcelConverterWithConfig(r, nil)
}

// NewExcelConverterWithConfig creates a new ExcelConverter from an io.Reader with optional config.
// A workbook with a single sheet produces one table named config.TableName;
// otherwise each table is named <TableName>_<sheet>, sanitized.
func NewExcelConverterWithConfig(r io.Reader, config *common.ConversionConfig) (*ExcelConverter, error) {
	base := XLSTB
	if config != nil && config.TableName != "" {
		base = config.TableName
	}

	// Open Excel stream
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel stream: %w", err)
	}

	// Get all sheets
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	tableNames := []string{base}
	if len(sheets) > 1 {
		rawNames := make([]string, len(sheets))
		for i, sheet := range sheets {
			rawNames[i] = base + "_" + sheet
		}
		tableNames = common.GenTableNames(rawNames)
	}

	headersMap := make(map[string][]string)
	sheetMap := make(map[string]string)

	for idx, sheetName := range sheets {
		tableName := tableNames[idx]
		sheetMap[tableName] = sheetName

		// Use iterator to get the header row only
		rows, err := f.Rows(sheetName)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to get rows iterator for sheet %s: %w", sheetName, err)
		}
		if rows.Next() {
			cols, err := rows.Columns()
			if err != nil {
				rows.Close()
				f.Close()
				return nil, fmt.Errorf("failed to read header row for sheet %s: %w", sheetName, err)
			}
			headersMap[tableName] = cols
		}
		rows.Close()
	}

	return &ExcelConverter{
		tableNames: tableNames,
		headers:    headersMap,
		sheetMap:   sheetMap,
		file:       f,
	}, nil
}

// GetTableNames implements RowProvider
func (e *ExcelConverter) GetTableNames() []string {
	return e.tableNames
}

// GetHeaders implements RowProvider
func (e *ExcelConverter) GetHeaders(tableName string) []string {
	return e.headers[tableName]
}

// ScanRows implements RowProvider.
// Rows without any cells are skipped. Excel drops trailing empty cells, so
// shorter rows are padded with empty fields up to the header width.
func (e *ExcelConverter) ScanRows(tableName string, yield func([]string) error) error {
	sheetName, ok := e.sheetMap[tableName]
	if !ok {
		return nil
	}

	rows, err := e.file.Rows(sheetName)
	if err != nil {
		return fmt.Errorf("failed to get rows iterator for sheet %s: %w", sheetName, err)
	}
	defer rows.Close()

	// Skip the header row
	if rows.Next() {
		if _, err := rows.Columns(); err != nil {
			return fmt.Errorf("failed to read header row for sheet %s: %w", sheetName, err)
		}
	}

	width := len(e.headers[tableName])
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return fmt.Errorf("failed to read row: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		if err := yield(row); err != nil {
			return err
		}
	}

	return rows.Error()
}

// Close closes the underlying Excel file
func (e *ExcelConverter) Close() error {
	if e.file != nil {
		return e.file.Close()
	}
	return nil
}
