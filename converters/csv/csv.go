package csv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/darianmavgo/mkfixture/converters"
	"github.com/darianmavgo/mkfixture/converters/common"
)

const (
	CSVTB = "tb0"
)

func init() {
	converters.Register("csv", &csvDriver{}, ".csv")
}

type csvDriver struct{}

func (d *csvDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewCSVConverterWithConfig(source, config)
}

// CSVConverter reads one table from delimited text: the first record is the
// header, every following record is a data row.
type CSVConverter struct {
	headers   []string
	csvReader *csv.Reader
	scanned   bool
	Config    common.ConversionConfig
}

// Ensure CSVConverter implements RowProvider
var _ common.RowProvider = (*CSVConverter)(nil)

// NewCSVConverter creates a new CSVConverter from an io.Reader.
// Rows are streamed, so ScanRows can only be called once.
func NewCSVConverter(r io.Reader) (*CSVConverter, error) {
	return NewCSVConverterWithConfig(r, nil)
}

// NewCSVConverterWithConfig creates a new CSVConverter from an io.Reader with optional config.
// Empty input yields a table with no columns and no rows.
func NewCSVConverterWithConfig(r io.Reader, config *common.ConversionConfig) (*CSVConverter, error) {
	cfg := common.ConversionConfig{TableName: CSVTB}
	if config != nil {
		cfg = *config
	}
	if cfg.TableName == "" {
		cfg.TableName = CSVTB
	}

	br := bufio.NewReaderSize(r, 65536)

	// Detect delimiter if not set
	if cfg.Delimiter == 0 {
		peekBytes, _ := br.Peek(2048)
		sample := string(peekBytes)
		if idx := strings.IndexAny(sample, "\r\n"); idx != -1 {
			sample = sample[:idx]
		}
		cfg.Delimiter = common.DetectDelimiter(sample)
	}

	reader := csv.NewReader(br)
	reader.Comma = cfg.Delimiter
	reader.FieldsPerRecord = -1 // Row width is checked against the header by the row policy
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true // A stray quote inside an unquoted field is kept as data

	headers, err := reader.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	return &CSVConverter{
		headers:   headers,
		csvReader: reader,
		Config:    cfg,
	}, nil
}

// GetTableNames implements RowProvider
func (c *CSVConverter) GetTableNames() []string {
	return []string{c.Config.TableName}
}

// GetHeaders implements RowProvider
func (c *CSVConverter) GetHeaders(tableName string) []string {
	if tableName == c.Config.TableName {
		return c.headers
	}
	return nil
}

// ScanRows implements RowProvider
func (c *CSVConverter) ScanRows(tableName string, yield func([]string) error) error {
	if tableName != c.Config.TableName {
		return nil
	}
	if c.scanned {
		return fmt.Errorf("CSV rows for table %s have already been scanned", tableName)
	}
	c.scanned = true

	for line := 1; ; line++ {
		row, err := c.csvReader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}
		if err := yield(row); err != nil {
			return err
		}
	}
}
