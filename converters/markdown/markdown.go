package markdown

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/darianmavgo/mkfixture/converters"
	"github.com/darianmavgo/mkfixture/converters/common"
)

const (
	MDTB = "tb0"
)

func init() {
	converters.Register("markdown", &markdownDriver{}, ".md")
}

type markdownDriver struct{}

func (d *markdownDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewMarkdownConverterWithConfig(source, config)
}

// MarkdownConverter reads one table per pipe table in a Markdown document.
type MarkdownConverter struct {
	*common.TableProvider
}

type tableData struct {
	rawName string
	headers []string
	rows    [][]string
}

// Ensure MarkdownConverter implements RowProvider
var _ common.RowProvider = (*MarkdownConverter)(nil)

// NewMarkdownConverter creates a new MarkdownConverter from an io.Reader
func NewMarkdownConverter(r io.Reader) (*MarkdownConverter, error) {
	return NewMarkdownConverterWithConfig(r, nil)
}

// NewMarkdownConverterWithConfig creates a new MarkdownConverter with optional config.
// A document with a single table produces one table named config.TableName;
// otherwise each table is named <TableName>_<nearest heading or index>, sanitized.
func NewMarkdownConverterWithConfig(r io.Reader, config *common.ConversionConfig) (*MarkdownConverter, error) {
	base := MDTB
	if config != nil && config.TableName != "" {
		base = config.TableName
	}

	tables, err := parseMarkdown(r)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w in Markdown", common.ErrNoTables)
	}

	tableNames := []string{base}
	if len(tables) > 1 {
		rawNames := make([]string, len(tables))
		for i, t := range tables {
			suffix := t.rawName
			if suffix == "" {
				suffix = "table" + strconv.Itoa(i)
			}
			rawNames[i] = base + "_" + suffix
		}
		tableNames = common.GenTableNames(rawNames)
	}

	provider := &common.TableProvider{}
	for i, t := range tables {
		provider.Tables = append(provider.Tables, common.Table{
			Name:    tableNames[i],
			Columns: t.headers,
			Rows:    t.rows,
		})
	}
	return &MarkdownConverter{TableProvider: provider}, nil
}

// Regex for headers, anchors and table rows
var (
	headerRegex    = regexp.MustCompile(`^#+\s+(.*)$`)
	anchorRegex    = regexp.MustCompile(`<a\s+.*(?:id|name)="([^"]+)".*>`)
	tableRegex     = regexp.MustCompile(`^\s*\|`)
	separatorRegex = regexp.MustCompile(`^\s*\|?\s*:?-{3,}:?\s*(\|\s*:?-{3,}:?\s*)*\|?\s*$`)
)

func parseMarkdown(r io.Reader) ([]tableData, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Markdown: %w", err)
	}

	var tables []tableData
	var currentName string

	i := 0
	for i < len(lines) {
		trimLine := strings.TrimSpace(lines[i])

		// Check for Name (Header or Anchor)
		if match := headerRegex.FindStringSubmatch(trimLine); match != nil {
			currentName = strings.TrimSpace(match[1])
			i++
			continue
		}
		if match := anchorRegex.FindStringSubmatch(trimLine); match != nil {
			currentName = strings.TrimSpace(match[1])
			i++
			continue
		}

		// A table is a pipe row followed by a separator row
		if tableRegex.MatchString(trimLine) && i+1 < len(lines) && separatorRegex.MatchString(lines[i+1]) {
			table, consumed := parseTable(lines[i:], currentName)
			tables = append(tables, table)
			i += consumed
			currentName = ""
			continue
		}

		i++
	}

	return tables, nil
}

// splitRow splits a pipe row into trimmed cells.
func splitRow(l string) []string {
	l = strings.TrimSpace(l)
	l = strings.TrimPrefix(l, "|")
	l = strings.TrimSuffix(l, "|")
	parts := strings.Split(l, "|")
	for k, v := range parts {
		parts[k] = strings.TrimSpace(v)
	}
	return parts
}

func parseTable(lines []string, name string) (tableData, int) {
	headers := splitRow(lines[0])
	consumed := 2 // header and separator

	var rows [][]string
	for j := 2; j < len(lines); j++ {
		if !strings.Contains(lines[j], "|") {
			break
		}
		rows = append(rows, splitRow(lines[j]))
		consumed++
	}

	return tableData{
		rawName: name,
		headers: headers,
		rows:    rows,
	}, consumed
}
