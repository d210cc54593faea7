package html

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/darianmavgo/mkfixture/converters"
	"github.com/darianmavgo/mkfixture/converters/common"

	"golang.org/x/net/html"
)

const (
	HTMLTB = "tb0"
)

func init() {
	converters.Register("html", &htmlDriver{}, ".html", ".htm")
}

type htmlDriver struct{}

func (d *htmlDriver) Open(source io.Reader, config *common.ConversionConfig) (common.RowProvider, error) {
	return NewHTMLConverterWithConfig(source, config)
}

// HTMLConverter reads one table per <table> element. The first <tr> is the header.
type HTMLConverter struct {
	*common.TableProvider
}

type tableData struct {
	rawName string
	headers []string
	rows    [][]string
}

// Ensure HTMLConverter implements RowProvider
var _ common.RowProvider = (*HTMLConverter)(nil)

// NewHTMLConverter creates a new HTMLConverter from an io.Reader
func NewHTMLConverter(r io.Reader) (*HTMLConverter, error) {
	return NewHTMLConverterWithConfig(r, nil)
}

// NewHTMLConverterWithConfig creates a new HTMLConverter with optional config.
// A document with a single table produces one table named config.TableName;
// otherwise each table is named <TableName>_<id or index>, sanitized.
func NewHTMLConverterWithConfig(r io.Reader, config *common.ConversionConfig) (*HTMLConverter, error) {
	base := HTMLTB
	if config != nil && config.TableName != "" {
		base = config.TableName
	}

	tables, err := parseHTML(bufio.NewReaderSize(r, 65536))
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w in HTML", common.ErrNoTables)
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
	return &HTMLConverter{TableProvider: provider}, nil
}

func parseHTML(reader io.Reader) ([]tableData, error) {
	doc, err := html.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var tables []tableData
	var f func(*html.Node)
	f = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, extractTable(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c)
		}
	}
	f(doc)
	return tables, nil
}

func extractTable(n *html.Node) tableData {
	var name string
	for _, attr := range n.Attr {
		if attr.Key == "id" {
			name = attr.Val
			break
		}
	}

	var rows [][]string
	var visitRows func(*html.Node)
	visitRows = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == "tr" {
			var row []string
			for c := node.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
					row = append(row, extractText(c))
				}
			}
			rows = append(rows, row)
			return // Don't look for TRs inside TRs
		}

		for c := node.FirstChild; c != nil; c = c.NextSibling {
			// Don't traverse into nested tables here
			if c.Type == html.ElementNode && c.Data == "table" {
				continue
			}
			visitRows(c)
		}
	}
	visitRows(n)

	if len(rows) == 0 {
		return tableData{rawName: name}
	}

	return tableData{
		rawName: name,
		headers: rows[0],
		rows:    rows[1:],
	}
}

func extractText(n *html.Node) string {
	var sb strings.Builder
	extractTextRecursive(n, &sb)
	// Whitespace runs, including source line wraps, render as one space.
	return strings.Join(strings.Fields(sb.String()), " ")
}

func extractTextRecursive(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractTextRecursive(c, sb)
	}
}
