package markdown

import (
	"strings"
	"testing"

	"github.com/darianmavgo/mkfixture/converters/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsOf(t *testing.T, c *MarkdownConverter, table string) [][]string {
	t.Helper()
	var rows [][]string
	require.NoError(t, c.ScanRows(table, func(row []string) error {
		rows = append(rows, row)
		return nil
	}))
	return rows
}

func TestMarkdownSingleTable(t *testing.T) {
	doc := `# Players

| id | name  | score |
|----|:------|------:|
| 1  | Alice | 3.5   |
| 2  | Bob   | 4.0   |

Trailing prose.`

	c, err := NewMarkdownConverterWithConfig(strings.NewReader(doc), &common.ConversionConfig{TableName: "players"})
	require.NoError(t, err)

	assert.Equal(t, []string{"players"}, c.GetTableNames())
	assert.Equal(t, []string{"id", "name", "score"}, c.GetHeaders("players"))
	assert.Equal(t, [][]string{{"1", "Alice", "3.5"}, {"2", "Bob", "4.0"}}, rowsOf(t, c, "players"))
}

func TestMarkdownTablesNamedByHeading(t *testing.T) {
	doc := `## Orders
| id |
|---|
| 1 |

| sku |
| --- |
| A1 |
`
	c, err := NewMarkdownConverterWithConfig(strings.NewReader(doc), &common.ConversionConfig{TableName: "doc"})
	require.NoError(t, err)

	assert.Equal(t, []string{"doc_orders", "doc_table1"}, c.GetTableNames())
	assert.Equal(t, [][]string{{"A1"}}, rowsOf(t, c, "doc_table1"))
}

func TestMarkdownPipeRowWithoutSeparatorIsNotATable(t *testing.T) {
	_, err := NewMarkdownConverter(strings.NewReader("| just | text |\nmore text\n"))
	assert.ErrorIs(t, err, common.ErrNoTables)
}
