package converters_test

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/darianmavgo/mkfixture/converters"
	_ "github.com/darianmavgo/mkfixture/converters/all"
	"github.com/darianmavgo/mkfixture/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	_ "modernc.org/sqlite"
)

// TestCombinedOutputLoadsIntoSQLite feeds every line of all.sql to SQLite and
// checks that the data comes back intact.
func TestCombinedOutputLoadsIntoSQLite(t *testing.T) {
	ws := workspace.NewMemory()
	ws.Put("people.csv", []byte("id,name,joined\n1,O'Hara,2021-03-04 05:06:07\n2,Li,2022-01-01 00:00:00\n"))
	ws.Put("prices.md", []byte("| sku | price |\n|-----|-------|\n| a1 | 9.99 |\n| b2 | 10.5 |\n"))
	ws.Put("empty.csv", []byte("a,b\n"))

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"code", "qty"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"x", 3}))
	var book bytes.Buffer
	_, err := f.WriteTo(&book)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	ws.Put("stock.xlsx", book.Bytes())

	require.NoError(t, converters.Run(ws, nil))
	lines, err := converters.CombinedLines(ws, nil)
	require.NoError(t, err)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	for _, line := range lines {
		_, err := db.Exec(line)
		require.NoError(t, err, line)
	}

	var name string
	require.NoError(t, db.QueryRow("select name from people where id = 1").Scan(&name))
	assert.Equal(t, "O'Hara", name)

	var total float64
	require.NoError(t, db.QueryRow("select sum(price) from prices").Scan(&total))
	assert.InDelta(t, 20.49, total, 1e-9)

	var qty int
	require.NoError(t, db.QueryRow("select qty from stock where code = 'x'").Scan(&qty))
	assert.Equal(t, 3, qty)

	var count int
	require.NoError(t, db.QueryRow("select count(*) from empty").Scan(&count))
	assert.Equal(t, 0, count)
}
