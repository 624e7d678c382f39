package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDriver serves canned result sets keyed by query text.
type fakeDriver struct {
	results map[string]*fakeRows
}

type fakeConn struct {
	drv *fakeDriver
}

type fakeRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
}

func (d *fakeDriver) Open(string) (driver.Conn, error) {
	return &fakeConn{drv: d}, nil
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, driver.ErrSkip
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, driver.ErrSkip
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	rows, ok := c.drv.results[query]
	if !ok {
		return nil, driver.ErrBadConn
	}
	return &fakeRows{columns: rows.columns, rows: rows.rows}, nil
}

func (r *fakeRows) Columns() []string { return r.columns }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}

var _ driver.QueryerContext = (*fakeConn)(nil)

func withFakeDB(t *testing.T, results map[string]*fakeRows) {
	t.Helper()
	t.Setenv(EnvDatabaseURL, "postgres://test")
	orig := openDB
	openDB = func(string) (*sql.DB, error) {
		return sql.OpenDB(fakeConnector{drv: &fakeDriver{results: results}}), nil
	}
	t.Cleanup(func() { openDB = orig })
}

type fakeConnector struct {
	drv *fakeDriver
}

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return c.drv.Open("")
}

func (c fakeConnector) Driver() driver.Driver { return c.drv }

func TestSQLTool(t *testing.T) {
	withFakeDB(t, map[string]*fakeRows{
		"SELECT id, name FROM users": {
			columns: []string{"id", "name"},
			rows: [][]driver.Value{
				{int64(1), "alice"},
				{int64(2), []byte("bob, the builder")},
			},
		},
	})

	tool := NewSQL()
	assert.Equal(t, "sql_db_tool", tool.Name())
	assert.NotNil(t, tool.Parameters())

	out, err := tool.Call(context.Background(), `{"sql_query":"SELECT id, name FROM users"}`)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,name", lines[0])
	assert.Equal(t, "1,alice", lines[1])
	assert.Equal(t, `2,"bob, the builder"`, lines[2])
}

func TestSQLToolNoRows(t *testing.T) {
	withFakeDB(t, map[string]*fakeRows{
		"SELECT id FROM users WHERE 1=0": {
			columns: []string{"id"},
		},
	})

	tool := NewSQL()
	out, err := tool.Call(context.Background(), `{"sql_query":"SELECT id FROM users WHERE 1=0"}`)
	require.NoError(t, err)
	assert.Equal(t, NoRowsSentinel, out)
}

func TestSQLToolQueryError(t *testing.T) {
	withFakeDB(t, map[string]*fakeRows{})

	tool := NewSQL()
	out, err := tool.Call(context.Background(), `{"sql_query":"SELECT broken"}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sql_db_tool error: Database Error - "), out)
}

func TestSQLToolValidation(t *testing.T) {
	tool := NewSQL()

	out, err := tool.Call(context.Background(), `{"sql_query":""}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sql_db_tool error: Validation Error - "), out)
	assert.Contains(t, out, "SQLQuery")

	out, err = tool.Call(context.Background(), `{"sql_query":"`+strings.Repeat("x", 10001)+`"}`)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "sql_db_tool error: Validation Error - "), out)
}

func TestSQLToolMissingDatabaseURL(t *testing.T) {
	t.Setenv(EnvDatabaseURL, "")

	tool := NewSQL()
	out, err := tool.Call(context.Background(), `{"sql_query":"SELECT 1"}`)
	require.NoError(t, err)
	assert.Equal(t,
		"sql_db_tool error: Config Error - Environment Variable DATABASE_URL not present. Did you set it in your project's secrets?",
		out)
}
