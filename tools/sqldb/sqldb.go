// Package sqldb implements the SQL query tool backed by the project's
// Postgres database.
package sqldb

import (
	"context"
	"database/sql"
	"reflect"

	_ "github.com/lib/pq"
	"github.com/nash-app/nash-tools/pkg/csvfmt"
	"github.com/nash-app/nash-tools/pkg/envcfg"
	"github.com/nash-app/nash-tools/schema"
	"github.com/nash-app/nash-tools/tools"
)

const SQLToolName = "sql_db_tool"

// NoRowsSentinel is returned for statements that produce no rows, such as
// INSERT or UPDATE, and for empty result sets.
const NoRowsSentinel = "Query executed successfully (no rows returned)"

// EnvDatabaseURL is the Postgres connection string for the project
// database.
const EnvDatabaseURL = "DATABASE_URL"

// SQLRequest is the tool input.
type SQLRequest struct {
	SQLQuery string `json:"sql_query" jsonschema:"title=SQL Query,description=SQL query to execute against the project database" validate:"required,min=1,max=10000"`
}

// SQLResult holds the query output.
type SQLResult struct {
	Columns []string
	Rows    [][]any
}

func (r *SQLResult) String() string {
	if len(r.Columns) == 0 {
		return NoRowsSentinel
	}
	tb := csvfmt.New(r.Columns...)
	for _, row := range r.Rows {
		tb.AddRow(row...)
	}
	return tb.RenderOr(NoRowsSentinel)
}

// openDB is swapped in tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("postgres", dsn)
}

// SQLTool executes a SQL query against the project database and returns
// the result as CSV.
type SQLTool struct {
	name        string
	description string
}

var _ tools.Tool[SQLRequest, SQLResult] = (*SQLTool)(nil)

func NewSQL() *SQLTool {
	return &SQLTool{
		name: SQLToolName,
		description: "Executes a SQL query against the project's Postgres database and returns the " +
			"result in CSV format. For statements that return no rows it will return " +
			"'Query executed successfully (no rows returned)'.",
	}
}

func (t *SQLTool) Name() string {
	return t.name
}

func (t *SQLTool) Description() string {
	return t.description
}

func (t *SQLTool) Parameters() any {
	sc, err := schema.New(reflect.TypeOf(SQLRequest{}))
	if err != nil {
		return nil
	}
	return sc.Parameters
}

func (t *SQLTool) Run(ctx context.Context, req *SQLRequest) (*SQLResult, error) {
	if err := tools.ValidateStruct(req); err != nil {
		return nil, err
	}

	dsn, err := envcfg.Require(EnvDatabaseURL)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryConfig, err)
	}

	db, err := openDB(dsn)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryDatabase, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, req.SQLQuery)
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryDatabase, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, tools.WithCategory(tools.CategoryDatabase, err)
	}

	out := &SQLResult{Columns: cols}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, tools.WithCategory(tools.CategoryDatabase, err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out.Rows = append(out.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, tools.WithCategory(tools.CategoryDatabase, err)
	}
	return out, nil
}

func (t *SQLTool) Call(ctx context.Context, input string) (string, error) {
	var req SQLRequest
	if err := tools.UnmarshalInput(input, &req); err != nil {
		return tools.FormatError(t.name, err), nil
	}
	out, err := t.Run(ctx, &req)
	if err != nil {
		return tools.FormatError(t.name, err), nil
	}
	return out.String(), nil
}
