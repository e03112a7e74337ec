// SPDX-License-Identifier: Apache-2.0

package bind_test

import (
	"testing"

	pgq "github.com/pganalyze/pg_query_go/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob-ledermann/database/pkg/bind"
	"github.com/jakob-ledermann/database/pkg/wire"
)

func parse(t *testing.T, sql string) *pgq.RawStmt {
	t.Helper()
	result, err := pgq.Parse(sql)
	require.NoError(t, err)
	stmts := result.GetStmts()
	require.Len(t, stmts, 1)
	return stmts[0]
}

func deparse(t *testing.T, stmt *pgq.RawStmt) string {
	t.Helper()
	sql, err := pgq.Deparse(&pgq.ParseResult{Stmts: []*pgq.RawStmt{stmt}})
	require.NoError(t, err)
	return sql
}

func TestBindSubstitutesPlaceholders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sql    string
		params []wire.Value
		want   string
	}{
		{
			name:   "insert values",
			sql:    "INSERT INTO s.t VALUES ($1, $2)",
			params: []wire.Value{wire.IntValue(1), wire.TextValue("x")},
			want:   "INSERT INTO s.t VALUES (1, 'x')",
		},
		{
			name:   "bool and null",
			sql:    "INSERT INTO s.t VALUES ($1, $2)",
			params: []wire.Value{wire.BoolValue(true), wire.NullValue()},
			want:   "INSERT INTO s.t VALUES (true, NULL)",
		},
		{
			name:   "update assignments",
			sql:    "UPDATE s.t SET a = $1, b = $2",
			params: []wire.Value{wire.IntValue(3), wire.TextValue("y")},
			want:   "UPDATE s.t SET a = 3, b = 'y'",
		},
		{
			name:   "select predicate",
			sql:    "SELECT a FROM s.t WHERE b = $1",
			params: []wire.Value{wire.TextValue("z")},
			want:   "SELECT a FROM s.t WHERE b = 'z'",
		},
		{
			name:   "delete predicate",
			sql:    "DELETE FROM s.t WHERE a = $1",
			params: []wire.Value{wire.IntValue(7)},
			want:   "DELETE FROM s.t WHERE a = 7",
		},
		{
			name:   "same parameter twice",
			sql:    "SELECT a FROM s.t WHERE a = $1 AND b = $1",
			params: []wire.Value{wire.IntValue(5)},
			want:   "SELECT a FROM s.t WHERE a = 5 AND b = 5",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stmt := parse(t, tc.sql)
			require.NoError(t, bind.Bind(stmt, tc.params))
			assert.Equal(t, tc.want, deparse(t, stmt))
		})
	}
}

func TestBindWideInteger(t *testing.T) {
	t.Parallel()

	stmt := parse(t, "INSERT INTO s.t VALUES ($1)")
	require.NoError(t, bind.Bind(stmt, []wire.Value{wire.IntValue(9000000000)}))
	assert.Equal(t, "INSERT INTO s.t VALUES (9000000000)", deparse(t, stmt))
}

func TestBindMissingParameter(t *testing.T) {
	t.Parallel()

	stmt := parse(t, "INSERT INTO s.t VALUES ($1, $2)")
	err := bind.Bind(stmt, []wire.Value{wire.IntValue(1)})
	assert.Equal(t, wire.InvalidParameterValue("there is no parameter $2"), err)
}

func TestBindStatementWithoutParameters(t *testing.T) {
	t.Parallel()

	stmt := parse(t, "SELECT a FROM s.t")
	require.NoError(t, bind.Bind(stmt, nil))
	assert.Equal(t, "SELECT a FROM s.t", deparse(t, stmt))
}

func TestBindUnsupportedStatementKind(t *testing.T) {
	t.Parallel()

	stmt := parse(t, "CREATE TABLE s.t (a int)")
	require.NoError(t, bind.Bind(stmt, nil))

	err := bind.Bind(stmt, []wire.Value{wire.IntValue(1)})
	assert.Equal(t, wire.FeatureNotSupported("this statement does not accept parameters"), err)
}
