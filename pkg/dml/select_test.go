// SPDX-License-Identifier: Apache-2.0

package dml_test

import (
	"math"
	"testing"

	pgq "github.com/pganalyze/pg_query_go/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob-ledermann/database/pkg/catalog"
	"github.com/jakob-ledermann/database/pkg/dml"
	"github.com/jakob-ledermann/database/pkg/schema"
	"github.com/jakob-ledermann/database/pkg/sqltype"
	"github.com/jakob-ledermann/database/pkg/wire"
)

func parseSelect(t *testing.T, sql string) *pgq.SelectStmt {
	t.Helper()
	result, err := pgq.Parse(sql)
	require.NoError(t, err)
	stmts := result.GetStmts()
	require.Len(t, stmts, 1)
	sel, ok := stmts[0].GetStmt().GetNode().(*pgq.Node_SelectStmt)
	require.True(t, ok)
	return sel.SelectStmt
}

func seededCatalog(t *testing.T) *catalog.Manager {
	t.Helper()
	cat := catalog.NewInMemory()
	require.NoError(t, cat.CreateSchema("s"))
	require.NoError(t, cat.CreateTable("s", "t", []schema.Column{
		{Name: "a", Type: sqltype.SmallInt(math.MinInt16)},
		{Name: "b", Type: sqltype.VarChar(255)},
		{Name: "c", Type: sqltype.Bool()},
	}))
	_, err := cat.InsertInto("s", "t", [][]string{
		{"1", "x", "t"},
		{"2", "y", "f"},
	})
	require.NoError(t, err)
	return cat
}

func TestSelectExecuteProjection(t *testing.T) {
	t.Parallel()

	cat := seededCatalog(t)

	tests := []struct {
		name     string
		sql      string
		wantDesc wire.Description
		wantRows [][]string
	}{
		{
			name: "reordered columns",
			sql:  "SELECT b, a FROM s.t",
			wantDesc: wire.Description{
				{Name: "b", Type: wire.TypeVarChar},
				{Name: "a", Type: wire.TypeSmallInt},
			},
			wantRows: [][]string{{"x", "1"}, {"y", "2"}},
		},
		{
			name: "wildcard expands in catalog order",
			sql:  "SELECT * FROM s.t",
			wantDesc: wire.Description{
				{Name: "a", Type: wire.TypeSmallInt},
				{Name: "b", Type: wire.TypeVarChar},
				{Name: "c", Type: wire.TypeBool},
			},
			wantRows: [][]string{{"1", "x", "t"}, {"2", "y", "f"}},
		},
		{
			name: "repeated column",
			sql:  "SELECT a, a FROM s.t",
			wantDesc: wire.Description{
				{Name: "a", Type: wire.TypeSmallInt},
				{Name: "a", Type: wire.TypeSmallInt},
			},
			wantRows: [][]string{{"1", "1"}, {"2", "2"}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			event, err := dml.NewSelect(tc.sql, parseSelect(t, tc.sql), cat).Execute()
			require.NoError(t, err)
			assert.Equal(t, wire.RecordsSelected{Description: tc.wantDesc, Rows: tc.wantRows}, event)
		})
	}
}

func TestSelectExecuteErrors(t *testing.T) {
	t.Parallel()

	cat := seededCatalog(t)

	tests := []struct {
		name    string
		sql     string
		wantErr *wire.QueryError
	}{
		{
			name:    "unknown column",
			sql:     "SELECT missing FROM s.t",
			wantErr: wire.ColumnDoesNotExist([]string{"missing"}),
		},
		{
			name:    "unknown columns are collected",
			sql:     "SELECT m1, a, m2 FROM s.t",
			wantErr: wire.ColumnDoesNotExist([]string{"m1", "m2"}),
		},
		{
			name:    "missing schema",
			sql:     "SELECT a FROM missing.t",
			wantErr: wire.SchemaDoesNotExist("missing"),
		},
		{
			name:    "missing table",
			sql:     "SELECT a FROM s.missing",
			wantErr: wire.TableDoesNotExist("s.missing"),
		},
		{
			name:    "unqualified table",
			sql:     "SELECT * FROM t",
			wantErr: wire.FeatureNotSupported("SELECT * FROM t"),
		},
		{
			name:    "join",
			sql:     "SELECT a FROM s.t JOIN s.u ON true",
			wantErr: wire.FeatureNotSupported("SELECT a FROM s.t JOIN s.u ON true"),
		},
		{
			name:    "expression projection",
			sql:     "SELECT a + 1 FROM s.t",
			wantErr: wire.FeatureNotSupported("SELECT a + 1 FROM s.t"),
		},
		{
			name:    "no from clause",
			sql:     "SELECT 1",
			wantErr: wire.FeatureNotSupported("SELECT 1"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := dml.NewSelect(tc.sql, parseSelect(t, tc.sql), cat).Execute()
			assert.Equal(t, tc.wantErr, err)
		})
	}
}

func TestSelectDescribe(t *testing.T) {
	t.Parallel()

	cat := seededCatalog(t)

	t.Run("selection order is preserved", func(t *testing.T) {
		sql := "SELECT c, a FROM s.t"
		description, err := dml.NewSelect(sql, parseSelect(t, sql), cat).Describe()
		require.NoError(t, err)
		assert.Equal(t, wire.Description{
			{Name: "c", Type: wire.TypeBool},
			{Name: "a", Type: wire.TypeSmallInt},
		}, description)
	})

	t.Run("unknown column fails like execute", func(t *testing.T) {
		sql := "SELECT missing FROM s.t"
		_, err := dml.NewSelect(sql, parseSelect(t, sql), cat).Describe()
		assert.Equal(t, wire.ColumnDoesNotExist([]string{"missing"}), err)
	})
}
