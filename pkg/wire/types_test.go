// SPDX-License-Identifier: Apache-2.0

package wire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob-ledermann/database/pkg/sqltype"
	"github.com/jakob-ledermann/database/pkg/wire"
)

func TestTypeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sql  sqltype.Type
		want wire.Type
	}{
		{sqltype.SmallInt(0), wire.TypeSmallInt},
		{sqltype.Integer(0), wire.TypeInteger},
		{sqltype.BigInt(0), wire.TypeBigInt},
		{sqltype.Char(10), wire.TypeChar},
		{sqltype.VarChar(255), wire.TypeVarChar},
		{sqltype.Bool(), wire.TypeBool},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, wire.TypeOf(tc.sql))
	}
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  wire.Type
		raw  string
		want wire.Value
	}{
		{name: "smallint", typ: wire.TypeSmallInt, raw: "42", want: wire.IntValue(42)},
		{name: "integer", typ: wire.TypeInteger, raw: "-7", want: wire.IntValue(-7)},
		{name: "bigint", typ: wire.TypeBigInt, raw: "9000000000", want: wire.IntValue(9000000000)},
		{name: "bool true", typ: wire.TypeBool, raw: "t", want: wire.BoolValue(true)},
		{name: "bool false", typ: wire.TypeBool, raw: "false", want: wire.BoolValue(false)},
		{name: "varchar", typ: wire.TypeVarChar, raw: "hello", want: wire.TextValue("hello")},
		{name: "char", typ: wire.TypeChar, raw: "x", want: wire.TextValue("x")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			value, err := tc.typ.Decode(wire.FormatText, []byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, value)
		})
	}
}

func TestDecodeTextErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  wire.Type
		raw  string
	}{
		{name: "not a number", typ: wire.TypeInteger, raw: "abc"},
		{name: "smallint overflow", typ: wire.TypeSmallInt, raw: "70000"},
		{name: "not a bool", typ: wire.TypeBool, raw: "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := tc.typ.Decode(wire.FormatText, []byte(tc.raw))
			assert.Error(t, err)
		})
	}
}

func TestDecodeBinary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  wire.Type
		raw  []byte
		want wire.Value
	}{
		{name: "smallint", typ: wire.TypeSmallInt, raw: []byte{0x00, 0x2a}, want: wire.IntValue(42)},
		{name: "smallint negative", typ: wire.TypeSmallInt, raw: []byte{0xff, 0xff}, want: wire.IntValue(-1)},
		{name: "integer", typ: wire.TypeInteger, raw: []byte{0x00, 0x00, 0x00, 0x01}, want: wire.IntValue(1)},
		{name: "bigint", typ: wire.TypeBigInt, raw: []byte{0, 0, 0, 0, 0, 0, 0, 0x2a}, want: wire.IntValue(42)},
		{name: "bool", typ: wire.TypeBool, raw: []byte{0x01}, want: wire.BoolValue(true)},
		{name: "varchar", typ: wire.TypeVarChar, raw: []byte("abc"), want: wire.TextValue("abc")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			value, err := tc.typ.Decode(wire.FormatBinary, tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, value)
		})
	}
}

func TestDecodeBinaryLengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := wire.TypeInteger.Decode(wire.FormatBinary, []byte{0x01})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "4 bytes")
}

func TestValueString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", wire.NullValue().String())
	assert.Equal(t, "t", wire.BoolValue(true).String())
	assert.Equal(t, "f", wire.BoolValue(false).String())
	assert.Equal(t, "-42", wire.IntValue(-42).String())
	assert.Equal(t, "x", wire.TextValue("x").String())
}
