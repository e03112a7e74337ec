// SPDX-License-Identifier: Apache-2.0

package sqltype_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakob-ledermann/database/pkg/sqltype"
)

func TestConstructors(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sqltype.Type{Family: sqltype.FamilySmallInt, Seed: math.MinInt16}, sqltype.SmallInt(math.MinInt16))
	assert.Equal(t, sqltype.Type{Family: sqltype.FamilyInteger, Seed: 1}, sqltype.Integer(1))
	assert.Equal(t, sqltype.Type{Family: sqltype.FamilyBigInt, Seed: math.MinInt64}, sqltype.BigInt(math.MinInt64))
	assert.Equal(t, sqltype.Type{Family: sqltype.FamilyChar, Len: 10}, sqltype.Char(10))
	assert.Equal(t, sqltype.Type{Family: sqltype.FamilyVarChar, Len: 255}, sqltype.VarChar(255))
	assert.Equal(t, sqltype.Type{Family: sqltype.FamilyBool}, sqltype.Bool())
}

func TestString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "smallint", sqltype.SmallInt(0).String())
	assert.Equal(t, "varchar(255)", sqltype.VarChar(255).String())
	assert.Equal(t, "char(10)", sqltype.Char(10).String())
	assert.Equal(t, "bool", sqltype.Bool().String())
}

func TestFamilyMinValue(t *testing.T) {
	t.Parallel()

	assert.EqualValues(t, math.MinInt16, sqltype.FamilySmallInt.MinValue())
	assert.EqualValues(t, math.MinInt32, sqltype.FamilyInteger.MinValue())
	assert.EqualValues(t, math.MinInt64, sqltype.FamilyBigInt.MinValue())
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	for _, typ := range []sqltype.Type{
		sqltype.SmallInt(1),
		sqltype.Integer(math.MinInt32),
		sqltype.BigInt(1),
		sqltype.Char(10),
		sqltype.VarChar(255),
		sqltype.Bool(),
	} {
		data, err := json.Marshal(typ)
		require.NoError(t, err)

		var decoded sqltype.Type
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, typ, decoded)
	}
}

func TestUnmarshalRejectsUnknownFamily(t *testing.T) {
	t.Parallel()

	var decoded sqltype.Type
	err := json.Unmarshal([]byte(`{"family":"decimal"}`), &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal")
}
