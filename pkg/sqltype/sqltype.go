// SPDX-License-Identifier: Apache-2.0

package sqltype

import (
	"encoding/json"
	"fmt"
	"math"
)

// Family enumerates the column types the engine can store.
type Family string

const (
	FamilySmallInt Family = "smallint"
	FamilyInteger  Family = "integer"
	FamilyBigInt   Family = "bigint"
	FamilyChar     Family = "char"
	FamilyVarChar  Family = "varchar"
	FamilyBool     Family = "bool"
)

// Type is the engine's internal type tag for a column. Integer families
// carry a sequence seed used by the serial pseudo-types; character families
// carry a maximum length.
type Type struct {
	Family Family `json:"family"`

	// Seed is the start value for serial-family columns. Plain integer
	// columns default to the family minimum.
	Seed int64 `json:"seed,omitempty"`

	// Len is the maximum length of a character column.
	Len uint64 `json:"len,omitempty"`
}

// DefaultCharLen is applied when CHAR or VARCHAR is declared without an
// explicit length.
const DefaultCharLen = 255

func SmallInt(seed int16) Type { return Type{Family: FamilySmallInt, Seed: int64(seed)} }

func Integer(seed int32) Type { return Type{Family: FamilyInteger, Seed: int64(seed)} }

func BigInt(seed int64) Type { return Type{Family: FamilyBigInt, Seed: seed} }

func Char(length uint64) Type { return Type{Family: FamilyChar, Len: length} }

func VarChar(length uint64) Type { return Type{Family: FamilyVarChar, Len: length} }

func Bool() Type { return Type{Family: FamilyBool} }

// String renders the type the way it would appear in a column declaration.
func (t Type) String() string {
	switch t.Family {
	case FamilyChar, FamilyVarChar:
		return fmt.Sprintf("%s(%d)", t.Family, t.Len)
	default:
		return string(t.Family)
	}
}

// MinValue returns the smallest value representable by an integer family.
func (f Family) MinValue() int64 {
	switch f {
	case FamilySmallInt:
		return math.MinInt16
	case FamilyInteger:
		return math.MinInt32
	case FamilyBigInt:
		return math.MinInt64
	default:
		return 0
	}
}

func (t *Type) UnmarshalJSON(data []byte) error {
	type alias Type
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	switch Family(a.Family) {
	case FamilySmallInt, FamilyInteger, FamilyBigInt, FamilyChar, FamilyVarChar, FamilyBool:
		*t = Type(a)
		return nil
	default:
		return fmt.Errorf("unknown type family %q", a.Family)
	}
}
