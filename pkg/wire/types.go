// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/jakob-ledermann/database/pkg/sqltype"
)

// Format selects how parameter and result values are encoded on the wire.
type Format int16

const (
	FormatText   Format = 0
	FormatBinary Format = 1
)

func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "text"
}

// Type is a protocol-level column type, identified by its PostgreSQL OID.
type Type uint32

const (
	TypeBool     Type = 16
	TypeBigInt   Type = 20
	TypeSmallInt Type = 21
	TypeInteger  Type = 23
	TypeChar     Type = 1042
	TypeVarChar  Type = 1043
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeBigInt:
		return "int8"
	case TypeSmallInt:
		return "int2"
	case TypeInteger:
		return "int4"
	case TypeChar:
		return "bpchar"
	case TypeVarChar:
		return "varchar"
	default:
		return fmt.Sprintf("oid(%d)", uint32(t))
	}
}

// TypeOf maps an engine column type onto its protocol type.
func TypeOf(t sqltype.Type) Type {
	switch t.Family {
	case sqltype.FamilySmallInt:
		return TypeSmallInt
	case sqltype.FamilyInteger:
		return TypeInteger
	case sqltype.FamilyBigInt:
		return TypeBigInt
	case sqltype.FamilyChar:
		return TypeChar
	case sqltype.FamilyVarChar:
		return TypeVarChar
	default:
		return TypeBool
	}
}

// Decode interprets the raw bytes of a bound parameter according to the
// declared type and the negotiated format.
func (t Type) Decode(f Format, raw []byte) (Value, error) {
	if f == FormatBinary {
		return t.decodeBinary(raw)
	}
	return t.decodeText(raw)
}

func (t Type) decodeText(raw []byte) (Value, error) {
	s := string(raw)
	switch t {
	case TypeSmallInt:
		n, err := strconv.ParseInt(s, 10, 16)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a valid smallint", s)
		}
		return IntValue(n), nil
	case TypeInteger:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a valid integer", s)
		}
		return IntValue(n), nil
	case TypeBigInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%q is not a valid bigint", s)
		}
		return IntValue(n), nil
	case TypeBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "t", "true", "y", "yes", "on", "1":
			return BoolValue(true), nil
		case "f", "false", "n", "no", "off", "0":
			return BoolValue(false), nil
		default:
			return Value{}, fmt.Errorf("%q is not a valid bool", s)
		}
	case TypeChar, TypeVarChar:
		return TextValue(s), nil
	default:
		return Value{}, fmt.Errorf("decoding %s values is not supported", t)
	}
}

func (t Type) decodeBinary(raw []byte) (Value, error) {
	switch t {
	case TypeSmallInt:
		if len(raw) != 2 {
			return Value{}, fmt.Errorf("smallint requires 2 bytes, got %d", len(raw))
		}
		return IntValue(int64(int16(binary.BigEndian.Uint16(raw)))), nil
	case TypeInteger:
		if len(raw) != 4 {
			return Value{}, fmt.Errorf("integer requires 4 bytes, got %d", len(raw))
		}
		return IntValue(int64(int32(binary.BigEndian.Uint32(raw)))), nil
	case TypeBigInt:
		if len(raw) != 8 {
			return Value{}, fmt.Errorf("bigint requires 8 bytes, got %d", len(raw))
		}
		return IntValue(int64(binary.BigEndian.Uint64(raw))), nil
	case TypeBool:
		if len(raw) != 1 {
			return Value{}, fmt.Errorf("bool requires 1 byte, got %d", len(raw))
		}
		return BoolValue(raw[0] != 0), nil
	case TypeChar, TypeVarChar:
		return TextValue(string(raw)), nil
	default:
		return Value{}, fmt.Errorf("decoding %s values is not supported", t)
	}
}
