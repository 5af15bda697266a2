// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package registry

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// scalar type tags understood by the node
const (
	TypeString = "String"
	TypeBool   = "Bool"
	TypeU8     = "U8"
	TypeU32    = "U32"
	TypeU64    = "U64"
	TypeU256   = "U256"
	TypeU512   = "U512"
)

var scalarBits = map[string]int{
	TypeU8:  8,
	TypeU32: 32,
	TypeU64: 64,
}

// CLType is a type tag for a deploy argument. A tag is either a bare
// scalar, a homogeneous list of a scalar, or a fixed-size byte array.
// Scalars encode to json as the tag string, structured tags as
// {"List": elem} or {"ByteArray": n}.
type CLType struct {
	scalar    string
	listElem  string
	byteCount int
}

func Scalar(name string) CLType {
	return CLType{scalar: name}
}

func List(elem string) CLType {
	return CLType{listElem: elem}
}

func ByteArray(n int) CLType {
	return CLType{byteCount: n}
}

func (t CLType) String() string {
	switch {
	case t.listElem != "":
		return fmt.Sprintf("List(%s)", t.listElem)
	case t.byteCount > 0:
		return fmt.Sprintf("ByteArray(%d)", t.byteCount)
	}
	return t.scalar
}

func (t CLType) MarshalJSON() ([]byte, error) {
	switch {
	case t.listElem != "":
		return json.Marshal(map[string]string{"List": t.listElem})
	case t.byteCount > 0:
		return json.Marshal(map[string]int{"ByteArray": t.byteCount})
	case t.scalar != "":
		return json.Marshal(t.scalar)
	}
	return nil, fmt.Errorf("empty type tag")
}

func (t *CLType) UnmarshalJSON(b []byte) error {
	var scalar string
	if err := json.Unmarshal(b, &scalar); err == nil {
		if !validScalar(scalar) {
			return fmt.Errorf("unsupported type tag %q", scalar)
		}
		t.scalar = scalar
		return nil
	}
	var structured struct {
		List      string `json:"List"`
		ByteArray int    `json:"ByteArray"`
	}
	if err := json.Unmarshal(b, &structured); err != nil {
		return fmt.Errorf("bad type tag: %v", err)
	}
	switch {
	case structured.List != "":
		if !validScalar(structured.List) {
			return fmt.Errorf("unsupported list element tag %q", structured.List)
		}
		t.listElem = structured.List
	case structured.ByteArray > 0:
		t.byteCount = structured.ByteArray
	default:
		return fmt.Errorf("empty structured type tag")
	}
	return nil
}

func validScalar(name string) bool {
	switch name {
	case TypeString, TypeBool, TypeU8, TypeU32, TypeU64, TypeU256, TypeU512:
		return true
	}
	return false
}

// coerce parses a string literal into the json value the node expects
// for the given type tag.
func (t CLType) coerce(raw string) (interface{}, error) {
	switch {
	case t.listElem != "":
		if raw == "" {
			return []interface{}{}, nil
		}
		elem := Scalar(t.listElem)
		parts := strings.Split(raw, ",")
		values := make([]interface{}, len(parts))
		for i, part := range parts {
			v, err := elem.coerce(strings.TrimSpace(part))
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	case t.byteCount > 0:
		b, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("bad byte array literal %q: %v", raw, err)
		}
		if len(b) != t.byteCount {
			return nil, fmt.Errorf("byte array literal has %d bytes, want %d", len(b), t.byteCount)
		}
		return raw, nil
	}
	return coerceScalar(t.scalar, raw)
}

func coerceScalar(tag, raw string) (interface{}, error) {
	switch tag {
	case TypeString:
		return raw, nil
	case TypeBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("bad bool literal %q", raw)
		}
		return v, nil
	case TypeU8, TypeU32, TypeU64:
		v, err := strconv.ParseUint(raw, 10, scalarBits[tag])
		if err != nil {
			return nil, fmt.Errorf("bad %s literal %q", tag, raw)
		}
		return v, nil
	case TypeU256, TypeU512:
		// big unsigned values travel as decimal strings
		v, ok := new(big.Int).SetString(raw, 10)
		if !ok || v.Sign() < 0 {
			return nil, fmt.Errorf("bad %s literal %q", tag, raw)
		}
		return raw, nil
	}
	return nil, fmt.Errorf("unsupported type tag %q", tag)
}
