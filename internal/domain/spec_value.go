package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// SpecKind names the concrete type held by a SpecValue.
type SpecKind int

const (
	SpecString SpecKind = iota
	SpecNumber
	SpecBool
)

// SpecValue holds a single hardware specification value, which is a string,
// a number, or a boolean. Objects, arrays, and null are rejected on decode.
type SpecValue struct {
	kind SpecKind
	str  string
	num  float64
	b    bool
}

// StringSpec wraps a string specification value.
func StringSpec(s string) SpecValue {
	return SpecValue{kind: SpecString, str: s}
}

// NumberSpec wraps a numeric specification value.
func NumberSpec(n float64) SpecValue {
	return SpecValue{kind: SpecNumber, num: n}
}

// BoolSpec wraps a boolean specification value.
func BoolSpec(b bool) SpecValue {
	return SpecValue{kind: SpecBool, b: b}
}

// Kind reports which variant the value holds.
func (v SpecValue) Kind() SpecKind { return v.kind }

// String returns the string value; the second result is false when the value
// holds a different kind.
func (v SpecValue) String() (string, bool) { return v.str, v.kind == SpecString }

// Number returns the numeric value; the second result is false when the value
// holds a different kind.
func (v SpecValue) Number() (float64, bool) { return v.num, v.kind == SpecNumber }

// Bool returns the boolean value; the second result is false when the value
// holds a different kind.
func (v SpecValue) Bool() (bool, bool) { return v.b, v.kind == SpecBool }

func (v SpecValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case SpecString:
		return json.Marshal(v.str)
	case SpecNumber:
		return json.Marshal(v.num)
	case SpecBool:
		return json.Marshal(v.b)
	default:
		return nil, fmt.Errorf("unknown spec value kind %d", v.kind)
	}
}

func (v *SpecValue) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty spec value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringSpec(s)
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*v = BoolSpec(b)
		return nil
	case '{', '[', 'n':
		return fmt.Errorf("spec value must be a string, number, or boolean, got %s", data)
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("spec value must be a string, number, or boolean: %w", err)
		}
		*v = NumberSpec(n)
		return nil
	}
}
