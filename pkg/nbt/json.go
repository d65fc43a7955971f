package nbt

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"

	json "github.com/nspcc-dev/go-ordered-json"
)

// MaxJSONDepth is the maximum allowed nesting level of encoded/decoded JSON.
const MaxJSONDepth = DefaultMaxDepth

// ToJSON encodes Tag to plain JSON. The result is lossy (names of the root
// and tag types are not preserved), it's intended for humans and for tools
// not aware of the format.
// It behaves as following:
//
//	Byte, Short, Int, Long, Float, Double -> number
//	String -> string
//	ByteArray, IntArray -> array of numbers
//	List -> array
//	Compound -> object with keys in insertion order
//	End -> null
//
// Infinite and NaN floating point values can't be encoded.
func ToJSON(t Tag) ([]byte, error) {
	v, err := toPlain(t, 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func toPlain(t Tag, depth int) (any, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	switch v := t.(type) {
	case End:
		return nil, nil
	case *Byte:
		return v.value, nil
	case *Short:
		return v.value, nil
	case *Int:
		return v.value, nil
	case *Long:
		return v.value, nil
	case *Float:
		if err := checkFinite(float64(v.value)); err != nil {
			return nil, err
		}
		return v.value, nil
	case *Double:
		if err := checkFinite(v.value); err != nil {
			return nil, err
		}
		return v.value, nil
	case *String:
		return v.value, nil
	case *ByteArray:
		arr := make([]int8, len(v.value))
		for i, b := range v.value {
			arr[i] = int8(b)
		}
		return arr, nil
	case *IntArray:
		return cloneInts(v.value), nil
	case *List:
		arr := make([]any, len(v.elems))
		for i, e := range v.elems {
			ev, err := toPlain(e, depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		return arr, nil
	case *Compound:
		obj := make(json.OrderedObject, 0, len(v.list))
		for _, e := range v.list {
			ev, err := toPlain(e, depth+1)
			if err != nil {
				return nil, err
			}
			obj = append(obj, json.Member{Key: e.Name(), Value: ev})
		}
		return obj, nil
	default:
		return nil, ErrNilTag
	}
}

func checkFinite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidValue, f)
	}
	return nil
}

// ToJSONWithTypes serializes any tag to JSON in a lossless way (except for
// non-finite floats which are rejected). Every tag is an object with "type",
// optional "name" and "value" fields, lists also carry "elemType". Longs are
// decimal strings, byte arrays are base64 strings, lists and compounds are
// arrays of such objects.
func ToJSONWithTypes(t Tag) ([]byte, error) {
	v, err := toTyped(t, 0)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func toTyped(t Tag, depth int) (json.OrderedObject, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	if t == nil {
		return nil, ErrNilTag
	}
	res := json.OrderedObject{{Key: "type", Value: t.Type().String()}}
	if t.Name() != "" {
		res = append(res, json.Member{Key: "name", Value: t.Name()})
	}
	var value any
	switch v := t.(type) {
	case End:
		return res, nil
	case *Long:
		value = strconv.FormatInt(v.value, 10)
	case *ByteArray:
		value = base64.StdEncoding.EncodeToString(v.value)
	case *List:
		res = append(res, json.Member{Key: "elemType", Value: v.typ.String()})
		arr := make([]any, len(v.elems))
		for i, e := range v.elems {
			ev, err := toTyped(e, depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		value = arr
	case *Compound:
		arr := make([]any, len(v.list))
		for i, e := range v.list {
			ev, err := toTyped(e, depth+1)
			if err != nil {
				return nil, err
			}
			arr[i] = ev
		}
		value = arr
	default:
		var err error
		value, err = toPlain(t, depth)
		if err != nil {
			return nil, err
		}
	}
	return append(res, json.Member{Key: "value", Value: value}), nil
}

type rawTag struct {
	Type     string          `json:"type"`
	Name     string          `json:"name,omitempty"`
	ElemType string          `json:"elemType,omitempty"`
	Value    json.RawMessage `json:"value,omitempty"`
}

func mkErrValue(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidValue, err)
}

// FromJSONWithTypes deserializes a tag from typed-json representation
// produced by ToJSONWithTypes.
func FromJSONWithTypes(data []byte) (Tag, error) {
	return fromTyped(data, 0)
}

func fromTyped(data []byte, depth int) (Tag, error) {
	if depth > MaxJSONDepth {
		return nil, ErrTooDeep
	}
	raw := new(rawTag)
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, err
	}
	typ, err := FromString(raw.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, raw.Type)
	}
	if typ != EndT && len(raw.Value) == 0 {
		return nil, mkErrValue(errors.New("missing value"))
	}
	name := raw.Name
	switch typ {
	case EndT:
		return End{}, nil
	case ByteT:
		var v int8
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return nil, mkErrValue(err)
		}
		return NewByte(name, v), nil
	case ShortT:
		var v int16
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return nil, mkErrValue(err)
		}
		return NewShort(name, v), nil
	case IntT:
		var v int32
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return nil, mkErrValue(err)
		}
		return NewInt(name, v), nil
	case LongT:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, mkErrValue(err)
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, mkErrValue(err)
		}
		return NewLong(name, v), nil
	case FloatT:
		var v float32
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return nil, mkErrValue(err)
		}
		return NewFloat(name, v), nil
	case DoubleT:
		var v float64
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return nil, mkErrValue(err)
		}
		return NewDouble(name, v), nil
	case StringT:
		var v string
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return nil, mkErrValue(err)
		}
		return NewString(name, v), nil
	case ByteArrayT:
		var s string
		if err := json.Unmarshal(raw.Value, &s); err != nil {
			return nil, mkErrValue(err)
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, mkErrValue(err)
		}
		return &ByteArray{named{name}, b}, nil
	case IntArrayT:
		var v []int32
		if err := json.Unmarshal(raw.Value, &v); err != nil {
			return nil, mkErrValue(err)
		}
		return &IntArray{named{name}, cloneInts(v)}, nil
	case ListT:
		et, err := FromString(raw.ElemType)
		if err != nil {
			return nil, fmt.Errorf("%w: element type %q", ErrUnknownType, raw.ElemType)
		}
		elems, err := fromTypedArray(raw.Value, depth)
		if err != nil {
			return nil, err
		}
		return NewList(name, et, elems)
	case CompoundT:
		elems, err := fromTypedArray(raw.Value, depth)
		if err != nil {
			return nil, err
		}
		b := NewCompoundBuilder()
		for _, e := range elems {
			b.Put(e.Name(), e)
		}
		return b.Build(name), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, typ)
	}
}

func fromTypedArray(data json.RawMessage, depth int) ([]Tag, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal(data, &arr); err != nil {
		return nil, mkErrValue(err)
	}
	res := make([]Tag, len(arr))
	for i := range arr {
		t, err := fromTyped(arr[i], depth+1)
		if err != nil {
			return nil, err
		}
		res[i] = t
	}
	return res, nil
}
