package ir

import (
	"cmp"
	"encoding"
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ToAny converts node to plain Go values: nil, string, int64, float64, bool,
// []any, map[string]any or, for int keyed objects, map[int64]any.
func ToAny(node *Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ObjectType:
		n := len(node.Fields)
		if node.HasIntKeys() {
			res := make(map[int64]any, n)
			for i := range n {
				res[*node.Fields[i].Int64] = ToAny(node.Values[i])
			}
			return res
		}
		res := make(map[string]any, n)
		for i := range n {
			field := node.Fields[i]
			if field.Type == NullType {
				continue
			}
			res[field.KeyString()] = ToAny(node.Values[i])
		}
		return res
	case ArrayType:
		res := make([]any, len(node.Values))
		for i, elt := range node.Values {
			res[i] = ToAny(elt)
		}
		return res
	case StringType:
		return node.String
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64
		}
		if node.Float64 != nil {
			return *node.Float64
		}
		return json.Number(node.Number)
	case BoolType:
		return node.Bool
	default:
		return nil
	}
}

// AnyFunc lets callers of FromAnyFunc take over the conversion of a value.
// It returns false to fall back to the default conversion.
type AnyFunc func(v any) (*Node, bool)

// FromAny converts a plain Go value to a node. It never fails: values with
// no natural representation are coerced best-effort (structs become objects
// of their exported fields, text marshalers become strings, funcs and
// channels become null).
func FromAny(v any) *Node {
	return FromAnyFunc(v, nil)
}

// FromAnyFunc is FromAny with a hook consulted for every value in the tree,
// including v itself.
func FromAnyFunc(v any, f AnyFunc) *Node {
	if f != nil {
		if res, ok := f(v); ok {
			return res
		}
	}
	switch x := v.(type) {
	case nil:
		return Null()
	case *Node:
		if x == nil {
			return Null()
		}
		return x.Clone()
	case string:
		return FromString(x)
	case bool:
		return FromBool(x)
	case int:
		return FromInt(int64(x))
	case int64:
		return FromInt(x)
	case int32:
		return FromInt(int64(x))
	case uint64:
		return FromInt(int64(x))
	case float64:
		return FromFloat(x)
	case float32:
		return FromFloat(float64(x))
	case json.Number:
		return FromNumber(string(x))
	case []byte:
		return FromString(string(x))
	case []any:
		res := make([]*Node, len(x))
		for i := range x {
			res[i] = FromAnyFunc(x[i], f)
		}
		return FromSlice(res)
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		kvs := make([]KeyVal, len(keys))
		for i, k := range keys {
			kvs[i] = KeyVal{Key: FromString(k), Val: FromAnyFunc(x[k], f)}
		}
		return FromKeyVals(kvs)
	case encoding.TextMarshaler:
		if rv := reflect.ValueOf(x); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return Null()
		}
		text, err := x.MarshalText()
		if err != nil {
			return Null()
		}
		return FromString(string(text))
	}
	return fromReflect(reflect.ValueOf(v), f)
}

func fromReflect(val reflect.Value, f AnyFunc) *Node {
	if !val.IsValid() {
		return Null()
	}
	switch val.Kind() {
	case reflect.Pointer, reflect.Interface:
		if val.IsNil() {
			return Null()
		}
		return FromAnyFunc(val.Elem().Interface(), f)
	case reflect.String:
		return FromString(val.String())
	case reflect.Bool:
		return FromBool(val.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		// IR numbers are int64; very large uint64 values wrap.
		return FromInt(int64(val.Uint()))
	case reflect.Float32, reflect.Float64:
		return FromFloat(val.Float())
	case reflect.Slice, reflect.Array:
		if val.Kind() == reflect.Slice && val.IsNil() {
			return FromSlice(nil)
		}
		res := make([]*Node, val.Len())
		for i := range res {
			res[i] = FromAnyFunc(val.Index(i).Interface(), f)
		}
		return FromSlice(res)
	case reflect.Map:
		return fromReflectMap(val, f)
	case reflect.Struct:
		return fromReflectStruct(val, f)
	default:
		return Null()
	}
}

func fromReflectMap(val reflect.Value, f AnyFunc) *Node {
	type entry struct {
		key *Node
		val reflect.Value
	}
	entries := make([]entry, 0, val.Len())
	intKeys := true
	iter := val.MapRange()
	for iter.Next() {
		k := iter.Key()
		for k.Kind() == reflect.Interface && !k.IsNil() {
			k = k.Elem()
		}
		var key *Node
		switch k.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			key = FromInt(k.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			key = FromInt(int64(k.Uint()))
		case reflect.String:
			key = FromString(k.String())
			intKeys = false
		default:
			key = FromString(fmt.Sprint(k.Interface()))
			intKeys = false
		}
		entries = append(entries, entry{key: key, val: iter.Value()})
	}
	if !intKeys {
		for i := range entries {
			if entries[i].key.Type == NumberType {
				entries[i].key = FromString(entries[i].key.KeyString())
			}
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if intKeys {
			return cmp.Compare(*a.key.Int64, *b.key.Int64)
		}
		return strings.Compare(a.key.String, b.key.String)
	})
	kvs := make([]KeyVal, len(entries))
	for i := range entries {
		kvs[i] = KeyVal{Key: entries[i].key, Val: FromAnyFunc(entries[i].val.Interface(), f)}
	}
	return FromKeyVals(kvs)
}

// fromReflectStruct converts a struct to an object of its exported fields.
// Embedded structs are flattened, json tags rename or skip fields.
func fromReflectStruct(val reflect.Value, f AnyFunc) *Node {
	typ := val.Type()
	kvs := make([]KeyVal, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldVal := val.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded := fromReflectStruct(fieldVal, f)
			for j := range embedded.Fields {
				kvs = append(kvs, KeyVal{Key: embedded.Fields[j], Val: embedded.Values[j]})
			}
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		kvs = append(kvs, KeyVal{Key: FromString(name), Val: FromAnyFunc(fieldVal.Interface(), f)})
	}
	return FromKeyVals(kvs)
}

// ParseKey converts a string key to an int key when it is a canonical
// decimal integer.
func ParseKey(s string) (int64, bool) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	if strconv.FormatInt(i, 10) != s {
		return 0, false
	}
	return i, true
}
