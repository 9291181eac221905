package ir

import (
	"maps"
	"slices"
	"strconv"
)

// IntKeysTag marks an object whose fields are integers rather than strings.
const IntKeysTag = "!sparsearray"

type Node struct {
	Type   Type
	Fields []*Node
	Values []*Node

	Tag string

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	return y
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Tag = y.Tag
	dst.Values = nil
	dst.Fields = nil
	if y.Values != nil {
		dst.Values = make([]*Node, len(y.Values))
		for i, yv := range y.Values {
			dst.Values[i] = yv.Clone()
		}
	}
	if y.Fields != nil {
		dst.Fields = make([]*Node, len(y.Fields))
		for i, yf := range y.Fields {
			dst.Fields[i] = yf.Clone()
		}
	}
	dst.String = y.String
	dst.Number = y.Number
	dst.Float64 = nil
	dst.Int64 = nil
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

// FromNumber builds a number node from its textual form, preferring an
// int64 and then a float64 representation.
func FromNumber(s string) *Node {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return FromInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FromFloat(f)
	}
	return &Node{Type: NumberType, Number: s}
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		field := node.Fields[i]
		if field.Type == NullType {
			continue
		}
		res[field.KeyString()] = node.Values[i]
	}
	return res
}

func FromMap(yMap map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: FromString(key), Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

func FromIntKeysMap(yMap map[int64]*Node) *Node {
	keys := slices.Sorted(maps.Keys(yMap))
	kvs := make([]KeyVal, len(keys))
	for i, key := range keys {
		kvs[i] = KeyVal{Key: FromInt(key), Val: yMap[key]}
	}
	return FromKeyVals(kvs)
}

type KeyVal struct {
	Key *Node
	Val *Node
}

// FromKeyVals builds an object preserving the order of kvs. When every key
// is a number the object is tagged with IntKeysTag.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	intKeys := len(kvs) != 0
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = Null()
		}
		if kv.Val == nil {
			kv.Val = Null()
		}
		if kv.Key.Type != NumberType {
			intKeys = false
		}
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	if intKeys {
		res.Tag = IntKeysTag
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type:   ArrayType,
		Values: make([]*Node, len(ySlice)),
	}
	for i, y := range ySlice {
		if y == nil {
			y = Null()
		}
		res.Values[i] = y
	}
	return res
}

// KeyString renders a field node as an object key.
func (y *Node) KeyString() string {
	switch y.Type {
	case NumberType:
		if y.Int64 != nil {
			return strconv.FormatInt(*y.Int64, 10)
		}
		if y.Float64 != nil {
			return strconv.FormatFloat(*y.Float64, 'g', -1, 64)
		}
		return y.Number
	case BoolType:
		return strconv.FormatBool(y.Bool)
	case NullType:
		return ""
	default:
		return y.String
	}
}

// HasIntKeys reports whether y is an object whose fields are all integers.
func (y *Node) HasIntKeys() bool {
	if y.Type != ObjectType || len(y.Fields) == 0 {
		return false
	}
	for _, f := range y.Fields {
		if f.Type != NumberType || f.Int64 == nil {
			return false
		}
	}
	return true
}

func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i].KeyString() == field {
			return y.Values[i]
		}
	}
	return nil
}

// Len returns the number of entries of a container node, 0 for leaves.
func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	return len(y.Values)
}
