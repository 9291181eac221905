package normal

import (
	"strconv"

	"github.com/signadot/normal/ir"
)

// Key addresses an item of a collection. It is either an int or a string
// and is comparable.
type Key struct {
	str   string
	num   int64
	isInt bool
}

func IntKey(i int64) Key {
	return Key{num: i, isInt: true}
}

func StringKey(s string) Key {
	return Key{str: s}
}

func (k Key) IsInt() bool {
	return k.isInt
}

// Int returns the int value of an int key.
func (k Key) Int() (int64, bool) {
	return k.num, k.isInt
}

func (k Key) String() string {
	if k.isInt {
		return strconv.FormatInt(k.num, 10)
	}
	return k.str
}

// Node returns the key as a field node.
func (k Key) Node() *ir.Node {
	if k.isInt {
		return ir.FromInt(k.num)
	}
	return ir.FromString(k.str)
}

// KeyOf converts a field node to a key.
func KeyOf(field *ir.Node) Key {
	if field == nil {
		return StringKey("")
	}
	if field.Type == ir.NumberType && field.Int64 != nil {
		return IntKey(*field.Int64)
	}
	return StringKey(field.KeyString())
}

func (k Key) path(base string) string {
	if k.isInt {
		return base + "[" + k.String() + "]"
	}
	if base == "" {
		return k.str
	}
	return base + "." + k.str
}
