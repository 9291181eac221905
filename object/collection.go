package object

import (
	"fmt"
	"iter"
	"reflect"

	"github.com/signadot/normal"
)

// Collection is an ordered collection of T keyed by normal.Key. The zero
// value is an empty collection whose items are built with new(T) style
// construction: pointer types get a fresh pointee.
//
// Struct items are exposed to the mapper as *Struct values, so T is
// typically a pointer to a struct or a type implementing normal.Typed.
type Collection[T any] struct {
	name    string
	newItem func() T
	keys    []normal.Key
	items   map[normal.Key]T
}

var _ normal.Collection = (*Collection[int])(nil)

// NewCollection returns an empty collection. newItem may be nil.
func NewCollection[T any](name string, newItem func() T) *Collection[T] {
	return &Collection[T]{name: name, newItem: newItem}
}

func (c *Collection[T]) Kind() normal.Kind {
	return normal.KindCollection
}

func (c *Collection[T]) ItemType() normal.ItemType {
	return itemType[T]{c: c}
}

func (c *Collection[T]) Keys() []normal.Key {
	res := make([]normal.Key, len(c.keys))
	copy(res, c.keys)
	return res
}

func (c *Collection[T]) Len() int {
	return len(c.keys)
}

// Item returns the item at k in the form the mapper works with: typed
// nodes as is, structs wrapped with Of and other values unchanged.
func (c *Collection[T]) Item(k normal.Key) (any, bool) {
	v, ok := c.items[k]
	if !ok {
		return nil, false
	}
	return expose(v), true
}

func (c *Collection[T]) SetItem(k normal.Key, v any) error {
	if s, ok := v.(*Struct); ok {
		v = s.Interface()
	}
	item, err := convert[T](v)
	if err != nil {
		return fmt.Errorf("item %s: %w", k, err)
	}
	c.Set(k, item)
	return nil
}

func (c *Collection[T]) Get(k normal.Key) (T, bool) {
	v, ok := c.items[k]
	return v, ok
}

func (c *Collection[T]) Set(k normal.Key, v T) {
	if c.items == nil {
		c.items = map[normal.Key]T{}
	}
	if _, ok := c.items[k]; !ok {
		c.keys = append(c.keys, k)
	}
	c.items[k] = v
}

// Append sets v at the int key following the collection's length.
func (c *Collection[T]) Append(vs ...T) {
	for _, v := range vs {
		c.Set(normal.IntKey(int64(len(c.keys))), v)
	}
}

// All iterates the items in key order.
func (c *Collection[T]) All() iter.Seq2[normal.Key, T] {
	return func(yield func(normal.Key, T) bool) {
		for _, k := range c.keys {
			if !yield(k, c.items[k]) {
				return
			}
		}
	}
}

func (c *Collection[T]) construct() T {
	if c.newItem != nil {
		return c.newItem()
	}
	var zero T
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Pointer {
		return reflect.New(rt.Elem()).Interface().(T)
	}
	return zero
}

type itemType[T any] struct {
	c *Collection[T]
}

func (t itemType[T]) Name() string {
	if t.c.name != "" {
		return t.c.name
	}
	return reflect.TypeFor[T]().String()
}

// New returns a fresh item as a typed node, or nil when T has no typed
// form.
func (t itemType[T]) New() normal.Typed {
	typed, _ := expose(t.c.construct()).(normal.Typed)
	return typed
}

func expose(v any) any {
	if t, ok := v.(normal.Typed); ok {
		return t
	}
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return v
	case rv.Kind() == reflect.Pointer && !rv.IsNil() && isNestedStruct(rv.Type().Elem()):
		return wrap(rv)
	case isNestedStruct(rv.Type()):
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		return wrap(ptr)
	}
	return v
}

// convert turns a value produced by the mapper into a T.
func convert[T any](v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	if t, ok := v.(T); ok {
		return t, nil
	}
	rv := reflect.ValueOf(v)
	rt := reflect.TypeFor[T]()
	if rv.Kind() == reflect.Pointer && rv.Type().Elem() == rt {
		return rv.Elem().Interface().(T), nil
	}
	var res T
	if err := decode(v, &res); err != nil {
		return zero, err
	}
	return res, nil
}
