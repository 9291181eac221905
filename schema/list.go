package schema

import (
	"github.com/signadot/normal"
)

// List is an instance of a collection type.
type List struct {
	typ   *Type
	keys  []normal.Key
	items map[normal.Key]any
}

func NewList(t *Type) *List {
	return &List{typ: t, items: map[normal.Key]any{}}
}

func (l *List) Type() *Type {
	return l.typ
}

func (l *List) Kind() normal.Kind {
	return normal.KindCollection
}

func (l *List) ItemType() normal.ItemType {
	if l.typ.item == nil {
		return nil
	}
	return l.typ.item
}

func (l *List) Keys() []normal.Key {
	res := make([]normal.Key, len(l.keys))
	copy(res, l.keys)
	return res
}

func (l *List) Len() int {
	return len(l.keys)
}

func (l *List) Item(k normal.Key) (any, bool) {
	v, ok := l.items[k]
	return v, ok
}

func (l *List) SetItem(k normal.Key, v any) error {
	if _, ok := l.items[k]; !ok {
		l.keys = append(l.keys, k)
	}
	l.items[k] = v
	return nil
}

// Append sets v at the int key following the list's length.
func (l *List) Append(v any) {
	l.SetItem(normal.IntKey(int64(len(l.keys))), v)
}
