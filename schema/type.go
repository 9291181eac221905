package schema

import (
	"fmt"

	"github.com/signadot/normal"
)

// Type describes an entity or a collection.
type Type struct {
	name   string
	kind   normal.Kind
	fields []normal.Field
	item   *Type
	closed bool
}

var _ normal.ItemType = (*Type)(nil)

// NewEntity returns an entity type. Fields with a non-nil Type are nested.
func NewEntity(name string, fields ...normal.Field) *Type {
	return &Type{name: name, kind: normal.KindEntity, fields: fields}
}

// NewCollection returns a collection type holding items of type item. A nil
// item makes denormalization into its instances fail.
func NewCollection(name string, item *Type) *Type {
	return &Type{name: name, kind: normal.KindCollection, item: item}
}

// Closed makes instances of an entity type reject undeclared properties.
func (t *Type) Closed() *Type {
	t.closed = true
	return t
}

func (t *Type) Name() string {
	return t.name
}

func (t *Type) Kind() normal.Kind {
	return t.kind
}

func (t *Type) Fields() []normal.Field {
	return t.fields
}

// Item returns the item type of a collection type, or nil.
func (t *Type) Item() *Type {
	return t.item
}

func (t *Type) String() string {
	if t.kind == normal.KindCollection && t.item != nil {
		return fmt.Sprintf("%s(%s of %s)", t.name, t.kind, t.item.name)
	}
	return fmt.Sprintf("%s(%s)", t.name, t.kind)
}

// New returns an empty *Record or *List.
func (t *Type) New() normal.Typed {
	switch t.kind {
	case normal.KindCollection:
		return NewList(t)
	default:
		return NewRecord(t)
	}
}

func (t *Type) declares(name string) bool {
	for i := range t.fields {
		if t.fields[i].Name == name {
			return true
		}
	}
	return false
}
