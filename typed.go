package normal

import "github.com/signadot/normal/ir"

// Field declares a property of an entity. Type is non-nil when the property
// holds a nested typed node, and is used to construct one when the property
// is empty.
type Field struct {
	Name string
	Type ItemType
}

// Entity is a typed node with named properties.
type Entity interface {
	Typed
	// Fields lists the properties in iteration order.
	Fields() []Field
	Property(name string) (any, bool)
	SetProperty(name string, v any) error
}

// Collection is a typed node holding items of a single type under ordered
// keys.
type Collection interface {
	Typed
	ItemType() ItemType
	Keys() []Key
	Item(k Key) (any, bool)
	SetItem(k Key, v any) error
}

// ItemType describes and constructs typed nodes.
type ItemType interface {
	Name() string
	// New returns a default initialized node.
	New() Typed
}

// PropertyNormalizer lets an entity take over the normalization of some of
// its properties. NormalizeProperty returns false to use the default.
type PropertyNormalizer interface {
	NormalizeProperty(name string, v any, ctx Context) (*ir.Node, bool)
}

// PropertyDenormalizer lets an entity take over the denormalization of some
// of its properties. DenormalizeProperty returns false to use the default.
type PropertyDenormalizer interface {
	DenormalizeProperty(name string, data *ir.Node, ctx Context) (bool, error)
}
