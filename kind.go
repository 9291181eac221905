package normal

import (
	"fmt"
	"reflect"
)

// Kind tags the shape of a typed node.
type Kind int

const (
	KindUnknown Kind = iota
	KindEntity
	KindCollection
)

func (k Kind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindCollection:
		return "collection"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Typed is implemented by every typed node.
type Typed interface {
	Kind() Kind
}

// Classify returns the shape of node. A node whose declared kind does not
// match the contract it implements, or a nil node, is KindUnknown.
func Classify(node Typed) Kind {
	if isNil(node) {
		return KindUnknown
	}
	switch node.Kind() {
	case KindEntity:
		if _, ok := node.(Entity); ok {
			return KindEntity
		}
	case KindCollection:
		if _, ok := node.(Collection); ok {
			return KindCollection
		}
	}
	return KindUnknown
}

// asTyped returns v as a typed node when it classifies as an entity or a
// collection.
func asTyped(v any) (Typed, bool) {
	t, ok := v.(Typed)
	if !ok || Classify(t) == KindUnknown {
		return nil, false
	}
	return t, true
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// isScalar reports whether v is a Go scalar.
func isScalar(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
