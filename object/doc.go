// Package object adapts Go values to the typed node contracts of package
// normal.
//
// [Of] wraps a pointer to a struct as a [normal.Entity]. Property names come
// from the `normal` struct tag, then the `json` tag, then the field name;
// `normal:"-"` hides a field. Struct and pointer to struct fields are nested
// entities, fields implementing [normal.Typed] are typed slots and all
// other fields are plain values decoded with mapstructure.
//
//	type Line struct {
//	    SKU string `json:"sku"`
//	    Qty int    `json:"qty"`
//	}
//
//	type Order struct {
//	    ID    string                  `json:"id"`
//	    Lines object.Collection[*Line] `json:"lines"`
//	}
//
//	var o Order
//	_, err := normal.Denormalize(tree, object.Of(&o), normal.Context{})
//
// [Collection] is an ordered, generic collection of items of one type.
package object
