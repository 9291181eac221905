// Package normal converts between typed object graphs and plain data trees.
//
// A typed node is either an [Entity], a value with a fixed set of named
// properties, or a [Collection], an ordered keyed container of items of a
// single declared [ItemType]. Every typed node declares which of the two it
// is through its Kind method and [Classify] is the one dispatch rule used in
// both directions.
//
// # Usage
//
//	tree := normal.Normalize(order, normal.Context{})
//
//	fresh, err := normal.DenormalizeNew(tree, orderType, normal.Context{})
//
//	// merge a partial tree into an existing node
//	_, err = normal.Denormalize(patch, order, normal.Context{})
//
// Normalize drops entity properties whose value is falsy (see [ir.Truth]) and
// never filters collection items. Denormalize is a merge: properties and
// items absent from the input are left untouched and existing nested typed
// instances are updated in place rather than replaced.
//
// # Shape mismatches
//
// By default a value that does not fit its slot, such as a scalar offered for
// a nested entity, is assigned verbatim. A [Mapper] built with [Strict]
// reports a [*TypeError] instead.
//
// # Related Packages
//
//   - github.com/signadot/normal/ir - plain data trees
//   - github.com/signadot/normal/object - Go structs as entities
//   - github.com/signadot/normal/codec - text and binary formats
package normal
