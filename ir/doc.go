// Package ir provides the plain data tree exchanged between typed object
// graphs and wire encodings.
//
// # Overview
//
// A Node is a recursive tagged union. Atomic nodes carry a null, boolean,
// number or string. Composite nodes are either arrays (ordered Values) or
// objects (parallel Fields and Values). Objects keep insertion order and their
// keys are either all strings or all integers; integer keyed objects carry the
// IntKeysTag tag.
//
// The tree contains no typed values: it is what JSON, YAML or CBOR decoders
// produce and what their encoders consume.
//
// # Creating Nodes
//
//	obj := ir.FromKeyVals([]ir.KeyVal{
//	    {Key: ir.FromString("name"), Val: ir.FromString("Ann")},
//	    {Key: ir.FromString("age"), Val: ir.FromInt(30)},
//	})
//	arr := ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromInt(2)})
//
// # Plain Go values
//
// ToAny and FromAny convert between nodes and the values produced by
// encoding/json style decoders (map[string]any, []any, scalars).
package ir
