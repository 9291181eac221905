// Package schema defines typed node types at runtime.
//
// A [Type] is either an entity type with declared fields or a collection
// type with an item type. Types are registered in a [Registry], usually
// from YAML definitions:
//
//	types:
//	  - name: Order
//	    kind: entity
//	    fields:
//	      - name: id
//	      - name: lines
//	        type: Lines
//	  - name: Lines
//	    kind: collection
//	    item: Line
//	  - name: Line
//	    kind: entity
//	    closed: true
//	    fields:
//	      - name: sku
//	      - name: qty
//
// Field and item references are resolved when the definitions are loaded.
// Instances are [*Record] and [*List] values.
package schema
