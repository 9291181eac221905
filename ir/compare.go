package ir

import (
	"cmp"
	"strings"
)

// typeOrder ranks node types: null, bool, number, string, array, object.
var typeOrder = [...]int{
	NullType:   0,
	BoolType:   1,
	NumberType: 2,
	StringType: 3,
	ArrayType:  4,
	ObjectType: 5,
}

func typeRank(t Type) int {
	if t < 0 || int(t) >= len(typeOrder) {
		return len(typeOrder)
	}
	return typeOrder[t]
}

// Compare orders nodes by type first, then by content. Numbers order int64
// before float64 before raw text forms, objects compare entry by entry with
// the key before the value. Tags are ignored. nil sorts before any node.
func Compare(a, b *Node) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Compare(typeRank(a.Type), typeRank(b.Type)); c != 0 {
		return c
	}
	switch a.Type {
	case BoolType:
		return cmp.Compare(boolRank(a.Bool), boolRank(b.Bool))
	case NumberType:
		return compareNumber(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case ArrayType:
		return compareEntries(a.Values, b.Values, nil, nil)
	case ObjectType:
		return compareEntries(a.Values, b.Values, a.Fields, b.Fields)
	}
	return 0
}

// Equal reports whether a and b hold the same data in the same order.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}

func compareNumber(a, b *Node) int {
	fa, fb := numberForm(a), numberForm(b)
	if fa != fb {
		return cmp.Compare(fa, fb)
	}
	switch fa {
	case 0:
		return cmp.Compare(*a.Int64, *b.Int64)
	case 1:
		return cmp.Compare(*a.Float64, *b.Float64)
	}
	return strings.Compare(a.Number, b.Number)
}

// numberForm is 0 for int64, 1 for float64 and 2 for raw text numbers.
func numberForm(n *Node) int {
	switch {
	case n.Int64 != nil:
		return 0
	case n.Float64 != nil:
		return 1
	}
	return 2
}

// compareEntries compares two containers entry by entry. keysA and keysB are
// nil for arrays.
func compareEntries(valsA, valsB, keysA, keysB []*Node) int {
	n := min(len(valsA), len(valsB))
	for i := range n {
		if keysA != nil || keysB != nil {
			if c := Compare(entryAt(keysA, i), entryAt(keysB, i)); c != 0 {
				return c
			}
		}
		if c := Compare(valsA[i], valsB[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(valsA), len(valsB))
}

func entryAt(nodes []*Node, i int) *Node {
	if i < len(nodes) {
		return nodes[i]
	}
	return nil
}
