package ir

// Truth reports whether node holds a non-empty value. Null, the empty
// string, zero, false and empty containers are false.
func Truth(node *Node) bool {
	if node == nil {
		return false
	}
	switch node.Type {
	case ObjectType:
		return len(node.Fields) != 0
	case ArrayType:
		return len(node.Values) != 0
	case StringType:
		return node.String != ""
	case NumberType:
		if node.Int64 != nil {
			return *node.Int64 != 0
		}
		if node.Float64 != nil {
			return *node.Float64 != 0.0
		}
		return node.Number != "" && node.Number != "0"
	case BoolType:
		return node.Bool
	default:
		return false
	}
}

// IsEmpty reports whether node carries no entries at all: nil, null, or a
// container without children. Scalars are never empty.
func IsEmpty(node *Node) bool {
	if node == nil {
		return true
	}
	switch node.Type {
	case NullType:
		return true
	case ObjectType:
		return len(node.Fields) == 0
	case ArrayType:
		return len(node.Values) == 0
	default:
		return false
	}
}

// IsContainer reports whether node is an object or an array.
func IsContainer(node *Node) bool {
	return node != nil && (node.Type == ObjectType || node.Type == ArrayType)
}
