package codec

import "github.com/signadot/normal/ir"

// objectNode builds an object node, turning int keys into strings unless every
// key is an int.
func objectNode(kvs []ir.KeyVal) *ir.Node {
	allInt := true
	for i := range kvs {
		k := kvs[i].Key
		if k == nil || k.Type != ir.NumberType || k.Int64 == nil {
			allInt = false
			break
		}
	}
	if !allInt {
		for i := range kvs {
			if k := kvs[i].Key; k == nil || k.Type != ir.StringType {
				kvs[i].Key = ir.FromString(keyString(k))
			}
		}
	}
	return ir.FromKeyVals(kvs)
}

func keyString(k *ir.Node) string {
	if k == nil {
		return ""
	}
	return k.KeyString()
}
