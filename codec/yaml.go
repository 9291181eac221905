package codec

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
	"github.com/signadot/normal/debug"
	"github.com/signadot/normal/ir"
)

// YAMLCodec encodes objects as ordered YAML mappings. Int keys become
// strings.
type YAMLCodec struct{}

func YAML() *YAMLCodec {
	return &YAMLCodec{}
}

func (c *YAMLCodec) Format() string { return YAMLFormat.String() }

func (c *YAMLCodec) Encode(node *ir.Node) ([]byte, error) {
	d, err := yaml.Marshal(toYAML(node))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if debug.Codec() {
		debug.Logf("yaml encode %d bytes\n", len(d))
	}
	return d, nil
}

func toYAML(node *ir.Node) any {
	if node == nil {
		return nil
	}
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			res[i] = yaml.MapItem{Key: f.KeyString(), Value: toYAML(node.Values[i])}
		}
		return res
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, v := range node.Values {
			res[i] = toYAML(v)
		}
		return res
	case ir.NumberType:
		if node.Int64 == nil && node.Float64 == nil {
			return rawNumber(node.Number)
		}
	}
	return ir.ToAny(node)
}

// rawNumber is a number with neither an int64 nor a float64 form.
type rawNumber string

func (n rawNumber) MarshalYAML() ([]byte, error) {
	return []byte(n), nil
}

// Decode reads the first YAML document. An empty document decodes to null.
func (c *YAMLCodec) Decode(data []byte) (*ir.Node, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	node := fromYAML(v)
	if debug.Codec() {
		debug.Logf("yaml decode %v\n", node)
	}
	return node, nil
}

func fromYAML(v any) *ir.Node {
	switch x := v.(type) {
	case nil:
		return ir.Null()
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			kvs[i] = ir.KeyVal{Key: fromYAMLKey(item.Key), Val: fromYAML(item.Value)}
		}
		return objectNode(kvs)
	case []any:
		vals := make([]*ir.Node, len(x))
		for i := range x {
			vals[i] = fromYAML(x[i])
		}
		return ir.FromSlice(vals)
	case uint64:
		if x > math.MaxInt64 {
			return ir.FromNumber(fmt.Sprint(x))
		}
		return ir.FromInt(int64(x))
	case json.Number:
		return ir.FromNumber(string(x))
	}
	return ir.FromAny(v)
}

func fromYAMLKey(k any) *ir.Node {
	switch x := k.(type) {
	case string:
		return ir.FromString(x)
	case int:
		return ir.FromInt(int64(x))
	case int64:
		return ir.FromInt(x)
	case uint64:
		if x <= math.MaxInt64 {
			return ir.FromInt(int64(x))
		}
	case nil:
		return ir.FromString("null")
	}
	return ir.FromString(fmt.Sprint(k))
}
