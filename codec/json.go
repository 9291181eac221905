package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/normal/debug"
	"github.com/signadot/normal/ir"
)

// JSONCodec writes objects in field order. Int keys become strings.
type JSONCodec struct {
	indent string
	colors *Colors
}

type JSONOption func(*JSONCodec)

// JSONIndent pretty prints with one indent per level.
func JSONIndent(indent string) JSONOption {
	return func(c *JSONCodec) { c.indent = indent }
}

// JSONColors colors keys and scalars. Colored output is for terminals and
// does not decode.
func JSONColors(colors *Colors) JSONOption {
	return func(c *JSONCodec) { c.colors = colors }
}

func JSON(opts ...JSONOption) *JSONCodec {
	c := &JSONCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *JSONCodec) Format() string { return JSONFormat.String() }

func (c *JSONCodec) Encode(node *ir.Node) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := c.encode(buf, node, 0); err != nil {
		return nil, err
	}
	if c.indent != "" {
		buf.WriteByte('\n')
	}
	if debug.Codec() {
		debug.Logf("json encode %d bytes\n", buf.Len())
	}
	return buf.Bytes(), nil
}

func (c *JSONCodec) encode(buf *bytes.Buffer, node *ir.Node, depth int) error {
	if node == nil {
		node = ir.Null()
	}
	switch node.Type {
	case ir.ObjectType, ir.ArrayType:
		beg, end := "[", "]"
		if node.Type == ir.ObjectType {
			beg, end = "{", "}"
		}
		buf.WriteString(c.colors.Color(node.Type, SepColor, beg))
		for i, v := range node.Values {
			if i > 0 {
				buf.WriteString(c.colors.Color(node.Type, SepColor, ","))
			}
			c.newline(buf, depth+1)
			if node.Type == ir.ObjectType {
				key := node.Fields[i]
				buf.WriteString(c.colors.Color(key.Type, FieldColor, quote(key.KeyString())))
				buf.WriteString(c.colors.Color(node.Type, SepColor, ":"))
				if c.indent != "" {
					buf.WriteByte(' ')
				}
			}
			if err := c.encode(buf, v, depth+1); err != nil {
				return err
			}
		}
		if len(node.Values) > 0 {
			c.newline(buf, depth)
		}
		buf.WriteString(c.colors.Color(node.Type, SepColor, end))
		return nil
	}
	s, err := jsonScalar(node)
	if err != nil {
		return err
	}
	buf.WriteString(c.colors.Color(node.Type, ValueColor, s))
	return nil
}

func (c *JSONCodec) newline(buf *bytes.Buffer, depth int) {
	if c.indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(c.indent, depth))
}

func jsonScalar(node *ir.Node) (string, error) {
	switch node.Type {
	case ir.NullType:
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(node.Bool), nil
	case ir.StringType:
		return quote(node.String), nil
	case ir.NumberType:
		switch {
		case node.Int64 != nil:
			return strconv.FormatInt(*node.Int64, 10), nil
		case node.Float64 != nil:
			return formatFloat(*node.Float64)
		case json.Valid([]byte(node.Number)):
			return node.Number, nil
		}
		return "", fmt.Errorf("%w: invalid number %q", ErrEncoding, node.Number)
	}
	return "", fmt.Errorf("%w: unsupported node type %s", ErrEncoding, node.Type)
}

// formatFloat keeps a fraction on integral values so that they decode as
// floats again.
func formatFloat(f float64) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("%w: %v has no JSON form", ErrEncoding, f)
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s, nil
}

func quote(s string) string {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Decode reads a single JSON value. Blank input decodes to null. A repeated
// object key replaces the earlier value in place.
func (c *JSONCodec) Decode(data []byte) (*ir.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return ir.Null(), nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	node, err := decodeJSON(dec, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON value", ErrDecoding)
	}
	if debug.Codec() {
		debug.Logf("json decode %v\n", node)
	}
	return node, nil
}

func decodeJSON(dec *json.Decoder, depth int) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch x := tok.(type) {
	case json.Delim:
		if depth >= MaxDepth {
			return nil, errTooDeep
		}
		switch x {
		case '{':
			var kvs []ir.KeyVal
			index := map[string]int{}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected key %v", kt)
				}
				val, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				if i, dup := index[key]; dup {
					kvs[i].Val = val
					continue
				}
				index[key] = len(kvs)
				kvs = append(kvs, ir.KeyVal{Key: ir.FromString(key), Val: val})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ir.FromKeyVals(kvs), nil
		case '[':
			var vals []*ir.Node
			for dec.More() {
				v, err := decodeJSON(dec, depth+1)
				if err != nil {
					return nil, err
				}
				vals = append(vals, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return ir.FromSlice(vals), nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", x)
	case string:
		return ir.FromString(x), nil
	case json.Number:
		return ir.FromNumber(string(x)), nil
	case bool:
		return ir.FromBool(x), nil
	case nil:
		return ir.Null(), nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
