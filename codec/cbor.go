package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
	"github.com/signadot/normal/debug"
	"github.com/signadot/normal/ir"
)

const (
	cborArray = 4
	cborMap   = 5
)

// CBORCodec writes definite length arrays and maps in node order, so key
// order and int keys survive a round trip. Numbers with neither an int64
// nor a float64 form are written as text.
type CBORCodec struct{}

func CBOR() *CBORCodec {
	return &CBORCodec{}
}

func (c *CBORCodec) Format() string { return CBORFormat.String() }

func (c *CBORCodec) Encode(node *ir.Node) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := encodeCBOR(buf, node); err != nil {
		return nil, err
	}
	if debug.Codec() {
		debug.Logf("cbor encode %d bytes\n", buf.Len())
	}
	return buf.Bytes(), nil
}

func encodeCBOR(buf *bytes.Buffer, node *ir.Node) error {
	if node == nil {
		node = ir.Null()
	}
	switch node.Type {
	case ir.ArrayType:
		writeHead(buf, cborArray, uint64(len(node.Values)))
		for _, v := range node.Values {
			if err := encodeCBOR(buf, v); err != nil {
				return err
			}
		}
		return nil
	case ir.ObjectType:
		writeHead(buf, cborMap, uint64(len(node.Values)))
		for i, v := range node.Values {
			f := node.Fields[i]
			var key any = f.KeyString()
			if f.Type == ir.NumberType && f.Int64 != nil {
				key = *f.Int64
			}
			if err := marshalCBOR(buf, key); err != nil {
				return err
			}
			if err := encodeCBOR(buf, v); err != nil {
				return err
			}
		}
		return nil
	case ir.NumberType:
		if node.Int64 == nil && node.Float64 == nil {
			return marshalCBOR(buf, node.Number)
		}
	}
	return marshalCBOR(buf, ir.ToAny(node))
}

func marshalCBOR(buf *bytes.Buffer, v any) error {
	d, err := cbor.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	buf.Write(d)
	return nil
}

// writeHead writes the initial bytes of a data item of the given major type
// and length.
func writeHead(buf *bytes.Buffer, major byte, n uint64) {
	m := major << 5
	switch {
	case n < 24:
		buf.WriteByte(m | byte(n))
	case n <= math.MaxUint8:
		buf.WriteByte(m | 24)
		buf.WriteByte(byte(n))
	case n <= math.MaxUint16:
		buf.WriteByte(m | 25)
		buf.Write(binary.BigEndian.AppendUint16(nil, uint16(n)))
	case n <= math.MaxUint32:
		buf.WriteByte(m | 26)
		buf.Write(binary.BigEndian.AppendUint32(nil, uint32(n)))
	default:
		buf.WriteByte(m | 27)
		buf.Write(binary.BigEndian.AppendUint64(nil, n))
	}
}

// readHead reads the length of an array or map head.
func readHead(data []byte) (n uint64, rest []byte, err error) {
	info := data[0] & 0x1f
	data = data[1:]
	size := 0
	switch {
	case info < 24:
		return uint64(info), data, nil
	case info == 24:
		size = 1
	case info == 25:
		size = 2
	case info == 26:
		size = 4
	case info == 27:
		size = 8
	case info == 31:
		return 0, nil, fmt.Errorf("indefinite length items are not supported")
	default:
		return 0, nil, fmt.Errorf("malformed head %#x", info)
	}
	if len(data) < size {
		return 0, nil, fmt.Errorf("unexpected end of data")
	}
	switch size {
	case 1:
		n = uint64(data[0])
	case 2:
		n = uint64(binary.BigEndian.Uint16(data))
	case 4:
		n = uint64(binary.BigEndian.Uint32(data))
	case 8:
		n = binary.BigEndian.Uint64(data)
	}
	return n, data[size:], nil
}

// Decode reads a single CBOR data item. Arrays and maps must have definite
// lengths.
func (c *CBORCodec) Decode(data []byte) (*ir.Node, error) {
	if len(data) == 0 {
		return ir.Null(), nil
	}
	node, rest, err := decodeCBOR(data, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrDecoding, len(rest))
	}
	if debug.Codec() {
		debug.Logf("cbor decode %v\n", node)
	}
	return node, nil
}

func decodeCBOR(data []byte, depth int) (*ir.Node, []byte, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("unexpected end of data")
	}
	major := data[0] >> 5
	if (major == cborArray || major == cborMap) && depth >= MaxDepth {
		return nil, nil, errTooDeep
	}
	switch major {
	case cborArray:
		n, rest, err := readHead(data)
		if err != nil {
			return nil, nil, err
		}
		if n > uint64(len(rest)) {
			return nil, nil, fmt.Errorf("array length %d exceeds data", n)
		}
		vals := make([]*ir.Node, n)
		for i := range vals {
			vals[i], rest, err = decodeCBOR(rest, depth+1)
			if err != nil {
				return nil, nil, err
			}
		}
		return ir.FromSlice(vals), rest, nil
	case cborMap:
		n, rest, err := readHead(data)
		if err != nil {
			return nil, nil, err
		}
		if n > uint64(len(rest))/2 {
			return nil, nil, fmt.Errorf("map length %d exceeds data", n)
		}
		kvs := make([]ir.KeyVal, n)
		for i := range kvs {
			var key, val *ir.Node
			key, rest, err = decodeCBOR(rest, depth+1)
			if err != nil {
				return nil, nil, err
			}
			if ir.IsContainer(key) {
				return nil, nil, fmt.Errorf("unsupported %s map key", key.Type)
			}
			val, rest, err = decodeCBOR(rest, depth+1)
			if err != nil {
				return nil, nil, err
			}
			kvs[i] = ir.KeyVal{Key: key, Val: val}
		}
		return objectNode(kvs), rest, nil
	}
	var v any
	rest, err := cbor.UnmarshalFirst(data, &v)
	if err != nil {
		return nil, nil, err
	}
	switch x := v.(type) {
	case uint64:
		if x > math.MaxInt64 {
			return ir.FromNumber(fmt.Sprint(x)), rest, nil
		}
		return ir.FromInt(int64(x)), rest, nil
	case []byte:
		return ir.FromString(string(x)), rest, nil
	}
	return ir.FromAny(v), rest, nil
}
