package codec

import (
	"fmt"

	"github.com/signadot/normal"
)

type options struct {
	mapper *normal.Mapper
	ctx    normal.Context
}

// Option configures the format adapters.
type Option func(*options)

// WithMapper replaces normal.DefaultMapper().
func WithMapper(m *normal.Mapper) Option {
	return func(o *options) { o.mapper = m }
}

// WithContext sets the context passed to the mapper. Its format entry is
// always replaced by the codec's format.
func WithContext(ctx normal.Context) Option {
	return func(o *options) { o.ctx = ctx }
}

func newOptions(c Codec, opts []Option) *options {
	o := &options{mapper: normal.DefaultMapper()}
	for _, opt := range opts {
		opt(o)
	}
	o.ctx = o.ctx.With(normal.CtxFormat, c.Format())
	return o
}

// Marshal normalizes node and encodes the result with c.
func Marshal(c Codec, node normal.Typed, opts ...Option) ([]byte, error) {
	o := newOptions(c, opts)
	return c.Encode(o.mapper.Normalize(node, o.ctx))
}

// Unmarshal decodes data with c and denormalizes the result into node.
func Unmarshal(c Codec, data []byte, node normal.Typed, opts ...Option) (normal.Typed, error) {
	o := newOptions(c, opts)
	tree, err := c.Decode(data)
	if err != nil {
		return node, err
	}
	return o.mapper.Denormalize(tree, node, o.ctx)
}

// UnmarshalNew is Unmarshal into t.New().
func UnmarshalNew(c Codec, data []byte, t normal.ItemType, opts ...Option) (normal.Typed, error) {
	o := newOptions(c, opts)
	tree, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return o.mapper.DenormalizeNew(tree, t, o.ctx)
}

// ToText encodes node as JSON.
func ToText(node normal.Typed, opts ...Option) ([]byte, error) {
	return Marshal(JSON(), node, opts...)
}

// FromText merges JSON text into node.
func FromText(text []byte, node normal.Typed, opts ...Option) (normal.Typed, error) {
	return Unmarshal(JSON(), text, node, opts...)
}

// ToBinary encodes node as CBOR.
func ToBinary(node normal.Typed, opts ...Option) ([]byte, error) {
	return Marshal(CBOR(), node, opts...)
}

// FromBinary merges CBOR data into node.
func FromBinary(data []byte, node normal.Typed, opts ...Option) (normal.Typed, error) {
	return Unmarshal(CBOR(), data, node, opts...)
}

// String renders node as JSON text. Errors are rendered in brackets.
func String(node normal.Typed) string {
	d, err := ToText(node)
	if err != nil {
		return fmt.Sprintf("[%s: %v]", JSONFormat, err)
	}
	return string(d)
}
