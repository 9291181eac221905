// Package codec encodes plain data trees as JSON, YAML or CBOR and wraps
// the mapper of package normal into format adapters.
//
// # Usage
//
//	text, err := codec.ToText(order)
//	_, err = codec.FromText(text, order)
//
//	bin, err := codec.ToBinary(order)
//	_, err = codec.FromBinary(bin, order)
//
//	// any codec, strict mismatch policy
//	m := normal.NewMapper(normal.Strict())
//	_, err = codec.Unmarshal(codec.YAML(), data, order, codec.WithMapper(m))
//
// All codecs keep object key order. CBOR also keeps integer keys, the text
// formats write them as strings.
//
// # Related Packages
//
//   - github.com/signadot/normal - Normalize and Denormalize
//   - github.com/signadot/normal/ir - plain data trees
package codec
