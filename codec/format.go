package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/signadot/normal/ir"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
	CBORFormat
)

var (
	ErrBadFormat = errors.New("bad format")
	ErrEncoding  = errors.New("encoding error")
	ErrDecoding  = errors.New("decoding error")
)

// MaxDepth bounds the nesting of arrays and objects the decoders accept.
const MaxDepth = 10000

var errTooDeep = fmt.Errorf("nesting exceeds %d levels", MaxDepth)

func ParseFormat(v string) (Format, error) {
	f, ok := map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yml":  YAMLFormat,
		"yaml": YAMLFormat,
		"c":    CBORFormat,
		"cbor": CBORFormat,
	}[v]
	if ok {
		return f, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrBadFormat, v)
}

// FormatOf guesses the format of a file from its extension.
func FormatOf(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	f, err := ParseFormat(strings.ToLower(ext))
	if err != nil {
		return 0, false
	}
	return f, true
}

func (f Format) String() string {
	d, err := f.MarshalText()
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case JSONFormat:
		return []byte("json"), nil
	case YAMLFormat:
		return []byte("yaml"), nil
	case CBORFormat:
		return []byte("cbor"), nil
	default:
		return nil, fmt.Errorf("<err: %d is not a format>", f)
	}
}

func (f *Format) UnmarshalText(d []byte) error {
	pf, err := ParseFormat(string(d))
	if err != nil {
		return err
	}
	*f = pf
	return nil
}

func (f Format) IsBinary() bool { return f == CBORFormat }

// Suffix returns the file extension for this format (including the dot).
func (f Format) Suffix() string {
	switch f {
	case JSONFormat:
		return ".json"
	case YAMLFormat:
		return ".yaml"
	case CBORFormat:
		return ".cbor"
	default:
		return ""
	}
}

// AllFormats returns all supported formats in preference order.
func AllFormats() []Format {
	return []Format{JSONFormat, YAMLFormat, CBORFormat}
}

// Codec converts between plain trees and bytes.
type Codec interface {
	// Format names the codec, as "json".
	Format() string
	Encode(node *ir.Node) ([]byte, error)
	Decode(data []byte) (*ir.Node, error)
}

// For returns the default codec of a format.
func For(f Format) (Codec, error) {
	switch f {
	case JSONFormat:
		return JSON(), nil
	case YAMLFormat:
		return YAML(), nil
	case CBORFormat:
		return CBOR(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrBadFormat, int(f))
}
