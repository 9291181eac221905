package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/normal/ir"
)

func kv(kvs ...any) *ir.Node {
	res := make([]ir.KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		var key *ir.Node
		switch k := kvs[i].(type) {
		case int:
			key = ir.FromInt(int64(k))
		default:
			key = ir.FromString(k.(string))
		}
		val, ok := kvs[i+1].(*ir.Node)
		if !ok {
			val = ir.FromAny(kvs[i+1])
		}
		res = append(res, ir.KeyVal{Key: key, Val: val})
	}
	return ir.FromKeyVals(res)
}

func list(vs ...any) *ir.Node {
	res := make([]*ir.Node, len(vs))
	for i, v := range vs {
		n, ok := v.(*ir.Node)
		if !ok {
			n = ir.FromAny(v)
		}
		res[i] = n
	}
	return ir.FromSlice(res)
}

func sample() *ir.Node {
	return kv(
		"name", "Ann <ann@example.com>",
		"age", 30,
		"score", 1.5,
		"neg", -7,
		"ok", true,
		"none", nil,
		"tags", list("b", "a", list()),
		"address", kv("zip", "N1", "city", "Oslo"),
		"empty", kv(),
	)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range []Codec{JSON(), JSON(JSONIndent("  ")), YAML(), CBOR()} {
		t.Run(c.Format(), func(t *testing.T) {
			in := sample()
			d, err := c.Encode(in)
			if err != nil {
				t.Fatal(err)
			}
			out, err := c.Decode(d)
			if err != nil {
				t.Fatalf("decode %q: %v", d, err)
			}
			if !ir.Equal(in, out) {
				t.Errorf("round trip of %q = %v", d, ir.ToAny(out))
			}
		})
	}
}

func TestIntKeys(t *testing.T) {
	in := kv(3, "c", 1, "a")
	d, err := CBOR().Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := CBOR().Decode(d)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(in, out) || out.Tag != ir.IntKeysTag {
		t.Errorf("cbor int keys = %v (tag %q)", ir.ToAny(out), out.Tag)
	}

	d, err = JSON().Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(d); got != `{"3":"c","1":"a"}` {
		t.Errorf("json int keys = %s", got)
	}

	d, err = YAML().Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err = YAML().Decode(d)
	if err != nil {
		t.Fatal(err)
	}
	if want := kv("3", "c", "1", "a"); !ir.Equal(want, out) {
		t.Errorf("yaml int keys = %v", ir.ToAny(out))
	}
}

func TestJSONEncode(t *testing.T) {
	tests := []struct {
		name string
		in   *ir.Node
		opts []JSONOption
		want string
	}{
		{"compact", kv("b", 1, "a", list(true, nil)), nil, `{"b":1,"a":[true,null]}`},
		{"integral float", ir.FromFloat(2), nil, `2.0`},
		{"exponent", ir.FromFloat(1e21), nil, `1e+21`},
		{"raw number", &ir.Node{Type: ir.NumberType, Number: "1e999"}, nil, `1e999`},
		{"html", ir.FromString("<&>"), nil, `"<&>"`},
		{"empty", kv("o", kv(), "a", list()), nil, `{"o":{},"a":[]}`},
		{"indent", kv("a", list(1)), []JSONOption{JSONIndent("  ")}, "{\n  \"a\": [\n    1\n  ]\n}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := JSON(tt.opts...).Encode(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(d) != tt.want {
				t.Errorf("got %q want %q", d, tt.want)
			}
		})
	}
	if _, err := JSON().Encode(ir.FromFloat(posInf())); !errors.Is(err, ErrEncoding) {
		t.Errorf("inf: %v", err)
	}
}

func posInf() float64 {
	zero := 0.0
	return 1 / zero
}

func TestJSONDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ir.Node
	}{
		{"order", `{"b":1,"a":2}`, kv("b", 1, "a", 2)},
		{"duplicate", `{"a":1,"b":2,"a":3}`, kv("a", 3, "b", 2)},
		{"float", `[1.0, 2, 1e3]`, list(1.0, 2, 1000.0)},
		{"blank", "  \n", ir.Null()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JSON().Decode([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("got %v want %v", ir.ToAny(got), ir.ToAny(tt.want))
			}
		})
	}
	for _, bad := range []string{`{"a":`, `[1] [2]`, `{1:2}`} {
		if _, err := JSON().Decode([]byte(bad)); !errors.Is(err, ErrDecoding) {
			t.Errorf("Decode(%q) err = %v", bad, err)
		}
	}
}

func TestYAML(t *testing.T) {
	got, err := YAML().Decode([]byte("b: 1\na: [x, 2]\n3: z\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := kv("b", 1, "a", list("x", 2), "3", "z")
	if !ir.Equal(got, want) {
		t.Errorf("got %v want %v", ir.ToAny(got), ir.ToAny(want))
	}
	d, err := YAML().Encode(kv("b", 1, "a", "x"))
	if err != nil {
		t.Fatal(err)
	}
	if s := string(d); strings.Index(s, "b:") > strings.Index(s, "a:") {
		t.Errorf("key order lost:\n%s", s)
	}
	if _, err := YAML().Decode([]byte("a: [")); !errors.Is(err, ErrDecoding) {
		t.Errorf("err = %v", err)
	}
}

func TestCBORBytes(t *testing.T) {
	d, err := CBOR().Encode(kv("a", 1))
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{0xa1, 0x61, 'a', 0x01}; !bytes.Equal(d, want) {
		t.Errorf("got % x want % x", d, want)
	}
	for _, bad := range [][]byte{
		{0x9f, 0x01, 0xff},
		{0x82, 0x01},
		{0x01, 0x02},
		{0xa1, 0x80, 0x01},
	} {
		if _, err := CBOR().Decode(bad); !errors.Is(err, ErrDecoding) {
			t.Errorf("Decode(% x) err = %v", bad, err)
		}
	}
}

func TestCBORLongHeads(t *testing.T) {
	for _, n := range []int{23, 24, 255, 256, 70000} {
		vals := make([]any, n)
		for i := range vals {
			vals[i] = i
		}
		in := list(vals...)
		d, err := CBOR().Encode(in)
		if err != nil {
			t.Fatal(err)
		}
		out, err := CBOR().Decode(d)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if !ir.Equal(in, out) {
			t.Errorf("n=%d: round trip mismatch", n)
		}
	}
}

func TestFormat(t *testing.T) {
	for name, want := range map[string]Format{"j": JSONFormat, "yaml": YAMLFormat, "yml": YAMLFormat, "cbor": CBORFormat} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("err = %v", err)
	}
	if f, ok := FormatOf("dir/doc.YAML"); !ok || f != YAMLFormat {
		t.Errorf("FormatOf = %v %v", f, ok)
	}
	if _, ok := FormatOf("README"); ok {
		t.Errorf("FormatOf without extension")
	}
	for _, f := range AllFormats() {
		c, err := For(f)
		if err != nil {
			t.Fatal(err)
		}
		if c.Format() != f.String() {
			t.Errorf("codec %s has format %s", f, c.Format())
		}
		var back Format
		if err := back.UnmarshalText([]byte(f.Suffix()[1:])); err != nil || back != f {
			t.Errorf("suffix %s does not parse back", f.Suffix())
		}
	}
}

func TestColors(t *testing.T) {
	var c *Colors
	if c.Color(ir.StringType, ValueColor, "x") != "x" {
		t.Errorf("nil colors changed the text")
	}
	c = NewColors()
	c.Map = nil
	if got := c.Get(ir.BoolType, FieldColor)("100%"); got != "100%" {
		t.Errorf("default color = %q", got)
	}
}

func TestMaxDepth(t *testing.T) {
	nested := func(n int, open, end string) []byte {
		return []byte(strings.Repeat(open, n) + end + strings.Repeat("]", n))
	}
	if _, err := JSON().Decode(nested(MaxDepth, "[", "")); err != nil {
		t.Errorf("json at max depth: %v", err)
	}
	if _, err := JSON().Decode(nested(MaxDepth+1, "[", "")); !errors.Is(err, ErrDecoding) {
		t.Errorf("json past max depth: %v", err)
	}
	if _, err := JSON().Decode([]byte(strings.Repeat(`{"a":`, MaxDepth+1))); !errors.Is(err, ErrDecoding) {
		t.Errorf("json objects past max depth: %v", err)
	}

	cborNested := func(n int) []byte {
		return append(bytes.Repeat([]byte{0x81}, n), 0xf6)
	}
	if _, err := CBOR().Decode(cborNested(MaxDepth)); err != nil {
		t.Errorf("cbor at max depth: %v", err)
	}
	if _, err := CBOR().Decode(cborNested(MaxDepth + 1)); !errors.Is(err, ErrDecoding) {
		t.Errorf("cbor past max depth: %v", err)
	}
	if _, err := CBOR().Decode(cborNested(1 << 20)); !errors.Is(err, ErrDecoding) {
		t.Errorf("cbor deep input: %v", err)
	}
}
