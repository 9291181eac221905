package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/normal"
	"github.com/signadot/normal/ir"
	"github.com/signadot/normal/object"
)

type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Cart struct {
	Owner string                   `json:"owner"`
	Note  string                   `json:"note"`
	Items object.Collection[*Item] `json:"items"`
	Seen  map[string]string        `normal:"-"`
}

// NormalizeProperty records the format of the request in Seen.
func (c *Cart) NormalizeProperty(name string, v any, ctx normal.Context) (*ir.Node, bool) {
	if c.Seen == nil {
		c.Seen = map[string]string{}
	}
	c.Seen[name] = ctx.Format()
	return nil, false
}

func newCart() *Cart {
	c := &Cart{Owner: "ann"}
	c.Items.Append(&Item{Name: "tea", Price: 2.5}, &Item{Name: "cup"})
	return c
}

func TestAdapters(t *testing.T) {
	tests := []struct {
		name   string
		format string
		to     func(normal.Typed, ...Option) ([]byte, error)
		from   func([]byte, normal.Typed, ...Option) (normal.Typed, error)
	}{
		{"text", "json", ToText, FromText},
		{"binary", "cbor", ToBinary, FromBinary},
		{"yaml", "yaml",
			func(n normal.Typed, opts ...Option) ([]byte, error) { return Marshal(YAML(), n, opts...) },
			func(d []byte, n normal.Typed, opts ...Option) (normal.Typed, error) {
				return Unmarshal(YAML(), d, n, opts...)
			}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := newCart()
			d, err := tt.to(object.Of(in))
			if err != nil {
				t.Fatal(err)
			}
			if in.Seen["owner"] != tt.format {
				t.Errorf("format seen by the node = %q, want %q", in.Seen["owner"], tt.format)
			}
			var out Cart
			if _, err := tt.from(d, object.Of(&out)); err != nil {
				t.Fatal(err)
			}
			opts := cmp.AllowUnexported(object.Collection[*Item]{}, normal.Key{})
			in.Seen = nil
			out.Seen = nil
			if diff := cmp.Diff(in, &out, opts); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromTextMerges(t *testing.T) {
	c := newCart()
	if _, err := FromText([]byte(`{"note":"gift","items":[{"price":3}]}`), object.Of(c)); err != nil {
		t.Fatal(err)
	}
	first, _ := c.Items.Get(normal.IntKey(0))
	if c.Owner != "ann" || c.Note != "gift" || first.Name != "tea" || first.Price != 3 {
		t.Errorf("merge result = %+v, first = %+v", c, first)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	var c Cart
	if _, err := FromText([]byte(`{"owner":`), object.Of(&c)); !errors.Is(err, ErrDecoding) {
		t.Errorf("err = %v", err)
	}
	strict := WithMapper(normal.NewMapper(normal.Strict()))
	_, err := FromText([]byte(`{"items":[1]}`), object.Of(&c), strict)
	var te *normal.TypeError
	if !errors.As(err, &te) || te.Path != "items[0]" {
		t.Errorf("err = %v", err)
	}
	if _, err := FromText([]byte(`3`), object.Of(&c)); !errors.As(err, &te) {
		t.Errorf("scalar document err = %v", err)
	}
}

func TestUnmarshalNew(t *testing.T) {
	d := []byte("owner: bob\nitems:\n  - name: pen\n")
	n, err := UnmarshalNew(YAML(), d, object.TypeFor[Cart](), WithContext(normal.WithFormat("ignored")))
	if err != nil {
		t.Fatal(err)
	}
	c := n.(*object.Struct).Interface().(*Cart)
	item, _ := c.Items.Get(normal.IntKey(0))
	if c.Owner != "bob" || item == nil || item.Name != "pen" {
		t.Errorf("cart = %+v", c)
	}
}

func TestString(t *testing.T) {
	got := String(object.Of(newCart()))
	want := `{"owner":"ann","items":[{"name":"tea","price":2.5},{"name":"cup"}]}`
	if got != want {
		t.Errorf("String() = %s", got)
	}
	bad := &Item{Price: posInf()}
	if s := String(object.Of(bad)); !strings.HasPrefix(s, "[json: ") {
		t.Errorf("String() = %s", s)
	}
}

func TestSparseCollection(t *testing.T) {
	for _, c := range []Codec{JSON(), YAML(), CBOR()} {
		t.Run(c.Format(), func(t *testing.T) {
			in := object.NewCollection("Items", func() *Item { return &Item{} })
			in.Set(normal.IntKey(5), &Item{Name: "tea"})
			in.Set(normal.IntKey(7), &Item{Name: "cup"})
			d, err := Marshal(c, in)
			if err != nil {
				t.Fatal(err)
			}
			out := object.NewCollection("Items", func() *Item { return &Item{} })
			if _, err := Unmarshal(c, d, out); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(in.Keys(), out.Keys(), cmp.AllowUnexported(normal.Key{})); diff != "" {
				t.Errorf("keys (-want +got):\n%s", diff)
			}
			if item, ok := out.Get(normal.IntKey(7)); !ok || item.Name != "cup" {
				t.Errorf("item 7 = %+v", item)
			}
		})
	}
}
