package query

import (
	"testing"

	"github.com/signadot/normal/ir"
)

func line(sku string, qty int) *ir.Node {
	return ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("sku"), Val: ir.FromString(sku)},
		{Key: ir.FromString("qty"), Val: ir.FromInt(int64(qty))},
	})
}

func lines() *ir.Node {
	return ir.FromSlice([]*ir.Node{line("a", 1), line("b", 3), line("", 5)})
}

func TestFilterArray(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{`qty > 1`, []string{"b", ""}},
		{`qty > 1 && truthy(sku)`, []string{"b"}},
		{`key == 0`, []string{"a"}},
		{`value.sku in ["a", "b"]`, []string{"a", "b"}},
		{`false`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.expr, func(t *testing.T) {
			res, err := Filter(lines(), tc.expr)
			if err != nil {
				t.Fatal(err)
			}
			if res.Type != ir.ArrayType {
				t.Fatalf("got %s, want array", res.Type)
			}
			var got []string
			for _, v := range res.Values {
				got = append(got, ir.Get(v, "sku").String)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("%d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestFilterObject(t *testing.T) {
	in := ir.FromIntKeysMap(map[int64]*ir.Node{
		2: line("x", 2),
		7: line("y", 0),
	})
	res, err := Filter(in, `truthy(qty)`)
	if err != nil {
		t.Fatal(err)
	}
	if !res.HasIntKeys() || res.Len() != 1 || *res.Fields[0].Int64 != 2 {
		t.Errorf("unexpected result %v", ir.ToAny(res))
	}

	named := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("first"), Val: line("x", 2)},
		{Key: ir.FromString("second"), Val: line("y", 0)},
	})
	res, err = Filter(named, `key startsWith "s"`)
	if err != nil {
		t.Fatal(err)
	}
	if res.Len() != 1 || res.Fields[0].String != "second" {
		t.Errorf("unexpected result %v", ir.ToAny(res))
	}
}

func TestFilterLeaf(t *testing.T) {
	res, err := Filter(ir.FromString("s"), `true`)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(res, ir.FromString("s")) {
		t.Errorf("got %v", ir.ToAny(res))
	}
}

func TestCompileError(t *testing.T) {
	if _, err := Compile(`qty >`); err == nil {
		t.Error("expected compile error")
	}
}

func TestShadowedFields(t *testing.T) {
	in := ir.FromKeyVals([]ir.KeyVal{
		{Key: ir.FromString("a"), Val: ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("key"), Val: ir.FromString("k1")}})},
		{Key: ir.FromString("b"), Val: ir.FromKeyVals([]ir.KeyVal{{Key: ir.FromString("key"), Val: ir.FromString("k2")}})},
	})
	res, err := Filter(in, `key == "b"`)
	if err != nil {
		t.Fatal(err)
	}
	if res.Len() != 1 || res.Fields[0].String != "b" {
		t.Errorf("entry key binding: %v", ir.ToAny(res))
	}
	res, err = Filter(in, `value.key == "k1"`)
	if err != nil {
		t.Fatal(err)
	}
	if res.Len() != 1 || res.Fields[0].String != "a" {
		t.Errorf("field through value: %v", ir.ToAny(res))
	}
}
