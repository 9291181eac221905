package normal

import (
	"testing"

	"github.com/signadot/normal/ir"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		node Typed
		want Kind
	}{
		{"entity", personType.New(), KindEntity},
		{"collection", linesType.New(), KindCollection},
		{"kind without contract", &liar{rec: *personType.newRec()}, KindUnknown},
		{"nil", nil, KindUnknown},
		{"nil pointer", (*rec)(nil), KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.node); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizeEntity(t *testing.T) {
	order := orderType.newRec().set(
		"id", "o1",
		"customer", "Ann",
		"note", "",
		"address", addressType.newRec().set("street", "Main", "city", ""),
		"lines", linesType.newList().add(
			lineType.newRec().set("sku", "a", "qty", int64(2)),
			lineType.newRec(),
		),
	)
	got := Normalize(order, Context{})
	want := obj(
		"id", "o1",
		"customer", "Ann",
		"address", obj("street", "Main"),
		"lines", arr(obj("sku", "a", "qty", 2), obj()),
	)
	if !ir.Equal(got, want) {
		t.Errorf("Normalize() = %s, want %s", show(got), show(want))
	}
}

func TestNormalizeDropsFalsyProperties(t *testing.T) {
	p := personType.newRec().set("name", "", "age", int64(0))
	got := Normalize(p, Context{})
	if len(got.Fields) != 0 {
		t.Errorf("expected no properties, got %s", show(got))
	}
	p.set("age", 0.0)
	p.extra = []string{"flag", "list", "map"}
	p.set("flag", false, "list", []any{}, "map", map[string]any{})
	if got := Normalize(p, Context{}); len(got.Fields) != 0 {
		t.Errorf("expected no properties, got %s", show(got))
	}
}

func TestNormalizeCollectionKeepsFalsyItems(t *testing.T) {
	l := linesType.newList().add("", int64(0), false, nil, lineType.newRec())
	got := Normalize(l, Context{})
	want := arr("", 0, false, nil, obj())
	if !ir.Equal(got, want) {
		t.Errorf("Normalize() = %s, want %s", show(got), show(want))
	}
}

func TestNormalizeCollectionKeys(t *testing.T) {
	sparse := linesType.newList()
	sparse.SetItem(IntKey(5), "five")
	sparse.SetItem(IntKey(2), "two")

	named := linesType.newList()
	named.SetItem(StringKey("b"), int64(1))
	named.SetItem(StringKey("a"), int64(2))

	mixed := linesType.newList()
	mixed.SetItem(IntKey(1), "one")
	mixed.SetItem(StringKey("x"), "ex")

	tests := []struct {
		name string
		in   *list
		want *ir.Node
	}{
		{"sparse", sparse, obj(5, "five", 2, "two")},
		{"strings keep order", named, obj("b", 1, "a", 2)},
		{"mixed", mixed, obj("1", "one", "x", "ex")},
		{"empty", linesType.newList(), arr()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in, Context{})
			if !ir.Equal(got, tt.want) {
				t.Errorf("Normalize() = %s, want %s", show(got), show(tt.want))
			}
		})
	}
	if got := Normalize(sparse, Context{}); got.Tag != ir.IntKeysTag {
		t.Errorf("sparse collection tag = %q", got.Tag)
	}
}

type opaque struct {
	Label string `json:"label"`
	hide  int
}

func TestNormalizeNeverFails(t *testing.T) {
	open := &recType{name: "Bag", fields: []Field{
		{Name: "ch"}, {Name: "fn"}, {Name: "struct"}, {Name: "nested"},
		{Name: "nilTyped"}, {Name: "tree"}, {Name: "liar"},
	}}
	bag := open.newRec().set(
		"ch", make(chan int),
		"fn", func() {},
		"struct", opaque{Label: "x", hide: 1},
		"nested", map[string]any{"n": lineType.newRec().set("sku", "z")},
		"nilTyped", (*rec)(nil),
		"tree", obj("k", "v"),
		"liar", &liar{rec: *personType.newRec()},
	)
	got := Normalize(bag, Context{})
	want := obj(
		"struct", obj("label", "x"),
		"nested", obj("n", obj("sku", "z")),
		"tree", obj("k", "v"),
	)
	if !ir.Equal(got, want) {
		t.Errorf("Normalize() = %s, want %s", show(got), show(want))
	}
	if got := Normalize(nil, Context{}); got.Type != ir.NullType {
		t.Errorf("Normalize(nil) = %s", show(got))
	}
}

func TestNormalizePropertyHook(t *testing.T) {
	g := &guarded{rec: personType.newRec().set("name", "bob")}
	g.extra = []string{"password"}
	g.set("password", "hunter2")
	got := Normalize(g, WithFormat("json"))
	want := obj("name", "bob", "password", "***json")
	if !ir.Equal(got, want) {
		t.Errorf("Normalize() = %s, want %s", show(got), show(want))
	}
}
