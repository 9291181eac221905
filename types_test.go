package normal

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/signadot/normal/ir"
)

var errRefused = errors.New("refused")

// recType is a map backed entity type for tests.
type recType struct {
	name   string
	fields []Field
	closed bool
}

func (t *recType) Name() string { return t.name }
func (t *recType) New() Typed   { return t.newRec() }

func (t *recType) newRec() *rec {
	return &rec{typ: t, props: map[string]any{}}
}

type rec struct {
	typ    *recType
	props  map[string]any
	extra  []string
	failOn string
}

func (r *rec) Kind() Kind { return KindEntity }

func (r *rec) Fields() []Field {
	res := slices.Clone(r.typ.fields)
	for _, name := range r.extra {
		res = append(res, Field{Name: name})
	}
	return res
}

func (r *rec) Property(name string) (any, bool) {
	v, ok := r.props[name]
	return v, ok
}

func (r *rec) SetProperty(name string, v any) error {
	if name == r.failOn {
		return errRefused
	}
	if !slices.ContainsFunc(r.typ.fields, func(f Field) bool { return f.Name == name }) {
		if r.typ.closed {
			return fmt.Errorf("unknown property %q", name)
		}
		if !slices.Contains(r.extra, name) {
			r.extra = append(r.extra, name)
		}
	}
	r.props[name] = v
	return nil
}

func (r *rec) set(kvs ...any) *rec {
	for i := 0; i < len(kvs); i += 2 {
		r.props[kvs[i].(string)] = kvs[i+1]
	}
	return r
}

// listType is an ordered collection type for tests.
type listType struct {
	name string
	item ItemType
}

func (t *listType) Name() string { return t.name }
func (t *listType) New() Typed   { return t.newList() }

func (t *listType) newList() *list {
	return &list{item: t.item, items: map[Key]any{}}
}

type list struct {
	item  ItemType
	keys  []Key
	items map[Key]any
}

func (l *list) Kind() Kind         { return KindCollection }
func (l *list) ItemType() ItemType { return l.item }
func (l *list) Keys() []Key        { return slices.Clone(l.keys) }

func (l *list) Item(k Key) (any, bool) {
	v, ok := l.items[k]
	return v, ok
}

func (l *list) SetItem(k Key, v any) error {
	if l.items == nil {
		l.items = map[Key]any{}
	}
	if _, ok := l.items[k]; !ok {
		l.keys = append(l.keys, k)
	}
	l.items[k] = v
	return nil
}

func (l *list) add(vs ...any) *list {
	for _, v := range vs {
		l.SetItem(IntKey(int64(len(l.keys))), v)
	}
	return l
}

// liar declares itself a collection but only implements Entity.
type liar struct {
	rec
}

func (l *liar) Kind() Kind { return KindCollection }

// guarded masks a password property in both directions.
type guarded struct {
	*rec
}

func (g *guarded) NormalizeProperty(name string, v any, ctx Context) (*ir.Node, bool) {
	if name != "password" {
		return nil, false
	}
	return ir.FromString("***" + ctx.Format()), true
}

func (g *guarded) DenormalizeProperty(name string, data *ir.Node, ctx Context) (bool, error) {
	if name != "password" {
		return false, nil
	}
	if data.Type != ir.StringType {
		return false, fmt.Errorf("password must be a string")
	}
	return data.String == "***", nil
}

var (
	addressType = &recType{name: "Address", fields: []Field{{Name: "street"}, {Name: "city"}}}
	lineType    = &recType{name: "Line", fields: []Field{{Name: "sku"}, {Name: "qty"}, {Name: "tag"}, {Name: "id"}}}
	linesType   = &listType{name: "Lines", item: lineType}
	orderType   = &recType{name: "Order", fields: []Field{
		{Name: "id"},
		{Name: "customer"},
		{Name: "address", Type: addressType},
		{Name: "lines", Type: linesType},
		{Name: "note"},
	}}
	personType = &recType{name: "Person", fields: []Field{{Name: "name"}, {Name: "age"}}}
)

func obj(kvs ...any) *ir.Node {
	res := make([]ir.KeyVal, 0, len(kvs)/2)
	for i := 0; i < len(kvs); i += 2 {
		var key *ir.Node
		switch k := kvs[i].(type) {
		case int:
			key = ir.FromInt(int64(k))
		default:
			key = ir.FromString(k.(string))
		}
		res = append(res, ir.KeyVal{Key: key, Val: node(kvs[i+1])})
	}
	return ir.FromKeyVals(res)
}

func arr(vs ...any) *ir.Node {
	res := make([]*ir.Node, len(vs))
	for i, v := range vs {
		res[i] = node(v)
	}
	return ir.FromSlice(res)
}

func node(v any) *ir.Node {
	if n, ok := v.(*ir.Node); ok {
		return n
	}
	return ir.FromAny(v)
}

func show(n *ir.Node) string {
	d, err := json.Marshal(ir.ToAny(n))
	if err != nil {
		return fmt.Sprintf("%v", n)
	}
	return string(d)
}
