package normal

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/signadot/normal/debug"
	"github.com/signadot/normal/ir"
)

// Denormalize merges data into node and returns node.
//
// Entity properties that hold a typed node are denormalized in place. Empty
// properties declared with a Field.Type are constructed first. Anything else
// is assigned verbatim as the plain Go value of the data (see ir.ToAny).
// Collection items are reused when present at a key and constructed from
// the collection's ItemType otherwise. Properties and items not mentioned in
// data are left alone.
//
// Empty data (nil, null, {} or []) leaves node unchanged. Scalar data at the
// top level is a *TypeError. A nil node or a collection without an item type
// is a *ConfigurationError.
func (m *Mapper) Denormalize(data *ir.Node, node Typed, ctx Context) (Typed, error) {
	if isNil(node) {
		return node, &ConfigurationError{Path: ctx.Path(), Message: "nil target node"}
	}
	if ir.IsEmpty(data) {
		return node, nil
	}
	if !ir.IsContainer(data) {
		return node, &TypeError{
			Path:     ctx.Path(),
			Expected: "object or array",
			Actual:   data.Type.String(),
		}
	}
	if debug.Denormalize() {
		debug.Logf("denormalize %q <- %v\n", ctx.Path(), data)
	}
	var err error
	switch Classify(node) {
	case KindEntity:
		err = m.denormalizeEntity(data, node.(Entity), ctx)
	case KindCollection:
		err = m.denormalizeCollection(data, node.(Collection), ctx)
	default:
		err = &ConfigurationError{
			Path:     ctx.Path(),
			TypeName: fmt.Sprintf("%T", node),
			Message:  fmt.Sprintf("declared kind %s does not match an implemented contract", node.Kind()),
		}
	}
	return node, err
}

// DenormalizeNew denormalizes data into t.New().
func (m *Mapper) DenormalizeNew(data *ir.Node, t ItemType, ctx Context) (Typed, error) {
	if isNil(t) {
		return nil, &ConfigurationError{Path: ctx.Path(), Message: "nil item type"}
	}
	node := t.New()
	if isNil(node) {
		return nil, &ConfigurationError{Path: ctx.Path(), TypeName: t.Name(), Message: "New returned nil"}
	}
	return m.Denormalize(data, node, ctx)
}

type entry struct {
	name string
	key  Key
	val  *ir.Node
}

// entries lists the children of a container. Array elements are named by
// their index. Nil values read as null.
func entries(data *ir.Node) []entry {
	res := make([]entry, len(data.Values))
	for i, v := range data.Values {
		if v == nil {
			v = ir.Null()
		}
		if data.Type == ir.ArrayType {
			res[i] = entry{name: strconv.Itoa(i), key: IntKey(int64(i)), val: v}
			continue
		}
		k := KeyOf(data.Fields[i])
		res[i] = entry{name: k.String(), key: k, val: v}
	}
	return res
}

func (m *Mapper) denormalizeEntity(data *ir.Node, e Entity, ctx Context) error {
	declared := map[string]Field{}
	for _, f := range e.Fields() {
		declared[f.Name] = f
	}
	pd, _ := e.(PropertyDenormalizer)
	for _, ent := range entries(data) {
		name, val := ent.name, ent.val
		pctx := ctx.withProperty(name)
		if pd != nil {
			handled, err := pd.DenormalizeProperty(name, val, pctx)
			if err != nil {
				return wrapSetError(pctx, "property hook", err)
			}
			if handled {
				continue
			}
		}
		cur, _ := e.Property(name)
		if t, ok := asTyped(cur); ok {
			if ir.IsContainer(val) || val.Type == ir.NullType {
				if err := m.denormalizeSlot(val, t, pctx, e.SetProperty, name); err != nil {
					return err
				}
				continue
			}
			if err := m.mismatch(pctx, "object or array", val); err != nil {
				return err
			}
		} else if f := declared[name]; !isNil(f.Type) {
			if ir.IsContainer(val) {
				t := f.Type.New()
				if isNil(t) {
					return &ConfigurationError{Path: pctx.Path(), TypeName: f.Type.Name(), Message: "New returned nil"}
				}
				if err := m.denormalizeSlot(val, t, pctx, e.SetProperty, name); err != nil {
					return err
				}
				continue
			}
			if val.Type != ir.NullType {
				if err := m.mismatch(pctx, "object or array", val); err != nil {
					return err
				}
			}
		} else if ir.IsContainer(val) && isScalar(cur) {
			if err := m.mismatch(pctx, "scalar", val); err != nil {
				return err
			}
		}
		if err := e.SetProperty(name, ir.ToAny(val)); err != nil {
			return wrapSetError(pctx, "set property "+strconv.Quote(name), err)
		}
	}
	return nil
}

// denormalizeSlot merges val into t and stores t back with set. Null data
// leaves t as it is.
func (m *Mapper) denormalizeSlot(val *ir.Node, t Typed, ctx Context, set func(string, any) error, name string) error {
	if val.Type == ir.NullType {
		m.logger.Debug("null for typed property, keeping it", "path", ctx.Path())
		return nil
	}
	if _, err := m.Denormalize(val, t, ctx); err != nil {
		return err
	}
	if err := set(name, t); err != nil {
		return wrapSetError(ctx, "set property "+strconv.Quote(name), err)
	}
	return nil
}

func (m *Mapper) denormalizeCollection(data *ir.Node, c Collection, ctx Context) error {
	it := c.ItemType()
	if isNil(it) {
		return &ConfigurationError{
			Path:     ctx.Path(),
			TypeName: fmt.Sprintf("%T", c),
			Message:  "collection declares no item type",
		}
	}
	ctx = ctx.With(CtxClass, it)
	ents := entries(data)
	resolveKeys(ents, c.Keys())
	for _, ent := range ents {
		kctx := ctx.withKey(ent.key)
		if !ir.IsContainer(ent.val) {
			if err := m.mismatch(kctx, it.Name(), ent.val); err != nil {
				return err
			}
			if err := c.SetItem(ent.key, ir.ToAny(ent.val)); err != nil {
				return wrapSetError(kctx, "set item "+ent.key.String(), err)
			}
			continue
		}
		var target Typed
		if cur, ok := c.Item(ent.key); ok {
			target, _ = asTyped(cur)
		}
		if target == nil {
			target = it.New()
			if isNil(target) {
				return &ConfigurationError{Path: kctx.Path(), TypeName: it.Name(), Message: "New returned nil"}
			}
		} else {
			m.logger.Debug("merging into existing item", "path", kctx.Path())
		}
		if _, err := m.Denormalize(ent.val, target, kctx); err != nil {
			return err
		}
		if err := c.SetItem(ent.key, target); err != nil {
			return wrapSetError(kctx, "set item "+ent.key.String(), err)
		}
	}
	return nil
}

// resolveKeys turns decimal string keys into int keys when the collection
// already holds that int key, or when it holds no string keys and every
// input key is decimal. Text formats only carry string keys.
func resolveKeys(ents []entry, have []Key) {
	ints := map[int64]bool{}
	onlyInts := true
	for _, k := range have {
		if n, ok := k.Int(); ok {
			ints[n] = true
		} else {
			onlyInts = false
		}
	}
	allDecimal := true
	for i := range ents {
		if ents[i].key.IsInt() {
			continue
		}
		if _, ok := ir.ParseKey(ents[i].key.String()); !ok {
			allDecimal = false
			break
		}
	}
	for i := range ents {
		if ents[i].key.IsInt() {
			continue
		}
		n, ok := ir.ParseKey(ents[i].key.String())
		if !ok {
			continue
		}
		if ints[n] || onlyInts && allDecimal {
			ents[i].key = IntKey(n)
		}
	}
}

// mismatch applies the policy to data that does not fit its slot.
func (m *Mapper) mismatch(ctx Context, expected string, val *ir.Node) error {
	if m.policy == PolicyStrict {
		return &TypeError{Path: ctx.Path(), Expected: expected, Actual: val.Type.String()}
	}
	m.logger.Debug("shape mismatch, overwriting", "path", ctx.Path(), "expected", expected, "actual", val.Type)
	return nil
}

func wrapSetError(ctx Context, msg string, err error) error {
	var te *TypeError
	var ce *ConfigurationError
	var de *DenormalizeError
	if errors.As(err, &te) || errors.As(err, &ce) || errors.As(err, &de) {
		return err
	}
	return &DenormalizeError{Path: ctx.Path(), Message: msg, Err: err}
}
