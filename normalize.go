package normal

import (
	"github.com/signadot/normal/debug"
	"github.com/signadot/normal/ir"
)

// Normalize converts node to a plain tree. It never fails: values that are
// neither typed nodes nor plain data are coerced with ir.FromAny.
//
// Entity properties normalizing to a falsy node are omitted, so a round
// trip does not restore zero values. Collection items are never omitted.
func (m *Mapper) Normalize(node Typed, ctx Context) *ir.Node {
	var res *ir.Node
	switch Classify(node) {
	case KindEntity:
		res = m.normalizeEntity(node.(Entity), ctx)
	case KindCollection:
		res = m.normalizeCollection(node.(Collection), ctx)
	default:
		if isNil(node) {
			return ir.Null()
		}
		m.logger.Debug("coercing unclassified node", "path", ctx.Path(), "kind", node.Kind())
		res = ir.FromAny(node)
	}
	if debug.Normalize() {
		debug.Logf("normalize %q -> %v\n", ctx.Path(), res)
	}
	return res
}

func (m *Mapper) normalizeEntity(e Entity, ctx Context) *ir.Node {
	fields := e.Fields()
	kvs := make([]ir.KeyVal, 0, len(fields))
	pn, _ := e.(PropertyNormalizer)
	for _, f := range fields {
		v, ok := e.Property(f.Name)
		if !ok {
			continue
		}
		fctx := ctx.withProperty(f.Name)
		var val *ir.Node
		handled := false
		if pn != nil {
			val, handled = pn.NormalizeProperty(f.Name, v, fctx)
		}
		if !handled {
			val = m.normalizeValue(v, fctx)
		}
		if !ir.Truth(val) {
			m.logger.Debug("dropping falsy property", "path", fctx.Path())
			continue
		}
		kvs = append(kvs, ir.KeyVal{Key: ir.FromString(f.Name), Val: val})
	}
	return ir.FromKeyVals(kvs)
}

func (m *Mapper) normalizeCollection(c Collection, ctx Context) *ir.Node {
	keys := c.Keys()
	type entry struct {
		key Key
		val *ir.Node
	}
	entries := make([]entry, 0, len(keys))
	if t := c.ItemType(); !isNil(t) {
		ctx = ctx.With(CtxClass, t)
	}
	for _, k := range keys {
		v, ok := c.Item(k)
		if !ok {
			continue
		}
		entries = append(entries, entry{key: k, val: m.normalizeValue(v, ctx.withKey(k))})
	}

	seq, allInt := true, true
	for i := range entries {
		n, ok := entries[i].key.Int()
		if !ok {
			seq, allInt = false, false
			break
		}
		if n != int64(i) {
			seq = false
		}
	}
	if seq {
		vals := make([]*ir.Node, len(entries))
		for i := range entries {
			vals[i] = entries[i].val
		}
		return ir.FromSlice(vals)
	}
	kvs := make([]ir.KeyVal, len(entries))
	for i := range entries {
		key := entries[i].key.Node()
		if !allInt {
			key = ir.FromString(entries[i].key.String())
		}
		kvs[i] = ir.KeyVal{Key: key, Val: entries[i].val}
	}
	return ir.FromKeyVals(kvs)
}

// normalizeValue converts a property or item value. Typed nodes found at
// any depth, including inside maps and slices, normalize with their own
// kind.
func (m *Mapper) normalizeValue(v any, ctx Context) *ir.Node {
	return ir.FromAnyFunc(v, func(x any) (*ir.Node, bool) {
		t, ok := x.(Typed)
		if !ok {
			return nil, false
		}
		if isNil(t) {
			return ir.Null(), true
		}
		if Classify(t) == KindUnknown {
			return nil, false
		}
		return m.Normalize(t, ctx), true
	})
}
