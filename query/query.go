// Package query filters the entries of plain data trees with expr
// expressions.
//
// An expression sees each entry through these variables:
//
//	key    the entry key, a string or int64 (the index for arrays)
//	value  the entry value as plain Go data
//
// The fields of an object value are also bound directly, so
// `qty > 1 && sku != ""` works on a collection of lines. Names missing from
// an entry are nil. Fields named key or value are shadowed by the entry
// bindings; reach them as value.key and value.value. The function truthy(v)
// applies the normalizer's falsy rule.
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/normal/debug"
	"github.com/signadot/normal/ir"
)

type Query struct {
	src string
	prg *vm.Program
}

// Compile compiles a boolean expression.
func Compile(src string) (*Query, error) {
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	return &Query{src: src, prg: prg}, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
		expr.Function("truthy", func(params ...any) (any, error) {
			return ir.Truth(ir.FromAny(params[0])), nil
		},
			new(func(any) bool)),
	}
}

func (q *Query) String() string { return q.src }

// Match evaluates q against one entry.
func (q *Query) Match(key any, value *ir.Node) (bool, error) {
	env := map[string]any{}
	if value != nil && !value.HasIntKeys() {
		for name, v := range ir.ToMap(value) {
			env[name] = ir.ToAny(v)
		}
	}
	env["key"] = key
	env["value"] = ir.ToAny(value)
	res, err := expr.Run(q.prg, env)
	if err != nil {
		return false, fmt.Errorf("error evaluating %q at %v: %w", q.src, key, err)
	}
	b, _ := res.(bool)
	return b, nil
}

// Filter returns a copy of node keeping the entries q matches. Arrays stay
// arrays, objects keep their key order. Leaves are returned unchanged.
func (q *Query) Filter(node *ir.Node) (*ir.Node, error) {
	if node == nil {
		return nil, nil
	}
	switch node.Type {
	case ir.ArrayType:
		var res []*ir.Node
		for i, v := range node.Values {
			ok, err := q.Match(int64(i), v)
			if err != nil {
				return nil, err
			}
			if ok {
				res = append(res, v.Clone())
			}
		}
		if debug.Codec() {
			debug.Logf("query %q kept %d/%d\n", q.src, len(res), len(node.Values))
		}
		return ir.FromSlice(res).WithTag(node.Tag), nil
	case ir.ObjectType:
		var kvs []ir.KeyVal
		for i, f := range node.Fields {
			var key any = f.KeyString()
			if f.Int64 != nil {
				key = *f.Int64
			}
			ok, err := q.Match(key, node.Values[i])
			if err != nil {
				return nil, err
			}
			if ok {
				kvs = append(kvs, ir.KeyVal{Key: f.Clone(), Val: node.Values[i].Clone()})
			}
		}
		if debug.Codec() {
			debug.Logf("query %q kept %d/%d\n", q.src, len(kvs), len(node.Fields))
		}
		return ir.FromKeyVals(kvs), nil
	default:
		return node.Clone(), nil
	}
}

// Filter compiles src and filters node with it.
func Filter(node *ir.Node, src string) (*ir.Node, error) {
	q, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return q.Filter(node)
}
